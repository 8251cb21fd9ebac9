package api

// ErrorResponse is the body of every non-2xx answer. Code is a stable
// machine-readable reason such as "slot_taken".
type ErrorResponse struct {
	Error   string       `json:"error" example:"something went wrong"`
	Code    string       `json:"code,omitempty" example:"slot_taken"`
	Details []FieldError `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}
