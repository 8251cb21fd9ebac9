package sessionpack

import "time"

// SessionPack is a block of prepaid sessions. ServiceCount holds bonus
// sessions granted on top of the purchased TotalCount.
type SessionPack struct {
	ID           int       `db:"id" json:"id"`
	UserID       int       `db:"user_id" json:"user_id"`
	TotalCount   int       `db:"total_count" json:"total_count"`
	ServiceCount int       `db:"service_count" json:"service_count"`
	UsedCount    int       `db:"used_count" json:"used_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

func (p SessionPack) Remaining() int {
	return p.TotalCount + p.ServiceCount - p.UsedCount
}

func (p SessionPack) Exhausted() bool {
	return p.Remaining() <= 0
}

type IssuePackRequest struct {
	TotalCount   int `json:"total_count" binding:"required,min=1,max=200" example:"10"`
	ServiceCount int `json:"service_count" binding:"min=0,max=50" example:"1"`
}

type PacksResponse struct {
	Packs     []SessionPack `json:"packs"`
	Remaining int           `json:"remaining" example:"7"`
	// Active is the pack the next check-in draws from.
	Active *SessionPack `json:"active,omitempty"`
}

type CheckinResponse struct {
	Pack      SessionPack `json:"pack"`
	Remaining int         `json:"remaining" example:"6"`
}
