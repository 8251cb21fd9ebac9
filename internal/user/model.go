package user

import (
	"time"

	"ptslot/internal/auth"
)

// User is a member account. PushID is the OneSignal player id of the
// member's device, if one was registered.
type User struct {
	ID           int       `db:"id" json:"id" example:"7"`
	Name         string    `db:"name" json:"name" example:"Kim Minji"`
	Email        string    `db:"email" json:"email" example:"minji@example.com"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role" example:"member"`
	PushID       *string   `db:"push_id" json:"push_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

func (u *User) Identity() auth.Identity {
	return auth.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100" example:"Kim Minji"`
	Email    string `json:"email" binding:"required,email" example:"minji@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"s3cret-pass"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"minji@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type PushIDRequest struct {
	PushID string `json:"push_id" binding:"max=128" example:"1d2a3b4c-5e6f-7081-92a3-b4c5d6e7f809"`
}

type AuthResponse struct {
	auth.TokenPair
	User User `json:"user"`
}
