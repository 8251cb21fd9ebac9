package booking

import (
	"time"

	"ptslot/internal/availability"
)

const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
)

// Booking is one reserved one-hour session. Date and Time are kept in the
// trainer's wall-clock form (YYYY-MM-DD, HH:MM).
type Booking struct {
	ID        string    `db:"id" json:"id" example:"6f1c1d1e-8f0a-4c55-9d3e-1a2b3c4d5e6f"`
	UserID    int       `db:"user_id" json:"user_id" example:"7"`
	Date      string    `db:"date" json:"date" example:"2025-06-11"`
	Time      string    `db:"time" json:"time" example:"10:00"`
	Status    string    `db:"status" json:"status" example:"booked"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type BookingWithMember struct {
	Booking
	UserName  string `db:"user_name" json:"user_name"`
	UserEmail string `db:"user_email" json:"user_email"`
}

type CreateBookingRequest struct {
	Date string `json:"date" binding:"required" example:"2025-06-11"`
	Time string `json:"time" binding:"required" example:"10:00"`
}

// SlotListResponse is the listing for one date. Slots is empty, never null,
// on holidays and days off.
type SlotListResponse struct {
	Date      string                   `json:"date" example:"2025-06-11"`
	IsHoliday bool                     `json:"is_holiday"`
	IsDayOff  bool                     `json:"is_day_off"`
	Slots     []availability.SlotState `json:"slots"`
}

type CancelBookingResponse struct {
	Message string `json:"message" example:"Booking cancelled successfully"`
}
