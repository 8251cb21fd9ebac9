package booking

import (
	"errors"

	"ptslot/internal/availability"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrSlotTaken       = errors.New("slot already booked by someone else")
	ErrBookingFailed   = errors.New("booking failed, please try again")
	ErrSlotUnavailable = errors.New("slot unavailable")
	ErrForbidden       = errors.New("can only cancel own bookings")
)

// UnavailableError carries the rule that rejected a confirmation. It matches
// ErrSlotUnavailable under errors.Is.
type UnavailableError struct {
	Reason availability.Reason
}

func (e *UnavailableError) Error() string {
	return ErrSlotUnavailable.Error() + ": " + e.Reason.String()
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrSlotUnavailable
}
