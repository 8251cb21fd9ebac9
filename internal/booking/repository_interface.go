package booking

import (
	"context"

	"ptslot/internal/availability"
)

type Repository interface {
	// CreateBooking returns ErrSlotTaken when the slot already holds a live booking.
	CreateBooking(ctx context.Context, userID int, date, time string) (*Booking, error)
	GetBookingTimesForDate(ctx context.Context, date string) ([]string, error)
	GetBookingByID(ctx context.Context, id string) (*Booking, error)
	CancelBooking(ctx context.Context, id string) error
	GetUserBookings(ctx context.Context, userID int) ([]Booking, error)
	GetUpcomingForUser(ctx context.Context, userID int, fromDate string) ([]Booking, error)
	GetBookingsByDate(ctx context.Context, date string) ([]BookingWithMember, error)
	GetDailyStats(ctx context.Context, from, to string) ([]DailyStats, error)
	GetMemberStats(ctx context.Context, from, to string) ([]MemberStats, error)
}

// SettingsSource is the read side of the trainer settings store.
type SettingsSource interface {
	GetWeekdaySchedules(ctx context.Context) ([]availability.WeekdaySchedule, error)
	GetHolidays(ctx context.Context) (availability.HolidaySet, error)
}

// Notifier receives booking events. Calls happen off the request path and
// their errors never reach the member.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b Booking) error
	BookingCancelled(ctx context.Context, b Booking) error
}
