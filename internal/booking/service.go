package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ptslot/internal/availability"
	"ptslot/internal/logger"
	"ptslot/internal/metrics"
)

const notifyTimeout = 15 * time.Second

type Service interface {
	ListBookableSlots(ctx context.Context, date string) (*SlotListResponse, error)
	ConfirmBooking(ctx context.Context, userID int, date, time string) (*Booking, error)
	CancelBooking(ctx context.Context, userID int, isAdmin bool, bookingID string) error
	ListMyBookings(ctx context.Context, userID int) ([]Booking, error)
	ListBookingsByDate(ctx context.Context, date string) ([]BookingWithMember, error)
	MyCalendar(ctx context.Context, userID int) (string, error)
	Stats(ctx context.Context, from, to string) (*StatsResponse, error)
}

type Config struct {
	// Location is the trainer's wall clock; every date and time is read in it.
	Location *time.Location
	// Venue is written into calendar events.
	Venue string
	Now   func() time.Time
}

type service struct {
	repo     Repository
	settings SettingsSource
	notifier Notifier
	loc      *time.Location
	venue    string
	now      func() time.Time
}

func NewService(repo Repository, settings SettingsSource, notifier Notifier, cfg Config) Service {
	s := &service{
		repo:     repo,
		settings: settings,
		notifier: notifier,
		loc:      cfg.Location,
		venue:    cfg.Venue,
		now:      cfg.Now,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) clock() time.Time {
	return s.now().In(s.loc)
}

// ListBookableSlots never fails on storage errors: missing settings fall back
// to defaults and missing bookings are treated as none. ConfirmBooking
// re-checks everything before writing.
func (s *service) ListBookableSlots(ctx context.Context, date string) (*SlotListResponse, error) {
	d, err := availability.ParseDate(date, s.loc)
	if err != nil {
		return nil, err
	}
	key := availability.DateKey(d)

	day, err := s.loadDay(ctx, d, false)
	if err != nil {
		return nil, err
	}

	times, err := s.repo.GetBookingTimesForDate(ctx, key)
	if err != nil {
		logger.Warn("failed to fetch bookings, listing as unbooked", "date", key, "error", err)
		times = nil
	}

	metrics.RecordSlotQuery(dayKind(day))

	return &SlotListResponse{
		Date:      key,
		IsHoliday: day.IsHoliday,
		IsDayOff:  day.IsDayOff,
		Slots:     availability.Slots(day, availability.NewBookedSet(times...), s.clock()),
	}, nil
}

func (s *service) ConfirmBooking(ctx context.Context, userID int, date, t string) (*Booking, error) {
	d, err := availability.ParseDate(date, s.loc)
	if err != nil {
		metrics.RecordBookingAttempt("invalid")
		return nil, err
	}
	slot, err := availability.ParseClock(t)
	if err != nil {
		metrics.RecordBookingAttempt("invalid")
		return nil, err
	}
	key := availability.DateKey(d)
	now := s.clock()

	if key < availability.DateKey(now) {
		return nil, s.unavailable(availability.ReasonPast)
	}
	if !availability.OnGrid(slot) {
		return nil, s.unavailable(availability.ReasonOffGrid)
	}

	day, err := s.loadDay(ctx, d, true)
	if err != nil {
		metrics.RecordBookingAttempt("failed")
		return nil, fmt.Errorf("%w: %v", ErrBookingFailed, err)
	}

	times, err := s.repo.GetBookingTimesForDate(ctx, key)
	if err != nil {
		logger.Error("failed to fetch bookings for confirmation", "date", key, "error", err)
		metrics.RecordBookingAttempt("failed")
		return nil, fmt.Errorf("%w: %v", ErrBookingFailed, err)
	}

	if reason := availability.Check(day, slot, availability.NewBookedSet(times...), now); reason != availability.Available {
		return nil, s.unavailable(reason)
	}

	booking, err := s.repo.CreateBooking(ctx, userID, key, slot.String())
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			metrics.RecordBookingAttempt("slot_taken")
			return nil, ErrSlotTaken
		}
		logger.Error("failed to create booking", "user_id", userID, "date", key, "time", slot.String(), "error", err)
		metrics.RecordBookingAttempt("failed")
		return nil, fmt.Errorf("%w: %v", ErrBookingFailed, err)
	}

	metrics.RecordBookingAttempt("success")
	logger.Info("booking confirmed", "booking_id", booking.ID, "user_id", userID, "date", key, "time", booking.Time)

	if s.notifier != nil {
		s.notifyAsync(ctx, "booking_confirmed", *booking, s.notifier.BookingConfirmed)
	}

	return booking, nil
}

func (s *service) unavailable(reason availability.Reason) error {
	metrics.RecordBookingAttempt("unavailable")
	return &UnavailableError{Reason: reason}
}

// loadDay resolves the effective schedule for d. With strict unset, read
// failures are logged and the engine falls back to defaults.
func (s *service) loadDay(ctx context.Context, d time.Time, strict bool) (availability.Day, error) {
	schedules, err := s.settings.GetWeekdaySchedules(ctx)
	if err != nil {
		if strict {
			return availability.Day{}, err
		}
		logger.Warn("failed to fetch weekday schedules, using defaults", "error", err)
		schedules = nil
	}

	holidays, err := s.settings.GetHolidays(ctx)
	if err != nil {
		if strict {
			return availability.Day{}, err
		}
		logger.Warn("failed to fetch holidays, assuming none", "error", err)
		holidays = availability.NewHolidaySet()
	}

	day := availability.Classify(d, schedules, holidays)
	if day.Defaulted {
		logger.Debug("no schedule configured for weekday, using defaults", "weekday", d.Weekday().String())
	}
	return day, nil
}

func dayKind(day availability.Day) string {
	switch {
	case day.IsHoliday:
		return "holiday"
	case day.IsDayOff:
		return "day_off"
	default:
		return "open"
	}
}

// notifyAsync runs fn outside the request. The request context is detached so
// the notification survives the response being written.
func (s *service) notifyAsync(ctx context.Context, event string, b Booking, fn func(context.Context, Booking) error) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()

		if err := fn(ctx, b); err != nil {
			logger.Warn("booking notification failed", "event", event, "booking_id", b.ID, "error", err)
		}
	}()
}

func (s *service) CancelBooking(ctx context.Context, userID int, isAdmin bool, bookingID string) error {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if !isAdmin && booking.UserID != userID {
		return ErrForbidden
	}
	if booking.Status != StatusBooked {
		return ErrBookingNotFound
	}

	if err := s.repo.CancelBooking(ctx, bookingID); err != nil {
		return err
	}

	metrics.RecordBookingCancellation()
	logger.Info("booking cancelled", "booking_id", bookingID, "by_user", userID, "admin", isAdmin)

	booking.Status = StatusCancelled
	if s.notifier != nil {
		s.notifyAsync(ctx, "booking_cancelled", *booking, s.notifier.BookingCancelled)
	}
	return nil
}

func (s *service) ListMyBookings(ctx context.Context, userID int) ([]Booking, error) {
	return s.repo.GetUserBookings(ctx, userID)
}

func (s *service) ListBookingsByDate(ctx context.Context, date string) ([]BookingWithMember, error) {
	d, err := availability.ParseDate(date, s.loc)
	if err != nil {
		return nil, err
	}
	return s.repo.GetBookingsByDate(ctx, availability.DateKey(d))
}

func (s *service) MyCalendar(ctx context.Context, userID int) (string, error) {
	now := s.clock()
	bookings, err := s.repo.GetUpcomingForUser(ctx, userID, availability.DateKey(now))
	if err != nil {
		return "", err
	}
	return buildCalendar(bookings, s.loc, s.venue, now), nil
}
