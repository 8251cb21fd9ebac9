package booking

import (
	"context"
	"sync"

	"ptslot/internal/availability"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateBooking(ctx context.Context, userID int, date, time string) (*Booking, error) {
	args := m.Called(ctx, userID, date, time)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) GetBookingTimesForDate(ctx context.Context, date string) ([]string, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) GetBookingByID(ctx context.Context, id string) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) CancelBooking(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockRepository) GetUpcomingForUser(ctx context.Context, userID int, fromDate string) ([]Booking, error) {
	args := m.Called(ctx, userID, fromDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockRepository) GetBookingsByDate(ctx context.Context, date string) ([]BookingWithMember, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingWithMember), args.Error(1)
}

func (m *MockRepository) GetDailyStats(ctx context.Context, from, to string) ([]DailyStats, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DailyStats), args.Error(1)
}

func (m *MockRepository) GetMemberStats(ctx context.Context, from, to string) ([]MemberStats, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]MemberStats), args.Error(1)
}

type MockSettings struct {
	mock.Mock
}

func (m *MockSettings) GetWeekdaySchedules(ctx context.Context) ([]availability.WeekdaySchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.WeekdaySchedule), args.Error(1)
}

func (m *MockSettings) GetHolidays(ctx context.Context) (availability.HolidaySet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(availability.HolidaySet), args.Error(1)
}

// recordingNotifier hands every event to a buffered channel so tests can wait
// for the asynchronous delivery.
type recordingNotifier struct {
	confirmed chan Booking
	cancelled chan Booking
	err       error
}

func newRecordingNotifier(err error) *recordingNotifier {
	return &recordingNotifier{
		confirmed: make(chan Booking, 4),
		cancelled: make(chan Booking, 4),
		err:       err,
	}
}

func (n *recordingNotifier) BookingConfirmed(_ context.Context, b Booking) error {
	n.confirmed <- b
	return n.err
}

func (n *recordingNotifier) BookingCancelled(_ context.Context, b Booking) error {
	n.cancelled <- b
	return n.err
}

// memoryRepository enforces the one-live-booking-per-slot rule the way the
// partial unique index does.
type memoryRepository struct {
	mu       sync.Mutex
	bookings []Booking
	// readers, when set, holds every reader until all expected readers arrive.
	readers *sync.WaitGroup
}

func (r *memoryRepository) CreateBooking(_ context.Context, userID int, date, time string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.Date == date && b.Time == time && b.Status == StatusBooked {
			return nil, ErrSlotTaken
		}
	}
	b := Booking{ID: date + "T" + time, UserID: userID, Date: date, Time: time, Status: StatusBooked}
	r.bookings = append(r.bookings, b)
	return &b, nil
}

func (r *memoryRepository) GetBookingTimesForDate(_ context.Context, date string) ([]string, error) {
	r.mu.Lock()
	times := []string{}
	for _, b := range r.bookings {
		if b.Date == date && b.Status == StatusBooked {
			times = append(times, b.Time)
		}
	}
	r.mu.Unlock()

	// Every reader takes its snapshot before any of them may insert.
	if r.readers != nil {
		r.readers.Done()
		r.readers.Wait()
	}
	return times, nil
}

func (r *memoryRepository) GetBookingByID(context.Context, string) (*Booking, error) {
	return nil, ErrBookingNotFound
}

func (r *memoryRepository) CancelBooking(context.Context, string) error {
	return ErrBookingNotFound
}

func (r *memoryRepository) GetUserBookings(context.Context, int) ([]Booking, error) {
	return nil, nil
}

func (r *memoryRepository) GetUpcomingForUser(context.Context, int, string) ([]Booking, error) {
	return nil, nil
}

func (r *memoryRepository) GetBookingsByDate(context.Context, string) ([]BookingWithMember, error) {
	return nil, nil
}

func (r *memoryRepository) GetDailyStats(context.Context, string, string) ([]DailyStats, error) {
	return nil, nil
}

func (r *memoryRepository) GetMemberStats(context.Context, string, string) ([]MemberStats, error) {
	return nil, nil
}
