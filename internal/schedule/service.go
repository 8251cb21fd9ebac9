package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ptslot/internal/availability"
	"ptslot/internal/db"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidSchedule = errors.New("invalid schedule")
	ErrHolidayExists   = errors.New("holiday already exists")
)

type Service interface {
	// GetWeek returns all seven weekdays, filling unconfigured ones with defaults.
	GetWeek(ctx context.Context) ([]availability.WeekdaySchedule, error)
	UpdateWeek(ctx context.Context, req UpdateScheduleRequest) ([]availability.WeekdaySchedule, error)
	ListHolidays(ctx context.Context) ([]Holiday, error)
	AddHoliday(ctx context.Context, req CreateHolidayRequest) (*Holiday, error)
	RemoveHoliday(ctx context.Context, date string) error
}

type service struct {
	repo     Repository
	validate *validator.Validate
	loc      *time.Location
}

func NewService(repo Repository, loc *time.Location) Service {
	return &service{
		repo:     repo,
		validate: newValidator(),
		loc:      loc,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := availability.ParseClock(fl.Field().String())
		return err == nil
	})
	return v
}

func (s *service) GetWeek(ctx context.Context) ([]availability.WeekdaySchedule, error) {
	rows, err := s.repo.GetWeekdaySchedules(ctx)
	if err != nil {
		return nil, err
	}

	byDay := make(map[int]availability.WeekdaySchedule, len(rows))
	for _, r := range rows {
		byDay[r.DayOfWeek] = r
	}

	week := make([]availability.WeekdaySchedule, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if r, ok := byDay[int(d)]; ok {
			week = append(week, r)
			continue
		}
		week = append(week, availability.DefaultSchedule(d))
	}
	return week, nil
}

func (s *service) UpdateWeek(ctx context.Context, req UpdateScheduleRequest) ([]availability.WeekdaySchedule, error) {
	seen := make(map[int]bool, len(req.Days))
	days := make([]availability.WeekdaySchedule, 0, len(req.Days))

	for _, d := range req.Days {
		if err := s.validate.Struct(d); err != nil {
			return nil, fmt.Errorf("%w: day %d: %v", ErrInvalidSchedule, d.DayOfWeek, err)
		}
		if seen[d.DayOfWeek] {
			return nil, fmt.Errorf("%w: day %d listed twice", ErrInvalidSchedule, d.DayOfWeek)
		}
		seen[d.DayOfWeek] = true

		normalized, err := normalizeDay(d)
		if err != nil {
			return nil, err
		}
		days = append(days, normalized)
	}

	if err := s.repo.UpsertWeekdaySchedules(ctx, days); err != nil {
		return nil, err
	}
	return s.GetWeek(ctx)
}

// normalizeDay rewrites every time as HH:MM and enforces start < end for
// working hours (unless the day is off) and for each break. Overlapping
// breaks are accepted as they are merely redundant.
func normalizeDay(d availability.WeekdaySchedule) (availability.WeekdaySchedule, error) {
	start := availability.MustParseClock(d.StartTime)
	end := availability.MustParseClock(d.EndTime)
	if !d.IsDayOff && start >= end {
		return d, fmt.Errorf("%w: day %d: start_time must be before end_time", ErrInvalidSchedule, d.DayOfWeek)
	}

	out := availability.WeekdaySchedule{
		DayOfWeek:      d.DayOfWeek,
		IsDayOff:       d.IsDayOff,
		StartTime:      start.String(),
		EndTime:        end.String(),
		BreakIntervals: make([]availability.BreakInterval, 0, len(d.BreakIntervals)),
	}
	for _, b := range d.BreakIntervals {
		bs := availability.MustParseClock(b.Start)
		be := availability.MustParseClock(b.End)
		if bs >= be {
			return d, fmt.Errorf("%w: day %d: break %s-%s must start before it ends", ErrInvalidSchedule, d.DayOfWeek, b.Start, b.End)
		}
		out.BreakIntervals = append(out.BreakIntervals, availability.BreakInterval{Start: bs.String(), End: be.String()})
	}
	return out, nil
}

func (s *service) ListHolidays(ctx context.Context) ([]Holiday, error) {
	return s.repo.ListHolidays(ctx)
}

func (s *service) AddHoliday(ctx context.Context, req CreateHolidayRequest) (*Holiday, error) {
	d, err := availability.ParseDate(req.Date, s.loc)
	if err != nil {
		return nil, err
	}
	key := availability.DateKey(d)

	exists, err := s.repo.HolidayExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrHolidayExists
	}

	label := req.Label
	if label == "" {
		label = key
	}

	h, err := s.repo.CreateHoliday(ctx, key, label)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrHolidayExists
		}
		return nil, err
	}
	return h, nil
}

func (s *service) RemoveHoliday(ctx context.Context, date string) error {
	d, err := availability.ParseDate(date, s.loc)
	if err != nil {
		return err
	}
	return s.repo.DeleteHoliday(ctx, availability.DateKey(d))
}
