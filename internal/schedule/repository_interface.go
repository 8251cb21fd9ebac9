package schedule

import (
	"context"

	"ptslot/internal/availability"
)

type Repository interface {
	GetWeekdaySchedules(ctx context.Context) ([]availability.WeekdaySchedule, error)
	UpsertWeekdaySchedules(ctx context.Context, days []availability.WeekdaySchedule) error
	GetHolidays(ctx context.Context) (availability.HolidaySet, error)
	ListHolidays(ctx context.Context) ([]Holiday, error)
	HolidayExists(ctx context.Context, date string) (bool, error)
	CreateHoliday(ctx context.Context, date, label string) (*Holiday, error)
	DeleteHoliday(ctx context.Context, date string) error
}
