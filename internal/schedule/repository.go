package schedule

import (
	"context"
	"errors"

	"ptslot/internal/availability"
	"ptslot/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrHolidayNotFound = errors.New("holiday not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetWeekdaySchedules(ctx context.Context) ([]availability.WeekdaySchedule, error) {
	query := `
		SELECT day_of_week, is_day_off,
		       to_char(start_time, 'HH24:MI') AS start_time,
		       to_char(end_time, 'HH24:MI') AS end_time,
		       break_intervals
		FROM trainer_settings
		ORDER BY day_of_week
	`

	var rows []settingsRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	out := make([]availability.WeekdaySchedule, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toSchedule())
	}
	return out, nil
}

func (r *repository) UpsertWeekdaySchedules(ctx context.Context, days []availability.WeekdaySchedule) error {
	query := `
		INSERT INTO trainer_settings (day_of_week, is_day_off, start_time, end_time, break_intervals, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (day_of_week) DO UPDATE
		SET is_day_off = EXCLUDED.is_day_off,
		    start_time = EXCLUDED.start_time,
		    end_time = EXCLUDED.end_time,
		    break_intervals = EXCLUDED.break_intervals,
		    updated_at = NOW()
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, d := range days {
		if _, err := tx.ExecContext(ctx, query,
			d.DayOfWeek, d.IsDayOff, d.StartTime, d.EndTime, breakList(d.BreakIntervals),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) GetHolidays(ctx context.Context) (availability.HolidaySet, error) {
	var dates []string
	if err := r.db.SelectContext(ctx, &dates, `SELECT to_char(date, 'YYYY-MM-DD') FROM trainer_holidays`); err != nil {
		return nil, err
	}
	return availability.NewHolidaySet(dates...), nil
}

func (r *repository) ListHolidays(ctx context.Context) ([]Holiday, error) {
	query := `
		SELECT to_char(date, 'YYYY-MM-DD') AS date, label, created_at
		FROM trainer_holidays
		ORDER BY date DESC
	`

	holidays := []Holiday{}
	if err := r.db.SelectContext(ctx, &holidays, query); err != nil {
		return nil, err
	}
	return holidays, nil
}

func (r *repository) HolidayExists(ctx context.Context, date string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM trainer_holidays WHERE date = $1)`, date)
}

func (r *repository) CreateHoliday(ctx context.Context, date, label string) (*Holiday, error) {
	query := `
		INSERT INTO trainer_holidays (date, label)
		VALUES ($1, $2)
		RETURNING to_char(date, 'YYYY-MM-DD') AS date, label, created_at
	`

	var h Holiday
	if err := r.db.GetContext(ctx, &h, query, date, label); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) DeleteHoliday(ctx context.Context, date string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trainer_holidays WHERE date = $1`, date)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrHolidayNotFound
	}
	return nil
}
