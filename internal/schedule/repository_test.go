package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"ptslot/internal/availability"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestGetWeekdaySchedules(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT day_of_week, is_day_off`).
		WillReturnRows(sqlmock.NewRows([]string{"day_of_week", "is_day_off", "start_time", "end_time", "break_intervals"}).
			AddRow(1, false, "09:00", "18:00", []byte(`[{"start":"12:00","end":"13:00"}]`)).
			AddRow(0, true, "09:00", "22:00", []byte(`[]`)).
			AddRow(2, false, "10:00", "20:00", nil))

	days, err := repo.GetWeekdaySchedules(context.Background())
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, []availability.BreakInterval{{Start: "12:00", End: "13:00"}}, days[0].BreakIntervals)
	assert.True(t, days[1].IsDayOff)
	assert.NotNil(t, days[2].BreakIntervals)
	assert.Empty(t, days[2].BreakIntervals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertWeekdaySchedules(t *testing.T) {
	repo, mock := newMockRepo(t)

	days := []availability.WeekdaySchedule{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00"},
		{DayOfWeek: 0, IsDayOff: true, StartTime: "09:00", EndTime: "22:00"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO trainer_settings`).
		WithArgs(1, false, "09:00", "18:00", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO trainer_settings`).
		WithArgs(0, true, "09:00", "22:00", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpsertWeekdaySchedules(context.Background(), days)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertWeekdaySchedules_RollsBackOnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO trainer_settings`).
		WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	err := repo.UpsertWeekdaySchedules(context.Background(), []availability.WeekdaySchedule{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00"},
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHolidays(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT to_char\(date, 'YYYY-MM-DD'\) FROM trainer_holidays`).
		WillReturnRows(sqlmock.NewRows([]string{"to_char"}).AddRow("2025-06-06").AddRow("2025-08-15"))

	set, err := repo.GetHolidays(context.Background())
	require.NoError(t, err)
	assert.True(t, set.Contains(time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)))
	assert.False(t, set.Contains(time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateHoliday(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO trainer_holidays`).
		WithArgs("2025-06-06", "Memorial Day").
		WillReturnRows(sqlmock.NewRows([]string{"date", "label", "created_at"}).
			AddRow("2025-06-06", "Memorial Day", now))

	h, err := repo.CreateHoliday(context.Background(), "2025-06-06", "Memorial Day")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-06", h.Date)
	assert.Equal(t, "Memorial Day", h.Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("2025-06-06").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.HolidayExists(context.Background(), "2025-06-06")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteHoliday(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`DELETE FROM trainer_holidays WHERE date = \$1`).
			WithArgs("2025-06-06").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteHoliday(context.Background(), "2025-06-06"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`DELETE FROM trainer_holidays WHERE date = \$1`).
			WithArgs("2025-06-07").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteHoliday(context.Background(), "2025-06-07")
		assert.ErrorIs(t, err, ErrHolidayNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
