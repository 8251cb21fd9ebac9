package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"ptslot/internal/availability"
)

// Holiday is a date on which the trainer takes no bookings at all.
type Holiday struct {
	Date      string    `db:"date" json:"date" example:"2025-06-06"`
	Label     string    `db:"label" json:"label" example:"Memorial Day"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type UpdateScheduleRequest struct {
	Days []availability.WeekdaySchedule `json:"days" binding:"required,min=1,max=7"`
}

type CreateHolidayRequest struct {
	Date  string `json:"date" binding:"required" example:"2025-06-06"`
	Label string `json:"label" binding:"max=100"`
}

// breakList maps the break_intervals JSONB column.
type breakList []availability.BreakInterval

func (b *breakList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*b = breakList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("break_intervals: unsupported column type")
	}
	return json.Unmarshal(raw, (*[]availability.BreakInterval)(b))
}

func (b breakList) Value() (driver.Value, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]availability.BreakInterval(b))
}

type settingsRow struct {
	DayOfWeek      int       `db:"day_of_week"`
	IsDayOff       bool      `db:"is_day_off"`
	StartTime      string    `db:"start_time"`
	EndTime        string    `db:"end_time"`
	BreakIntervals breakList `db:"break_intervals"`
}

func (r settingsRow) toSchedule() availability.WeekdaySchedule {
	breaks := []availability.BreakInterval(r.BreakIntervals)
	if breaks == nil {
		breaks = []availability.BreakInterval{}
	}
	return availability.WeekdaySchedule{
		DayOfWeek:      r.DayOfWeek,
		IsDayOff:       r.IsDayOff,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		BreakIntervals: breaks,
	}
}
