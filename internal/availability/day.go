package availability

import "time"

const (
	DefaultStartTime = "09:00"
	DefaultEndTime   = "22:00"
)

// BreakInterval is a half-open [Start, End) pause inside working hours.
type BreakInterval struct {
	Start string `json:"start" validate:"required,hhmm" example:"12:00"`
	End   string `json:"end" validate:"required,hhmm" example:"13:00"`
}

// WeekdaySchedule is the trainer's configuration for one weekday
// (0 = Sunday ... 6 = Saturday).
type WeekdaySchedule struct {
	DayOfWeek      int             `json:"day_of_week" validate:"gte=0,lte=6" example:"3"`
	IsDayOff       bool            `json:"is_day_off"`
	StartTime      string          `json:"start_time" validate:"required,hhmm" example:"09:00"`
	EndTime        string          `json:"end_time" validate:"required,hhmm" example:"18:00"`
	BreakIntervals []BreakInterval `json:"break_intervals" validate:"dive"`
}

// DefaultSchedule is used for a weekday the trainer has not configured yet.
func DefaultSchedule(weekday time.Weekday) WeekdaySchedule {
	return WeekdaySchedule{
		DayOfWeek:      int(weekday),
		IsDayOff:       weekday == time.Sunday,
		StartTime:      DefaultStartTime,
		EndTime:        DefaultEndTime,
		BreakIntervals: []BreakInterval{},
	}
}

// HolidaySet holds holiday dates keyed by YYYY-MM-DD.
type HolidaySet map[string]struct{}

func NewHolidaySet(dates ...string) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

func (s HolidaySet) Contains(date time.Time) bool {
	_, ok := s[DateKey(date)]
	return ok
}

type interval struct {
	start, end ClockTime
}

func (iv interval) contains(t ClockTime) bool {
	return t >= iv.start && t < iv.end
}

// Day is the effective schedule of one concrete date.
type Day struct {
	Date      time.Time
	IsHoliday bool
	IsDayOff  bool
	Start     ClockTime
	End       ClockTime
	// Defaulted is set when no schedule row existed for the weekday.
	Defaulted bool

	breaks []interval
}

// Classify resolves the effective schedule for date. Holidays override the
// weekday schedule; an unconfigured weekday falls back to DefaultSchedule.
// Unparseable working hours fall back to the defaults and malformed breaks
// are ignored, so classification never fails.
func Classify(date time.Time, schedules []WeekdaySchedule, holidays HolidaySet) Day {
	weekday := date.Weekday()

	sched, found := findSchedule(schedules, weekday)
	if !found {
		sched = DefaultSchedule(weekday)
	}

	day := Day{
		Date:      date,
		IsHoliday: holidays.Contains(date),
		IsDayOff:  sched.IsDayOff,
		Start:     parseOr(sched.StartTime, DefaultStartTime),
		End:       parseOr(sched.EndTime, DefaultEndTime),
		Defaulted: !found,
	}

	for _, b := range sched.BreakIntervals {
		start, err := ParseClock(b.Start)
		if err != nil {
			continue
		}
		end, err := ParseClock(b.End)
		if err != nil || end <= start {
			continue
		}
		day.breaks = append(day.breaks, interval{start: start, end: end})
	}

	return day
}

// Closed reports whether nothing can be booked on the day at all.
func (d Day) Closed() bool {
	return d.IsHoliday || d.IsDayOff
}

// InWorkingHours reports start <= t < end.
func (d Day) InWorkingHours(t ClockTime) bool {
	return interval{start: d.Start, end: d.End}.contains(t)
}

// InBreak reports whether t falls inside any break. Overlapping breaks are
// redundant, not an error.
func (d Day) InBreak(t ClockTime) bool {
	for _, b := range d.breaks {
		if b.contains(t) {
			return true
		}
	}
	return false
}

func findSchedule(schedules []WeekdaySchedule, weekday time.Weekday) (WeekdaySchedule, bool) {
	for _, s := range schedules {
		if s.DayOfWeek == int(weekday) {
			return s, true
		}
	}
	return WeekdaySchedule{}, false
}

func parseOr(s, fallback string) ClockTime {
	if c, err := ParseClock(s); err == nil {
		return c
	}
	return MustParseClock(fallback)
}
