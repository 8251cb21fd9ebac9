package availability

import "time"

// Reason says why a slot cannot be booked. Available means it can.
type Reason int

const (
	Available Reason = iota
	ReasonHoliday
	ReasonDayOff
	ReasonOutsideHours
	ReasonBreak
	ReasonBooked
	ReasonPast
	ReasonOffGrid
)

func (r Reason) String() string {
	switch r {
	case Available:
		return "available"
	case ReasonHoliday:
		return "holiday"
	case ReasonDayOff:
		return "day_off"
	case ReasonOutsideHours:
		return "outside_working_hours"
	case ReasonBreak:
		return "break"
	case ReasonBooked:
		return "already_booked"
	case ReasonPast:
		return "past"
	case ReasonOffGrid:
		return "off_grid"
	default:
		return "unknown"
	}
}

// BookedSet holds the normalized HH:MM times already booked on one date.
type BookedSet map[string]struct{}

// NewBookedSet normalizes each time; values that do not parse are kept
// verbatim so they still match an identical string.
func NewBookedSet(times ...string) BookedSet {
	set := make(BookedSet, len(times))
	for _, t := range times {
		if n, err := NormalizeTime(t); err == nil {
			t = n
		}
		set[t] = struct{}{}
	}
	return set
}

func (s BookedSet) Contains(t ClockTime) bool {
	_, ok := s[t.String()]
	return ok
}

// IsPast reports whether slot t on date has already started relative to now.
// Only today's slots can be past; a slot is past from its first minute on.
// now must be expressed in the trainer's location.
func IsPast(date time.Time, t ClockTime, now time.Time) bool {
	if DateKey(date) != DateKey(now) {
		return false
	}
	return t <= ClockOf(now)
}

// Check evaluates every booking rule for slot t on day and returns the first
// one that fails, in a fixed order. The order only affects which reason is
// reported, never whether the slot is bookable.
func Check(day Day, t ClockTime, booked BookedSet, now time.Time) Reason {
	switch {
	case day.IsHoliday:
		return ReasonHoliday
	case day.IsDayOff:
		return ReasonDayOff
	case !day.InWorkingHours(t):
		return ReasonOutsideHours
	case day.InBreak(t):
		return ReasonBreak
	case booked.Contains(t):
		return ReasonBooked
	case IsPast(day.Date, t, now):
		return ReasonPast
	}
	return Available
}
