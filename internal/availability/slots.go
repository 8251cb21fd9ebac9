package availability

import "time"

// SlotState is one listed slot. The three flags are independent so a client
// can render past and booked slots differently; only IsAvailable gates booking.
type SlotState struct {
	Time        string `json:"time" example:"14:00"`
	IsAvailable bool   `json:"is_available"`
	IsBooked    bool   `json:"is_booked"`
	IsPast      bool   `json:"is_past"`
}

// Slots lists the grid slots that fall inside the day's working hours and
// outside its breaks, with their current state. A holiday or day off yields
// an empty, non-nil list.
func Slots(day Day, booked BookedSet, now time.Time) []SlotState {
	states := []SlotState{}
	if day.Closed() {
		return states
	}

	for _, raw := range Grid() {
		t := MustParseClock(raw)
		if !day.InWorkingHours(t) || day.InBreak(t) {
			continue
		}
		states = append(states, SlotState{
			Time:        raw,
			IsAvailable: Check(day, t, booked, now) == Available,
			IsBooked:    booked.Contains(t),
			IsPast:      IsPast(day.Date, t, now),
		})
	}

	return states
}
