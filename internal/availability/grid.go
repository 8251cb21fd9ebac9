package availability

const (
	gridFirstHour = 6
	gridLastHour  = 23
)

// Grid returns the fixed universe of candidate slot times: every whole hour
// from 06:00 to 23:00 inclusive. Working hours filter this list but never
// change its granularity.
func Grid() []string {
	slots := make([]string, 0, gridLastHour-gridFirstHour+1)
	for h := gridFirstHour; h <= gridLastHour; h++ {
		slots = append(slots, ClockTime(h*60).String())
	}
	return slots
}

// OnGrid reports whether t is one of the Grid times. Sessions last an hour,
// so anything between two grid times would overlap a neighbour.
func OnGrid(t ClockTime) bool {
	return t%60 == 0 && t >= gridFirstHour*60 && t <= gridLastHour*60
}
