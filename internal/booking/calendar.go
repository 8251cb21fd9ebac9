package booking

import (
	"time"

	ics "github.com/arran4/golang-ical"
)

const sessionLength = time.Hour

// buildCalendar renders bookings as an iCalendar feed of one-hour events.
// Rows whose date or time do not parse are skipped.
func buildCalendar(bookings []Booking, loc *time.Location, venue string, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//ptslot//sessions//EN")
	cal.SetXWRCalName("PT sessions")
	cal.SetXWRTimezone(loc.String())

	for _, b := range bookings {
		start, err := time.ParseInLocation("2006-01-02 15:04", b.Date+" "+b.Time, loc)
		if err != nil {
			continue
		}

		event := cal.AddEvent(b.ID + "@ptslot")
		event.SetDtStampTime(now)
		if !b.CreatedAt.IsZero() {
			event.SetCreatedTime(b.CreatedAt)
		}
		event.SetStartAt(start)
		event.SetEndAt(start.Add(sessionLength))
		event.SetSummary("PT session")
		event.SetStatus(ics.ObjectStatusConfirmed)
		if venue != "" {
			event.SetLocation(venue)
		}
	}

	return cal.Serialize()
}
