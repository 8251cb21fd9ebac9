package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seoul = time.FixedZone("KST", 9*60*60)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s, seoul)
	require.NoError(t, err)
	return d
}

func at(t *testing.T, day, clock string) time.Time {
	t.Helper()
	d := date(t, day)
	c := MustParseClock(clock)
	return d.Add(time.Duration(c) * time.Minute)
}

func wednesdayNineToSix() []WeekdaySchedule {
	return []WeekdaySchedule{{
		DayOfWeek:      int(time.Wednesday),
		StartTime:      "09:00",
		EndTime:        "18:00",
		BreakIntervals: []BreakInterval{{Start: "12:00", End: "13:00"}},
	}}
}

func times(states []SlotState) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, s.Time)
	}
	return out
}

func TestGrid(t *testing.T) {
	grid := Grid()

	require.Len(t, grid, 18)
	assert.Equal(t, "06:00", grid[0])
	assert.Equal(t, "23:00", grid[17])
	for i := 1; i < len(grid); i++ {
		assert.Less(t, int(MustParseClock(grid[i-1])), int(MustParseClock(grid[i])))
	}
	for _, s := range grid {
		assert.True(t, OnGrid(MustParseClock(s)), s)
	}
	for _, s := range []string{"05:00", "10:30", "14:01", "23:30"} {
		assert.False(t, OnGrid(MustParseClock(s)), s)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09:00", "09:00", false},
		{"9:05", "09:05", false},
		{"14:00:00", "14:00", false},
		{"23:59", "23:59", false},
		{"24:00", "", true},
		{"12:5", "", true},
		{"noon", "", true},
		{"", "", true},
		{"12:00:61", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeTime(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-11", seoul)
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, d.Weekday())
	assert.Equal(t, "2025-06-11", DateKey(d))

	_, err = ParseDate("11/06/2025", seoul)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestClassify_DefaultsWhenUnconfigured(t *testing.T) {
	sunday := Classify(date(t, "2025-06-08"), nil, nil)
	assert.True(t, sunday.Defaulted)
	assert.True(t, sunday.IsDayOff)

	monday := Classify(date(t, "2025-06-09"), nil, nil)
	assert.True(t, monday.Defaulted)
	assert.False(t, monday.IsDayOff)
	assert.Equal(t, "09:00", monday.Start.String())
	assert.Equal(t, "22:00", monday.End.String())
	assert.False(t, monday.InBreak(MustParseClock("12:00")))
}

func TestClassify_HolidayOverridesWorkingDay(t *testing.T) {
	day := Classify(date(t, "2025-06-11"), wednesdayNineToSix(), NewHolidaySet("2025-06-11"))

	assert.True(t, day.IsHoliday)
	assert.False(t, day.IsDayOff)
	assert.True(t, day.Closed())
	assert.Equal(t, ReasonHoliday, Check(day, MustParseClock("10:00"), nil, at(t, "2025-06-09", "10:00")))
}

func TestClassify_IgnoresMalformedBreaks(t *testing.T) {
	schedules := []WeekdaySchedule{{
		DayOfWeek: int(time.Wednesday),
		StartTime: "bogus",
		EndTime:   "18:00",
		BreakIntervals: []BreakInterval{
			{Start: "12:00", End: "nope"},
			{Start: "15:00", End: "14:00"},
			{Start: "16:00", End: "17:00"},
		},
	}}

	day := Classify(date(t, "2025-06-11"), schedules, nil)

	assert.Equal(t, "09:00", day.Start.String())
	assert.False(t, day.InBreak(MustParseClock("12:00")))
	assert.False(t, day.InBreak(MustParseClock("14:30")))
	assert.True(t, day.InBreak(MustParseClock("16:00")))
}

func TestCheck_ReasonOrder(t *testing.T) {
	now := at(t, "2025-06-11", "15:30")
	booked := NewBookedSet("10:00", "15:00")

	tests := []struct {
		name     string
		day      Day
		slot     string
		expected Reason
	}{
		{"holiday wins over everything", Classify(date(t, "2025-06-11"), wednesdayNineToSix(), NewHolidaySet("2025-06-11")), "12:00", ReasonHoliday},
		{"day off", Classify(date(t, "2025-06-11"), []WeekdaySchedule{{DayOfWeek: 3, IsDayOff: true, StartTime: "09:00", EndTime: "18:00"}}, nil), "10:00", ReasonDayOff},
		{"before start", Classify(date(t, "2025-06-11"), wednesdayNineToSix(), nil), "08:00", ReasonOutsideHours},
		{"end is exclusive", Classify(date(t, "2025-06-11"), wednesdayNineToSix(), nil), "18:00", ReasonOutsideHours},
		{"inside break", Classify(date(t, "2025-06-11"), wednesdayNineToSix(), nil), "12:00", ReasonBreak},
		{"booked and past reports booked", Classify(date(t, "2025-06-11"), wednesdayNineToSix(), nil), "10:00", ReasonBooked},
		{"current hour is past", Classify(date(t, "2025-06-11"), wednesdayNineToSix(), nil), "14:00", ReasonPast},
		{"later today", Classify(date(t, "2025-06-11"), wednesdayNineToSix(), nil), "16:00", Available},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Check(tt.day, MustParseClock(tt.slot), booked, now))
		})
	}
}

func TestCheck_BreakEndIsBookable(t *testing.T) {
	day := Classify(date(t, "2025-06-11"), wednesdayNineToSix(), nil)
	now := at(t, "2025-06-09", "09:00")

	assert.Equal(t, ReasonBreak, Check(day, MustParseClock("12:00"), nil, now))
	assert.Equal(t, ReasonBreak, Check(day, MustParseClock("12:59"), nil, now))
	assert.Equal(t, Available, Check(day, MustParseClock("13:00"), nil, now))
}

func TestCheck_PastBoundary(t *testing.T) {
	day := Classify(date(t, "2025-06-11"), wednesdayNineToSix(), nil)
	slot := MustParseClock("11:00")

	assert.Equal(t, Available, Check(day, slot, nil, at(t, "2025-06-11", "10:59")))
	assert.Equal(t, ReasonPast, Check(day, slot, nil, at(t, "2025-06-11", "11:00")))
	assert.Equal(t, ReasonPast, Check(day, slot, nil, at(t, "2025-06-11", "11:01")))
	// Past only applies to today.
	assert.Equal(t, Available, Check(day, slot, nil, at(t, "2025-06-10", "23:59")))
}

func TestBookedSet_NormalizesTimes(t *testing.T) {
	set := NewBookedSet("14:00:00", "9:00")

	assert.True(t, set.Contains(MustParseClock("14:00")))
	assert.True(t, set.Contains(MustParseClock("09:00")))
	assert.False(t, set.Contains(MustParseClock("10:00")))
}

func TestSlots_ScenarioA(t *testing.T) {
	day := Classify(date(t, "2025-06-11"), wednesdayNineToSix(), nil)

	states := Slots(day, NewBookedSet(), at(t, "2025-06-09", "10:00"))

	assert.Equal(t, []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00"}, times(states))
	for _, s := range states {
		assert.True(t, s.IsAvailable, s.Time)
		assert.False(t, s.IsBooked, s.Time)
		assert.False(t, s.IsPast, s.Time)
	}
}

func TestSlots_ScenarioB(t *testing.T) {
	day := Classify(date(t, "2025-06-11"), wednesdayNineToSix(), nil)

	states := Slots(day, NewBookedSet("14:00"), at(t, "2025-06-09", "10:00"))

	require.Len(t, states, 8)
	for _, s := range states {
		if s.Time == "14:00" {
			assert.False(t, s.IsAvailable)
			assert.True(t, s.IsBooked)
			continue
		}
		assert.True(t, s.IsAvailable, s.Time)
		assert.False(t, s.IsBooked, s.Time)
	}
}

func TestSlots_ScenarioC(t *testing.T) {
	schedules := []WeekdaySchedule{{DayOfWeek: int(time.Wednesday), StartTime: "09:00", EndTime: "18:00"}}
	day := Classify(date(t, "2025-06-11"), schedules, nil)

	states := Slots(day, nil, at(t, "2025-06-11", "10:30"))

	require.Len(t, states, 9)
	for _, s := range states {
		past := s.Time == "09:00" || s.Time == "10:00"
		assert.Equal(t, past, s.IsPast, s.Time)
		assert.Equal(t, !past, s.IsAvailable, s.Time)
	}
}

func TestSlots_ClosedDaysAreEmpty(t *testing.T) {
	now := at(t, "2025-06-09", "10:00")

	holiday := Classify(date(t, "2025-06-11"), wednesdayNineToSix(), NewHolidaySet("2025-06-11"))
	assert.Empty(t, Slots(holiday, nil, now))
	assert.NotNil(t, Slots(holiday, nil, now))

	dayOff := []WeekdaySchedule{{DayOfWeek: int(time.Wednesday), IsDayOff: true, StartTime: "09:00", EndTime: "18:00"}}
	for _, d := range []string{"2025-06-11", "2025-06-18", "2025-06-25"} {
		assert.Empty(t, Slots(Classify(date(t, d), dayOff, nil), nil, now), d)
	}
}

func TestSlots_Idempotent(t *testing.T) {
	day := Classify(date(t, "2025-06-11"), wednesdayNineToSix(), nil)
	booked := NewBookedSet("10:00")
	now := at(t, "2025-06-11", "09:30")

	assert.Equal(t, Slots(day, booked, now), Slots(day, booked, now))
}

func TestReason_String(t *testing.T) {
	assert.Equal(t, "available", Available.String())
	assert.Equal(t, "already_booked", ReasonBooked.String())
	assert.Equal(t, "unknown", Reason(42).String())
}
