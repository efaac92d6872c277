package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

// fixedClock returns a clock stuck at the given wall time in New York.
func fixedClock(t *testing.T, year int, month time.Month, day, hour int) func() time.Time {
	at := time.Date(year, month, day, hour, 0, 0, 0, newYork(t))
	return func() time.Time { return at }
}

func startsAt(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start.Format(TimeLayout))
	}
	return out
}

func TestSlots_ExcludesBusyInterval(t *testing.T) {
	// Sunday 5 May 2024; the search starts on Monday the 6th.
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 5, 12)))

	res := s.Slots([]Booking{{ScheduledDate: "2024-05-06T10:00:00-04:00", Duration: intPtr(60)}}, nil)

	require.Len(t, res.Slots, DefaultNumSlots)
	starts := startsAt(res.Slots)
	assert.Equal(t, "2024-05-06T09:00:00-04:00", starts[0])
	assert.Equal(t, "2024-05-06T11:00:00-04:00", starts[1])
	assert.NotContains(t, starts, "2024-05-06T09:30:00-04:00")
	assert.NotContains(t, starts, "2024-05-06T10:00:00-04:00")
	assert.NotContains(t, starts, "2024-05-06T10:30:00-04:00")
	assert.Equal(t, "America/New_York", res.Timezone)
	assert.Empty(t, res.Anomalies)
}

func TestSlots_UTCBookingWithFraction(t *testing.T) {
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 5, 12)))

	res := s.Slots([]Booking{{ScheduledDate: "2024-05-06T14:00:00.000Z"}}, nil)

	starts := startsAt(res.Slots)
	assert.Equal(t, []string{"2024-05-06T09:00:00-04:00", "2024-05-06T11:00:00-04:00"}, starts[:2])
}

func TestSlots_NumSlotsOnGrid(t *testing.T) {
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 5, 12)))

	res := s.Slots(nil, &Preferences{NumSlots: intPtr(3)})

	require.Len(t, res.Slots, 3)
	assert.Equal(t, []string{
		"2024-05-06T09:00:00-04:00",
		"2024-05-06T09:30:00-04:00",
		"2024-05-06T10:00:00-04:00",
	}, startsAt(res.Slots))

	for i, slot := range res.Slots {
		assert.Equal(t, 60*time.Minute, slot.End.Sub(slot.Start))
		assert.Equal(t, 60, slot.Duration)
		open := time.Date(slot.Start.Year(), slot.Start.Month(), slot.Start.Day(), 9, 0, 0, 0, slot.Start.Location())
		assert.Zero(t, slot.Start.Sub(open)%SlotStep)
		if i > 0 {
			assert.True(t, slot.Start.After(res.Slots[i-1].Start))
		}
	}
}

func TestSlots_StartsOnNextBusinessDay(t *testing.T) {
	// Friday afternoon; Saturday and Sunday are skipped.
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 10, 15)))

	res := s.Slots(nil, &Preferences{NumSlots: intPtr(1)})

	require.Len(t, res.Slots, 1)
	assert.Equal(t, "2024-05-13T09:00:00-04:00", res.Slots[0].Start.Format(TimeLayout))
}

func TestSlots_NeverToday(t *testing.T) {
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 6, 6)))

	res := s.Slots(nil, &Preferences{NumSlots: intPtr(1)})

	require.Len(t, res.Slots, 1)
	assert.Equal(t, "2024-05-07T09:00:00-04:00", res.Slots[0].Start.Format(TimeLayout))
}

func TestSlots_WindowExhausted(t *testing.T) {
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 5, 12)))

	res := s.Slots(nil, &Preferences{
		BusinessHours: &BusinessHours{StartHour: intPtr(9), EndHour: intPtr(10)},
		NumSlots:      intPtr(25),
	})

	require.Len(t, res.Slots, SearchBusinessDays)
	last := res.Slots[len(res.Slots)-1]
	assert.Equal(t, "2024-05-17T09:00:00-04:00", last.Start.Format(TimeLayout))
}

func TestSlots_DurationLongerThanWindow(t *testing.T) {
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 5, 12)))

	res := s.Slots(nil, &Preferences{Duration: intPtr(9 * 60)})

	assert.Empty(t, res.Slots)
	assert.NotNil(t, res.Slots)
}

func TestSlots_CustomDaysAndZone(t *testing.T) {
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 5, 12)))

	res := s.Slots(nil, &Preferences{
		BusinessHours: &BusinessHours{Days: []int{5}},
		Timezone:      strPtr("Asia/Kolkata"),
		Duration:      intPtr(45),
		NumSlots:      intPtr(2),
	})

	require.Len(t, res.Slots, 2)
	assert.Equal(t, "Asia/Kolkata", res.Timezone)
	assert.Equal(t, "2024-05-11T09:00:00+05:30", res.Slots[0].Start.Format(TimeLayout))
	assert.Equal(t, "2024-05-11T09:45:00+05:30", res.Slots[0].End.Format(TimeLayout))
	assert.Equal(t, "2024-05-11T09:30:00+05:30", res.Slots[1].Start.Format(TimeLayout))
	assert.Equal(t, 45, res.Slots[1].Duration)
}

func TestSlots_InvalidPreferencesFallBack(t *testing.T) {
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 5, 12)))

	res := s.Slots(nil, &Preferences{
		BusinessHours: &BusinessHours{StartHour: intPtr(-1), EndHour: intPtr(30), Days: []int{}},
		Timezone:      strPtr("Mars/Olympus"),
		Duration:      intPtr(0),
		NumSlots:      intPtr(-4),
	})

	assert.Equal(t, "America/New_York", res.Timezone)
	require.Len(t, res.Slots, DefaultNumSlots)
	assert.Equal(t, "2024-05-06T09:00:00-04:00", res.Slots[0].Start.Format(TimeLayout))

	fields := make([]string, 0, len(res.Anomalies))
	for _, a := range res.Anomalies {
		assert.Equal(t, AnomalyInvalidPreference, a.Kind)
		assert.Equal(t, NoIndex, a.Index)
		fields = append(fields, a.Field)
	}
	assert.ElementsMatch(t, []string{
		"businessHours.startHour",
		"businessHours.endHour",
		"businessHours.days",
		"timezone",
		"duration",
		"numSlots",
	}, fields)
}

func TestSlots_BadBookingsReported(t *testing.T) {
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 5, 12)))

	res := s.Slots([]Booking{
		{ScheduledDate: "next tuesday"},
		{ScheduledDate: ""},
		{ScheduledDate: "2024-05-06 13:00:00", Duration: intPtr(-5)},
	}, &Preferences{NumSlots: intPtr(20)})

	require.Len(t, res.Anomalies, 3)
	assert.Equal(t, Anomaly{
		Kind:   AnomalyMalformedBookingDate,
		Index:  0,
		Field:  "scheduledDate",
		Value:  "next tuesday",
		Reason: "unrecognised date format, booking ignored",
	}, res.Anomalies[0])
	assert.Equal(t, AnomalyMissingBookingDate, res.Anomalies[1].Kind)
	assert.Equal(t, 1, res.Anomalies[1].Index)
	assert.Equal(t, AnomalyInvalidBookingDuration, res.Anomalies[2].Kind)

	// 13:00 UTC is 09:00 in New York; the repaired booking still blocks an hour.
	starts := startsAt(res.Slots)
	assert.Equal(t, "2024-05-06T10:00:00-04:00", starts[0])
	assert.NotContains(t, starts, "2024-05-06T09:00:00-04:00")
	assert.NotContains(t, starts, "2024-05-06T09:30:00-04:00")
}

func TestSlots_Idempotent(t *testing.T) {
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 5, 12)))
	bookings := []Booking{{ScheduledDate: "2024-05-07T11:00:00-04:00"}}

	assert.Equal(t, s.Slots(bookings, nil), s.Slots(bookings, nil))
}

func TestWithDefaultTimezone(t *testing.T) {
	s := NewSolver(WithDefaultTimezone("Europe/Berlin"))
	assert.Equal(t, "Europe/Berlin", s.DefaultTimezone())

	s = NewSolver(WithDefaultTimezone("Nowhere/Special"))
	assert.Equal(t, DefaultTimezone, s.DefaultTimezone())
}

func TestSlots_HugeDurationYieldsNoSlots(t *testing.T) {
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 5, 12)))

	res := s.Slots(nil, &Preferences{Duration: intPtr(9007199254740962), NumSlots: intPtr(50)})

	assert.NotNil(t, res.Slots)
	assert.Empty(t, res.Slots)
	assert.Empty(t, res.Anomalies)

	res = s.Slots(nil, &Preferences{Duration: intPtr(MaxSlotMinutes + 1)})
	assert.Empty(t, res.Slots)
}

func TestSlots_FullDayDurationFits(t *testing.T) {
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 5, 12)))

	res := s.Slots(nil, &Preferences{
		BusinessHours: &BusinessHours{StartHour: intPtr(0), EndHour: intPtr(24)},
		Duration:      intPtr(MaxSlotMinutes),
		NumSlots:      intPtr(2),
	})

	require.Len(t, res.Slots, 2)
	assert.Equal(t, []string{"2024-05-06T00:00:00-04:00", "2024-05-07T00:00:00-04:00"}, startsAt(res.Slots))
	for _, slot := range res.Slots {
		assert.Equal(t, 24*time.Hour, slot.End.Sub(slot.Start))
	}
}

func TestSlots_HugeBookingDurationClamped(t *testing.T) {
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 5, 12)))

	res := s.Slots([]Booking{{ScheduledDate: "2024-05-06T09:00:00-04:00", Duration: intPtr(9007199254740962)}}, nil)

	assert.Empty(t, res.Slots)
	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, AnomalyInvalidBookingDuration, res.Anomalies[0].Kind)
	assert.Equal(t, 0, res.Anomalies[0].Index)
	assert.Equal(t, "9007199254740962", res.Anomalies[0].Value)
}

func TestSlots_LargeNumSlotsBoundedByWindow(t *testing.T) {
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 5, 12)))

	res := s.Slots(nil, &Preferences{NumSlots: intPtr(1_000_000_000)})

	// 15 one-hour starts between 09:00 and 16:00 on each of 10 business days.
	require.Len(t, res.Slots, 150)
	assert.Empty(t, res.Anomalies)
	for _, slot := range res.Slots {
		assert.False(t, slot.End.Before(slot.Start))
		assert.LessOrEqual(t, slot.End.Hour()*60+slot.End.Minute(), 17*60)
	}
}

func TestSlots_DuplicateDaysAccepted(t *testing.T) {
	s := NewSolver(WithClock(fixedClock(t, 2024, time.May, 5, 12)))

	res := s.Slots(nil, &Preferences{
		BusinessHours: &BusinessHours{Days: []int{0, 1, 2, 3, 4, 5, 6, 0, 0}},
		NumSlots:      intPtr(1000),
	})

	assert.Empty(t, res.Anomalies)
	require.Len(t, res.Slots, 150)
	starts := startsAt(res.Slots)
	assert.Equal(t, "2024-05-06T09:00:00-04:00", starts[0])
	assert.Equal(t, "2024-05-15T16:00:00-04:00", starts[len(starts)-1])
}
