package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseBookingDate(t *testing.T) {
	want := time.Date(2024, time.May, 6, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"zulu", "2024-05-06T14:00:00Z", true},
		{"zulu with millis", "2024-05-06T14:00:00.000Z", true},
		{"colon offset", "2024-05-06T10:00:00-04:00", true},
		{"compact offset", "2024-05-06T10:00:00-0400", true},
		{"space separated utc", "2024-05-06 14:00:00", true},
		{"naive iso", "2024-05-06T14:00:00", true},
		{"naive minutes", "2024-05-06T14:00", true},
		{"surrounding space", "  2024-05-06T14:00:00Z ", true},
		{"empty", "", false},
		{"garbage", "tomorrow at ten", false},
		{"bad month", "2024-13-06T14:00:00Z", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseBookingDate(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, want.Equal(got), "got %s", got)
			}
		})
	}
}

func TestParseBookingDate_DateOnly(t *testing.T) {
	got, ok := ParseBookingDate("2024-05-06")
	assert.True(t, ok)
	assert.True(t, time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC).Equal(got))
}

func TestBusyIntervalOverlapIsHalfOpen(t *testing.T) {
	start := time.Date(2024, time.May, 6, 10, 0, 0, 0, time.UTC)
	b := busyInterval{start: start, end: start.Add(time.Hour)}

	assert.False(t, b.overlaps(start.Add(-time.Hour), start))
	assert.False(t, b.overlaps(start.Add(time.Hour), start.Add(2*time.Hour)))
	assert.True(t, b.overlaps(start.Add(-30*time.Minute), start.Add(30*time.Minute)))
}
