package scheduling

import (
	"strconv"
	"strings"
	"time"
)

// maxBookingMinutes caps how long a single booking may block the calendar.
const maxBookingMinutes = 366 * 24 * 60

// Booking is an existing interview occupying the calendar.
type Booking struct {
	ScheduledDate string
	// Duration in minutes. Nil means DefaultDuration.
	Duration *int
}

type busyInterval struct {
	start time.Time
	end   time.Time
}

func (b busyInterval) overlaps(start, end time.Time) bool {
	return start.Before(b.end) && end.After(b.start)
}

// Layouts carrying their own offset. RFC3339 also covers "Z" and fractional
// seconds as written by document stores.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
}

// Layouts without an offset are read as UTC.
var naiveLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseBookingDate reads an ISO-8601 style timestamp. Offsets written as
// +hh:mm, +hhmm or Z are honoured; timestamps without one are taken as UTC.
func ParseBookingDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// busySet converts bookings into busy intervals, collecting an anomaly for
// every booking it had to drop or repair.
func busySet(bookings []Booking) ([]busyInterval, []Anomaly) {
	busy := make([]busyInterval, 0, len(bookings))
	var anomalies []Anomaly

	for i, b := range bookings {
		if strings.TrimSpace(b.ScheduledDate) == "" {
			anomalies = append(anomalies, Anomaly{
				Kind:   AnomalyMissingBookingDate,
				Index:  i,
				Field:  "scheduledDate",
				Reason: "booking has no scheduled date and was ignored",
			})
			continue
		}

		start, ok := ParseBookingDate(b.ScheduledDate)
		if !ok {
			anomalies = append(anomalies, Anomaly{
				Kind:   AnomalyMalformedBookingDate,
				Index:  i,
				Field:  "scheduledDate",
				Value:  b.ScheduledDate,
				Reason: "unrecognised date format, booking ignored",
			})
			continue
		}

		minutes := DefaultDuration
		if b.Duration != nil {
			switch d := *b.Duration; {
			case d <= 0:
				anomalies = append(anomalies, Anomaly{
					Kind:   AnomalyInvalidBookingDuration,
					Index:  i,
					Field:  "duration",
					Value:  strconv.Itoa(d),
					Reason: "non-positive duration, default used",
				})
			case d > maxBookingMinutes:
				minutes = maxBookingMinutes
				anomalies = append(anomalies, Anomaly{
					Kind:   AnomalyInvalidBookingDuration,
					Index:  i,
					Field:  "duration",
					Value:  strconv.Itoa(d),
					Reason: "duration longer than a year, clamped to one year",
				})
			default:
				minutes = d
			}
		}

		busy = append(busy, busyInterval{
			start: start,
			end:   start.Add(time.Duration(minutes) * time.Minute),
		})
	}
	return busy, anomalies
}
