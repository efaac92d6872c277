package scheduling

import (
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTimezone  = "America/New_York"
	DefaultStartHour = 9
	DefaultEndHour   = 17
	DefaultDuration  = 60
	DefaultNumSlots  = 10

	// MaxSlotMinutes is the longest interview any business window can hold.
	// Longer durations are accepted but produce no slots.
	MaxSlotMinutes = 24 * 60
)

// DefaultDays is Monday to Friday; days count from 0 = Monday.
var DefaultDays = []int{0, 1, 2, 3, 4}

type BusinessHours struct {
	StartHour *int
	EndHour   *int
	Days      []int
}

// Preferences as sent by the caller. Nil fields take their defaults.
type Preferences struct {
	BusinessHours *BusinessHours
	Timezone      *string
	Duration      *int
	NumSlots      *int
}

type resolved struct {
	startHour int
	endHour   int
	days      map[time.Weekday]struct{}
	loc       *time.Location
	duration  int
	numSlots  int
}

func (r resolved) isBusinessDay(t time.Time) bool {
	_, ok := r.days[t.Weekday()]
	return ok
}

// weekday maps the Monday-first day number onto time.Weekday.
func weekday(day int) time.Weekday {
	return time.Weekday((day + 1) % 7)
}

func preferenceAnomaly(field, value, reason string) Anomaly {
	return Anomaly{
		Kind:   AnomalyInvalidPreference,
		Index:  NoIndex,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

func (s *Solver) resolve(p *Preferences) (resolved, []Anomaly) {
	r := resolved{
		startHour: DefaultStartHour,
		endHour:   DefaultEndHour,
		loc:       s.defaultLoc,
		duration:  DefaultDuration,
		numSlots:  DefaultNumSlots,
	}
	days := DefaultDays
	var anomalies []Anomaly

	if p == nil {
		r.days = daySet(days)
		return r, anomalies
	}

	if bh := p.BusinessHours; bh != nil {
		if bh.StartHour != nil {
			if *bh.StartHour >= 0 && *bh.StartHour <= 23 {
				r.startHour = *bh.StartHour
			} else {
				anomalies = append(anomalies, preferenceAnomaly("businessHours.startHour",
					strconv.Itoa(*bh.StartHour), "start hour must be between 0 and 23"))
			}
		}
		if bh.EndHour != nil {
			if *bh.EndHour >= 1 && *bh.EndHour <= 24 {
				r.endHour = *bh.EndHour
			} else {
				anomalies = append(anomalies, preferenceAnomaly("businessHours.endHour",
					strconv.Itoa(*bh.EndHour), "end hour must be between 1 and 24"))
			}
		}
		if bh.Days != nil {
			if validDays(bh.Days) {
				days = bh.Days
			} else {
				anomalies = append(anomalies, preferenceAnomaly("businessHours.days",
					formatDays(bh.Days), "days must be a non-empty set of values 0 (Monday) to 6 (Sunday)"))
			}
		}
	}
	r.days = daySet(days)

	if p.Timezone != nil {
		if loc, ok := LoadTimezone(*p.Timezone); ok {
			r.loc = loc
		} else {
			anomalies = append(anomalies, preferenceAnomaly("timezone", *p.Timezone,
				"unknown IANA timezone, "+s.defaultLoc.String()+" used"))
		}
	}

	if p.Duration != nil {
		if *p.Duration > 0 {
			r.duration = *p.Duration
		} else {
			anomalies = append(anomalies, preferenceAnomaly("duration",
				strconv.Itoa(*p.Duration), "duration must be positive"))
		}
	}

	if p.NumSlots != nil {
		if *p.NumSlots > 0 {
			r.numSlots = *p.NumSlots
		} else {
			anomalies = append(anomalies, preferenceAnomaly("numSlots",
				strconv.Itoa(*p.NumSlots), "numSlots must be positive"))
		}
	}

	return r, anomalies
}

func validDays(days []int) bool {
	if len(days) == 0 {
		return false
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}

func daySet(days []int) map[time.Weekday]struct{} {
	set := make(map[time.Weekday]struct{}, len(days))
	for _, d := range days {
		set[weekday(d)] = struct{}{}
	}
	return set
}

func formatDays(days []int) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(d))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// LoadTimezone resolves an IANA zone name. Empty names and "Local" are
// rejected so the result never depends on the host.
func LoadTimezone(name string) (*time.Location, bool) {
	name = strings.TrimSpace(name)
	if name == "" || name == "Local" {
		return nil, false
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, false
	}
	return loc, true
}
