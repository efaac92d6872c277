package dto

import (
	"recruit-engine/internal/domain/scheduling"
)

type BookingRequest struct {
	ScheduledDate string `json:"scheduledDate" validate:"max=100"`
	Duration      *int   `json:"duration"`
}

// BusinessHoursRequest and PreferencesRequest carry no range rules: the
// solver replaces out-of-range values with defaults and reports an anomaly.
type BusinessHoursRequest struct {
	StartHour *int  `json:"startHour"`
	EndHour   *int  `json:"endHour"`
	Days      []int `json:"days"`
}

type PreferencesRequest struct {
	BusinessHours *BusinessHoursRequest `json:"businessHours"`
	Timezone      *string               `json:"timezone"`
	Duration      *int                  `json:"duration"`
	NumSlots      *int                  `json:"numSlots"`
}

type ScheduleRequest struct {
	ExistingSlots []BookingRequest    `json:"existingSlots" validate:"max=1000,dive"`
	Preferences   *PreferencesRequest `json:"preferences"`
}

func (r ScheduleRequest) Bookings() []scheduling.Booking {
	out := make([]scheduling.Booking, 0, len(r.ExistingSlots))
	for _, b := range r.ExistingSlots {
		out = append(out, scheduling.Booking{ScheduledDate: b.ScheduledDate, Duration: b.Duration})
	}
	return out
}

func (r ScheduleRequest) DomainPreferences() *scheduling.Preferences {
	p := r.Preferences
	if p == nil {
		return nil
	}
	out := &scheduling.Preferences{
		Timezone: p.Timezone,
		Duration: p.Duration,
		NumSlots: p.NumSlots,
	}
	if bh := p.BusinessHours; bh != nil {
		out.BusinessHours = &scheduling.BusinessHours{
			StartHour: bh.StartHour,
			EndHour:   bh.EndHour,
			Days:      bh.Days,
		}
	}
	return out
}

type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  int    `json:"duration"`
}

type AnomalyResponse struct {
	Kind   string `json:"kind"`
	Index  *int   `json:"index,omitempty"`
	Field  string `json:"field,omitempty"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

type ScheduleResponse struct {
	AvailableSlots []SlotResponse    `json:"availableSlots"`
	Timezone       string            `json:"timezone"`
	Anomalies      []AnomalyResponse `json:"anomalies"`
}

func NewScheduleResponse(r scheduling.Result) ScheduleResponse {
	out := ScheduleResponse{
		AvailableSlots: make([]SlotResponse, 0, len(r.Slots)),
		Timezone:       r.Timezone,
		Anomalies:      make([]AnomalyResponse, 0, len(r.Anomalies)),
	}
	for _, s := range r.Slots {
		out.AvailableSlots = append(out.AvailableSlots, SlotResponse{
			StartTime: s.Start.Format(scheduling.TimeLayout),
			EndTime:   s.End.Format(scheduling.TimeLayout),
			Duration:  s.Duration,
		})
	}
	for _, a := range r.Anomalies {
		ar := AnomalyResponse{
			Kind:   string(a.Kind),
			Field:  a.Field,
			Value:  a.Value,
			Reason: a.Reason,
		}
		if a.Index != scheduling.NoIndex {
			idx := a.Index
			ar.Index = &idx
		}
		out.Anomalies = append(out.Anomalies, ar)
	}
	return out
}
