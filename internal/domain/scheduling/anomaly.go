package scheduling

type AnomalyKind string

const (
	AnomalyMalformedBookingDate   AnomalyKind = "malformed_booking_date"
	AnomalyMissingBookingDate     AnomalyKind = "missing_booking_date"
	AnomalyInvalidBookingDuration AnomalyKind = "invalid_booking_duration"
	AnomalyInvalidPreference      AnomalyKind = "invalid_preference"
)

// NoIndex is the Anomaly index for problems that are not tied to a booking.
const NoIndex = -1

// Anomaly is a recovered input problem. Bookings with a bad date are left out
// of the busy set; bad preferences are replaced by their default.
type Anomaly struct {
	Kind   AnomalyKind
	Index  int
	Field  string
	Value  string
	Reason string
}
