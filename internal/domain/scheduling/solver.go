package scheduling

import (
	"time"

	"go.uber.org/zap"
)

const (
	// SlotStep is the spacing of candidate start times within a day.
	SlotStep = 30 * time.Minute
	// SearchBusinessDays bounds how far ahead slots are searched.
	SearchBusinessDays = 10
	// TimeLayout renders slot times with an explicit UTC offset.
	TimeLayout = "2006-01-02T15:04:05-07:00"

	// maxSlots is the most a search can yield: every grid point of every day.
	maxSlots = SearchBusinessDays * int(24*time.Hour/SlotStep)
)

type Slot struct {
	Start    time.Time
	End      time.Time
	Duration int
}

type Result struct {
	Slots     []Slot
	Timezone  string
	Anomalies []Anomaly
}

type Solver struct {
	now        func() time.Time
	defaultLoc *time.Location
	logger     *zap.Logger
}

type Option func(*Solver)

func WithClock(now func() time.Time) Option {
	return func(s *Solver) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDefaultTimezone replaces America/New_York as the fallback zone. Unknown
// names are ignored.
func WithDefaultTimezone(name string) Option {
	return func(s *Solver) {
		if loc, ok := LoadTimezone(name); ok {
			s.defaultLoc = loc
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Solver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewSolver(opts ...Option) *Solver {
	s := &Solver{
		now:        time.Now,
		defaultLoc: mustDefaultLocation(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func mustDefaultLocation() *time.Location {
	loc, ok := LoadTimezone(DefaultTimezone)
	if !ok {
		// tzdata missing on the host; fall back to a fixed Eastern offset.
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

func (s *Solver) DefaultTimezone() string {
	return s.defaultLoc.String()
}

// Slots lists up to numSlots free interview start times, searching the
// business days that follow today in the requested zone. Malformed input never
// fails the call; it is reported through Result.Anomalies.
func (s *Solver) Slots(bookings []Booking, prefs *Preferences) Result {
	cfg, anomalies := s.resolve(prefs)
	busy, bookingAnomalies := busySet(bookings)
	anomalies = append(anomalies, bookingAnomalies...)

	for _, a := range anomalies {
		s.logger.Warn("scheduling input ignored",
			zap.String("kind", string(a.Kind)),
			zap.Int("index", a.Index),
			zap.String("field", a.Field),
			zap.String("value", a.Value),
			zap.String("reason", a.Reason),
		)
	}

	slots := make([]Slot, 0, min(cfg.numSlots, maxSlots))
	if cfg.duration <= MaxSlotMinutes {
		slots = s.search(slots, cfg, busy)
	}

	if len(slots) > cfg.numSlots {
		slots = slots[:cfg.numSlots]
	}

	if anomalies == nil {
		anomalies = []Anomaly{}
	}
	return Result{
		Slots:     slots,
		Timezone:  cfg.loc.String(),
		Anomalies: anomalies,
	}
}

func (s *Solver) search(slots []Slot, cfg resolved, busy []busyInterval) []Slot {
	dur := time.Duration(cfg.duration) * time.Minute

	now := s.now().In(cfg.loc)
	day := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, cfg.loc)
	for !cfg.isBusinessDay(day) {
		day = day.AddDate(0, 0, 1)
	}

	for checked := 0; checked < SearchBusinessDays && len(slots) < cfg.numSlots; day = day.AddDate(0, 0, 1) {
		if !cfg.isBusinessDay(day) {
			continue
		}
		checked++
		slots = appendDaySlots(slots, day, cfg, dur, busy)
	}
	return slots
}

func appendDaySlots(slots []Slot, day time.Time, cfg resolved, dur time.Duration, busy []busyInterval) []Slot {
	y, m, d := day.Date()
	open := time.Date(y, m, d, cfg.startHour, 0, 0, 0, cfg.loc)
	closing := time.Date(y, m, d, cfg.endHour, 0, 0, 0, cfg.loc)

	for start := open; !start.Add(dur).After(closing); start = start.Add(SlotStep) {
		end := start.Add(dur)
		if conflicts(busy, start, end) {
			continue
		}
		slots = append(slots, Slot{Start: start, End: end, Duration: cfg.duration})
	}
	return slots
}

func conflicts(busy []busyInterval, start, end time.Time) bool {
	for _, b := range busy {
		if b.overlaps(start, end) {
			return true
		}
	}
	return false
}
