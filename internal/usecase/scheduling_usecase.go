package usecase

import (
	"context"

	"recruit-engine/internal/domain/scheduling"
	"recruit-engine/internal/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type SchedulingUsecase interface {
	Slots(ctx context.Context, bookings []scheduling.Booking, prefs *scheduling.Preferences) scheduling.Result
}

type Scheduling struct {
	solver *scheduling.Solver
}

func NewSchedulingUsecase(solver *scheduling.Solver) *Scheduling {
	return &Scheduling{solver: solver}
}

func (u *Scheduling) Slots(ctx context.Context, bookings []scheduling.Booking, prefs *scheduling.Preferences) scheduling.Result {
	_, span := tracing.Start(ctx, "scheduling.Slots", attribute.Int("bookings", len(bookings)))
	defer span.End()

	res := u.solver.Slots(bookings, prefs)
	span.SetAttributes(
		attribute.Int("slots", len(res.Slots)),
		attribute.Int("anomalies", len(res.Anomalies)),
		attribute.String("timezone", res.Timezone),
	)
	return res
}
