package usecase

import (
	"context"
	"time"

	"recruit-engine/internal/domain/matching"
	"recruit-engine/internal/domain/profile"
	"recruit-engine/internal/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type MatchingUsecase interface {
	Match(ctx context.Context, resume profile.Resume, job profile.Job) (matching.Result, error)
	DetectGaps(ctx context.Context, resume profile.Resume, job profile.Job) (matching.GapResult, error)
}

type Matching struct {
	engine  *matching.Engine
	timeout time.Duration
	logger  *zap.Logger
}

// NewMatchingUsecase bounds every oracle-backed call by oracleTimeout. A zero
// timeout leaves the caller's deadline alone.
func NewMatchingUsecase(engine *matching.Engine, oracleTimeout time.Duration, logger *zap.Logger) *Matching {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{engine: engine, timeout: oracleTimeout, logger: logger}
}

func (u *Matching) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, u.timeout)
}

func (u *Matching) Match(ctx context.Context, resume profile.Resume, job profile.Job) (matching.Result, error) {
	ctx, span := tracing.Start(ctx, "matching.Match", sizeAttributes(resume, job)...)
	defer span.End()

	ctx, cancel := u.withDeadline(ctx)
	defer cancel()

	res, err := u.engine.Match(ctx, resume, job)
	if err != nil {
		tracing.RecordError(span, err, tracing.ClassifyOracleError(err))
		u.logger.Error("match failed", zap.Error(err))
		return matching.Result{}, mapEngineError(err)
	}

	span.SetAttributes(attribute.Float64("match.overall_score", res.OverallScore))
	return res, nil
}

func (u *Matching) DetectGaps(ctx context.Context, resume profile.Resume, job profile.Job) (matching.GapResult, error) {
	ctx, span := tracing.Start(ctx, "matching.DetectGaps", sizeAttributes(resume, job)...)
	defer span.End()

	ctx, cancel := u.withDeadline(ctx)
	defer cancel()

	res, err := u.engine.DetectGaps(ctx, resume, job)
	if err != nil {
		tracing.RecordError(span, err, tracing.ClassifyOracleError(err))
		u.logger.Error("gap detection failed", zap.Error(err))
		return matching.GapResult{}, mapEngineError(err)
	}

	span.SetAttributes(attribute.Int("gaps.count", len(res.Gaps)))
	return res, nil
}

func sizeAttributes(resume profile.Resume, job profile.Job) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("resume.skills", len(resume.Skills)),
		attribute.Int("resume.experience", len(resume.Experience)),
		attribute.Int("job.skills", len(job.Skills)),
		attribute.Int("job.requirements", len(job.Requirements)),
		attribute.Int("job.responsibilities", len(job.Responsibilities)),
	}
}
