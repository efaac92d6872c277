package embedding

import (
	"context"
	"time"

	"recruit-engine/internal/domain/matching"
	"recruit-engine/internal/logger"
	"recruit-engine/internal/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Instrumented wraps an oracle with a span and a debug log line per call.
type Instrumented struct {
	next     matching.Oracle
	provider string
	model    string
	logger   *zap.Logger
}

func NewInstrumented(next matching.Oracle, provider, model string, log *zap.Logger) *Instrumented {
	return &Instrumented{
		next:     next,
		provider: provider,
		model:    model,
		logger:   logger.WithFields(log, logger.OracleFields(provider, model)...),
	}
}

func (o *Instrumented) Embed(ctx context.Context, texts []string) ([]matching.Vector, error) {
	ctx, span := tracing.Start(ctx, "oracle.Embed",
		attribute.String("oracle.provider", o.provider),
		attribute.String("oracle.model", o.model),
		attribute.Int("oracle.texts", len(texts)),
	)
	defer span.End()

	started := time.Now()
	vecs, err := o.next.Embed(ctx, texts)
	if err != nil {
		tracing.RecordError(span, err, tracing.ClassifyOracleError(err))
		o.logger.Warn("embedding failed",
			zap.Int("texts", len(texts)),
			zap.Duration("latency", time.Since(started)),
			zap.Error(err),
		)
		return nil, err
	}

	o.logger.Debug("embedding done",
		zap.Int("texts", len(texts)),
		zap.Duration("latency", time.Since(started)),
	)
	return vecs, nil
}
