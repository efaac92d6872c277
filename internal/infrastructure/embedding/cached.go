package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"recruit-engine/internal/domain/matching"
	"recruit-engine/internal/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Cached keeps one entry per (model, text) so repeated resumes and job
// descriptions skip the oracle. Cache failures degrade to a plain call.
type Cached struct {
	next   matching.Oracle
	cache  JSONCache
	model  string
	ttl    time.Duration
	logger *zap.Logger
}

func NewCached(next matching.Oracle, cache JSONCache, model string, ttl time.Duration, logger *zap.Logger) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{next: next, cache: cache, model: model, ttl: ttl, logger: logger}
}

func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "embed:" + model + ":" + hex.EncodeToString(sum[:])
}

// KeyPattern matches every cached embedding of model.
func KeyPattern(model string) string {
	return "embed:" + model + ":*"
}

func (c *Cached) Embed(ctx context.Context, texts []string) ([]matching.Vector, error) {
	out := make([]matching.Vector, len(texts))
	var missIdx []int
	var missTexts []string
	var degraded int

	for i, t := range texts {
		var v matching.Vector
		found, err := c.cache.GetJSON(ctx, CacheKey(c.model, t), &v)
		if err != nil {
			degraded++
			c.logger.Debug("embedding cache read failed", zap.Error(err))
		}
		if found && len(v) > 0 {
			out[i] = v
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, t)
	}

	if len(missTexts) == 0 {
		return out, nil
	}
	defer func() { markDegraded(ctx, degraded) }()

	vecs, err := c.next.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missTexts) {
		return nil, fmt.Errorf("embedding oracle returned %d vectors for %d texts", len(vecs), len(missTexts))
	}

	for k, i := range missIdx {
		out[i] = vecs[k]
		if err := c.cache.SetJSON(ctx, CacheKey(c.model, missTexts[k]), vecs[k], c.ttl); err != nil {
			degraded++
			c.logger.Debug("embedding cache write failed", zap.Error(err))
		}
	}
	c.logger.Debug("embeddings resolved",
		zap.Int("cached", len(texts)-len(missTexts)),
		zap.Int("embedded", len(missTexts)),
	)
	return out, nil
}

// markDegraded notes cache failures on the caller's span without failing it.
func markDegraded(ctx context.Context, failures int) {
	if failures == 0 {
		return
	}
	trace.SpanFromContext(ctx).AddEvent("embedding cache degraded", trace.WithAttributes(
		attribute.String("error.type", string(tracing.ErrorTypeRedis)),
		attribute.Int("cache.failures", failures),
	))
}
