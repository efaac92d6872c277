package embedding

import (
	"context"
	"fmt"

	"recruit-engine/internal/config"
	"recruit-engine/internal/domain/matching"

	"go.uber.org/zap"
)

// New builds the oracle named by cfg.Provider.
func New(ctx context.Context, cfg config.OracleConfig, logger *zap.Logger) (matching.Oracle, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGemini(ctx, cfg, logger)
	case config.ProviderHTTP:
		return NewHTTP(cfg, logger)
	case config.ProviderLocal:
		return NewLocal(cfg.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown oracle provider %q", cfg.Provider)
	}
}

// inBatches calls fn on consecutive slices of at most size texts and
// concatenates the results, checking each batch returns one vector per text.
func inBatches(ctx context.Context, texts []string, size int, fn func(context.Context, []string) ([]matching.Vector, error)) ([]matching.Vector, error) {
	if size <= 0 {
		size = len(texts)
	}
	out := make([]matching.Vector, 0, len(texts))
	for start := 0; start < len(texts); start += size {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+size, len(texts))
		vecs, err := fn(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		if len(vecs) != end-start {
			return nil, fmt.Errorf("embedding batch returned %d vectors for %d texts", len(vecs), end-start)
		}
		out = append(out, vecs...)
	}
	return out, nil
}
