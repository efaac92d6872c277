package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"recruit-engine/internal/config"
	"recruit-engine/internal/domain/matching"
	"recruit-engine/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const geminiTaskType = "SEMANTIC_SIMILARITY"

type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Gemini embeds through the Gemini API.
type Gemini struct {
	models     contentEmbedder
	model      string
	batchSize  int
	maxRetries int
	baseDelay  time.Duration
	logger     *zap.Logger
}

func NewGemini(ctx context.Context, cfg config.OracleConfig, log *zap.Logger) (*Gemini, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGemini(client.Models, cfg, log), nil
}

func newGemini(models contentEmbedder, cfg config.OracleConfig, log *zap.Logger) *Gemini {
	return &Gemini{
		models:     models,
		model:      cfg.Model,
		batchSize:  cfg.BatchSize,
		maxRetries: cfg.MaxRetries,
		baseDelay:  500 * time.Millisecond,
		logger:     logger.WithFields(log, logger.OracleFields(config.ProviderGemini, cfg.Model)...),
	}
}

func (g *Gemini) Embed(ctx context.Context, texts []string) ([]matching.Vector, error) {
	return inBatches(ctx, texts, g.batchSize, g.embedBatch)
}

func (g *Gemini) embedBatch(ctx context.Context, texts []string) ([]matching.Vector, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
	}
	embedCfg := &genai.EmbedContentConfig{TaskType: geminiTaskType}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			delay := g.baseDelay * time.Duration(1<<(attempt-1))
			g.logger.Debug("retrying embedding batch", zap.Int("attempt", attempt), zap.Duration("delay", delay), zap.Error(lastErr))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("gemini embed: %w", ctx.Err())
			}
		}

		resp, err := g.models.EmbedContent(ctx, g.model, contents, embedCfg)
		if err == nil {
			return geminiVectors(resp, len(texts))
		}
		lastErr = err
		if !retryableGeminiError(err) {
			break
		}
	}
	return nil, fmt.Errorf("gemini embed: %w", lastErr)
}

func geminiVectors(resp *genai.EmbedContentResponse, want int) ([]matching.Vector, error) {
	if resp == nil {
		return nil, errors.New("gemini embed: empty response")
	}
	if len(resp.Embeddings) != want {
		return nil, fmt.Errorf("gemini embed: got %d embeddings for %d texts", len(resp.Embeddings), want)
	}

	out := make([]matching.Vector, 0, want)
	for i, e := range resp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, fmt.Errorf("gemini embed: embedding %d is empty", i)
		}
		for j, v := range e.Values {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return nil, fmt.Errorf("gemini embed: invalid value at %d/%d", i, j)
			}
		}
		out = append(out, matching.Vector(e.Values))
	}
	return out, nil
}

// retryableGeminiError reports rate limiting and server side failures.
// Context errors are final.
func retryableGeminiError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return true
}
