package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"recruit-engine/internal/config"
	"recruit-engine/internal/domain/matching"
	"recruit-engine/internal/logger"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const embeddingsPath = "/embeddings"

// HTTP calls a self-hosted embedding server. Requests are
// {"model": ..., "input": [...]}; responses may carry the vectors either as
// "embeddings": [[...]] or as "data": [{"embedding": [...]}].
type HTTP struct {
	client    *resty.Client
	model     string
	batchSize int
	logger    *zap.Logger
}

func NewHTTP(cfg config.OracleConfig, log *zap.Logger) (*HTTP, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("embedding server base url is required")
	}

	client := resty.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(cfg.MaxRetries).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	return &HTTP{
		client:    client,
		model:     cfg.Model,
		batchSize: cfg.BatchSize,
		logger:    logger.WithFields(log, logger.OracleFields(config.ProviderHTTP, cfg.Model)...),
	}, nil
}

func (h *HTTP) Embed(ctx context.Context, texts []string) ([]matching.Vector, error) {
	return inBatches(ctx, texts, h.batchSize, h.embedBatch)
}

func (h *HTTP) embedBatch(ctx context.Context, texts []string) ([]matching.Vector, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": h.model,
			"input": texts,
		}).
		Post(embeddingsPath)
	if err != nil {
		return nil, fmt.Errorf("embedding server: %w", err)
	}
	if resp.IsError() {
		h.logger.Debug("embedding server error",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", logger.Truncate(resp.String(), 300)),
		)
		return nil, fmt.Errorf("embedding server: status %d", resp.StatusCode())
	}

	return parseVectors(resp.Body())
}

func parseVectors(body []byte) ([]matching.Vector, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("embedding server: response is not json")
	}

	rows := gjson.GetBytes(body, "embeddings")
	if !rows.Exists() {
		rows = gjson.GetBytes(body, "data.#.embedding")
	}
	if !rows.IsArray() {
		return nil, errors.New("embedding server: response has no embeddings")
	}

	var out []matching.Vector
	var parseErr error
	rows.ForEach(func(_, row gjson.Result) bool {
		if !row.IsArray() {
			parseErr = fmt.Errorf("embedding server: row %d is not an array", len(out))
			return false
		}
		values := row.Array()
		vec := make(matching.Vector, 0, len(values))
		for _, v := range values {
			if v.Type != gjson.Number {
				parseErr = fmt.Errorf("embedding server: row %d has a non-numeric value", len(out))
				return false
			}
			vec = append(vec, float32(v.Float()))
		}
		out = append(out, vec)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return out, nil
}
