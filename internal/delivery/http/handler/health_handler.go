package handler

import (
	"context"
	"time"

	"recruit-engine/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	appName  string
	provider string
	model    string
	cache    Pinger
}

// NewHealthHandler reports the oracle in use and, when cache is not nil, the
// reachability of the embedding cache.
func NewHealthHandler(appName, provider, model string, cache Pinger) *HealthHandler {
	return &HealthHandler{appName: appName, provider: provider, model: model, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Root(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"service": h.appName,
		"status":  "running",
	})
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	cache := "disabled"
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Context(), time.Second)
		defer cancel()
		cache = "up"
		if err := h.cache.Ping(ctx); err != nil {
			cache = "down"
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"status": "healthy",
		"oracle": fiber.Map{
			"provider": h.provider,
			"model":    h.model,
		},
		"cache": cache,
	})
}
