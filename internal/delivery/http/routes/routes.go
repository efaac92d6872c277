package routes

import (
	"recruit-engine/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health   *handler.HealthHandler
	match    *handler.MatchHandler
	schedule *handler.ScheduleHandler
}

func NewRegistry(health *handler.HealthHandler, match *handler.MatchHandler, schedule *handler.ScheduleHandler) *Registry {
	return &Registry{health: health, match: match, schedule: schedule}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.match, r.schedule)
}
