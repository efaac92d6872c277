package routes

import (
	"recruit-engine/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, match *handler.MatchHandler, schedule *handler.ScheduleHandler) {
	if r == nil {
		return
	}

	if match != nil {
		match.RegisterRoutes(r)
	}
	if schedule != nil {
		schedule.RegisterRoutes(r)
	}
}
