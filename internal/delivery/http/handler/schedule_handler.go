package handler

import (
	"recruit-engine/internal/delivery/http/dto"
	"recruit-engine/internal/pkg/response"
	"recruit-engine/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ScheduleHandler struct {
	uc usecase.SchedulingUsecase
}

func NewScheduleHandler(uc usecase.SchedulingUsecase) *ScheduleHandler {
	return &ScheduleHandler{uc: uc}
}

func (h *ScheduleHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/schedule-slots", h.Slots)
}

func (h *ScheduleHandler) Slots(c fiber.Ctx) error {
	var req dto.ScheduleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res := h.uc.Slots(c.Context(), req.Bookings(), req.DomainPreferences())
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewScheduleResponse(res))
}
