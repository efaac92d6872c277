package handler

import (
	"errors"

	"recruit-engine/internal/delivery/http/dto"
	"recruit-engine/internal/delivery/http/middleware"
	"recruit-engine/internal/pkg/response"
	"recruit-engine/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/match", h.Match)
	r.Post("/detect-gaps", h.DetectGaps)
}

func (h *MatchHandler) Match(c fiber.Ctx) error {
	var req dto.MatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Match(c.Context(), req.Resume.ToDomain(), req.Job.ToDomain())
	if err != nil {
		return mapEngineUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(res))
}

func (h *MatchHandler) DetectGaps(c fiber.Ctx) error {
	var req dto.MatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.uc.DetectGaps(c.Context(), req.Resume.ToDomain(), req.Job.ToDomain())
	if err != nil {
		return mapEngineUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewGapResponse(res))
}

func bindAndValidate(c fiber.Ctx, req any) error {
	if err := c.Bind().Body(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", dto.FieldErrors(err), err)
	}
	return nil
}

func mapEngineUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrOracleTimeout):
		return middleware.NewAppError(fiber.StatusGatewayTimeout, "Similarity service timed out", nil, err)
	case errors.Is(err, usecase.ErrOracleUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Similarity service unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
