package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc usecase.DashboardUsecase
}

func NewDashboardHandler(uc usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Overview)
	r.Get("/skills/:skillId", h.MasterSkillDetail)
	r.Get("/subskills/:subskillId", h.SubSkillDetail)
}

func (h *DashboardHandler) Overview(c fiber.Ctx) error {
	overview, err := h.uc.Overview(c.Context(), c.Query("search"), queryInt(c, "page", 1), queryInt(c, "page_size", 10))
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, overview)
}

func (h *DashboardHandler) MasterSkillDetail(c fiber.Ctx) error {
	skillID, err := uuidParam(c, "skillId")
	if err != nil {
		return err
	}

	detail, err := h.uc.MasterSkillDetail(c.Context(), skillID)
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, detail)
}

func (h *DashboardHandler) SubSkillDetail(c fiber.Ctx) error {
	subSkillID, err := uuidParam(c, "subskillId")
	if err != nil {
		return err
	}

	detail, err := h.uc.SubSkillDetail(c.Context(), subSkillID)
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, detail)
}

func mapDashboardError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrMasterSkillNotFound), errors.Is(err, usecase.ErrSubSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, err.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
