package handler

import (
	"errors"
	"fmt"
	"time"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchingHandler struct {
	uc usecase.MatchingUsecase
}

type requirementRequest struct {
	SubSkillID           uuid.UUID `json:"subskill_id"`
	MinExperience        *float64  `json:"min_experience_years"`
	MaxExperience        *float64  `json:"max_experience_years"`
	MinProficiency       *int      `json:"min_proficiency"`
	RequireCertification bool      `json:"certification_required"`
}

// matchRequest carries either structured requirements or free text to be
// parsed; structured wins when both are present.
type matchRequest struct {
	Requirements []requirementRequest `json:"requirements"`
	Text         string               `json:"text"`
}

func NewMatchingHandler(uc usecase.MatchingUsecase) *MatchingHandler {
	return &MatchingHandler{uc: uc}
}

func (h *MatchingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Match)
	r.Post("/export", h.Export)
}

func (h *MatchingHandler) Match(c fiber.Ctx) error {
	reqs, err := h.requirementsFromBody(c)
	if err != nil {
		return err
	}

	page, err := h.uc.Match(c.Context(), reqs, queryInt(c, "page", 1), queryInt(c, "page_size", 10))
	if err != nil {
		return mapMatchingError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.PagedResponse{
		Items:    dto.NewEmployeeMatchResponses(page.Matches),
		Total:    page.Total,
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 10),
	})
}

func (h *MatchingHandler) Export(c fiber.Ctx) error {
	reqs, err := h.requirementsFromBody(c)
	if err != nil {
		return err
	}

	out, err := h.uc.Export(c.Context(), reqs)
	if err != nil {
		return mapMatchingError(err)
	}

	filename := fmt.Sprintf("skill-matches-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}

func (h *MatchingHandler) requirementsFromBody(c fiber.Ctx) ([]usecase.RequirementInput, error) {
	var req matchRequest
	if err := c.Bind().Body(&req); err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if len(req.Requirements) == 0 && req.Text != "" {
		resolved, err := h.uc.ResolveText(c.Context(), req.Text)
		if err != nil {
			return nil, mapMatchingError(err)
		}
		return resolved, nil
	}

	out := make([]usecase.RequirementInput, 0, len(req.Requirements))
	for _, r := range req.Requirements {
		out = append(out, usecase.RequirementInput{
			SubSkillID:           r.SubSkillID,
			MinExperience:        r.MinExperience,
			MaxExperience:        r.MaxExperience,
			MinProficiency:       r.MinProficiency,
			RequireCertification: r.RequireCertification,
		})
	}
	return out, nil
}

func mapMatchingError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrNoRequirements):
		return middleware.NewAppError(fiber.StatusBadRequest, "At least one requirement is needed", nil, err)
	case errors.Is(err, usecase.ErrRequirementNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Requirement references an unknown sub-skill", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
