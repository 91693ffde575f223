package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.TaxonomyUsecase
}

type createSkillRequest struct {
	Name      string   `json:"name"`
	SubSkills []string `json:"sub_skills"`
}

type createSubSkillRequest struct {
	Name string `json:"name"`
}

func NewSkillHandler(uc usecase.TaxonomyUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/:skillId/subskills", h.CreateSubSkill)
	r.Delete("/:skillId", h.Delete)
	r.Delete("/subskills/:subskillId", h.DeleteSubSkill)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	trees, err := h.uc.ListTaxonomy(c.Context())
	if err != nil {
		return mapTaxonomyError(err)
	}

	data := make([]map[string]any, 0, len(trees))
	for _, t := range trees {
		subs := make([]map[string]any, 0, len(t.SubSkills))
		for _, ss := range t.SubSkills {
			subs = append(subs, map[string]any{"id": ss.ID, "name": ss.Name})
		}
		data = append(data, map[string]any{
			"id":         t.MasterSkill.ID,
			"name":       t.MasterSkill.Name,
			"sub_skills": subs,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

// Create finds or creates the master skill and each listed sub-skill; resending
// the same payload is a no-op.
func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req createSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	master, createdMaster, err := h.uc.EnsureMasterSkill(c.Context(), req.Name)
	if err != nil {
		return mapTaxonomyError(err)
	}

	subs := make([]map[string]any, 0, len(req.SubSkills))
	for _, name := range req.SubSkills {
		ss, created, err := h.uc.EnsureSubSkill(c.Context(), master.ID, name)
		if err != nil {
			return mapTaxonomyError(err)
		}
		subs = append(subs, map[string]any{"id": ss.ID, "name": ss.Name, "created": created})
	}

	status := fiber.StatusOK
	if createdMaster {
		status = fiber.StatusCreated
	}
	data := map[string]any{
		"id":         master.ID,
		"name":       master.Name,
		"created":    createdMaster,
		"sub_skills": subs,
	}
	return response.Success(c, status, "", data)
}

func (h *SkillHandler) CreateSubSkill(c fiber.Ctx) error {
	skillID, err := uuidParam(c, "skillId")
	if err != nil {
		return err
	}

	var req createSubSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ss, created, err := h.uc.EnsureSubSkill(c.Context(), skillID, req.Name)
	if err != nil {
		return mapTaxonomyError(err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return response.Success(c, status, "", map[string]any{"id": ss.ID, "name": ss.Name, "created": created})
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	skillID, err := uuidParam(c, "skillId")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteMasterSkill(c.Context(), skillID); err != nil {
		return mapTaxonomyError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SkillHandler) DeleteSubSkill(c fiber.Ctx) error {
	subSkillID, err := uuidParam(c, "subskillId")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteSubSkill(c.Context(), subSkillID); err != nil {
		return mapTaxonomyError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapTaxonomyError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrMasterSkillNotFound), errors.Is(err, usecase.ErrSubSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrSubSkillInUse):
		return middleware.NewAppError(fiber.StatusConflict, "Sub-skill has live claims and cannot be deleted", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
