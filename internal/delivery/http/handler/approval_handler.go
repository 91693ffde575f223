package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApprovalHandler struct {
	uc        usecase.ApprovalUsecase
	dashboard usecase.DashboardUsecase
}

type decisionRequest struct {
	Action      string  `json:"action"`
	Proficiency *int    `json:"proficiency"`
	Comments    *string `json:"comments"`
}

func NewApprovalHandler(uc usecase.ApprovalUsecase, dashboard usecase.DashboardUsecase) *ApprovalHandler {
	return &ApprovalHandler{uc: uc, dashboard: dashboard}
}

func (h *ApprovalHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/pending", h.ListPending)
	r.Get("/history", h.ListHistory)
	r.Post("/:claimId/decision", h.Decide)
}

func (h *ApprovalHandler) ListPending(c fiber.Ctx) error {
	approverID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}

	f := reviewFilterFromQuery(c)
	page, err2 := h.uc.ListPending(c.Context(), approverID, f)
	if err2 != nil {
		return mapApprovalError(err2)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.PagedResponse{
		Items:    dto.NewReviewRecordResponses(page.Records),
		Total:    page.Total,
		Page:     f.Page,
		PageSize: f.PageSize,
	})
}

func (h *ApprovalHandler) ListHistory(c fiber.Ctx) error {
	approverID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}

	f := reviewFilterFromQuery(c)
	page, err2 := h.uc.ListHistory(c.Context(), approverID, c.Query("status"), f)
	if err2 != nil {
		return mapApprovalError(err2)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.PagedResponse{
		Items:    dto.NewHistoryRecordResponses(page.Records),
		Total:    page.Total,
		Page:     f.Page,
		PageSize: f.PageSize,
	})
}

func (h *ApprovalHandler) Decide(c fiber.Ctx) error {
	approverID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}
	claimID, err := uuidParam(c, "claimId")
	if err != nil {
		return err
	}

	var req decisionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Decide(c.Context(), approverID, claimID, usecase.DecisionInput{
		Action:      req.Action,
		Proficiency: req.Proficiency,
		Comments:    req.Comments,
	})
	if err != nil {
		return mapApprovalError(err)
	}

	// Decided claims move the dashboard numbers.
	h.dashboard.InvalidateCache(c.Context())

	data := map[string]any{
		"claim_id":      res.ClaimID,
		"status":        string(res.Status),
		"claim_deleted": res.ClaimDeleted,
		"history_id":    res.HistoryID,
		"decided_at":    res.DecidedAt,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func reviewFilterFromQuery(c fiber.Ctx) repository.ReviewFilter {
	f := repository.ReviewFilter{
		EmployeeName:     c.Query("employee_name"),
		SkillName:        c.Query("skill_name"),
		SubSkillName:     c.Query("subskill_name"),
		HasCertification: queryBoolPtr(c, "has_certification"),
		MinExperience:    queryFloatPtr(c, "min_experience"),
		Page:             queryInt(c, "page", 1),
		PageSize:         queryInt(c, "page_size", 10),
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 10
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
	return f
}

func mapApprovalError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrClaimNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill claim not found", nil, err)
	case errors.Is(err, usecase.ErrClaimNotPending):
		return middleware.NewAppError(fiber.StatusConflict, "Claim is not pending review", nil, err)
	case errors.Is(err, usecase.ErrNotApprover):
		return middleware.NewAppError(fiber.StatusForbidden, "Approver access required", nil, err)
	case errors.Is(err, usecase.ErrInvalidAction):
		return middleware.NewAppError(fiber.StatusConflict, "Unknown decision action", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
