package handler

import (
	"errors"
	"time"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SubmissionHandler struct {
	uc usecase.SubmissionUsecase
}

type submissionItemRequest struct {
	Name                   string     `json:"name"`
	Experience             float64    `json:"experience_years"`
	Proficiency            int        `json:"proficiency"`
	Certification          *string    `json:"certification"`
	CertificationCreatedOn *time.Time `json:"certification_created_on"`
	CertificationExpiresOn *time.Time `json:"certification_expires_on"`
}

type submitSkillsRequest struct {
	SkillName string                  `json:"skill_name"`
	SubSkills []submissionItemRequest `json:"sub_skills"`
}

type updateRecordRequest struct {
	RecordType             string     `json:"record_type"`
	RecordID               uuid.UUID  `json:"record_id"`
	Experience             float64    `json:"experience_years"`
	Proficiency            int        `json:"proficiency"`
	Certification          *string    `json:"certification"`
	CertificationCreatedOn *time.Time `json:"certification_created_on"`
	CertificationExpiresOn *time.Time `json:"certification_expires_on"`
}

func NewSubmissionHandler(uc usecase.SubmissionUsecase) *SubmissionHandler {
	return &SubmissionHandler{uc: uc}
}

func (h *SubmissionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/submissions", h.Submit)
	r.Put("/records", h.UpdateRecord)
	r.Get("/me", h.MySkills)
}

func (h *SubmissionHandler) Submit(c fiber.Ctx) error {
	employeeID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}

	var req submitSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.SubmissionInput{SkillName: req.SkillName, SubSkills: make([]usecase.SubmissionItem, 0, len(req.SubSkills))}
	for _, s := range req.SubSkills {
		in.SubSkills = append(in.SubSkills, usecase.SubmissionItem{
			SubSkillName:           s.Name,
			Experience:             s.Experience,
			Proficiency:            s.Proficiency,
			Certification:          s.Certification,
			CertificationCreatedOn: s.CertificationCreatedOn,
			CertificationExpiresOn: s.CertificationExpiresOn,
		})
	}

	res, err := h.uc.Submit(c.Context(), employeeID, in)
	if err != nil {
		return mapSubmissionError(err)
	}

	created := make([]dto.ClaimResponse, 0, len(res.Created))
	for _, cl := range res.Created {
		created = append(created, dto.NewClaimResponse(cl))
	}
	skipped := make([]map[string]any, 0, len(res.Skipped))
	for _, s := range res.Skipped {
		skipped = append(skipped, map[string]any{"sub_skill": s.SubSkillName, "reason": s.Reason})
	}

	status := fiber.StatusCreated
	if len(created) == 0 {
		status = fiber.StatusOK
	}
	return response.Success(c, status, "", map[string]any{"created": created, "skipped": skipped})
}

func (h *SubmissionHandler) UpdateRecord(c fiber.Ctx) error {
	employeeID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}

	var req updateRecordRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	claim, err := h.uc.UpdateRecord(c.Context(), employeeID, usecase.ClaimUpdateInput{
		RecordType:             req.RecordType,
		RecordID:               req.RecordID,
		Experience:             req.Experience,
		Proficiency:            req.Proficiency,
		Certification:          req.Certification,
		CertificationCreatedOn: req.CertificationCreatedOn,
		CertificationExpiresOn: req.CertificationExpiresOn,
	})
	if err != nil {
		return mapSubmissionError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewClaimResponse(claim))
}

func (h *SubmissionHandler) MySkills(c fiber.Ctx) error {
	employeeID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}

	summaries, err := h.uc.MySkills(c.Context(), employeeID, c.Query("status"))
	if err != nil {
		return mapSubmissionError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewClaimSummaryResponses(summaries))
}

func mapSubmissionError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrRecordNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill record not found", nil, err)
	case errors.Is(err, usecase.ErrNotOwner):
		return middleware.NewAppError(fiber.StatusForbidden, "Record belongs to another employee", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
