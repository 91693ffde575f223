package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type EmployeeHandler struct {
	uc usecase.EmployeeUsecase
}

type createEmployeeRequest struct {
	EmpCode     string     `json:"emp_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	ApproverID  *uuid.UUID `json:"approver_id"`
	IsApprover  bool       `json:"is_approver"`
	Designation *string    `json:"designation"`
	Capability  *string    `json:"capability"`
}

type updateEmployeeRequest struct {
	Name          *string    `json:"name"`
	ApproverID    *uuid.UUID `json:"approver_id"`
	ClearApprover bool       `json:"clear_approver"`
	IsApprover    *bool      `json:"is_approver"`
	Designation   *string    `json:"designation"`
	Capability    *string    `json:"capability"`
	IsActive      *bool      `json:"is_active"`
	IsAvailable   *bool      `json:"is_available"`
}

func NewEmployeeHandler(uc usecase.EmployeeUsecase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

func (h *EmployeeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:employeeId", h.Get)
	r.Post("/", h.Create)
	r.Patch("/:employeeId", h.Update)
}

func (h *EmployeeHandler) List(c fiber.Ctx) error {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 10)

	res, err := h.uc.List(c.Context(), page, pageSize)
	if err != nil {
		return mapEmployeeError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.PagedResponse{
		Items:    dto.NewEmployeeResponses(res.Employees),
		Total:    res.Total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *EmployeeHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "employeeId")
	if err != nil {
		return err
	}

	emp, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapEmployeeError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployeeResponse(emp))
}

func (h *EmployeeHandler) Create(c fiber.Ctx) error {
	var req createEmployeeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	emp, err := h.uc.Create(c.Context(), usecase.CreateEmployeeInput{
		EmpCode:     req.EmpCode,
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		ApproverID:  req.ApproverID,
		IsApprover:  req.IsApprover,
		Designation: req.Designation,
		Capability:  req.Capability,
	})
	if err != nil {
		return mapEmployeeError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewEmployeeResponse(emp))
}

func (h *EmployeeHandler) Update(c fiber.Ctx) error {
	id, err := uuidParam(c, "employeeId")
	if err != nil {
		return err
	}

	var req updateEmployeeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	emp, err := h.uc.Update(c.Context(), id, usecase.UpdateEmployeeInput{
		Name:          req.Name,
		ApproverID:    req.ApproverID,
		ClearApprover: req.ClearApprover,
		IsApprover:    req.IsApprover,
		Designation:   req.Designation,
		Capability:    req.Capability,
		IsActive:      req.IsActive,
		IsAvailable:   req.IsAvailable,
	})
	if err != nil {
		return mapEmployeeError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployeeResponse(emp))
}

func mapEmployeeError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrApproverNotFound):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Approver not found or not an approver", nil, err)
	case errors.Is(err, usecase.ErrApproverCycle):
		return middleware.NewAppError(fiber.StatusConflict, "Approver assignment would create a cycle", nil, err)
	case errors.Is(err, usecase.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
