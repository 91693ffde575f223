package dto

import (
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type EmployeeResponse struct {
	ID          uuid.UUID  `json:"id"`
	EmpCode     string     `json:"emp_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	ApproverID  *uuid.UUID `json:"approver_id"`
	IsApprover  bool       `json:"is_approver"`
	Designation *string    `json:"designation"`
	Capability  *string    `json:"capability"`
	IsActive    bool       `json:"is_active"`
	IsAvailable bool       `json:"is_available"`
}

func NewEmployeeResponse(e repository.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		EmpCode:     e.EmpCode,
		Name:        e.Name,
		Email:       e.Email,
		ApproverID:  e.ApproverID,
		IsApprover:  e.IsApprover,
		Designation: e.Designation,
		Capability:  e.Capability,
		IsActive:    e.IsActive,
		IsAvailable: e.IsAvailable,
	}
}

func NewEmployeeResponses(in []repository.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(in))
	for _, e := range in {
		out = append(out, NewEmployeeResponse(e))
	}
	return out
}
