package dto

import (
	"time"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type ReviewRecordResponse struct {
	ClaimResponse
	EmployeeName    string `json:"employee_name"`
	EmployeeCode    string `json:"employee_code"`
	MasterSkillName string `json:"skill_name"`
	SubSkillName    string `json:"subskill_name"`
}

type PagedResponse struct {
	Items    any `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func NewReviewRecordResponses(in []repository.ReviewRecord) []ReviewRecordResponse {
	out := make([]ReviewRecordResponse, 0, len(in))
	for _, r := range in {
		out = append(out, ReviewRecordResponse{
			ClaimResponse:   NewClaimResponse(r.Claim),
			EmployeeName:    r.EmployeeName,
			EmployeeCode:    r.EmployeeCode,
			MasterSkillName: r.MasterSkillName,
			SubSkillName:    r.SubSkillName,
		})
	}
	return out
}

type HistoryRecordResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ClaimID            uuid.UUID  `json:"claim_id"`
	EmployeeID         uuid.UUID  `json:"employee_id"`
	EmployeeName       string     `json:"employee_name"`
	EmployeeCode       string     `json:"employee_code"`
	MasterSkillName    string     `json:"skill_name"`
	SubSkillName       string     `json:"subskill_name"`
	Experience         float64    `json:"experience_years"`
	Proficiency        int        `json:"proficiency"`
	Certification      *string    `json:"certification"`
	ManagerProficiency *int       `json:"manager_proficiency"`
	ManagerComments    *string    `json:"manager_comments"`
	ApprovalStatus     string     `json:"approval_status"`
	ApproverID         *uuid.UUID `json:"approver_id"`
	DecidedAt          time.Time  `json:"decided_at"`
}

func NewHistoryRecordResponses(in []repository.HistoryRecord) []HistoryRecordResponse {
	out := make([]HistoryRecordResponse, 0, len(in))
	for _, h := range in {
		out = append(out, HistoryRecordResponse{
			ID:                 h.ID,
			ClaimID:            h.ClaimID,
			EmployeeID:         h.EmployeeID,
			EmployeeName:       h.EmployeeName,
			EmployeeCode:       h.EmployeeCode,
			MasterSkillName:    h.MasterSkillName,
			SubSkillName:       h.SubSkillName,
			Experience:         h.Experience,
			Proficiency:        h.Proficiency,
			Certification:      h.Certification,
			ManagerProficiency: h.ManagerProficiency,
			ManagerComments:    h.ManagerComments,
			ApprovalStatus:     string(h.ApprovalStatus),
			ApproverID:         h.ApproverID,
			DecidedAt:          h.CreatedAt,
		})
	}
	return out
}
