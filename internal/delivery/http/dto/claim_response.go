package dto

import (
	"time"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type ClaimResponse struct {
	ID                     uuid.UUID  `json:"id"`
	EmployeeID             uuid.UUID  `json:"employee_id"`
	SubSkillID             uuid.UUID  `json:"subskill_id"`
	Experience             float64    `json:"experience_years"`
	Proficiency            int        `json:"proficiency"`
	Certification          *string    `json:"certification"`
	CertificationCreatedOn *time.Time `json:"certification_created_on"`
	CertificationExpiresOn *time.Time `json:"certification_expires_on"`
	ManagerComments        *string    `json:"manager_comments"`
	Status                 string     `json:"status"`
	ApproverID             *uuid.UUID `json:"approver_id"`
	CreatedAt              time.Time  `json:"created_at"`
}

func NewClaimResponse(c repository.Claim) ClaimResponse {
	return ClaimResponse{
		ID:                     c.ID,
		EmployeeID:             c.EmployeeID,
		SubSkillID:             c.SubSkillID,
		Experience:             c.Experience,
		Proficiency:            c.Proficiency,
		Certification:          c.Certification,
		CertificationCreatedOn: c.CertificationCreatedOn,
		CertificationExpiresOn: c.CertificationExpiresOn,
		ManagerComments:        c.ManagerComments,
		Status:                 string(c.Status),
		ApproverID:             c.ApproverID,
		CreatedAt:              c.CreatedAt,
	}
}

type ClaimSummaryResponse struct {
	ID              uuid.UUID `json:"id"`
	SubSkillID      uuid.UUID `json:"subskill_id"`
	SubSkillName    string    `json:"subskill_name"`
	MasterSkillName string    `json:"skill_name"`
	Experience      float64   `json:"experience_years"`
	Proficiency     int       `json:"proficiency"`
	Certification   *string   `json:"certification"`
	ManagerComments *string   `json:"manager_comments"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewClaimSummaryResponses(in []repository.ClaimSummary) []ClaimSummaryResponse {
	out := make([]ClaimSummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, ClaimSummaryResponse{
			ID:              s.ID,
			SubSkillID:      s.SubSkillID,
			SubSkillName:    s.SubSkillName,
			MasterSkillName: s.MasterSkillName,
			Experience:      s.Experience,
			Proficiency:     s.Proficiency,
			Certification:   s.Certification,
			ManagerComments: s.ManagerComments,
			Status:          string(s.Status),
			CreatedAt:       s.CreatedAt,
		})
	}
	return out
}
