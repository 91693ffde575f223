package dto

import (
	"skill-matrix/internal/usecase"

	"github.com/google/uuid"
)

type MatchedSkillResponse struct {
	SubSkillID       uuid.UUID `json:"subskill_id"`
	SubSkillName     string    `json:"subskill_name"`
	MasterSkillName  string    `json:"skill_name"`
	Experience       float64   `json:"experience_years"`
	Proficiency      int       `json:"proficiency"`
	Certification    *string   `json:"certification"`
	HasCertification bool      `json:"has_certification"`
	Score            float64   `json:"score"`
}

type EmployeeMatchResponse struct {
	EmployeeID   uuid.UUID              `json:"employee_id"`
	EmployeeName string                 `json:"employee_name"`
	EmployeeCode string                 `json:"employee_code"`
	Score        float64                `json:"score"`
	Coverage     float64                `json:"coverage"`
	Skills       []MatchedSkillResponse `json:"skills"`
}

func NewEmployeeMatchResponses(in []usecase.EmployeeMatch) []EmployeeMatchResponse {
	out := make([]EmployeeMatchResponse, 0, len(in))
	for _, m := range in {
		skills := make([]MatchedSkillResponse, 0, len(m.Skills))
		for _, s := range m.Skills {
			skills = append(skills, MatchedSkillResponse{
				SubSkillID:       s.SubSkillID,
				SubSkillName:     s.SubSkillName,
				MasterSkillName:  s.MasterSkillName,
				Experience:       s.Experience,
				Proficiency:      s.Proficiency,
				Certification:    s.Certification,
				HasCertification: s.HasCertification,
				Score:            s.Score,
			})
		}
		out = append(out, EmployeeMatchResponse{
			EmployeeID:   m.EmployeeID,
			EmployeeName: m.EmployeeName,
			EmployeeCode: m.EmployeeCode,
			Score:        m.Score,
			Coverage:     m.Coverage,
			Skills:       skills,
		})
	}
	return out
}
