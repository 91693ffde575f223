package repository

import (
	"context"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/approval"

	"github.com/google/uuid"
)

// SkillRow is one live claim of an active employee, joined with the names the
// matching output reports.
type SkillRow struct {
	EmployeeID       uuid.UUID
	EmployeeName     string
	EmployeeCode     string
	SubSkillID       uuid.UUID
	SubSkillName     string
	MasterSkillName  string
	Experience       float64
	Proficiency      int
	Certification    *string
	HasCertification bool
	Status           approval.Status
}

type MatchingRepository interface {
	// RowsForSubSkills returns every live claim of an active employee for the
	// given sub-skills, ordered by employee name for a stable ranking tiebreak.
	RowsForSubSkills(ctx context.Context, subSkillIDs []uuid.UUID) ([]SkillRow, error)
}

type PostgresMatchingRepository struct {
	db database.DB
}

func NewPostgresMatchingRepository(db database.DB) *PostgresMatchingRepository {
	return &PostgresMatchingRepository{db: db}
}

func (r *PostgresMatchingRepository) RowsForSubSkills(ctx context.Context, subSkillIDs []uuid.UUID) ([]SkillRow, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT es.employee_id, e.name, e.emp_id, es.subskill_id, ss.name, ms.name,
		        es.experience, es.proficiency, es.certification, es.status
		 FROM employee_skills es
		 JOIN employees e ON e.id = es.employee_id
		 JOIN sub_skills ss ON ss.id = es.subskill_id
		 JOIN master_skills ms ON ms.id = ss.master_skill_id
		 WHERE e.is_active AND es.subskill_id = ANY($1)
		 ORDER BY e.name ASC, ms.name ASC, ss.name ASC`,
		subSkillIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SkillRow, 0)
	for rows.Next() {
		var s SkillRow
		if err := rows.Scan(
			&s.EmployeeID, &s.EmployeeName, &s.EmployeeCode, &s.SubSkillID, &s.SubSkillName, &s.MasterSkillName,
			&s.Experience, &s.Proficiency, &s.Certification, &s.Status,
		); err != nil {
			return nil, err
		}
		s.HasCertification = s.Certification != nil && *s.Certification != ""
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
