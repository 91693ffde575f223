package repository

import (
	"context"
	"fmt"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
)

type MasterSkillSummaryRow struct {
	ID            uuid.UUID
	SkillName     string
	EmployeeCount int
}

type SubSkillBreakdownRow struct {
	SubSkillID    uuid.UUID
	SubSkillName  string
	EmployeeCount int
}

// SubSkillClaimStats is the raw per-claim material the dashboard buckets into
// histograms.
type SubSkillClaimStats struct {
	Experience       float64
	Proficiency      int
	HasCertification bool
}

type DashboardRepository interface {
	CountActiveEmployees(ctx context.Context) (int, error)
	// MasterSkillSummary counts, per master skill, the distinct active
	// employees holding a live claim on any of its sub-skills. Search matches
	// master or sub-skill names.
	MasterSkillSummary(ctx context.Context, search string, page, pageSize int) ([]MasterSkillSummaryRow, int, error)
	EmployeesWithMasterSkill(ctx context.Context, masterSkillID uuid.UUID) (int, error)
	SubSkillBreakdown(ctx context.Context, masterSkillID uuid.UUID) ([]SubSkillBreakdownRow, error)
	SubSkillClaimStats(ctx context.Context, subSkillID uuid.UUID) ([]SubSkillClaimStats, error)
}

type PostgresDashboardRepository struct {
	db database.DB
}

func NewPostgresDashboardRepository(db database.DB) *PostgresDashboardRepository {
	return &PostgresDashboardRepository{db: db}
}

func (r *PostgresDashboardRepository) CountActiveEmployees(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE is_active`).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresDashboardRepository) MasterSkillSummary(ctx context.Context, search string, page, pageSize int) ([]MasterSkillSummaryRow, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		args = append(args, "%"+search+"%")
		where = ` WHERE ms.name ILIKE $1 OR ss.name ILIKE $1`
	}

	base := `FROM master_skills ms
		 LEFT JOIN sub_skills ss ON ss.master_skill_id = ms.id
		 LEFT JOIN employee_skills es ON es.subskill_id = ss.id
		 LEFT JOIN employees e ON e.id = es.employee_id AND e.is_active` + where + `
		 GROUP BY ms.id, ms.name`

	var total int
	countQ := `SELECT COUNT(*) FROM (SELECT ms.id ` + base + `) grouped`
	if err := r.db.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, (page-1)*pageSize, pageSize)
	q := `SELECT ms.id, ms.name, COUNT(DISTINCT e.id) ` + base +
		fmt.Sprintf(` ORDER BY ms.name ASC OFFSET $%d LIMIT $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]MasterSkillSummaryRow, 0)
	for rows.Next() {
		var s MasterSkillSummaryRow
		if err := rows.Scan(&s.ID, &s.SkillName, &s.EmployeeCount); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresDashboardRepository) EmployeesWithMasterSkill(ctx context.Context, masterSkillID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(DISTINCT es.employee_id)
		 FROM employee_skills es
		 JOIN sub_skills ss ON ss.id = es.subskill_id
		 WHERE ss.master_skill_id = $1`,
		masterSkillID,
	).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresDashboardRepository) SubSkillBreakdown(ctx context.Context, masterSkillID uuid.UUID) ([]SubSkillBreakdownRow, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT ss.id, ss.name, COUNT(DISTINCT es.employee_id)
		 FROM sub_skills ss
		 LEFT JOIN employee_skills es ON es.subskill_id = ss.id
		 WHERE ss.master_skill_id = $1
		 GROUP BY ss.id, ss.name
		 ORDER BY ss.name ASC`,
		masterSkillID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SubSkillBreakdownRow, 0)
	for rows.Next() {
		var s SubSkillBreakdownRow
		if err := rows.Scan(&s.SubSkillID, &s.SubSkillName, &s.EmployeeCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDashboardRepository) SubSkillClaimStats(ctx context.Context, subSkillID uuid.UUID) ([]SubSkillClaimStats, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT experience, proficiency, certification IS NOT NULL
		 FROM employee_skills
		 WHERE subskill_id = $1`,
		subSkillID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SubSkillClaimStats, 0)
	for rows.Next() {
		var s SubSkillClaimStats
		if err := rows.Scan(&s.Experience, &s.Proficiency, &s.HasCertification); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
