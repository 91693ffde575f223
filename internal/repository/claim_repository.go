package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/approval"

	"github.com/google/uuid"
)

var ErrClaimNotFound = errors.New("employee skill claim not found")

// Claim is one live employee-skill record: the employee's current submission
// for a single sub-skill.
type Claim struct {
	ID                     uuid.UUID
	EmployeeID             uuid.UUID
	SubSkillID             uuid.UUID
	Experience             float64
	Proficiency            int
	Certification          *string
	CertificationCreatedOn *time.Time
	CertificationExpiresOn *time.Time
	ManagerComments        *string
	Status                 approval.Status
	ApproverID             *uuid.UUID
	CreatedAt              time.Time
}

// ReviewFilter narrows pending/history listings. All set fields are combined
// conjunctively.
type ReviewFilter struct {
	EmployeeName     string
	SkillName        string
	SubSkillName     string
	HasCertification *bool
	MinExperience    *float64

	Page     int
	PageSize int
}

// ReviewRecord is a claim joined with the names a reviewer sees.
type ReviewRecord struct {
	Claim
	EmployeeName    string
	EmployeeCode    string
	MasterSkillName string
	SubSkillName    string
}

// ClaimSummary is one row of an employee's own skill listing.
type ClaimSummary struct {
	ID              uuid.UUID
	SubSkillID      uuid.UUID
	SubSkillName    string
	MasterSkillID   uuid.UUID
	MasterSkillName string
	Experience      float64
	Proficiency     int
	Certification   *string
	ManagerComments *string
	Status          approval.Status
	CreatedAt       time.Time
}

type ClaimRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (Claim, error)
	FindByEmployeeAndSubSkill(ctx context.Context, employeeID, subSkillID uuid.UUID) (Claim, error)
	Create(ctx context.Context, c Claim) (Claim, error)
	// Resubmit overwrites the employee-editable fields and starts a new review
	// cycle: status back to PENDING, manager comments cleared, approver
	// re-snapshotted.
	Resubmit(ctx context.Context, c Claim) error
	ListPending(ctx context.Context, approverID uuid.UUID, f ReviewFilter) ([]ReviewRecord, int, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, status *approval.Status) ([]ClaimSummary, error)
}

type PostgresClaimRepository struct {
	db database.DB
}

func NewPostgresClaimRepository(db database.DB) *PostgresClaimRepository {
	return &PostgresClaimRepository{db: db}
}

const claimColumns = `id, employee_id, subskill_id, experience, proficiency, certification,
	certification_created_on, certification_expires_on, manager_comments, status, approver_id, created_at`

func scanClaim(row database.Row) (Claim, error) {
	var c Claim
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.SubSkillID, &c.Experience, &c.Proficiency,
		&c.Certification, &c.CertificationCreatedOn, &c.CertificationExpiresOn,
		&c.ManagerComments, &c.Status, &c.ApproverID, &c.CreatedAt,
	)
	return c, err
}

func (r *PostgresClaimRepository) FindByID(ctx context.Context, id uuid.UUID) (Claim, error) {
	c, err := scanClaim(r.db.QueryRow(ctx, `SELECT `+claimColumns+` FROM employee_skills WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return Claim{}, ErrClaimNotFound
		}
		return Claim{}, err
	}
	return c, nil
}

func (r *PostgresClaimRepository) FindByEmployeeAndSubSkill(ctx context.Context, employeeID, subSkillID uuid.UUID) (Claim, error) {
	c, err := scanClaim(r.db.QueryRow(
		ctx,
		`SELECT `+claimColumns+` FROM employee_skills WHERE employee_id = $1 AND subskill_id = $2`,
		employeeID, subSkillID,
	))
	if err != nil {
		if isNoRows(err) {
			return Claim{}, ErrClaimNotFound
		}
		return Claim{}, err
	}
	return c, nil
}

func (r *PostgresClaimRepository) Create(ctx context.Context, c Claim) (Claim, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO employee_skills
		 (id, employee_id, subskill_id, experience, proficiency, certification,
		  certification_created_on, certification_expires_on, manager_comments, status, approver_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.EmployeeID, c.SubSkillID, c.Experience, c.Proficiency, c.Certification,
		c.CertificationCreatedOn, c.CertificationExpiresOn, c.ManagerComments, c.Status, c.ApproverID, c.CreatedAt,
	)
	if err != nil {
		return Claim{}, err
	}
	return c, nil
}

func (r *PostgresClaimRepository) Resubmit(ctx context.Context, c Claim) error {
	affected, err := r.db.Exec(
		ctx,
		`UPDATE employee_skills
		 SET experience = $2, proficiency = $3, certification = $4,
		     certification_created_on = $5, certification_expires_on = $6,
		     manager_comments = NULL, status = $7, approver_id = $8
		 WHERE id = $1`,
		c.ID, c.Experience, c.Proficiency, c.Certification,
		c.CertificationCreatedOn, c.CertificationExpiresOn,
		approval.StatusPending, c.ApproverID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClaimNotFound
	}
	return nil
}

func (r *PostgresClaimRepository) ListPending(ctx context.Context, approverID uuid.UUID, f ReviewFilter) ([]ReviewRecord, int, error) {
	where, args := buildReviewWhere(
		[]string{"es.status = 'PENDING'", "es.approver_id = $1"},
		[]any{approverID},
		f,
		"es.experience", "es.certification",
	)

	var total int
	countQ := `SELECT COUNT(*)
		 FROM employee_skills es
		 JOIN employees e ON e.id = es.employee_id
		 JOIN sub_skills ss ON ss.id = es.subskill_id
		 JOIN master_skills ms ON ms.id = ss.master_skill_id
		 WHERE ` + where
	if err := r.db.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, (f.Page-1)*f.PageSize, f.PageSize)
	q := `SELECT es.id, es.employee_id, es.subskill_id, es.experience, es.proficiency, es.certification,
		es.certification_created_on, es.certification_expires_on, es.manager_comments, es.status, es.approver_id, es.created_at,
		e.name, e.emp_id, ms.name, ss.name
		 FROM employee_skills es
		 JOIN employees e ON e.id = es.employee_id
		 JOIN sub_skills ss ON ss.id = es.subskill_id
		 JOIN master_skills ms ON ms.id = ss.master_skill_id
		 WHERE ` + where + fmt.Sprintf(` ORDER BY es.created_at DESC OFFSET $%d LIMIT $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]ReviewRecord, 0)
	for rows.Next() {
		var rec ReviewRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.SubSkillID, &rec.Experience, &rec.Proficiency, &rec.Certification,
			&rec.CertificationCreatedOn, &rec.CertificationExpiresOn, &rec.ManagerComments, &rec.Status, &rec.ApproverID, &rec.CreatedAt,
			&rec.EmployeeName, &rec.EmployeeCode, &rec.MasterSkillName, &rec.SubSkillName,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresClaimRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, status *approval.Status) ([]ClaimSummary, error) {
	q := `SELECT es.id, es.subskill_id, ss.name, ms.id, ms.name,
		es.experience, es.proficiency, es.certification, es.manager_comments, es.status, es.created_at
		 FROM employee_skills es
		 JOIN sub_skills ss ON ss.id = es.subskill_id
		 JOIN master_skills ms ON ms.id = ss.master_skill_id
		 WHERE es.employee_id = $1`
	args := []any{employeeID}
	if status != nil {
		q += ` AND es.status = $2`
		args = append(args, *status)
	}
	q += ` ORDER BY ms.name ASC, ss.name ASC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ClaimSummary, 0)
	for rows.Next() {
		var s ClaimSummary
		if err := rows.Scan(
			&s.ID, &s.SubSkillID, &s.SubSkillName, &s.MasterSkillID, &s.MasterSkillName,
			&s.Experience, &s.Proficiency, &s.Certification, &s.ManagerComments, &s.Status, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// buildReviewWhere appends the conjunctive review filters onto base conditions,
// continuing the positional argument numbering.
func buildReviewWhere(conds []string, args []any, f ReviewFilter, expCol, certCol string) (string, []any) {
	if f.EmployeeName != "" {
		args = append(args, "%"+f.EmployeeName+"%")
		conds = append(conds, fmt.Sprintf("e.name ILIKE $%d", len(args)))
	}
	if f.SkillName != "" {
		args = append(args, "%"+f.SkillName+"%")
		conds = append(conds, fmt.Sprintf("ms.name ILIKE $%d", len(args)))
	}
	if f.SubSkillName != "" {
		args = append(args, "%"+f.SubSkillName+"%")
		conds = append(conds, fmt.Sprintf("ss.name ILIKE $%d", len(args)))
	}
	if f.HasCertification != nil {
		if *f.HasCertification {
			conds = append(conds, certCol+" IS NOT NULL")
		} else {
			conds = append(conds, certCol+" IS NULL")
		}
	}
	if f.MinExperience != nil {
		args = append(args, *f.MinExperience)
		conds = append(conds, fmt.Sprintf("%s >= $%d", expCol, len(args)))
	}
	return strings.Join(conds, " AND "), args
}
