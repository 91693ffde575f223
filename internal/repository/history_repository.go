package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/approval"

	"github.com/google/uuid"
)

var ErrHistoryNotFound = errors.New("skill history entry not found")

// HistoryEntry is one immutable audit record of an approve/reject decision. The
// experience/proficiency/certification fields capture the employee-submitted
// values as they were before the decision mutated the live claim.
type HistoryEntry struct {
	ID                 uuid.UUID
	ClaimID            uuid.UUID
	EmployeeID         uuid.UUID
	SubSkillID         uuid.UUID
	Experience         float64
	Proficiency        int
	Certification      *string
	ManagerProficiency *int
	ManagerComments    *string
	ApprovalStatus     approval.Status
	ApproverID         *uuid.UUID
	UpdatedBy          *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HistoryRecord joins a history entry with reviewer-facing names.
type HistoryRecord struct {
	HistoryEntry
	EmployeeName    string
	EmployeeCode    string
	MasterSkillName string
	SubSkillName    string
}

type HistoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (HistoryEntry, error)
	// ListForApprover reads decisions for claims whose employee currently
	// reports to the given approver, not the approver recorded at decision
	// time.
	ListForApprover(ctx context.Context, approverID uuid.UUID, status approval.Status, f ReviewFilter) ([]HistoryRecord, int, error)
	ListRejectedByEmployee(ctx context.Context, employeeID uuid.UUID) ([]HistoryRecord, error)
}

type PostgresHistoryRepository struct {
	db database.DB
}

func NewPostgresHistoryRepository(db database.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

const historyColumns = `h.history_id, h.emp_skill_id, h.employee_id, h.subskill_id, h.experience, h.proficiency,
	h.certification, h.manager_proficiency, h.manager_comments, h.approval_status, h.approver_id, h.updated_by,
	h.created_at, h.updated_at`

func scanHistoryEntry(row database.Row) (HistoryEntry, error) {
	var h HistoryEntry
	err := row.Scan(
		&h.ID, &h.ClaimID, &h.EmployeeID, &h.SubSkillID, &h.Experience, &h.Proficiency,
		&h.Certification, &h.ManagerProficiency, &h.ManagerComments, &h.ApprovalStatus,
		&h.ApproverID, &h.UpdatedBy, &h.CreatedAt, &h.UpdatedAt,
	)
	return h, err
}

func (r *PostgresHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (HistoryEntry, error) {
	h, err := scanHistoryEntry(r.db.QueryRow(
		ctx,
		`SELECT `+historyColumns+` FROM employee_skill_history h WHERE h.history_id = $1`,
		id,
	))
	if err != nil {
		if isNoRows(err) {
			return HistoryEntry{}, ErrHistoryNotFound
		}
		return HistoryEntry{}, err
	}
	return h, nil
}

func (r *PostgresHistoryRepository) ListForApprover(ctx context.Context, approverID uuid.UUID, status approval.Status, f ReviewFilter) ([]HistoryRecord, int, error) {
	where, args := buildReviewWhere(
		[]string{"h.approval_status = $1", "e.approver_id = $2"},
		[]any{status, approverID},
		f,
		"h.experience", "h.certification",
	)

	from := ` FROM employee_skill_history h
		 JOIN employees e ON e.id = h.employee_id
		 JOIN sub_skills ss ON ss.id = h.subskill_id
		 JOIN master_skills ms ON ms.id = ss.master_skill_id
		 WHERE `

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, (f.Page-1)*f.PageSize, f.PageSize)
	q := `SELECT ` + historyColumns + `, e.name, e.emp_id, ms.name, ss.name` + from + where +
		fmt.Sprintf(` ORDER BY h.created_at DESC OFFSET $%d LIMIT $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]HistoryRecord, 0)
	for rows.Next() {
		var rec HistoryRecord
		if err := rows.Scan(
			&rec.ID, &rec.ClaimID, &rec.EmployeeID, &rec.SubSkillID, &rec.Experience, &rec.Proficiency,
			&rec.Certification, &rec.ManagerProficiency, &rec.ManagerComments, &rec.ApprovalStatus,
			&rec.ApproverID, &rec.UpdatedBy, &rec.CreatedAt, &rec.UpdatedAt,
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

func (r *PostgresHistoryRepository) ListRejectedByEmployee(ctx context.Context, employeeID uuid.UUID) ([]HistoryRecord, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+historyColumns+`, e.name, e.emp_id, ms.name, ss.name
		 FROM employee_skill_history h
		 JOIN employees e ON e.id = h.employee_id
		 JOIN sub_skills ss ON ss.id = h.subskill_id
		 JOIN master_skills ms ON ms.id = ss.master_skill_id
		 WHERE h.employee_id = $1 AND h.approval_status = 'REJECTED'
		 ORDER BY ms.name ASC, ss.name ASC, h.created_at DESC`,
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]HistoryRecord, 0)
	for rows.Next() {
		var rec HistoryRecord
		if err := rows.Scan(
			&rec.ID, &rec.ClaimID, &rec.EmployeeID, &rec.SubSkillID, &rec.Experience, &rec.Proficiency,
			&rec.Certification, &rec.ManagerProficiency, &rec.ManagerComments, &rec.ApprovalStatus,
			&rec.ApproverID, &rec.UpdatedBy, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName, &rec.EmployeeCode, &rec.MasterSkillName, &rec.SubSkillName,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
