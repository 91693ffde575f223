package repository

import (
	"context"
	"time"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/approval"

	"github.com/google/uuid"
)

// DecisionStore is the transactional surface of one approve/reject decision.
// All methods run inside the same database transaction; ClaimForUpdate takes a
// row lock so a concurrent decision on the same claim re-reads the committed
// status and fails the PENDING check.
type DecisionStore interface {
	ClaimForUpdate(ctx context.Context, id uuid.UUID) (Claim, error)
	UpdateClaim(ctx context.Context, c Claim) error
	DeleteClaim(ctx context.Context, id uuid.UUID) error
	AppendHistory(ctx context.Context, h HistoryEntry) (HistoryEntry, error)
	// LatestApprovedHistory returns the most recent APPROVED entry for the
	// claim, ordered by updated_at descending; ErrHistoryNotFound when the
	// claim was never approved.
	LatestApprovedHistory(ctx context.Context, claimID uuid.UUID) (HistoryEntry, error)
}

// DecisionRunner executes one decision inside a transaction.
type DecisionRunner interface {
	InTx(ctx context.Context, fn func(DecisionStore) error) error
}

type PostgresDecisionRunner struct {
	db database.DB
}

func NewPostgresDecisionRunner(db database.DB) *PostgresDecisionRunner {
	return &PostgresDecisionRunner{db: db}
}

func (r *PostgresDecisionRunner) InTx(ctx context.Context, fn func(DecisionStore) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := fn(txDecisionStore{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type txDecisionStore struct {
	tx database.Tx
}

func (s txDecisionStore) ClaimForUpdate(ctx context.Context, id uuid.UUID) (Claim, error) {
	c, err := scanClaim(s.tx.QueryRow(
		ctx,
		`SELECT `+claimColumns+` FROM employee_skills WHERE id = $1 FOR UPDATE`,
		id,
	))
	if err != nil {
		if isNoRows(err) {
			return Claim{}, ErrClaimNotFound
		}
		return Claim{}, err
	}
	return c, nil
}

func (s txDecisionStore) UpdateClaim(ctx context.Context, c Claim) error {
	affected, err := s.tx.Exec(
		ctx,
		`UPDATE employee_skills
		 SET experience = $2, proficiency = $3, certification = $4,
		     certification_created_on = $5, certification_expires_on = $6,
		     manager_comments = $7, status = $8, approver_id = $9, created_at = $10
		 WHERE id = $1`,
		c.ID, c.Experience, c.Proficiency, c.Certification,
		c.CertificationCreatedOn, c.CertificationExpiresOn,
		c.ManagerComments, c.Status, c.ApproverID, c.CreatedAt,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClaimNotFound
	}
	return nil
}

func (s txDecisionStore) DeleteClaim(ctx context.Context, id uuid.UUID) error {
	affected, err := s.tx.Exec(ctx, `DELETE FROM employee_skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClaimNotFound
	}
	return nil
}

func (s txDecisionStore) AppendHistory(ctx context.Context, h HistoryEntry) (HistoryEntry, error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	now := time.Now().UTC()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	if h.UpdatedAt.IsZero() {
		h.UpdatedAt = now
	}

	_, err := s.tx.Exec(
		ctx,
		`INSERT INTO employee_skill_history
		 (history_id, emp_skill_id, employee_id, subskill_id, experience, proficiency, certification,
		  manager_proficiency, manager_comments, approval_status, approver_id, updated_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		h.ID, h.ClaimID, h.EmployeeID, h.SubSkillID, h.Experience, h.Proficiency, h.Certification,
		h.ManagerProficiency, h.ManagerComments, h.ApprovalStatus, h.ApproverID, h.UpdatedBy, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return HistoryEntry{}, err
	}
	return h, nil
}

func (s txDecisionStore) LatestApprovedHistory(ctx context.Context, claimID uuid.UUID) (HistoryEntry, error) {
	h, err := scanHistoryEntry(s.tx.QueryRow(
		ctx,
		`SELECT `+historyColumns+` FROM employee_skill_history h
		 WHERE h.emp_skill_id = $1 AND h.approval_status = $2
		 ORDER BY h.updated_at DESC
		 LIMIT 1`,
		claimID, approval.StatusApproved,
	))
	if err != nil {
		if isNoRows(err) {
			return HistoryEntry{}, ErrHistoryNotFound
		}
		return HistoryEntry{}, err
	}
	return h, nil
}
