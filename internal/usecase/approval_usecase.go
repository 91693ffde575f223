package usecase

import (
	"context"
	"errors"
	"time"

	"skill-matrix/internal/domain/approval"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrClaimNotFound   = errors.New("skill claim not found")
	ErrClaimNotPending = errors.New("only pending claims can be decided")
	ErrInvalidAction   = errors.New("invalid decision action")
	ErrNotApprover     = errors.New("not an approver for this claim")
)

type DecisionInput struct {
	Action      string
	Proficiency *int
	Comments    *string
}

type DecisionResult struct {
	ClaimID      uuid.UUID
	Status       approval.Status
	ClaimDeleted bool
	HistoryID    uuid.UUID
	DecidedAt    time.Time
}

type PendingPage struct {
	Records []repository.ReviewRecord
	Total   int
}

type HistoryPage struct {
	Records []repository.HistoryRecord
	Total   int
}

type ApprovalUsecase interface {
	Decide(ctx context.Context, approverID, claimID uuid.UUID, in DecisionInput) (DecisionResult, error)
	ListPending(ctx context.Context, approverID uuid.UUID, f repository.ReviewFilter) (PendingPage, error)
	ListHistory(ctx context.Context, approverID uuid.UUID, status string, f repository.ReviewFilter) (HistoryPage, error)
}

type Approval struct {
	runner    repository.DecisionRunner
	claims    repository.ClaimRepository
	history   repository.HistoryRepository
	employees repository.EmployeeRepository
}

func NewApprovalUsecase(
	runner repository.DecisionRunner,
	claims repository.ClaimRepository,
	history repository.HistoryRepository,
	employees repository.EmployeeRepository,
) *Approval {
	return &Approval{runner: runner, claims: claims, history: history, employees: employees}
}

// Decide runs one approve/reject transition on a pending claim.
//
// Approving records the decision and keeps the edited values. Rejecting rolls
// the claim back to its most recently approved state; a claim that was never
// approved has nothing to fall back to and is deleted. Both paths append one
// immutable history entry carrying the values as submitted before the
// decision.
func (u *Approval) Decide(ctx context.Context, approverID, claimID uuid.UUID, in DecisionInput) (DecisionResult, error) {
	action, ok := approval.ParseAction(in.Action)
	if !ok {
		return DecisionResult{}, ErrInvalidAction
	}
	if in.Proficiency != nil && !isValidProficiency(*in.Proficiency) {
		return DecisionResult{}, ErrInvalidInput
	}

	reviewer, err := u.employees.FindByID(ctx, approverID)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return DecisionResult{}, ErrNotApprover
		}
		return DecisionResult{}, ErrInternal
	}
	if !reviewer.IsApprover {
		return DecisionResult{}, ErrNotApprover
	}

	var res DecisionResult
	err = u.runner.InTx(ctx, func(s repository.DecisionStore) error {
		claim, err := s.ClaimForUpdate(ctx, claimID)
		if err != nil {
			return err
		}
		if claim.Status != approval.StatusPending {
			return ErrClaimNotPending
		}
		if claim.ApproverID == nil || *claim.ApproverID != approverID {
			return ErrNotApprover
		}

		// Snapshot the employee-submitted values before the decision mutates
		// the live row; the history entry always carries these.
		entry := repository.HistoryEntry{
			ClaimID:            claim.ID,
			EmployeeID:         claim.EmployeeID,
			SubSkillID:         claim.SubSkillID,
			Experience:         claim.Experience,
			Proficiency:        claim.Proficiency,
			Certification:      claim.Certification,
			ManagerProficiency: in.Proficiency,
			ManagerComments:    in.Comments,
			ApproverID:         &reviewer.ID,
			UpdatedBy:          &reviewer.ID,
		}

		switch action {
		case approval.ActionApprove:
			claim.Status = approval.StatusApproved
			claim.ManagerComments = in.Comments
			if in.Proficiency != nil {
				claim.Proficiency = *in.Proficiency
			}
			claim.ApproverID = &reviewer.ID
			if err := s.UpdateClaim(ctx, claim); err != nil {
				return err
			}
			entry.ApprovalStatus = approval.StatusApproved
			res.Status = approval.StatusApproved

		case approval.ActionReject:
			last, err := s.LatestApprovedHistory(ctx, claim.ID)
			switch {
			case err == nil:
				restored := claim
				restored.Experience = last.Experience
				restored.Proficiency = last.Proficiency
				if last.ManagerProficiency != nil {
					// The approved live value was the reviewer's override, not
					// the employee's submission the history row captured.
					restored.Proficiency = *last.ManagerProficiency
				}
				restored.Certification = last.Certification
				restored.ManagerComments = last.ManagerComments
				restored.ApproverID = last.ApproverID
				restored.CreatedAt = last.CreatedAt
				restored.Status = approval.StatusApproved
				if err := s.UpdateClaim(ctx, restored); err != nil {
					return err
				}
				res.Status = approval.StatusApproved

			case errors.Is(err, repository.ErrHistoryNotFound):
				// Never approved: nothing to revert to.
				if err := s.DeleteClaim(ctx, claim.ID); err != nil {
					return err
				}
				res.ClaimDeleted = true
				res.Status = approval.StatusRejected

			default:
				return err
			}
			entry.ApprovalStatus = approval.StatusRejected
		}

		appended, err := s.AppendHistory(ctx, entry)
		if err != nil {
			return err
		}
		res.ClaimID = claim.ID
		res.HistoryID = appended.ID
		res.DecidedAt = appended.CreatedAt
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrClaimNotFound):
			return DecisionResult{}, ErrClaimNotFound
		case errors.Is(err, ErrClaimNotPending), errors.Is(err, ErrNotApprover):
			return DecisionResult{}, err
		default:
			return DecisionResult{}, ErrInternal
		}
	}

	return res, nil
}

func (u *Approval) ListPending(ctx context.Context, approverID uuid.UUID, f repository.ReviewFilter) (PendingPage, error) {
	if err := u.checkApprover(ctx, approverID); err != nil {
		return PendingPage{}, err
	}
	normalizeReviewFilter(&f)

	records, total, err := u.claims.ListPending(ctx, approverID, f)
	if err != nil {
		return PendingPage{}, ErrInternal
	}
	return PendingPage{Records: records, Total: total}, nil
}

func (u *Approval) ListHistory(ctx context.Context, approverID uuid.UUID, status string, f repository.ReviewFilter) (HistoryPage, error) {
	st, ok := approval.ParseStatus(status)
	if !ok || st == approval.StatusPending {
		return HistoryPage{}, ErrInvalidInput
	}
	if err := u.checkApprover(ctx, approverID); err != nil {
		return HistoryPage{}, err
	}
	normalizeReviewFilter(&f)

	records, total, err := u.history.ListForApprover(ctx, approverID, st, f)
	if err != nil {
		return HistoryPage{}, ErrInternal
	}
	return HistoryPage{Records: records, Total: total}, nil
}

func (u *Approval) checkApprover(ctx context.Context, approverID uuid.UUID) error {
	reviewer, err := u.employees.FindByID(ctx, approverID)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return ErrNotApprover
		}
		return ErrInternal
	}
	if !reviewer.IsApprover {
		return ErrNotApprover
	}
	return nil
}

func normalizeReviewFilter(f *repository.ReviewFilter) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 10
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
}
