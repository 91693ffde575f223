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
	ErrInternal       = errors.New("internal server error")
	ErrInvalidInput   = errors.New("invalid input")
	ErrRecordNotFound = errors.New("skill record not found")
	ErrNotOwner       = errors.New("record belongs to another employee")
)

const (
	RecordTypeClaim   = "claim"
	RecordTypeHistory = "history"
)

type SubmissionItem struct {
	SubSkillName           string
	Experience             float64
	Proficiency            int
	Certification          *string
	CertificationCreatedOn *time.Time
	CertificationExpiresOn *time.Time
}

// SubmissionInput is one batch of claims under a single master skill. Skill
// names are resolved against the taxonomy, creating entries that do not exist
// yet.
type SubmissionInput struct {
	SkillName string
	SubSkills []SubmissionItem
}

// SkippedItem reports one submission entry that was not created and why.
type SkippedItem struct {
	SubSkillName string
	Reason       string
}

type SubmissionResult struct {
	Created []repository.Claim
	Skipped []SkippedItem
}

type ClaimUpdateInput struct {
	RecordType             string
	RecordID               uuid.UUID
	Experience             float64
	Proficiency            int
	Certification          *string
	CertificationCreatedOn *time.Time
	CertificationExpiresOn *time.Time
}

type SubmissionUsecase interface {
	Submit(ctx context.Context, employeeID uuid.UUID, in SubmissionInput) (SubmissionResult, error)
	UpdateRecord(ctx context.Context, employeeID uuid.UUID, in ClaimUpdateInput) (repository.Claim, error)
	MySkills(ctx context.Context, employeeID uuid.UUID, status string) ([]repository.ClaimSummary, error)
}

type Submission struct {
	claims    repository.ClaimRepository
	history   repository.HistoryRepository
	employees repository.EmployeeRepository
	taxonomy  TaxonomyUsecase
}

func NewSubmissionUsecase(
	claims repository.ClaimRepository,
	history repository.HistoryRepository,
	employees repository.EmployeeRepository,
	taxonomy TaxonomyUsecase,
) *Submission {
	return &Submission{claims: claims, history: history, employees: employees, taxonomy: taxonomy}
}

// Submit records a batch of skill claims for one employee. The master skill
// and every sub-skill are resolved by name, creating taxonomy entries on the
// fly, so employees can report skills nobody has claimed before. Entries that
// duplicate an existing live claim are skipped and reported rather than
// failing the batch. Every created claim snapshots the employee's approver at
// submission time.
func (u *Submission) Submit(ctx context.Context, employeeID uuid.UUID, in SubmissionInput) (SubmissionResult, error) {
	if NormalizeSkillName(in.SkillName) == "" || len(in.SubSkills) == 0 {
		return SubmissionResult{}, ErrInvalidInput
	}
	for _, it := range in.SubSkills {
		if NormalizeSkillName(it.SubSkillName) == "" || it.Experience < 0 || !isValidProficiency(it.Proficiency) {
			return SubmissionResult{}, ErrInvalidInput
		}
	}

	emp, err := u.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return SubmissionResult{}, ErrEmployeeNotFound
		}
		return SubmissionResult{}, ErrInternal
	}

	master, _, err := u.taxonomy.EnsureMasterSkill(ctx, in.SkillName)
	if err != nil {
		return SubmissionResult{}, err
	}

	res := SubmissionResult{Created: make([]repository.Claim, 0, len(in.SubSkills)), Skipped: make([]SkippedItem, 0)}
	seen := make(map[string]bool, len(in.SubSkills))
	for _, it := range in.SubSkills {
		name := NormalizeSkillName(it.SubSkillName)
		if seen[name] {
			res.Skipped = append(res.Skipped, SkippedItem{SubSkillName: name, Reason: "duplicated within request"})
			continue
		}
		seen[name] = true

		sub, _, err := u.taxonomy.EnsureSubSkill(ctx, master.ID, it.SubSkillName)
		if err != nil {
			return SubmissionResult{}, err
		}

		_, err = u.claims.FindByEmployeeAndSubSkill(ctx, employeeID, sub.ID)
		switch {
		case err == nil:
			res.Skipped = append(res.Skipped, SkippedItem{SubSkillName: name, Reason: "skill already submitted"})
			continue
		case errors.Is(err, repository.ErrClaimNotFound):
		default:
			return SubmissionResult{}, ErrInternal
		}

		created, err := u.claims.Create(ctx, repository.Claim{
			EmployeeID:             emp.ID,
			SubSkillID:             sub.ID,
			Experience:             it.Experience,
			Proficiency:            it.Proficiency,
			Certification:          it.Certification,
			CertificationCreatedOn: it.CertificationCreatedOn,
			CertificationExpiresOn: it.CertificationExpiresOn,
			Status:                 approval.StatusPending,
			ApproverID:             emp.ApproverID,
		})
		if err != nil {
			return SubmissionResult{}, ErrInternal
		}
		res.Created = append(res.Created, created)
	}
	return res, nil
}

// UpdateRecord edits a skill record identified by its type. A live claim is
// resubmitted with the new values and goes back to PENDING review. A rejected
// history entry whose live claim was deleted gets a fresh claim instead, since
// there is no live row left to edit.
func (u *Submission) UpdateRecord(ctx context.Context, employeeID uuid.UUID, in ClaimUpdateInput) (repository.Claim, error) {
	if in.Experience < 0 || !isValidProficiency(in.Proficiency) {
		return repository.Claim{}, ErrInvalidInput
	}

	emp, err := u.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return repository.Claim{}, ErrEmployeeNotFound
		}
		return repository.Claim{}, ErrInternal
	}

	switch in.RecordType {
	case RecordTypeClaim:
		return u.resubmitClaim(ctx, emp, in)
	case RecordTypeHistory:
		return u.resubmitFromHistory(ctx, emp, in)
	default:
		return repository.Claim{}, ErrInvalidInput
	}
}

func (u *Submission) resubmitClaim(ctx context.Context, emp repository.Employee, in ClaimUpdateInput) (repository.Claim, error) {
	claim, err := u.claims.FindByID(ctx, in.RecordID)
	if err != nil {
		if errors.Is(err, repository.ErrClaimNotFound) {
			return repository.Claim{}, ErrRecordNotFound
		}
		return repository.Claim{}, ErrInternal
	}
	if claim.EmployeeID != emp.ID {
		return repository.Claim{}, ErrNotOwner
	}

	claim.Experience = in.Experience
	claim.Proficiency = in.Proficiency
	claim.Certification = in.Certification
	claim.CertificationCreatedOn = in.CertificationCreatedOn
	claim.CertificationExpiresOn = in.CertificationExpiresOn
	claim.ManagerComments = nil
	claim.Status = approval.StatusPending
	claim.ApproverID = emp.ApproverID

	if err := u.claims.Resubmit(ctx, claim); err != nil {
		if errors.Is(err, repository.ErrClaimNotFound) {
			return repository.Claim{}, ErrRecordNotFound
		}
		return repository.Claim{}, ErrInternal
	}
	return claim, nil
}

func (u *Submission) resubmitFromHistory(ctx context.Context, emp repository.Employee, in ClaimUpdateInput) (repository.Claim, error) {
	entry, err := u.history.FindByID(ctx, in.RecordID)
	if err != nil {
		if errors.Is(err, repository.ErrHistoryNotFound) {
			return repository.Claim{}, ErrRecordNotFound
		}
		return repository.Claim{}, ErrInternal
	}
	if entry.EmployeeID != emp.ID {
		return repository.Claim{}, ErrNotOwner
	}
	if entry.ApprovalStatus != approval.StatusRejected {
		return repository.Claim{}, ErrInvalidInput
	}

	// Rejection of a never-approved claim deletes the live row. If a live
	// claim for the sub-skill exists again, route the edit there instead of
	// violating the one-claim-per-sub-skill constraint.
	existing, err := u.claims.FindByEmployeeAndSubSkill(ctx, emp.ID, entry.SubSkillID)
	switch {
	case err == nil:
		in.RecordID = existing.ID
		return u.resubmitClaim(ctx, emp, in)
	case errors.Is(err, repository.ErrClaimNotFound):
	default:
		return repository.Claim{}, ErrInternal
	}

	created, err := u.claims.Create(ctx, repository.Claim{
		EmployeeID:             emp.ID,
		SubSkillID:             entry.SubSkillID,
		Experience:             in.Experience,
		Proficiency:            in.Proficiency,
		Certification:          in.Certification,
		CertificationCreatedOn: in.CertificationCreatedOn,
		CertificationExpiresOn: in.CertificationExpiresOn,
		Status:                 approval.StatusPending,
		ApproverID:             emp.ApproverID,
	})
	if err != nil {
		return repository.Claim{}, ErrInternal
	}
	return created, nil
}

// MySkills lists the employee's own records. The REJECTED view reads from
// history, because rejecting a never-approved claim removes the live row and
// history is the only place the rejection is still visible.
func (u *Submission) MySkills(ctx context.Context, employeeID uuid.UUID, status string) ([]repository.ClaimSummary, error) {
	if status == "" {
		out, err := u.claims.ListByEmployee(ctx, employeeID, nil)
		if err != nil {
			return nil, ErrInternal
		}
		return out, nil
	}

	st, ok := approval.ParseStatus(status)
	if !ok {
		return nil, ErrInvalidInput
	}
	if st == approval.StatusRejected {
		records, err := u.history.ListRejectedByEmployee(ctx, employeeID)
		if err != nil {
			return nil, ErrInternal
		}
		out := make([]repository.ClaimSummary, 0, len(records))
		for _, h := range records {
			out = append(out, repository.ClaimSummary{
				ID:              h.ID,
				SubSkillID:      h.SubSkillID,
				SubSkillName:    h.SubSkillName,
				MasterSkillName: h.MasterSkillName,
				Experience:      h.Experience,
				Proficiency:     h.Proficiency,
				Certification:   h.Certification,
				ManagerComments: h.ManagerComments,
				Status:          approval.StatusRejected,
				CreatedAt:       h.CreatedAt,
			})
		}
		return out, nil
	}

	out, err := u.claims.ListByEmployee(ctx, employeeID, &st)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func isValidProficiency(p int) bool {
	return p >= 1 && p <= 5
}
