package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-matrix/internal/domain/approval"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

func newDecisionFixture(t *testing.T, claim repository.Claim) (*Approval, *fakeDecisionStore, repository.Employee) {
	t.Helper()

	approver := repository.Employee{ID: uuid.New(), Name: "Mina", Email: "mina@corp.test", IsApprover: true, IsActive: true}
	if claim.ApproverID == nil {
		claim.ApproverID = &approver.ID
	}

	store := &fakeDecisionStore{claim: claim}
	uc := NewApprovalUsecase(
		&fakeDecisionRunner{store: store},
		newFakeClaimRepo(claim),
		newFakeHistoryRepo(),
		newFakeEmployeeRepo(approver),
	)
	return uc, store, approver
}

func pendingClaim(approverID *uuid.UUID) repository.Claim {
	return repository.Claim{
		ID:          uuid.New(),
		EmployeeID:  uuid.New(),
		SubSkillID:  uuid.New(),
		Experience:  24,
		Proficiency: 3,
		Status:      approval.StatusPending,
		ApproverID:  approverID,
		CreatedAt:   time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestDecideApproveKeepsValuesAndRecordsHistory(t *testing.T) {
	claim := pendingClaim(nil)
	uc, store, approver := newDecisionFixture(t, claim)

	override := 5
	comments := "solid work"
	res, err := uc.Decide(context.Background(), approver.ID, claim.ID, DecisionInput{
		Action:      "approve",
		Proficiency: &override,
		Comments:    &comments,
	})
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}

	if res.Status != approval.StatusApproved {
		t.Fatalf("status = %s, want APPROVED", res.Status)
	}
	if res.ClaimDeleted {
		t.Fatalf("claim should not be deleted on approval")
	}
	if store.updated == nil {
		t.Fatalf("live claim was not updated")
	}
	if store.updated.Status != approval.StatusApproved {
		t.Errorf("live status = %s, want APPROVED", store.updated.Status)
	}
	if store.updated.Proficiency != override {
		t.Errorf("live proficiency = %d, want manager override %d", store.updated.Proficiency, override)
	}

	if len(store.appended) != 1 {
		t.Fatalf("appended %d history entries, want 1", len(store.appended))
	}
	h := store.appended[0]
	if h.Proficiency != 3 {
		t.Errorf("history proficiency = %d, want pre-decision value 3", h.Proficiency)
	}
	if h.ManagerProficiency == nil || *h.ManagerProficiency != override {
		t.Errorf("history manager proficiency = %v, want %d", h.ManagerProficiency, override)
	}
	if h.ApprovalStatus != approval.StatusApproved {
		t.Errorf("history status = %s, want APPROVED", h.ApprovalStatus)
	}
	if h.ApproverID == nil || *h.ApproverID != approver.ID {
		t.Errorf("history approver = %v, want %s", h.ApproverID, approver.ID)
	}
}

func TestDecideRejectRollsBackToLastApprovedState(t *testing.T) {
	claim := pendingClaim(nil)
	claim.Experience = 40
	claim.Proficiency = 2
	uc, store, approver := newDecisionFixture(t, claim)

	// The claim was approved once before: submitted at proficiency 4, and the
	// reviewer overrode it to 5. The approved live state carried the override.
	prevApprover := uuid.New()
	override := 5
	approvedAt := time.Date(2025, 11, 2, 14, 0, 0, 0, time.UTC)
	store.latest = &repository.HistoryEntry{
		ID:                 uuid.New(),
		ClaimID:            claim.ID,
		EmployeeID:         claim.EmployeeID,
		SubSkillID:         claim.SubSkillID,
		Experience:         3,
		Proficiency:        4,
		ManagerProficiency: &override,
		ApprovalStatus:     approval.StatusApproved,
		ApproverID:         &prevApprover,
		CreatedAt:          approvedAt,
	}

	res, err := uc.Decide(context.Background(), approver.ID, claim.ID, DecisionInput{Action: "reject"})
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}

	if res.ClaimDeleted {
		t.Fatalf("claim with approved history must be rolled back, not deleted")
	}
	if store.updated == nil {
		t.Fatalf("live claim was not restored")
	}
	restored := store.updated
	if restored.Experience != 3 {
		t.Errorf("restored experience = %v, want 3", restored.Experience)
	}
	if restored.Proficiency != 5 {
		t.Errorf("restored proficiency = %d, want approved override 5", restored.Proficiency)
	}
	if restored.Status != approval.StatusApproved {
		t.Errorf("restored status = %s, want APPROVED", restored.Status)
	}
	if restored.ApproverID == nil || *restored.ApproverID != prevApprover {
		t.Errorf("restored approver = %v, want %s", restored.ApproverID, prevApprover)
	}
	if !restored.CreatedAt.Equal(approvedAt) {
		t.Errorf("restored created_at = %v, want %v", restored.CreatedAt, approvedAt)
	}

	if len(store.appended) != 1 {
		t.Fatalf("appended %d history entries, want 1", len(store.appended))
	}
	h := store.appended[0]
	if h.ApprovalStatus != approval.StatusRejected {
		t.Errorf("history status = %s, want REJECTED", h.ApprovalStatus)
	}
	if h.Experience != 40 || h.Proficiency != 2 {
		t.Errorf("history carries %v/%d, want rejected submission 40/2", h.Experience, h.Proficiency)
	}
}

func TestDecideRejectNeverApprovedDeletesClaim(t *testing.T) {
	claim := pendingClaim(nil)
	uc, store, approver := newDecisionFixture(t, claim)

	res, err := uc.Decide(context.Background(), approver.ID, claim.ID, DecisionInput{Action: "reject"})
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}

	if !res.ClaimDeleted {
		t.Fatalf("never-approved claim must be deleted on rejection")
	}
	if store.updated != nil {
		t.Fatalf("live claim must not be updated when deleted")
	}
	if len(store.appended) != 1 {
		t.Fatalf("rejection must still append history, got %d entries", len(store.appended))
	}
	if store.appended[0].ApprovalStatus != approval.StatusRejected {
		t.Errorf("history status = %s, want REJECTED", store.appended[0].ApprovalStatus)
	}
}

func TestDecideRejectsNonPendingClaim(t *testing.T) {
	claim := pendingClaim(nil)
	claim.Status = approval.StatusApproved
	uc, _, approver := newDecisionFixture(t, claim)

	_, err := uc.Decide(context.Background(), approver.ID, claim.ID, DecisionInput{Action: "approve"})
	if !errors.Is(err, ErrClaimNotPending) {
		t.Fatalf("err = %v, want ErrClaimNotPending", err)
	}
}

func TestDecideRejectsWrongApprover(t *testing.T) {
	other := uuid.New()
	claim := pendingClaim(&other)
	uc, _, approver := newDecisionFixture(t, claim)

	_, err := uc.Decide(context.Background(), approver.ID, claim.ID, DecisionInput{Action: "approve"})
	if !errors.Is(err, ErrNotApprover) {
		t.Fatalf("err = %v, want ErrNotApprover", err)
	}
}

func TestDecideRejectsUnknownAction(t *testing.T) {
	claim := pendingClaim(nil)
	uc, _, approver := newDecisionFixture(t, claim)

	_, err := uc.Decide(context.Background(), approver.ID, claim.ID, DecisionInput{Action: "escalate"})
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("err = %v, want ErrInvalidAction", err)
	}
}

func TestDecideRejectsNonApproverCaller(t *testing.T) {
	regular := repository.Employee{ID: uuid.New(), IsApprover: false, IsActive: true}
	claim := pendingClaim(&regular.ID)

	uc := NewApprovalUsecase(
		&fakeDecisionRunner{store: &fakeDecisionStore{claim: claim}},
		newFakeClaimRepo(claim),
		newFakeHistoryRepo(),
		newFakeEmployeeRepo(regular),
	)

	_, err := uc.Decide(context.Background(), regular.ID, claim.ID, DecisionInput{Action: "approve"})
	if !errors.Is(err, ErrNotApprover) {
		t.Fatalf("err = %v, want ErrNotApprover", err)
	}
}

func TestDecideClaimNotFound(t *testing.T) {
	claim := pendingClaim(nil)
	uc, store, approver := newDecisionFixture(t, claim)
	store.claimErr = repository.ErrClaimNotFound

	_, err := uc.Decide(context.Background(), approver.ID, uuid.New(), DecisionInput{Action: "approve"})
	if !errors.Is(err, ErrClaimNotFound) {
		t.Fatalf("err = %v, want ErrClaimNotFound", err)
	}
}
