package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-matrix/internal/domain/approval"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type submissionWorld struct {
	uc      *Submission
	claims  *fakeClaimRepo
	history *fakeHistoryRepo
	masters *fakeMasterSkillRepo
	subs    *fakeSubSkillRepo
	emp     repository.Employee
	master  repository.MasterSkill
	sub     repository.SubSkill
}

func submissionFixture(t *testing.T) submissionWorld {
	t.Helper()

	approverID := uuid.New()
	emp := repository.Employee{ID: uuid.New(), Name: "Dev", Email: "dev@corp.test", ApproverID: &approverID, IsActive: true}
	master := repository.MasterSkill{ID: uuid.New(), Name: "backend"}
	sub := repository.SubSkill{ID: uuid.New(), MasterSkillID: master.ID, Name: "go"}

	masters := newFakeMasterSkillRepo(master)
	subs := newFakeSubSkillRepo(sub)
	claims := newFakeClaimRepo()
	history := newFakeHistoryRepo()
	uc := NewSubmissionUsecase(claims, history, newFakeEmployeeRepo(emp), NewTaxonomyUsecase(masters, subs))
	return submissionWorld{uc: uc, claims: claims, history: history, masters: masters, subs: subs, emp: emp, master: master, sub: sub}
}

func TestSubmitCreatesPendingClaimWithApproverSnapshot(t *testing.T) {
	w := submissionFixture(t)

	res, err := w.uc.Submit(context.Background(), w.emp.ID, SubmissionInput{
		SkillName: "Backend",
		SubSkills: []SubmissionItem{{SubSkillName: "Go", Experience: 1.5, Proficiency: 4}},
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if len(res.Created) != 1 || len(res.Skipped) != 0 {
		t.Fatalf("created=%d skipped=%d, want 1/0", len(res.Created), len(res.Skipped))
	}
	c := res.Created[0]
	if c.SubSkillID != w.sub.ID {
		t.Errorf("claim resolved to sub-skill %s, want existing %s", c.SubSkillID, w.sub.ID)
	}
	if c.Status != approval.StatusPending {
		t.Errorf("status = %s, want PENDING", c.Status)
	}
	if c.ApproverID == nil || *c.ApproverID != *w.emp.ApproverID {
		t.Errorf("approver snapshot = %v, want %s", c.ApproverID, *w.emp.ApproverID)
	}
	if len(w.claims.created) != 1 {
		t.Errorf("repo created %d claims, want 1", len(w.claims.created))
	}
	if len(w.masters.masters) != 1 || len(w.subs.subs) != 1 {
		t.Errorf("taxonomy grew to %d/%d entries, existing names must not duplicate", len(w.masters.masters), len(w.subs.subs))
	}
}

func TestSubmitCreatesMissingTaxonomyEntries(t *testing.T) {
	w := submissionFixture(t)

	res, err := w.uc.Submit(context.Background(), w.emp.ID, SubmissionInput{
		SkillName: "Cloud",
		SubSkills: []SubmissionItem{{SubSkillName: "AWS", Experience: 2, Proficiency: 3}},
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if len(res.Created) != 1 {
		t.Fatalf("created = %d, want 1", len(res.Created))
	}

	cloud, err := w.masters.FindByName(context.Background(), "cloud")
	if err != nil {
		t.Fatal("master skill was not created from the submitted name")
	}
	aws, err := w.subs.FindByName(context.Background(), cloud.ID, "aws")
	if err != nil {
		t.Fatal("sub-skill was not created under the new master skill")
	}
	if res.Created[0].SubSkillID != aws.ID {
		t.Errorf("claim subskill = %s, want created %s", res.Created[0].SubSkillID, aws.ID)
	}
}

func TestSubmitSkipsExistingLiveClaim(t *testing.T) {
	w := submissionFixture(t)

	first := SubmissionInput{SkillName: "backend", SubSkills: []SubmissionItem{{SubSkillName: "go", Experience: 1.5, Proficiency: 4}}}
	if _, err := w.uc.Submit(context.Background(), w.emp.ID, first); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	res, err := w.uc.Submit(context.Background(), w.emp.ID, SubmissionInput{
		SkillName: "backend",
		SubSkills: []SubmissionItem{{SubSkillName: "GO", Experience: 2, Proficiency: 5}},
	})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if len(res.Created) != 0 {
		t.Fatalf("duplicate submit created %d claims, want 0", len(res.Created))
	}
	if len(res.Skipped) != 1 || res.Skipped[0].SubSkillName != "go" {
		t.Fatalf("skipped = %+v, want one entry for go", res.Skipped)
	}
}

func TestSubmitSkipsNameRepeatedWithinRequest(t *testing.T) {
	w := submissionFixture(t)

	res, err := w.uc.Submit(context.Background(), w.emp.ID, SubmissionInput{
		SkillName: "backend",
		SubSkills: []SubmissionItem{
			{SubSkillName: "Kafka", Experience: 1, Proficiency: 2},
			{SubSkillName: "  kafka ", Experience: 3, Proficiency: 4},
		},
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if len(res.Created) != 1 {
		t.Errorf("created = %d, want 1", len(res.Created))
	}
	if len(res.Skipped) != 1 {
		t.Errorf("skipped = %d, want 1", len(res.Skipped))
	}
}

func TestSubmitRejectsInvalidProficiency(t *testing.T) {
	w := submissionFixture(t)

	_, err := w.uc.Submit(context.Background(), w.emp.ID, SubmissionInput{
		SkillName: "backend",
		SubSkills: []SubmissionItem{{SubSkillName: "go", Experience: 1.5, Proficiency: 6}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSubmitRejectsBlankSkillName(t *testing.T) {
	w := submissionFixture(t)

	_, err := w.uc.Submit(context.Background(), w.emp.ID, SubmissionInput{
		SkillName: "   ",
		SubSkills: []SubmissionItem{{SubSkillName: "go", Experience: 1, Proficiency: 3}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestUpdateRecordClaimResetsToPending(t *testing.T) {
	w := submissionFixture(t)

	reviewer := uuid.New()
	comments := "was fine"
	existing, _ := w.claims.Create(context.Background(), repository.Claim{
		EmployeeID:      w.emp.ID,
		SubSkillID:      w.sub.ID,
		Experience:      1,
		Proficiency:     3,
		ManagerComments: &comments,
		Status:          approval.StatusApproved,
		ApproverID:      &reviewer,
	})

	updated, err := w.uc.UpdateRecord(context.Background(), w.emp.ID, ClaimUpdateInput{
		RecordType:  RecordTypeClaim,
		RecordID:    existing.ID,
		Experience:  2,
		Proficiency: 4,
	})
	if err != nil {
		t.Fatalf("UpdateRecord returned error: %v", err)
	}

	if updated.Status != approval.StatusPending {
		t.Errorf("status = %s, want PENDING", updated.Status)
	}
	if updated.ManagerComments != nil {
		t.Errorf("manager comments must be cleared on resubmission")
	}
	if updated.ApproverID == nil || *updated.ApproverID != *w.emp.ApproverID {
		t.Errorf("approver = %v, want fresh snapshot %s", updated.ApproverID, *w.emp.ApproverID)
	}
	if updated.Experience != 2 || updated.Proficiency != 4 {
		t.Errorf("values = %v/%d, want 2/4", updated.Experience, updated.Proficiency)
	}
}

func TestUpdateRecordRejectedHistoryCreatesFreshClaim(t *testing.T) {
	w := submissionFixture(t)

	entry := repository.HistoryEntry{
		ID:             uuid.New(),
		ClaimID:        uuid.New(),
		EmployeeID:     w.emp.ID,
		SubSkillID:     w.sub.ID,
		Experience:     1,
		Proficiency:    3,
		ApprovalStatus: approval.StatusRejected,
	}
	w.history.entries[entry.ID] = entry

	claim, err := w.uc.UpdateRecord(context.Background(), w.emp.ID, ClaimUpdateInput{
		RecordType:  RecordTypeHistory,
		RecordID:    entry.ID,
		Experience:  1.5,
		Proficiency: 4,
	})
	if err != nil {
		t.Fatalf("UpdateRecord returned error: %v", err)
	}

	if claim.SubSkillID != w.sub.ID {
		t.Errorf("new claim subskill = %s, want %s", claim.SubSkillID, w.sub.ID)
	}
	if claim.Status != approval.StatusPending {
		t.Errorf("status = %s, want PENDING", claim.Status)
	}
	if len(w.claims.created) != 1 {
		t.Errorf("repo created %d claims, want 1", len(w.claims.created))
	}
}

func TestUpdateRecordRejectsForeignRecord(t *testing.T) {
	w := submissionFixture(t)

	other, _ := w.claims.Create(context.Background(), repository.Claim{
		EmployeeID: uuid.New(),
		SubSkillID: w.sub.ID,
		Status:     approval.StatusPending,
	})

	_, err := w.uc.UpdateRecord(context.Background(), w.emp.ID, ClaimUpdateInput{
		RecordType:  RecordTypeClaim,
		RecordID:    other.ID,
		Experience:  1,
		Proficiency: 3,
	})
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
}

func TestMySkillsRejectedViewReadsHistory(t *testing.T) {
	w := submissionFixture(t)

	entry := repository.HistoryEntry{
		ID:             uuid.New(),
		ClaimID:        uuid.New(),
		EmployeeID:     w.emp.ID,
		SubSkillID:     w.sub.ID,
		Experience:     0.75,
		Proficiency:    2,
		ApprovalStatus: approval.StatusRejected,
	}
	w.history.entries[entry.ID] = entry

	out, err := w.uc.MySkills(context.Background(), w.emp.ID, "REJECTED")
	if err != nil {
		t.Fatalf("MySkills returned error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d records, want 1 rejected entry from history", len(out))
	}
	if out[0].Status != approval.StatusRejected {
		t.Errorf("status = %s, want REJECTED", out[0].Status)
	}
}
