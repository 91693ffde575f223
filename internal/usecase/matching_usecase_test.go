package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

func matchingFixture(rows []repository.SkillRow, subs ...repository.SubSkill) *Matching {
	return NewMatchingUsecase(
		&fakeMatchingRepo{rows: rows},
		newFakeSubSkillRepo(subs...),
		newFakeMasterSkillRepo(),
		nil,
	)
}

func TestMatchAllRejectsEmptyRequirements(t *testing.T) {
	uc := matchingFixture(nil)

	_, err := uc.MatchAll(context.Background(), nil)
	if !errors.Is(err, ErrNoRequirements) {
		t.Fatalf("err = %v, want ErrNoRequirements", err)
	}
}

func TestMatchAllRejectsDuplicateSubSkills(t *testing.T) {
	sub := repository.SubSkill{ID: uuid.New(), MasterSkillID: uuid.New(), Name: "go"}
	uc := matchingFixture(nil, sub)

	_, err := uc.MatchAll(context.Background(), []RequirementInput{
		{SubSkillID: sub.ID},
		{SubSkillID: sub.ID},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestMatchAllRejectsUnknownSubSkill(t *testing.T) {
	uc := matchingFixture(nil)

	_, err := uc.MatchAll(context.Background(), []RequirementInput{{SubSkillID: uuid.New()}})
	if !errors.Is(err, ErrRequirementNotFound) {
		t.Fatalf("err = %v, want ErrRequirementNotFound", err)
	}
}

func TestMatchAllRanksAndExcludesZeroMatchEmployees(t *testing.T) {
	goSkill := repository.SubSkill{ID: uuid.New(), MasterSkillID: uuid.New(), Name: "go"}
	pgSkill := repository.SubSkill{ID: uuid.New(), MasterSkillID: goSkill.MasterSkillID, Name: "postgresql"}

	strong := uuid.New()
	partial := uuid.New()
	none := uuid.New()

	cert := "CKA"
	rows := []repository.SkillRow{
		{EmployeeID: strong, EmployeeName: "Strong", EmployeeCode: "E1", SubSkillID: goSkill.ID, SubSkillName: "go", MasterSkillName: "backend", Experience: 132, Proficiency: 5, Certification: &cert, HasCertification: true},
		{EmployeeID: strong, EmployeeName: "Strong", EmployeeCode: "E1", SubSkillID: pgSkill.ID, SubSkillName: "postgresql", MasterSkillName: "backend", Experience: 132, Proficiency: 5, HasCertification: true},
		{EmployeeID: partial, EmployeeName: "Partial", EmployeeCode: "E2", SubSkillID: goSkill.ID, SubSkillName: "go", MasterSkillName: "backend", Experience: 66, Proficiency: 3},
		// Fails the min-experience constraint on both requirements.
		{EmployeeID: none, EmployeeName: "None", EmployeeCode: "E3", SubSkillID: goSkill.ID, SubSkillName: "go", MasterSkillName: "backend", Experience: 1, Proficiency: 1},
	}

	uc := matchingFixture(rows, goSkill, pgSkill)

	minExp := 12.0
	out, err := uc.MatchAll(context.Background(), []RequirementInput{
		{SubSkillID: goSkill.ID, MinExperience: &minExp},
		{SubSkillID: pgSkill.ID, MinExperience: &minExp},
	})
	if err != nil {
		t.Fatalf("MatchAll returned error: %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("got %d matches, want 2 (zero-match employee excluded)", len(out))
	}
	if out[0].EmployeeID != strong {
		t.Fatalf("top match = %s, want the full-coverage employee", out[0].EmployeeName)
	}

	// Both rows are perfect: (0.8 + 0.15 + 0.05) each, so sum/N*100 = 100.
	if math.Abs(out[0].Score-100) > 1e-9 {
		t.Errorf("top score = %v, want 100", out[0].Score)
	}
	if math.Abs(out[0].Coverage-100) > 1e-9 {
		t.Errorf("top coverage = %v, want 100", out[0].Coverage)
	}
	if len(out[0].Skills) != 2 {
		t.Errorf("top match carries %d rows, want 2", len(out[0].Skills))
	}

	if math.Abs(out[1].Coverage-50) > 1e-9 {
		t.Errorf("partial coverage = %v, want 50", out[1].Coverage)
	}
	if out[1].Score >= out[0].Score {
		t.Errorf("ranking order violated: partial %v >= strong %v", out[1].Score, out[0].Score)
	}
	if out[1].EmployeeName != "Partial" || out[1].EmployeeCode != "E2" {
		t.Errorf("employee fields not joined onto the match: %+v", out[1])
	}
}

func TestMatchPaginates(t *testing.T) {
	sub := repository.SubSkill{ID: uuid.New(), MasterSkillID: uuid.New(), Name: "go"}
	rows := make([]repository.SkillRow, 0, 5)
	for i := 0; i < 5; i++ {
		rows = append(rows, repository.SkillRow{
			EmployeeID:  uuid.New(),
			SubSkillID:  sub.ID,
			Experience:  float64(10 + i),
			Proficiency: 3,
		})
	}

	uc := matchingFixture(rows, sub)

	page, err := uc.Match(context.Background(), []RequirementInput{{SubSkillID: sub.ID}}, 2, 2)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if page.Total != 5 {
		t.Errorf("total = %d, want 5", page.Total)
	}
	if len(page.Matches) != 2 {
		t.Errorf("page size = %d, want 2", len(page.Matches))
	}
}

func TestExportProducesWorkbook(t *testing.T) {
	sub := repository.SubSkill{ID: uuid.New(), MasterSkillID: uuid.New(), Name: "go"}
	rows := []repository.SkillRow{
		{EmployeeID: uuid.New(), EmployeeName: "Ana", EmployeeCode: "E1", SubSkillID: sub.ID, SubSkillName: "go", MasterSkillName: "backend", Experience: 24, Proficiency: 4},
	}
	uc := matchingFixture(rows, sub)

	out, err := uc.Export(context.Background(), []RequirementInput{{SubSkillID: sub.ID}})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("workbook is empty")
	}
	// xlsx files are zip archives.
	if out[0] != 'P' || out[1] != 'K' {
		t.Errorf("output does not look like an xlsx file")
	}
}
