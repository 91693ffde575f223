package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

func TestNormalizeSkillName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Go  ", "go"},
		{"Data   Modeling", "data modeling"},
		{"REACT", "react"},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeSkillName(tc.in); got != tc.want {
			t.Errorf("NormalizeSkillName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEnsureMasterSkillIsIdempotent(t *testing.T) {
	masters := newFakeMasterSkillRepo()
	uc := NewTaxonomyUsecase(masters, newFakeSubSkillRepo())

	first, created, err := uc.EnsureMasterSkill(context.Background(), "  Backend ")
	if err != nil || !created {
		t.Fatalf("first ensure: created=%v err=%v", created, err)
	}

	second, created, err := uc.EnsureMasterSkill(context.Background(), "BACKEND")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if created {
		t.Fatalf("second ensure must find the existing skill")
	}
	if second.ID != first.ID {
		t.Errorf("second ensure returned %s, want %s", second.ID, first.ID)
	}
	if len(masters.masters) != 1 {
		t.Errorf("repo holds %d masters, want 1", len(masters.masters))
	}
}

func TestEnsureSubSkillRequiresMaster(t *testing.T) {
	uc := NewTaxonomyUsecase(newFakeMasterSkillRepo(), newFakeSubSkillRepo())

	_, _, err := uc.EnsureSubSkill(context.Background(), uuid.New(), "go")
	if !errors.Is(err, ErrMasterSkillNotFound) {
		t.Fatalf("err = %v, want ErrMasterSkillNotFound", err)
	}
}

func TestDeleteSubSkillBlockedWhileClaimsReferenceIt(t *testing.T) {
	master := repository.MasterSkill{ID: uuid.New(), Name: "backend"}
	sub := repository.SubSkill{ID: uuid.New(), MasterSkillID: master.ID, Name: "go"}
	subs := newFakeSubSkillRepo(sub)
	subs.liveCounts[sub.ID] = 3

	uc := NewTaxonomyUsecase(newFakeMasterSkillRepo(master), subs)

	if err := uc.DeleteSubSkill(context.Background(), sub.ID); !errors.Is(err, ErrSubSkillInUse) {
		t.Fatalf("err = %v, want ErrSubSkillInUse", err)
	}
	if len(subs.deleted) != 0 {
		t.Fatalf("sub-skill was deleted despite live claims")
	}

	subs.liveCounts[sub.ID] = 0
	if err := uc.DeleteSubSkill(context.Background(), sub.ID); err != nil {
		t.Fatalf("delete with no claims: %v", err)
	}
	if len(subs.deleted) != 1 {
		t.Fatalf("sub-skill was not deleted")
	}
}

func TestDeleteMasterSkillBlockedByAnyLiveSubSkillClaim(t *testing.T) {
	master := repository.MasterSkill{ID: uuid.New(), Name: "backend"}
	free := repository.SubSkill{ID: uuid.New(), MasterSkillID: master.ID, Name: "go"}
	used := repository.SubSkill{ID: uuid.New(), MasterSkillID: master.ID, Name: "java"}
	subs := newFakeSubSkillRepo(free, used)
	subs.liveCounts[used.ID] = 1
	masters := newFakeMasterSkillRepo(master)

	uc := NewTaxonomyUsecase(masters, subs)

	if err := uc.DeleteMasterSkill(context.Background(), master.ID); !errors.Is(err, ErrSubSkillInUse) {
		t.Fatalf("err = %v, want ErrSubSkillInUse", err)
	}
	if len(masters.deleted) != 0 {
		t.Fatalf("master skill was deleted despite referenced sub-skill")
	}
}
