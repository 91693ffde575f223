package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrMasterSkillNotFound = errors.New("master skill not found")
	ErrSubSkillNotFound    = errors.New("sub-skill not found")
	ErrSubSkillInUse       = errors.New("sub-skill is referenced by live skill claims")
)

// SkillTree is one master skill with its sub-skills, as the taxonomy listing
// returns it.
type SkillTree struct {
	MasterSkill repository.MasterSkill
	SubSkills   []repository.SubSkill
}

type TaxonomyUsecase interface {
	ListTaxonomy(ctx context.Context) ([]SkillTree, error)
	EnsureMasterSkill(ctx context.Context, name string) (repository.MasterSkill, bool, error)
	EnsureSubSkill(ctx context.Context, masterSkillID uuid.UUID, name string) (repository.SubSkill, bool, error)
	DeleteMasterSkill(ctx context.Context, id uuid.UUID) error
	DeleteSubSkill(ctx context.Context, id uuid.UUID) error
}

type Taxonomy struct {
	masters repository.MasterSkillRepository
	subs    repository.SubSkillRepository
}

func NewTaxonomyUsecase(masters repository.MasterSkillRepository, subs repository.SubSkillRepository) *Taxonomy {
	return &Taxonomy{masters: masters, subs: subs}
}

func (u *Taxonomy) ListTaxonomy(ctx context.Context) ([]SkillTree, error) {
	masters, err := u.masters.GetAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]SkillTree, 0, len(masters))
	for _, ms := range masters {
		subs, err := u.subs.ListByMasterSkill(ctx, ms.ID)
		if err != nil {
			return nil, ErrInternal
		}
		out = append(out, SkillTree{MasterSkill: ms, SubSkills: subs})
	}
	return out, nil
}

// EnsureMasterSkill finds or creates a master skill by normalized name. The
// second return reports whether the skill was created by this call.
func (u *Taxonomy) EnsureMasterSkill(ctx context.Context, name string) (repository.MasterSkill, bool, error) {
	name = NormalizeSkillName(name)
	if name == "" {
		return repository.MasterSkill{}, false, ErrInvalidInput
	}

	existing, err := u.masters.FindByName(ctx, name)
	switch {
	case err == nil:
		return existing, false, nil
	case errors.Is(err, repository.ErrMasterSkillNotFound):
	default:
		return repository.MasterSkill{}, false, ErrInternal
	}

	created, err := u.masters.Create(ctx, name)
	if err != nil {
		return repository.MasterSkill{}, false, ErrInternal
	}
	return created, true, nil
}

func (u *Taxonomy) EnsureSubSkill(ctx context.Context, masterSkillID uuid.UUID, name string) (repository.SubSkill, bool, error) {
	name = NormalizeSkillName(name)
	if name == "" {
		return repository.SubSkill{}, false, ErrInvalidInput
	}

	if _, err := u.masters.FindByID(ctx, masterSkillID); err != nil {
		if errors.Is(err, repository.ErrMasterSkillNotFound) {
			return repository.SubSkill{}, false, ErrMasterSkillNotFound
		}
		return repository.SubSkill{}, false, ErrInternal
	}

	existing, err := u.subs.FindByName(ctx, masterSkillID, name)
	switch {
	case err == nil:
		return existing, false, nil
	case errors.Is(err, repository.ErrSubSkillNotFound):
	default:
		return repository.SubSkill{}, false, ErrInternal
	}

	created, err := u.subs.Create(ctx, masterSkillID, name)
	if err != nil {
		return repository.SubSkill{}, false, ErrInternal
	}
	return created, true, nil
}

// DeleteMasterSkill removes a master skill. Each of its sub-skills must be
// individually deletable first; the cascade would otherwise silently drop live
// claims.
func (u *Taxonomy) DeleteMasterSkill(ctx context.Context, id uuid.UUID) error {
	if _, err := u.masters.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMasterSkillNotFound) {
			return ErrMasterSkillNotFound
		}
		return ErrInternal
	}

	subs, err := u.subs.ListByMasterSkill(ctx, id)
	if err != nil {
		return ErrInternal
	}
	for _, ss := range subs {
		n, err := u.subs.CountLiveClaims(ctx, ss.ID)
		if err != nil {
			return ErrInternal
		}
		if n > 0 {
			return ErrSubSkillInUse
		}
	}

	if err := u.masters.Delete(ctx, id); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Taxonomy) DeleteSubSkill(ctx context.Context, id uuid.UUID) error {
	if _, err := u.subs.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSubSkillNotFound) {
			return ErrSubSkillNotFound
		}
		return ErrInternal
	}

	n, err := u.subs.CountLiveClaims(ctx, id)
	if err != nil {
		return ErrInternal
	}
	if n > 0 {
		return ErrSubSkillInUse
	}

	if err := u.subs.Delete(ctx, id); err != nil {
		return ErrInternal
	}
	return nil
}

// NormalizeSkillName trims, collapses internal whitespace runs to single
// spaces, and lowercases. Taxonomy lookups and uniqueness both run on the
// normalized form.
func NormalizeSkillName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
