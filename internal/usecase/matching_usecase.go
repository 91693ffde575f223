package usecase

import (
	"context"
	"errors"

	"skill-matrix/internal/domain/matching"
	"skill-matrix/internal/pkg/xlsxreport"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/requirements"

	"github.com/google/uuid"
)

var (
	ErrNoRequirements      = errors.New("at least one requirement is needed")
	ErrRequirementNotFound = errors.New("requirement references an unknown sub-skill")
)

type RequirementInput struct {
	SubSkillID           uuid.UUID
	MinExperience        *float64
	MaxExperience        *float64
	MinProficiency       *int
	RequireCertification bool
}

// MatchedSkill is one scored claim row inside an employee match.
type MatchedSkill struct {
	SubSkillID       uuid.UUID
	SubSkillName     string
	MasterSkillName  string
	Experience       float64
	Proficiency      int
	Certification    *string
	HasCertification bool
	Score            float64
}

type EmployeeMatch struct {
	EmployeeID   uuid.UUID
	EmployeeName string
	EmployeeCode string
	Score        float64
	Coverage     float64
	Skills       []MatchedSkill
}

type MatchPage struct {
	Matches []EmployeeMatch
	Total   int
}

type MatchingUsecase interface {
	Match(ctx context.Context, reqs []RequirementInput, page, pageSize int) (MatchPage, error)
	MatchAll(ctx context.Context, reqs []RequirementInput) ([]EmployeeMatch, error)
	Export(ctx context.Context, reqs []RequirementInput) ([]byte, error)
	ResolveText(ctx context.Context, text string) ([]RequirementInput, error)
}

type Matching struct {
	rows      repository.MatchingRepository
	subSkills repository.SubSkillRepository
	masters   repository.MasterSkillRepository
	parser    requirements.Parser
}

func NewMatchingUsecase(
	rows repository.MatchingRepository,
	subSkills repository.SubSkillRepository,
	masters repository.MasterSkillRepository,
	parser requirements.Parser,
) *Matching {
	return &Matching{rows: rows, subSkills: subSkills, masters: masters, parser: parser}
}

// Match ranks employees against the requirements and returns one page of the
// ranking. Employees with no satisfying row at all are left out entirely.
func (u *Matching) Match(ctx context.Context, reqs []RequirementInput, page, pageSize int) (MatchPage, error) {
	all, err := u.MatchAll(ctx, reqs)
	if err != nil {
		return MatchPage{}, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	start := (page - 1) * pageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return MatchPage{Matches: all[start:end], Total: len(all)}, nil
}

func (u *Matching) MatchAll(ctx context.Context, reqs []RequirementInput) ([]EmployeeMatch, error) {
	if len(reqs) == 0 {
		return nil, ErrNoRequirements
	}

	engineReqs := make([]matching.Requirement, 0, len(reqs))
	ids := make([]uuid.UUID, 0, len(reqs))
	seen := make(map[uuid.UUID]bool, len(reqs))
	for _, r := range reqs {
		if seen[r.SubSkillID] {
			return nil, ErrInvalidInput
		}
		seen[r.SubSkillID] = true
		if r.MinProficiency != nil && !isValidProficiency(*r.MinProficiency) {
			return nil, ErrInvalidInput
		}
		if r.MinExperience != nil && *r.MinExperience < 0 {
			return nil, ErrInvalidInput
		}
		if r.MinExperience != nil && r.MaxExperience != nil && *r.MaxExperience < *r.MinExperience {
			return nil, ErrInvalidInput
		}
		if _, err := u.subSkills.FindByID(ctx, r.SubSkillID); err != nil {
			if errors.Is(err, repository.ErrSubSkillNotFound) {
				return nil, ErrRequirementNotFound
			}
			return nil, ErrInternal
		}
		ids = append(ids, r.SubSkillID)
		engineReqs = append(engineReqs, matching.Requirement{
			SubSkillID:           r.SubSkillID,
			MinExperience:        r.MinExperience,
			MaxExperience:        r.MaxExperience,
			MinProficiency:       r.MinProficiency,
			RequireCertification: r.RequireCertification,
		})
	}

	skillRows, err := u.rows.RowsForSubSkills(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}

	engineRows := make([]matching.Row, 0, len(skillRows))
	rowByKey := make(map[[2]uuid.UUID]repository.SkillRow, len(skillRows))
	for _, sr := range skillRows {
		engineRows = append(engineRows, matching.Row{
			EmployeeID:       sr.EmployeeID,
			SubSkillID:       sr.SubSkillID,
			Experience:       sr.Experience,
			Proficiency:      sr.Proficiency,
			HasCertification: sr.HasCertification,
		})
		rowByKey[[2]uuid.UUID{sr.EmployeeID, sr.SubSkillID}] = sr
	}

	scores := matching.Evaluate(engineRows, engineReqs)

	out := make([]EmployeeMatch, 0, len(scores))
	for _, s := range scores {
		m := EmployeeMatch{
			EmployeeID: s.EmployeeID,
			Score:      s.Score,
			Coverage:   s.Coverage,
			Skills:     make([]MatchedSkill, 0, len(s.Rows)),
		}
		for _, rr := range s.Rows {
			sr, ok := rowByKey[[2]uuid.UUID{s.EmployeeID, rr.SubSkillID}]
			if !ok {
				continue
			}
			m.EmployeeName = sr.EmployeeName
			m.EmployeeCode = sr.EmployeeCode
			m.Skills = append(m.Skills, MatchedSkill{
				SubSkillID:       sr.SubSkillID,
				SubSkillName:     sr.SubSkillName,
				MasterSkillName:  sr.MasterSkillName,
				Experience:       sr.Experience,
				Proficiency:      sr.Proficiency,
				Certification:    sr.Certification,
				HasCertification: sr.HasCertification,
				Score:            rr.Score,
			})
		}
		out = append(out, m)
	}
	return out, nil
}

// Export renders the full ranking as an Excel workbook.
func (u *Matching) Export(ctx context.Context, reqs []RequirementInput) ([]byte, error) {
	matches, err := u.MatchAll(ctx, reqs)
	if err != nil {
		return nil, err
	}

	groups := make([]xlsxreport.EmployeeGroup, 0, len(matches))
	for _, m := range matches {
		g := xlsxreport.EmployeeGroup{
			Name:     m.EmployeeName,
			EmpCode:  m.EmployeeCode,
			Score:    m.Score,
			Coverage: m.Coverage,
			Skills:   make([]xlsxreport.SkillLine, 0, len(m.Skills)),
		}
		for _, s := range m.Skills {
			cert := ""
			if s.Certification != nil {
				cert = *s.Certification
			}
			g.Skills = append(g.Skills, xlsxreport.SkillLine{
				MasterSkill:   s.MasterSkillName,
				SubSkill:      s.SubSkillName,
				Experience:    s.Experience,
				Proficiency:   s.Proficiency,
				Certification: cert,
			})
		}
		groups = append(groups, g)
	}

	out, err := xlsxreport.Build(groups)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// ResolveText turns a free-text staffing request into structured requirements
// by running the external parser and mapping parsed names onto the taxonomy.
// Parsed entries naming skills the taxonomy does not have are dropped.
func (u *Matching) ResolveText(ctx context.Context, text string) ([]RequirementInput, error) {
	if u.parser == nil {
		return nil, ErrInvalidInput
	}
	parsed, err := u.parser.Parse(ctx, text)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]RequirementInput, 0, len(parsed))
	seen := make(map[uuid.UUID]bool)
	for _, p := range parsed {
		ms, err := u.masters.FindByName(ctx, NormalizeSkillName(p.SkillName))
		if err != nil {
			if errors.Is(err, repository.ErrMasterSkillNotFound) {
				continue
			}
			return nil, ErrInternal
		}
		ss, err := u.subSkills.FindByName(ctx, ms.ID, NormalizeSkillName(p.SubSkillName))
		if err != nil {
			if errors.Is(err, repository.ErrSubSkillNotFound) {
				continue
			}
			return nil, ErrInternal
		}
		if seen[ss.ID] {
			continue
		}
		seen[ss.ID] = true
		out = append(out, RequirementInput{
			SubSkillID:           ss.ID,
			MinExperience:        p.MinExperience,
			MaxExperience:        p.MaxExperience,
			MinProficiency:       p.MinProficiency,
			RequireCertification: p.RequireCertification,
		})
	}
	if len(out) == 0 {
		return nil, ErrNoRequirements
	}
	return out, nil
}
