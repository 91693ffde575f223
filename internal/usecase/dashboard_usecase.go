package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

const (
	dashboardCachePrefix = "dashboard:"
	dashboardCacheTTL    = 5 * time.Minute
)

type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type DashboardOverview struct {
	TotalEmployees int                               `json:"total_employees"`
	Skills         []repository.MasterSkillSummaryRow `json:"skills"`
	Total          int                               `json:"total"`
}

// SubSkillShare is one sub-skill's slice of a master-skill breakdown. The
// percentage is employees holding the sub-skill over all active employees.
type SubSkillShare struct {
	SubSkillID         uuid.UUID `json:"subskill_id"`
	SubSkillName       string    `json:"subskill_name"`
	EmployeeCount      int       `json:"employee_count"`
	EmployeePercentage float64   `json:"employee_percentage"`
}

type MasterSkillDetail struct {
	MasterSkillID uuid.UUID       `json:"master_skill_id"`
	EmployeeCount int             `json:"employee_count"`
	SubSkills     []SubSkillShare `json:"sub_skills"`
}

type SubSkillDetail struct {
	SubSkillID    uuid.UUID `json:"subskill_id"`
	ClaimCount    int       `json:"claim_count"`
	Experience    []Bucket  `json:"experience"`
	Proficiency   []Bucket  `json:"proficiency"`
	Certification []Bucket  `json:"certification"`
}

type DashboardUsecase interface {
	Overview(ctx context.Context, search string, page, pageSize int) (DashboardOverview, error)
	MasterSkillDetail(ctx context.Context, masterSkillID uuid.UUID) (MasterSkillDetail, error)
	SubSkillDetail(ctx context.Context, subSkillID uuid.UUID) (SubSkillDetail, error)
	InvalidateCache(ctx context.Context)
}

type Dashboard struct {
	repo    repository.DashboardRepository
	masters repository.MasterSkillRepository
	subs    repository.SubSkillRepository
	cache   *cache.Cache
}

func NewDashboardUsecase(
	repo repository.DashboardRepository,
	masters repository.MasterSkillRepository,
	subs repository.SubSkillRepository,
	c *cache.Cache,
) *Dashboard {
	return &Dashboard{repo: repo, masters: masters, subs: subs, cache: c}
}

func (u *Dashboard) Overview(ctx context.Context, search string, page, pageSize int) (DashboardOverview, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	key := fmt.Sprintf("%soverview:%s:%d:%d", dashboardCachePrefix, search, page, pageSize)
	var out DashboardOverview
	if u.cache.GetJSON(ctx, key, &out) {
		return out, nil
	}

	total, err := u.repo.CountActiveEmployees(ctx)
	if err != nil {
		return DashboardOverview{}, ErrInternal
	}
	skills, count, err := u.repo.MasterSkillSummary(ctx, search, page, pageSize)
	if err != nil {
		return DashboardOverview{}, ErrInternal
	}

	out = DashboardOverview{TotalEmployees: total, Skills: skills, Total: count}
	u.cache.SetJSON(ctx, key, out, dashboardCacheTTL)
	return out, nil
}

func (u *Dashboard) MasterSkillDetail(ctx context.Context, masterSkillID uuid.UUID) (MasterSkillDetail, error) {
	key := fmt.Sprintf("%smaster:%s", dashboardCachePrefix, masterSkillID)
	var out MasterSkillDetail
	if u.cache.GetJSON(ctx, key, &out) {
		return out, nil
	}

	if _, err := u.masters.FindByID(ctx, masterSkillID); err != nil {
		if errors.Is(err, repository.ErrMasterSkillNotFound) {
			return MasterSkillDetail{}, ErrMasterSkillNotFound
		}
		return MasterSkillDetail{}, ErrInternal
	}

	count, err := u.repo.EmployeesWithMasterSkill(ctx, masterSkillID)
	if err != nil {
		return MasterSkillDetail{}, ErrInternal
	}
	totalActive, err := u.repo.CountActiveEmployees(ctx)
	if err != nil {
		return MasterSkillDetail{}, ErrInternal
	}
	breakdown, err := u.repo.SubSkillBreakdown(ctx, masterSkillID)
	if err != nil {
		return MasterSkillDetail{}, ErrInternal
	}

	shares := make([]SubSkillShare, 0, len(breakdown))
	for _, row := range breakdown {
		share := SubSkillShare{SubSkillID: row.SubSkillID, SubSkillName: row.SubSkillName, EmployeeCount: row.EmployeeCount}
		if totalActive > 0 {
			share.EmployeePercentage = roundPercent(float64(row.EmployeeCount) / float64(totalActive) * 100)
		}
		shares = append(shares, share)
	}

	out = MasterSkillDetail{MasterSkillID: masterSkillID, EmployeeCount: count, SubSkills: shares}
	u.cache.SetJSON(ctx, key, out, dashboardCacheTTL)
	return out, nil
}

func (u *Dashboard) SubSkillDetail(ctx context.Context, subSkillID uuid.UUID) (SubSkillDetail, error) {
	key := fmt.Sprintf("%ssub:%s", dashboardCachePrefix, subSkillID)
	var out SubSkillDetail
	if u.cache.GetJSON(ctx, key, &out) {
		return out, nil
	}

	if _, err := u.subs.FindByID(ctx, subSkillID); err != nil {
		if errors.Is(err, repository.ErrSubSkillNotFound) {
			return SubSkillDetail{}, ErrSubSkillNotFound
		}
		return SubSkillDetail{}, ErrInternal
	}

	stats, err := u.repo.SubSkillClaimStats(ctx, subSkillID)
	if err != nil {
		return SubSkillDetail{}, ErrInternal
	}

	out = SubSkillDetail{
		SubSkillID:    subSkillID,
		ClaimCount:    len(stats),
		Experience:    bucketExperience(stats),
		Proficiency:   bucketProficiency(stats),
		Certification: bucketCertification(stats),
	}
	u.cache.SetJSON(ctx, key, out, dashboardCacheTTL)
	return out, nil
}

// InvalidateCache drops cached aggregates. Called after any write that moves
// the numbers underneath them.
func (u *Dashboard) InvalidateCache(ctx context.Context) {
	u.cache.InvalidatePrefix(ctx, dashboardCachePrefix)
}

const experienceBandCap = 10

// bucketExperience histograms experience years into fixed 1-year bands:
// "< 1 year", "1-2 years" .. "9-10 years", "10+ years". Bands are always
// emitted in order, including empty ones.
func bucketExperience(stats []repository.SubSkillClaimStats) []Bucket {
	out := make([]Bucket, 0, experienceBandCap+1)
	out = append(out, Bucket{Label: "< 1 year"})
	for y := 1; y < experienceBandCap; y++ {
		out = append(out, Bucket{Label: fmt.Sprintf("%d-%d years", y, y+1)})
	}
	out = append(out, Bucket{Label: fmt.Sprintf("%d+ years", experienceBandCap)})

	for _, s := range stats {
		idx := int(s.Experience)
		if s.Experience < 0 {
			idx = 0
		}
		if idx > experienceBandCap {
			idx = experienceBandCap
		}
		out[idx].Count++
	}
	return out
}

func bucketProficiency(stats []repository.SubSkillClaimStats) []Bucket {
	out := make([]Bucket, 5)
	for i := range out {
		label := fmt.Sprintf("%d Stars", i+1)
		if i == 0 {
			label = "1 Star"
		}
		out[i].Label = label
	}
	for _, s := range stats {
		if s.Proficiency >= 1 && s.Proficiency <= 5 {
			out[s.Proficiency-1].Count++
		}
	}
	return out
}

func roundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}

func bucketCertification(stats []repository.SubSkillClaimStats) []Bucket {
	out := []Bucket{{Label: "Certified"}, {Label: "Non-Certified"}}
	for _, s := range stats {
		if s.HasCertification {
			out[0].Count++
		} else {
			out[1].Count++
		}
	}
	return out
}
