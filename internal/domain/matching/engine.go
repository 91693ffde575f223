package matching

import (
	"sort"

	"github.com/google/uuid"
)

// Scoring weights for a single matched claim row. The experience normalizer is
// kept verbatim from the legacy scoring formula; its derivation is undocumented
// and it is preserved for compatibility.
const (
	experienceNormalizer = 132.0
	maxProficiency       = 5.0

	weightExperience    = 0.8
	weightProficiency   = 0.15
	weightCertification = 0.05
)

// Row is one live employee-skill claim as seen by the engine.
type Row struct {
	EmployeeID       uuid.UUID
	SubSkillID       uuid.UUID
	Experience       float64
	Proficiency      int
	HasCertification bool
}

// Requirement is one sub-skill demand, e.g. from a project staffing request.
type Requirement struct {
	SubSkillID           uuid.UUID
	MinExperience        *float64
	MaxExperience        *float64
	MinProficiency       *int
	RequireCertification bool
}

type RowResult struct {
	SubSkillID uuid.UUID
	Score      float64
}

type EmployeeScore struct {
	EmployeeID uuid.UUID
	// Score is the weighted final score in [0, 100].
	Score float64
	// Coverage is the percentage of requirements with at least one matched row.
	Coverage float64
	Rows     []RowResult
}

// RowScore computes the weighted score of a single matched row in [0, 1].
func RowScore(r Row) float64 {
	exp := r.Experience
	if exp > experienceNormalizer {
		exp = experienceNormalizer
	}
	if exp < 0 {
		exp = 0
	}

	prof := float64(r.Proficiency)
	if prof < 0 {
		prof = 0
	}
	if prof > maxProficiency {
		prof = maxProficiency
	}

	cert := 0.0
	if r.HasCertification {
		cert = 1.0
	}

	return weightExperience*(exp/experienceNormalizer) +
		weightProficiency*(prof/maxProficiency) +
		weightCertification*cert
}

// Satisfies reports whether a row clears every threshold of the requirement for
// its sub-skill.
func Satisfies(r Row, req Requirement) bool {
	if r.SubSkillID != req.SubSkillID {
		return false
	}
	if req.MinExperience != nil && r.Experience < *req.MinExperience {
		return false
	}
	if req.MaxExperience != nil && r.Experience > *req.MaxExperience {
		return false
	}
	if req.MinProficiency != nil && r.Proficiency < *req.MinProficiency {
		return false
	}
	if req.RequireCertification && !r.HasCertification {
		return false
	}
	return true
}

// Evaluate scores every employee appearing in rows against the requirement
// list. Employees with no matched row are excluded. Results are ordered by
// final score descending; ties keep the first-seen input order, so callers that
// feed rows ordered by employee name get a name tiebreak.
func Evaluate(rows []Row, reqs []Requirement) []EmployeeScore {
	if len(reqs) == 0 {
		return nil
	}

	n := float64(len(reqs))

	type acc struct {
		order      int
		sum        float64
		covered    map[uuid.UUID]struct{}
		satisfied  int
		rowResults []RowResult
	}
	byEmployee := map[uuid.UUID]*acc{}
	orderSeq := 0

	rowsByEmployee := map[uuid.UUID][]Row{}
	employeeOrder := []uuid.UUID{}
	for _, r := range rows {
		if _, ok := rowsByEmployee[r.EmployeeID]; !ok {
			employeeOrder = append(employeeOrder, r.EmployeeID)
		}
		rowsByEmployee[r.EmployeeID] = append(rowsByEmployee[r.EmployeeID], r)
	}

	for _, empID := range employeeOrder {
		for _, req := range reqs {
			for _, r := range rowsByEmployee[empID] {
				if !Satisfies(r, req) {
					continue
				}
				a := byEmployee[empID]
				if a == nil {
					a = &acc{order: orderSeq, covered: map[uuid.UUID]struct{}{}}
					orderSeq++
					byEmployee[empID] = a
				}
				score := RowScore(r)
				a.sum += score
				a.satisfied++
				a.covered[req.SubSkillID] = struct{}{}
				a.rowResults = append(a.rowResults, RowResult{SubSkillID: r.SubSkillID, Score: score})
			}
		}
	}

	out := make([]EmployeeScore, 0, len(byEmployee))
	for empID, a := range byEmployee {
		out = append(out, EmployeeScore{
			EmployeeID: empID,
			Score:      a.sum / n * 100,
			Coverage:   float64(len(a.covered)) / n * 100,
			Rows:       a.rowResults,
		})
	}

	orderOf := func(id uuid.UUID) int { return byEmployee[id].order }
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return orderOf(out[i].EmployeeID) < orderOf(out[j].EmployeeID)
	})

	return out
}
