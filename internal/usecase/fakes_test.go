package usecase

import (
	"context"
	"strings"

	"skill-matrix/internal/domain/approval"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type fakeEmployeeRepo struct {
	employees map[uuid.UUID]repository.Employee
	updated   []repository.Employee
	created   []repository.Employee
}

func newFakeEmployeeRepo(emps ...repository.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: map[uuid.UUID]repository.Employee{}}
	for _, e := range emps {
		r.employees[e.ID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) List(ctx context.Context, page, pageSize int) ([]repository.Employee, int, error) {
	out := make([]repository.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (r *fakeEmployeeRepo) FindByID(ctx context.Context, id uuid.UUID) (repository.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return repository.Employee{}, repository.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) FindByEmail(ctx context.Context, email string) (repository.Employee, error) {
	for _, e := range r.employees {
		if strings.EqualFold(e.Email, email) {
			return e, nil
		}
	}
	return repository.Employee{}, repository.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, e repository.Employee) (repository.Employee, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.employees[e.ID] = e
	r.created = append(r.created, e)
	return e, nil
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, e repository.Employee) error {
	if _, ok := r.employees[e.ID]; !ok {
		return repository.ErrEmployeeNotFound
	}
	r.employees[e.ID] = e
	r.updated = append(r.updated, e)
	return nil
}

func (r *fakeEmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

type fakeClaimRepo struct {
	claims      map[uuid.UUID]repository.Claim
	resubmitted []repository.Claim
	created     []repository.Claim
}

func newFakeClaimRepo(claims ...repository.Claim) *fakeClaimRepo {
	r := &fakeClaimRepo{claims: map[uuid.UUID]repository.Claim{}}
	for _, c := range claims {
		r.claims[c.ID] = c
	}
	return r
}

func (r *fakeClaimRepo) FindByID(ctx context.Context, id uuid.UUID) (repository.Claim, error) {
	c, ok := r.claims[id]
	if !ok {
		return repository.Claim{}, repository.ErrClaimNotFound
	}
	return c, nil
}

func (r *fakeClaimRepo) FindByEmployeeAndSubSkill(ctx context.Context, employeeID, subSkillID uuid.UUID) (repository.Claim, error) {
	for _, c := range r.claims {
		if c.EmployeeID == employeeID && c.SubSkillID == subSkillID {
			return c, nil
		}
	}
	return repository.Claim{}, repository.ErrClaimNotFound
}

func (r *fakeClaimRepo) Create(ctx context.Context, c repository.Claim) (repository.Claim, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.claims[c.ID] = c
	r.created = append(r.created, c)
	return c, nil
}

func (r *fakeClaimRepo) Resubmit(ctx context.Context, c repository.Claim) error {
	if _, ok := r.claims[c.ID]; !ok {
		return repository.ErrClaimNotFound
	}
	r.claims[c.ID] = c
	r.resubmitted = append(r.resubmitted, c)
	return nil
}

func (r *fakeClaimRepo) ListPending(ctx context.Context, approverID uuid.UUID, f repository.ReviewFilter) ([]repository.ReviewRecord, int, error) {
	out := make([]repository.ReviewRecord, 0)
	for _, c := range r.claims {
		if c.Status == approval.StatusPending && c.ApproverID != nil && *c.ApproverID == approverID {
			out = append(out, repository.ReviewRecord{Claim: c})
		}
	}
	return out, len(out), nil
}

func (r *fakeClaimRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID, status *approval.Status) ([]repository.ClaimSummary, error) {
	out := make([]repository.ClaimSummary, 0)
	for _, c := range r.claims {
		if c.EmployeeID != employeeID {
			continue
		}
		if status != nil && c.Status != *status {
			continue
		}
		out = append(out, repository.ClaimSummary{
			ID:          c.ID,
			SubSkillID:  c.SubSkillID,
			Experience:  c.Experience,
			Proficiency: c.Proficiency,
			Status:      c.Status,
		})
	}
	return out, nil
}

type fakeHistoryRepo struct {
	entries map[uuid.UUID]repository.HistoryEntry
}

func newFakeHistoryRepo(entries ...repository.HistoryEntry) *fakeHistoryRepo {
	r := &fakeHistoryRepo{entries: map[uuid.UUID]repository.HistoryEntry{}}
	for _, h := range entries {
		r.entries[h.ID] = h
	}
	return r
}

func (r *fakeHistoryRepo) FindByID(ctx context.Context, id uuid.UUID) (repository.HistoryEntry, error) {
	h, ok := r.entries[id]
	if !ok {
		return repository.HistoryEntry{}, repository.ErrHistoryNotFound
	}
	return h, nil
}

func (r *fakeHistoryRepo) ListForApprover(ctx context.Context, approverID uuid.UUID, status approval.Status, f repository.ReviewFilter) ([]repository.HistoryRecord, int, error) {
	out := make([]repository.HistoryRecord, 0)
	for _, h := range r.entries {
		if h.ApprovalStatus == status {
			out = append(out, repository.HistoryRecord{HistoryEntry: h})
		}
	}
	return out, len(out), nil
}

func (r *fakeHistoryRepo) ListRejectedByEmployee(ctx context.Context, employeeID uuid.UUID) ([]repository.HistoryRecord, error) {
	out := make([]repository.HistoryRecord, 0)
	for _, h := range r.entries {
		if h.EmployeeID == employeeID && h.ApprovalStatus == approval.StatusRejected {
			out = append(out, repository.HistoryRecord{HistoryEntry: h})
		}
	}
	return out, nil
}

type fakeSubSkillRepo struct {
	subs       map[uuid.UUID]repository.SubSkill
	liveCounts map[uuid.UUID]int
	deleted    []uuid.UUID
}

func newFakeSubSkillRepo(subs ...repository.SubSkill) *fakeSubSkillRepo {
	r := &fakeSubSkillRepo{subs: map[uuid.UUID]repository.SubSkill{}, liveCounts: map[uuid.UUID]int{}}
	for _, s := range subs {
		r.subs[s.ID] = s
	}
	return r
}

func (r *fakeSubSkillRepo) ListByMasterSkill(ctx context.Context, masterSkillID uuid.UUID) ([]repository.SubSkill, error) {
	out := make([]repository.SubSkill, 0)
	for _, s := range r.subs {
		if s.MasterSkillID == masterSkillID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubSkillRepo) FindByID(ctx context.Context, id uuid.UUID) (repository.SubSkill, error) {
	s, ok := r.subs[id]
	if !ok {
		return repository.SubSkill{}, repository.ErrSubSkillNotFound
	}
	return s, nil
}

func (r *fakeSubSkillRepo) FindByName(ctx context.Context, masterSkillID uuid.UUID, name string) (repository.SubSkill, error) {
	for _, s := range r.subs {
		if s.MasterSkillID == masterSkillID && strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return repository.SubSkill{}, repository.ErrSubSkillNotFound
}

func (r *fakeSubSkillRepo) Create(ctx context.Context, masterSkillID uuid.UUID, name string) (repository.SubSkill, error) {
	s := repository.SubSkill{ID: uuid.New(), MasterSkillID: masterSkillID, Name: name}
	r.subs[s.ID] = s
	return s, nil
}

func (r *fakeSubSkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.subs[id]; !ok {
		return repository.ErrSubSkillNotFound
	}
	delete(r.subs, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeSubSkillRepo) CountLiveClaims(ctx context.Context, id uuid.UUID) (int, error) {
	return r.liveCounts[id], nil
}

type fakeMasterSkillRepo struct {
	masters map[uuid.UUID]repository.MasterSkill
	deleted []uuid.UUID
}

func newFakeMasterSkillRepo(masters ...repository.MasterSkill) *fakeMasterSkillRepo {
	r := &fakeMasterSkillRepo{masters: map[uuid.UUID]repository.MasterSkill{}}
	for _, m := range masters {
		r.masters[m.ID] = m
	}
	return r
}

func (r *fakeMasterSkillRepo) GetAll(ctx context.Context) ([]repository.MasterSkill, error) {
	out := make([]repository.MasterSkill, 0)
	for _, m := range r.masters {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMasterSkillRepo) FindByID(ctx context.Context, id uuid.UUID) (repository.MasterSkill, error) {
	m, ok := r.masters[id]
	if !ok {
		return repository.MasterSkill{}, repository.ErrMasterSkillNotFound
	}
	return m, nil
}

func (r *fakeMasterSkillRepo) FindByName(ctx context.Context, name string) (repository.MasterSkill, error) {
	for _, m := range r.masters {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return repository.MasterSkill{}, repository.ErrMasterSkillNotFound
}

func (r *fakeMasterSkillRepo) Create(ctx context.Context, name string) (repository.MasterSkill, error) {
	m := repository.MasterSkill{ID: uuid.New(), Name: name}
	r.masters[m.ID] = m
	return m, nil
}

func (r *fakeMasterSkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.masters[id]; !ok {
		return repository.ErrMasterSkillNotFound
	}
	delete(r.masters, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeDashboardRepo struct {
	activeEmployees int
	summary         []repository.MasterSkillSummaryRow
	withMaster      int
	breakdown       []repository.SubSkillBreakdownRow
	stats           []repository.SubSkillClaimStats
}

func (r *fakeDashboardRepo) CountActiveEmployees(ctx context.Context) (int, error) {
	return r.activeEmployees, nil
}

func (r *fakeDashboardRepo) MasterSkillSummary(ctx context.Context, search string, page, pageSize int) ([]repository.MasterSkillSummaryRow, int, error) {
	return r.summary, len(r.summary), nil
}

func (r *fakeDashboardRepo) EmployeesWithMasterSkill(ctx context.Context, masterSkillID uuid.UUID) (int, error) {
	return r.withMaster, nil
}

func (r *fakeDashboardRepo) SubSkillBreakdown(ctx context.Context, masterSkillID uuid.UUID) ([]repository.SubSkillBreakdownRow, error) {
	return r.breakdown, nil
}

func (r *fakeDashboardRepo) SubSkillClaimStats(ctx context.Context, subSkillID uuid.UUID) ([]repository.SubSkillClaimStats, error) {
	return r.stats, nil
}

type fakeMatchingRepo struct {
	rows []repository.SkillRow
}

func (r *fakeMatchingRepo) RowsForSubSkills(ctx context.Context, subSkillIDs []uuid.UUID) ([]repository.SkillRow, error) {
	wanted := map[uuid.UUID]bool{}
	for _, id := range subSkillIDs {
		wanted[id] = true
	}
	out := make([]repository.SkillRow, 0)
	for _, row := range r.rows {
		if wanted[row.SubSkillID] {
			out = append(out, row)
		}
	}
	return out, nil
}

// fakeDecisionStore records what the state machine does inside the
// transaction.
type fakeDecisionStore struct {
	claim    repository.Claim
	claimErr error

	updated  *repository.Claim
	deleted  bool
	appended []repository.HistoryEntry

	latest    *repository.HistoryEntry
	latestErr error
}

func (s *fakeDecisionStore) ClaimForUpdate(ctx context.Context, id uuid.UUID) (repository.Claim, error) {
	if s.claimErr != nil {
		return repository.Claim{}, s.claimErr
	}
	return s.claim, nil
}

func (s *fakeDecisionStore) UpdateClaim(ctx context.Context, c repository.Claim) error {
	cp := c
	s.updated = &cp
	return nil
}

func (s *fakeDecisionStore) DeleteClaim(ctx context.Context, id uuid.UUID) error {
	s.deleted = true
	return nil
}

func (s *fakeDecisionStore) AppendHistory(ctx context.Context, h repository.HistoryEntry) (repository.HistoryEntry, error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	s.appended = append(s.appended, h)
	return h, nil
}

func (s *fakeDecisionStore) LatestApprovedHistory(ctx context.Context, claimID uuid.UUID) (repository.HistoryEntry, error) {
	if s.latestErr != nil {
		return repository.HistoryEntry{}, s.latestErr
	}
	if s.latest == nil {
		return repository.HistoryEntry{}, repository.ErrHistoryNotFound
	}
	return *s.latest, nil
}

type fakeDecisionRunner struct {
	store *fakeDecisionStore
}

func (r *fakeDecisionRunner) InTx(ctx context.Context, fn func(repository.DecisionStore) error) error {
	return fn(r.store)
}
