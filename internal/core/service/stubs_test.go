package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

var nopLog = zerolog.Nop()

// --- users ---

type stubUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*domain.User
}

func newStubUserRepo(users ...domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[uint]*domain.User)}
	for _, u := range users {
		u := u
		if err := r.Create(context.Background(), &u); err != nil {
			panic(err)
		}
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrUserExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, role string) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id uint, update domain.ProfileUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.FullName != nil {
		u.FullName = *update.FullName
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Title != nil {
		u.Title = *update.Title
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id uint, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id uint, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) TouchLogin(_ context.Context, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// --- audit ---

type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *recordingAudit) Record(_ context.Context, entry domain.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *recordingAudit) recorded() []domain.AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.AuditEntry(nil), a.entries...)
}

type stubAuditRepo struct {
	byEvent    []domain.Count
	byOutcome  []domain.Count
	paths      []domain.Count
	daily      []domain.Count
	lastSince  time.Time
	pathsLimit int
}

func (r *stubAuditRepo) Insert(context.Context, *domain.AuditEntry) error { return nil }

func (r *stubAuditRepo) CountByEventType(_ context.Context, since time.Time) ([]domain.Count, error) {
	r.lastSince = since
	return r.byEvent, nil
}

func (r *stubAuditRepo) CountByOutcome(context.Context, string, time.Time) ([]domain.Count, error) {
	return r.byOutcome, nil
}

func (r *stubAuditRepo) TopPaths(_ context.Context, _ string, _ time.Time, limit int) ([]domain.Count, error) {
	r.pathsLimit = limit
	return r.paths, nil
}

func (r *stubAuditRepo) DailyCounts(context.Context, string, time.Time) ([]domain.Count, error) {
	return r.daily, nil
}

// --- denylist ---

type stubDenylist struct {
	revoked map[string]time.Time
	err     error
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Time)}
}

func (d *stubDenylist) Revoke(_ context.Context, id string, until time.Time) error {
	if d.err != nil {
		return d.err
	}
	d.revoked[id] = until
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[id]
	return ok, nil
}

// --- taxonomy ---

type stubTaxonomyRepo struct {
	mu         sync.Mutex
	nextID     uint
	domains    map[uint]*domain.Domain
	subdomains map[uint]*domain.Subdomain
}

func newStubTaxonomyRepo() *stubTaxonomyRepo {
	return &stubTaxonomyRepo{
		domains:    make(map[uint]*domain.Domain),
		subdomains: make(map[uint]*domain.Subdomain),
	}
}

func (r *stubTaxonomyRepo) ListDomains(context.Context) ([]domain.Domain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Domain
	for _, d := range r.domains {
		clone := *d
		for _, s := range r.subdomains {
			if s.DomainID == d.ID {
				clone.Subdomains = append(clone.Subdomains, *s)
			}
		}
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *stubTaxonomyRepo) CountDomains(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.domains)), nil
}

func (r *stubTaxonomyRepo) CreateDomain(_ context.Context, d *domain.Domain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	d.ID = r.nextID
	clone := *d
	r.domains[d.ID] = &clone
	return nil
}

func (r *stubTaxonomyRepo) UpdateDomain(_ context.Context, d *domain.Domain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.domains[d.ID]; !ok {
		return domain.ErrDomainNotFound
	}
	clone := *d
	r.domains[d.ID] = &clone
	return nil
}

func (r *stubTaxonomyRepo) FindDomain(_ context.Context, id uint) (*domain.Domain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.domains[id]
	if !ok {
		return nil, domain.ErrDomainNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubTaxonomyRepo) DeleteDomain(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.domains[id]; !ok {
		return domain.ErrDomainNotFound
	}
	for sid, s := range r.subdomains {
		if s.DomainID == id {
			delete(r.subdomains, sid)
		}
	}
	delete(r.domains, id)
	return nil
}

func (r *stubTaxonomyRepo) CreateSubdomain(_ context.Context, s *domain.Subdomain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	s.ID = r.nextID
	clone := *s
	r.subdomains[s.ID] = &clone
	return nil
}

func (r *stubTaxonomyRepo) UpdateSubdomain(_ context.Context, s *domain.Subdomain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subdomains[s.ID]; !ok {
		return domain.ErrSubdomainNotFound
	}
	clone := *s
	r.subdomains[s.ID] = &clone
	return nil
}

func (r *stubTaxonomyRepo) FindSubdomain(_ context.Context, id uint) (*domain.Subdomain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subdomains[id]
	if !ok {
		return nil, domain.ErrSubdomainNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubTaxonomyRepo) DeleteSubdomain(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subdomains[id]; !ok {
		return domain.ErrSubdomainNotFound
	}
	delete(r.subdomains, id)
	return nil
}

func (r *stubTaxonomyRepo) SubdomainsLedBy(_ context.Context, username string) ([]domain.Subdomain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Subdomain
	for _, s := range r.subdomains {
		if s.LeadConsultant == username {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTaxonomyRepo) ReassignLeadConsultant(_ context.Context, username string, ids []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if _, ok := r.subdomains[id]; !ok {
			return domain.ErrSubdomainNotFound
		}
	}
	for _, s := range r.subdomains {
		if s.LeadConsultant == username {
			s.LeadConsultant = ""
		}
	}
	for _, id := range ids {
		r.subdomains[id].LeadConsultant = username
	}
	return nil
}

// --- hours ---

type stubHoursRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries map[int64]domain.HistEntry
	forDay  []int
	since   time.Time
}

func newStubHoursRepo() *stubHoursRepo {
	return &stubHoursRepo{entries: make(map[int64]domain.HistEntry)}
}

func (r *stubHoursRepo) Insert(_ context.Context, e *domain.HistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	e.ID = r.nextID
	r.entries[e.ID] = *e
	return nil
}

func (r *stubHoursRepo) ForDay(_ context.Context, consultant string, day, month, year int) ([]domain.HistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forDay = []int{day, month, year}
	var out []domain.HistEntry
	for _, e := range r.entries {
		if e.Consultant == consultant && e.Day == day && e.Month == month && e.Year == year {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubHoursRepo) Recent(_ context.Context, consultant string, limit int) ([]domain.HistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.HistEntry
	for _, e := range r.entries {
		if e.Consultant == consultant {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubHoursRepo) ForMonth(_ context.Context, consultant string, month, year int) ([]domain.HistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.HistEntry
	for _, e := range r.entries {
		if e.Consultant == consultant && e.Month == month && e.Year == year {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubHoursRepo) Find(_ context.Context, id int64) (*domain.HistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return &e, nil
}

func (r *stubHoursRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *stubHoursRepo) TotalsByClient(_ context.Context, consultant string, since time.Time) ([]domain.ClientHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.since = since
	return nil, nil
}

// --- organization requests ---

type stubRequestRepo struct {
	mu       sync.Mutex
	nextID   uint
	requests []domain.OrganizationRequest
}

func (r *stubRequestRepo) Create(_ context.Context, req *domain.OrganizationRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	req.ID = r.nextID
	r.requests = append(r.requests, *req)
	return nil
}

func (r *stubRequestRepo) List(_ context.Context, status string) ([]domain.OrganizationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.OrganizationRequest
	for _, req := range r.requests {
		if status == "" || req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *stubRequestRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == id {
			r.requests[i].Status = status
			return nil
		}
	}
	return domain.ErrRequestNotFound
}

func (r *stubRequestRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == id {
			r.requests = append(r.requests[:i], r.requests[i+1:]...)
			return nil
		}
	}
	return domain.ErrRequestNotFound
}

// --- assessments ---

type stubAssessmentRepo struct {
	mu        sync.Mutex
	codes     map[string]*domain.AssessmentCode
	sessions  map[string]*domain.AssessmentSession
	responses []domain.AssessmentResponse
	nextID    uint
}

func newStubAssessmentRepo(codes ...domain.AssessmentCode) *stubAssessmentRepo {
	r := &stubAssessmentRepo{
		codes:    make(map[string]*domain.AssessmentCode),
		sessions: make(map[string]*domain.AssessmentSession),
	}
	for _, c := range codes {
		c := c
		r.codes[c.Code] = &c
	}
	return r
}

func (r *stubAssessmentRepo) CreateCode(_ context.Context, c *domain.AssessmentCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.codes[c.Code]; ok {
		return domain.ErrCodeExists
	}
	clone := *c
	r.codes[c.Code] = &clone
	return nil
}

func (r *stubAssessmentRepo) FindCode(_ context.Context, code string) (*domain.AssessmentCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[code]
	if !ok {
		return nil, domain.ErrCodeNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubAssessmentRepo) ListCodes(context.Context) ([]domain.AssessmentCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AssessmentCode
	for _, c := range r.codes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubAssessmentRepo) withCode(code string, fn func(*domain.AssessmentCode)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[code]
	if !ok {
		return domain.ErrCodeNotFound
	}
	fn(c)
	return nil
}

func (r *stubAssessmentRepo) DeactivateCode(_ context.Context, code string) error {
	return r.withCode(code, func(c *domain.AssessmentCode) { c.Active = false })
}

func (r *stubAssessmentRepo) DeleteCode(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.codes[code]; !ok {
		return domain.ErrCodeNotFound
	}
	delete(r.codes, code)
	return nil
}

func (r *stubAssessmentRepo) IncrementCodeUse(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[code]
	if !ok {
		return domain.ErrCodeNotFound
	}
	if c.MaxUses > 0 && c.UseCount >= c.MaxUses {
		return domain.ErrCodeExhausted
	}
	c.UseCount++
	return nil
}

func (r *stubAssessmentRepo) MarkCodeCompleted(_ context.Context, code string, at time.Time) error {
	return r.withCode(code, func(c *domain.AssessmentCode) { c.CompletedAt = &at })
}

func (r *stubAssessmentRepo) CreateSession(_ context.Context, s *domain.AssessmentSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *s
	r.sessions[s.ID] = &clone
	return nil
}

func (r *stubAssessmentRepo) FindSession(_ context.Context, id string) (*domain.AssessmentSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubAssessmentRepo) CompleteSession(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if s.Status == domain.SessionCompleted {
		return domain.ErrSessionCompleted
	}
	s.Status = domain.SessionCompleted
	s.CompletedAt = &at
	return nil
}

func (r *stubAssessmentRepo) ListSessions(_ context.Context, code string) ([]domain.AssessmentSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AssessmentSession
	for _, s := range r.sessions {
		if s.Code != code {
			continue
		}
		clone := *s
		for _, resp := range r.responses {
			if resp.SessionID == s.ID {
				clone.ResponseCount++
			}
		}
		out = append(out, clone)
	}
	return out, nil
}

func (r *stubAssessmentRepo) CreateResponse(_ context.Context, resp *domain.AssessmentResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	resp.ID = r.nextID
	r.responses = append(r.responses, *resp)
	return nil
}

func (r *stubAssessmentRepo) ListResponses(_ context.Context, sessionID string) ([]domain.AssessmentResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AssessmentResponse
	for _, resp := range r.responses {
		if resp.SessionID == sessionID {
			out = append(out, resp)
		}
	}
	return out, nil
}

// --- migrator ---

type stubMigrator struct {
	calls int
	err   error
}

func (m *stubMigrator) Migrate(context.Context) error {
	m.calls++
	return m.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }
