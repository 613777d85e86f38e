package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// lowCostHasher keeps bcrypt fast in tests.
var lowCostHasher = NewPasswordHasher(4)

func ctxFor(org string, role domain.Role, id int64) context.Context {
	return domain.WithUser(context.Background(), &domain.AuthenticatedUser{
		SubjectID: id,
		Email:     fmt.Sprintf("user%d@example.com", id),
		Role:      role,
		OrgID:     org,
	})
}

func strPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64 { return &i }

// ---------------------------------------------------------------------------
// Credentials, organizations, employees
// ---------------------------------------------------------------------------

type stubEmployeeStore struct {
	mu          sync.Mutex
	nextID      int64
	rows        map[int64]*domain.Employee
	findErr     error
	registerErr error
	// orgs receives organizations made by RegisterWithOrganization.
	orgs *stubOrgRepo
}

func newStubEmployeeStore() *stubEmployeeStore {
	return &stubEmployeeStore{rows: make(map[int64]*domain.Employee)}
}

func cloneEmployee(e *domain.Employee) *domain.Employee {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (s *stubEmployeeStore) insert(e *domain.Employee) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.Email != nil {
		for _, row := range s.rows {
			if row.Email != nil && *row.Email == *e.Email {
				return nil, domain.ErrEmailTaken
			}
		}
	}
	s.nextID++
	c := cloneEmployee(e)
	c.ID = s.nextID
	s.rows[c.ID] = c
	return cloneEmployee(c), nil
}

func (s *stubEmployeeStore) FindByEmail(_ context.Context, email string) (*domain.Employee, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.Email != nil && *row.Email == email {
			return cloneEmployee(row), nil
		}
	}
	return nil, domain.NotFound("Not found")
}

func (s *stubEmployeeStore) Register(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.insert(e)
}

// RegisterWithOrganization only creates the organization once the employee
// insert is known to succeed, like the single-statement SQL version.
func (s *stubEmployeeStore) RegisterWithOrganization(ctx context.Context, orgName string, e *domain.Employee) (*domain.Employee, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	if e.Email != nil {
		if _, err := s.FindByEmail(ctx, *e.Email); err == nil {
			return nil, domain.ErrEmailTaken
		}
	}
	if s.orgs == nil {
		s.orgs = newStubOrgRepo()
	}
	org, err := s.orgs.Create(ctx, orgName)
	if err != nil {
		return nil, err
	}
	c := cloneEmployee(e)
	c.OrgID = org.ID
	return s.insert(c)
}

func (s *stubEmployeeStore) ResetCredentials(_ context.Context, id int64, role domain.Role, hash string) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, domain.NotFound("Not found")
	}
	row.Role = role
	row.PasswordHash = &hash
	row.IsActive = true
	return cloneEmployee(row), nil
}

func (s *stubEmployeeStore) List(_ context.Context, scope domain.Scope) ([]*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*domain.Employee{}
	for _, row := range s.rows {
		if row.OrgID == scope.OrgID {
			out = append(out, cloneEmployee(row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *stubEmployeeStore) Get(_ context.Context, scope domain.Scope, id int64) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok || row.OrgID != scope.OrgID {
		return nil, domain.NotFound("Not found")
	}
	return cloneEmployee(row), nil
}

func (s *stubEmployeeStore) Create(_ context.Context, _ domain.Scope, e *domain.Employee) (*domain.Employee, error) {
	return s.insert(e)
}

func (s *stubEmployeeStore) Update(_ context.Context, scope domain.Scope, id int64, u ports.EmployeeUpdate) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok || row.OrgID != scope.OrgID {
		return nil, domain.NotFound("Not found")
	}
	if u.Name != nil {
		row.Name = *u.Name
	}
	if u.Role != nil {
		row.Role = *u.Role
	}
	if u.UserID != nil {
		row.UserID = u.UserID
	}
	if u.IsActive != nil {
		row.IsActive = *u.IsActive
	}
	return cloneEmployee(row), nil
}

func (s *stubEmployeeStore) setActive(id int64, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[id].IsActive = active
}

type stubOrgRepo struct {
	orgs map[string]*domain.Organization
	n    int
}

func newStubOrgRepo(ids ...string) *stubOrgRepo {
	r := &stubOrgRepo{orgs: make(map[string]*domain.Organization)}
	for _, id := range ids {
		r.orgs[id] = &domain.Organization{ID: id, Name: id}
	}
	return r
}

func (r *stubOrgRepo) Create(_ context.Context, name string) (*domain.Organization, error) {
	r.n++
	o := &domain.Organization{ID: fmt.Sprintf("org-%d", r.n), Name: name}
	r.orgs[o.ID] = o
	return o, nil
}

func (r *stubOrgRepo) Get(_ context.Context, id string) (*domain.Organization, error) {
	o, ok := r.orgs[id]
	if !ok {
		return nil, domain.ErrOrgNotFound
	}
	return o, nil
}

// ---------------------------------------------------------------------------
// Customers, work orders, tasks
// ---------------------------------------------------------------------------

type stubCustomerRepo struct {
	rows   map[int64]*domain.Customer
	nextID int64
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{rows: make(map[int64]*domain.Customer)}
}

func (r *stubCustomerRepo) List(_ context.Context, scope domain.Scope) ([]*domain.Customer, error) {
	out := []*domain.Customer{}
	for _, c := range r.rows {
		if c.OrgID == scope.OrgID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCustomerRepo) Get(_ context.Context, scope domain.Scope, id int64) (*domain.Customer, error) {
	c, ok := r.rows[id]
	if !ok || c.OrgID != scope.OrgID {
		return nil, domain.NotFound("Not found")
	}
	clone := *c
	return &clone, nil
}

func (r *stubCustomerRepo) Create(_ context.Context, _ domain.Scope, c *domain.Customer) (*domain.Customer, error) {
	r.nextID++
	clone := *c
	clone.ID = r.nextID
	r.rows[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, scope domain.Scope, id int64, u ports.CustomerUpdate) (*domain.Customer, error) {
	c, ok := r.rows[id]
	if !ok || c.OrgID != scope.OrgID {
		return nil, domain.NotFound("Not found")
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Phone != nil {
		c.Phone = u.Phone
	}
	if u.Email != nil {
		c.Email = u.Email
	}
	clone := *c
	return &clone, nil
}

type stubWorkorderRepo struct {
	rows      map[string]*domain.Workorder
	customers *stubCustomerRepo
	createErr error
}

func newStubWorkorderRepo(customers *stubCustomerRepo) *stubWorkorderRepo {
	return &stubWorkorderRepo{rows: make(map[string]*domain.Workorder), customers: customers}
}

func (r *stubWorkorderRepo) withCustomer(w *domain.Workorder) *domain.Workorder {
	clone := *w
	if w.CustomerID != nil && r.customers != nil {
		if c, ok := r.customers.rows[*w.CustomerID]; ok {
			clone.CustomerName = &c.Name
			clone.CustomerPhone = c.Phone
		}
	}
	return &clone
}

func (r *stubWorkorderRepo) List(_ context.Context, scope domain.Scope, f ports.WorkorderFilter) ([]*domain.Workorder, error) {
	out := []*domain.Workorder{}
	for _, w := range r.rows {
		if w.OrgID != scope.OrgID {
			continue
		}
		if f.Status != nil && w.Status != *f.Status {
			continue
		}
		out = append(out, r.withCustomer(w))
	}
	return out, nil
}

func (r *stubWorkorderRepo) Get(_ context.Context, scope domain.Scope, id string) (*domain.Workorder, error) {
	w, ok := r.rows[id]
	if !ok || w.OrgID != scope.OrgID {
		return nil, domain.ErrWorkorderMissing
	}
	return r.withCustomer(w), nil
}

func (r *stubWorkorderRepo) FindByID(_ context.Context, id string) (*domain.Workorder, error) {
	w, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrWorkorderMissing
	}
	return r.withCustomer(w), nil
}

func (r *stubWorkorderRepo) Create(_ context.Context, _ domain.Scope, w *domain.Workorder) (*domain.Workorder, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.rows[w.ID]; exists {
		return nil, domain.ErrWorkorderExists
	}
	clone := *w
	r.rows[w.ID] = &clone
	return r.withCustomer(&clone), nil
}

func (r *stubWorkorderRepo) Update(_ context.Context, scope domain.Scope, id string, u ports.WorkorderUpdate) (*domain.Workorder, error) {
	w, ok := r.rows[id]
	if !ok || w.OrgID != scope.OrgID {
		return nil, domain.ErrWorkorderMissing
	}
	if u.Vehicle != nil {
		w.Vehicle = *u.Vehicle
	}
	if u.CustomerID != nil {
		w.CustomerID = u.CustomerID
	}
	if u.Complaint != nil {
		w.Complaint = u.Complaint
	}
	if u.Status != nil {
		w.Status = *u.Status
	}
	return r.withCustomer(w), nil
}

type stubTaskRepo struct {
	rows   map[int64]*domain.Task
	nextID int64
	last   ports.TaskFilter
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{rows: make(map[int64]*domain.Task)}
}

func (r *stubTaskRepo) List(_ context.Context, scope domain.Scope, f ports.TaskFilter) ([]*domain.Task, error) {
	r.last = f
	out := []*domain.Task{}
	for _, t := range r.rows {
		if t.OrgID != scope.OrgID {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubTaskRepo) Get(_ context.Context, scope domain.Scope, id int64) (*domain.Task, error) {
	t, ok := r.rows[id]
	if !ok || t.OrgID != scope.OrgID {
		return nil, domain.NotFound("Not found")
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) ListByWorkorder(_ context.Context, workorderID string) ([]*domain.Task, error) {
	out := []*domain.Task{}
	for _, t := range r.rows {
		if t.WorkorderID == workorderID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTaskRepo) Create(_ context.Context, _ domain.Scope, t *domain.Task) (*domain.Task, error) {
	r.nextID++
	clone := *t
	clone.ID = r.nextID
	r.rows[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, scope domain.Scope, id int64, u ports.TaskUpdate) (*domain.Task, error) {
	t, ok := r.rows[id]
	if !ok || t.OrgID != scope.OrgID {
		return nil, domain.NotFound("Not found")
	}
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.AssignedEmployeeID != nil {
		t.AssignedEmployeeID = u.AssignedEmployeeID
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.TimeSpent != nil {
		t.TimeSpent = u.TimeSpent
	}
	clone := *t
	return &clone, nil
}

// ---------------------------------------------------------------------------
// Idempotency, activity
// ---------------------------------------------------------------------------

type stubIdempotency struct {
	keys      map[string]string
	lookupErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Lookup(_ context.Context, orgID, key string) (string, bool, error) {
	if s.lookupErr != nil {
		return "", false, s.lookupErr
	}
	id, ok := s.keys[orgID+"/"+key]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, orgID, key, workorderID string) error {
	s.keys[orgID+"/"+key] = workorderID
	return nil
}

type captureRecorder struct {
	entries []domain.Activity
}

func (r *captureRecorder) Record(a domain.Activity) {
	r.entries = append(r.entries, a)
}

func (r *captureRecorder) actions() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.EntityType+":"+e.Action)
	}
	return out
}

type stubActivityRepo struct {
	inserted  []domain.Activity
	insertErr error
}

func (r *stubActivityRepo) Insert(_ context.Context, a domain.Activity) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, a)
	return nil
}

func (r *stubActivityRepo) ListByWorkorder(_ context.Context, orgID, workorderID string, _ int64) ([]domain.Activity, error) {
	out := []domain.Activity{}
	for _, a := range r.inserted {
		if a.OrgID == orgID && a.WorkorderID == workorderID {
			out = append(out, a)
		}
	}
	return out, nil
}

var errStoreDown = errors.New("store down")
