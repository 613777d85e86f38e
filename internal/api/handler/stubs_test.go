package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

// newContext builds an echo context for a JSON request. user, when non-nil,
// is attached the way the Auth middleware does it.
func newContext(method, target, body string, user *domain.AuthenticatedUser) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if user != nil {
		req = req.WithContext(domain.WithUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

var balie = &domain.AuthenticatedUser{SubjectID: 2, Email: "balie@garage.nl", Role: domain.RoleBalie, OrgID: "org-1"}

func strPtr(s string) *string { return &s }

func isHTTPError(err error, code int) bool {
	he, ok := err.(*echo.HTTPError)
	return ok && he.Code == code
}

// ---- auth ------------------------------------------------------------------

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.TokenResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.TokenResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.TokenResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.TokenResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) BootstrapAdmin(context.Context, ports.BootstrapAdminInput) (*domain.Employee, bool, error) {
	return nil, false, nil
}

// ---- employees -------------------------------------------------------------

type stubEmployeeService struct {
	list       []*domain.Employee
	lastCreate ports.CreateEmployeeInput
	lastUpdate ports.EmployeeUpdate
	err        error
}

func (s *stubEmployeeService) List(context.Context) ([]*domain.Employee, error) { return s.list, s.err }

func (s *stubEmployeeService) Get(_ context.Context, id int64) (*domain.Employee, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Employee{ID: id, OrgID: "org-1", Name: "Kees", Role: domain.RoleMonteur, IsActive: true}, nil
}

func (s *stubEmployeeService) Create(_ context.Context, in ports.CreateEmployeeInput) (*domain.Employee, error) {
	s.lastCreate = in
	if s.err != nil {
		return nil, s.err
	}
	role, _ := domain.ParseRole(in.Role)
	return &domain.Employee{ID: 10, OrgID: "org-1", Name: in.Name, Role: role, Email: in.Email, IsActive: true}, nil
}

func (s *stubEmployeeService) Update(_ context.Context, id int64, in ports.EmployeeUpdate) (*domain.Employee, error) {
	s.lastUpdate = in
	if s.err != nil {
		return nil, s.err
	}
	e := &domain.Employee{ID: id, OrgID: "org-1", Name: "Kees", Role: domain.RoleMonteur, IsActive: true}
	if in.Role != nil {
		e.Role = *in.Role
	}
	return e, nil
}

// ---- customers -------------------------------------------------------------

type stubCustomerService struct {
	list       []*domain.Customer
	lastCreate ports.CreateCustomerInput
	lastUpdate ports.CustomerUpdate
	err        error
}

func (s *stubCustomerService) List(context.Context) ([]*domain.Customer, error) { return s.list, s.err }

func (s *stubCustomerService) Get(_ context.Context, id int64) (*domain.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Customer{ID: id, OrgID: "org-1", Name: "Jansen"}, nil
}

func (s *stubCustomerService) Create(_ context.Context, in ports.CreateCustomerInput) (*domain.Customer, error) {
	s.lastCreate = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Customer{ID: 1, OrgID: "org-1", Name: in.Name, Phone: in.Phone, Email: in.Email}, nil
}

func (s *stubCustomerService) Update(_ context.Context, id int64, in ports.CustomerUpdate) (*domain.Customer, error) {
	s.lastUpdate = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Customer{ID: id, OrgID: "org-1", Name: "Jansen", Phone: in.Phone}, nil
}

// ---- work orders -----------------------------------------------------------

type stubWorkorderService struct {
	lastStatus string
	lastCreate ports.CreateWorkorderInput
	lastUpdate ports.UpdateWorkorderInput
	replay     bool
	err        error
}

func (s *stubWorkorderService) List(_ context.Context, status string) ([]*domain.Workorder, error) {
	s.lastStatus = status
	if s.err != nil {
		return nil, s.err
	}
	return []*domain.Workorder{{ID: "ab12cd34", OrgID: "org-1", Vehicle: "Volvo", Status: domain.WorkorderNew}}, nil
}

func (s *stubWorkorderService) Get(_ context.Context, id string) (*domain.Workorder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Workorder{ID: id, OrgID: "org-1", Vehicle: "Volvo", Status: domain.WorkorderNew}, nil
}

func (s *stubWorkorderService) Create(_ context.Context, in ports.CreateWorkorderInput) (*ports.WorkorderResult, error) {
	s.lastCreate = in
	if s.err != nil {
		return nil, s.err
	}
	id := in.ID
	if id == "" {
		id = "ab12cd34"
	}
	return &ports.WorkorderResult{
		Workorder: &domain.Workorder{
			ID: id, OrgID: "org-1", Vehicle: in.Vehicle, CustomerID: in.CustomerID,
			Received: in.Received, Due: in.Due, Complaint: in.Complaint,
			Status: domain.NormalizeWorkorderStatus(in.Status),
		},
		AlreadyExisted: s.replay,
	}, nil
}

func (s *stubWorkorderService) Update(_ context.Context, id string, in ports.UpdateWorkorderInput) (*domain.Workorder, error) {
	s.lastUpdate = in
	if s.err != nil {
		return nil, s.err
	}
	w := &domain.Workorder{ID: id, OrgID: "org-1", Vehicle: "Volvo", Status: domain.WorkorderNew}
	if in.Status != nil {
		w.Status = domain.NormalizeWorkorderStatus(*in.Status)
	}
	return w, nil
}

type stubActivityService struct {
	items []domain.Activity
	err   error
}

func (s *stubActivityService) Process(context.Context, domain.Activity) error { return nil }

func (s *stubActivityService) ListForWorkorder(context.Context, string) ([]domain.Activity, error) {
	return s.items, s.err
}

// ---- tasks -----------------------------------------------------------------

type stubTaskService struct {
	lastList   ports.ListTasksInput
	lastCreate ports.CreateTaskInput
	lastUpdate ports.UpdateTaskInput
	err        error
}

func (s *stubTaskService) List(_ context.Context, in ports.ListTasksInput) ([]*domain.Task, error) {
	s.lastList = in
	if s.err != nil {
		return nil, s.err
	}
	return []*domain.Task{}, nil
}

func (s *stubTaskService) Get(_ context.Context, id int64) (*domain.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Task{ID: id, OrgID: "org-1", WorkorderID: "WO-1", Name: "Brakes", Status: domain.TaskToDo}, nil
}

func (s *stubTaskService) Create(_ context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	s.lastCreate = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Task{ID: 1, OrgID: "org-1", WorkorderID: in.WorkorderID, Name: in.Name, Status: domain.NormalizeTaskStatus(in.Status)}, nil
}

func (s *stubTaskService) Update(_ context.Context, id int64, in ports.UpdateTaskInput) (*domain.Task, error) {
	s.lastUpdate = in
	if s.err != nil {
		return nil, s.err
	}
	t := &domain.Task{ID: id, OrgID: "org-1", WorkorderID: "WO-1", Name: "Brakes", Status: domain.TaskToDo}
	if in.Status != nil {
		t.Status = domain.NormalizeTaskStatus(*in.Status)
	}
	return t, nil
}

// ---- portal ----------------------------------------------------------------

type stubPortalService struct {
	view *ports.PortalView
	err  error
}

func (s *stubPortalService) Get(context.Context, string) (*ports.PortalView, error) {
	return s.view, s.err
}

