package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

type employeeService struct {
	repo   ports.EmployeeRepository
	hasher *PasswordHasher
	log    zerolog.Logger
}

// NewEmployeeService returns an EmployeeService implementation.
func NewEmployeeService(repo ports.EmployeeRepository, hasher *PasswordHasher, log zerolog.Logger) ports.EmployeeService {
	return &employeeService{repo: repo, hasher: hasher, log: log}
}

func (s *employeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, scope)
}

func (s *employeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, scope, id)
}

// Create adds an employee. Only admins may do this.
func (s *employeeService) Create(ctx context.Context, in ports.CreateEmployeeInput) (*domain.Employee, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}
	user, _ := domain.UserFromContext(ctx)
	if _, err := domain.RequireAdmin(user); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("Name is required")
	}

	role := domain.RoleMonteur
	if in.Role != "" {
		r, ok := domain.ParseRole(in.Role)
		if !ok {
			return nil, domain.ErrUnknownRole
		}
		role = r
	}

	emp := &domain.Employee{
		OrgID:    scope.OrgID,
		Name:     name,
		Role:     role,
		UserID:   in.UserID,
		IsActive: true,
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		emp.Email = &email
	}
	if in.Password != nil {
		if emp.Email == nil {
			return nil, domain.Validation("A password requires an email")
		}
		if len(*in.Password) < MinPasswordLength {
			return nil, domain.ErrPasswordTooShort
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("create employee: hash password: %w", err)
		}
		emp.PasswordHash = &hash
	}

	created, err := s.repo.Create(ctx, scope, emp)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("employee_id", created.ID).Str("org_id", scope.OrgID).Msg("employee created")
	return created, nil
}

// Update applies a partial update. Changing role or active state is reserved
// for admins.
func (s *employeeService) Update(ctx context.Context, id int64, in ports.EmployeeUpdate) (*domain.Employee, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if in.Role != nil || in.IsActive != nil {
		user, _ := domain.UserFromContext(ctx)
		if _, err := domain.RequireAdmin(user); err != nil {
			return nil, domain.ErrRoleRequired
		}
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.Validation("Name must not be empty")
	}
	return s.repo.Update(ctx, scope, id, in)
}
