package service

import (
	"context"
	"strings"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

type customerService struct {
	repo ports.CustomerRepository
}

// NewCustomerService returns a CustomerService implementation.
func NewCustomerService(repo ports.CustomerRepository) ports.CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) List(ctx context.Context) ([]*domain.Customer, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, scope)
}

func (s *customerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, scope, id)
}

func (s *customerService) Create(ctx context.Context, in ports.CreateCustomerInput) (*domain.Customer, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("Name is required")
	}
	return s.repo.Create(ctx, scope, &domain.Customer{
		OrgID: scope.OrgID,
		Name:  name,
		Phone: in.Phone,
		Email: in.Email,
	})
}

func (s *customerService) Update(ctx context.Context, id int64, in ports.CustomerUpdate) (*domain.Customer, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.Validation("Name must not be empty")
	}
	return s.repo.Update(ctx, scope, id, in)
}
