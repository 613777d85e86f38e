package ports

import (
	"context"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// CreateCustomerInput carries a new customer.
type CreateCustomerInput struct {
	Name  string
	Phone *string
	Email *string
}

// CustomerService defines tenant-scoped customer use cases.
type CustomerService interface {
	List(ctx context.Context) ([]*domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, in CreateCustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, id int64, in CustomerUpdate) (*domain.Customer, error)
}
