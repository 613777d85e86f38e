package ports

import (
	"context"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// CustomerUpdate is a partial update; nil fields are left untouched.
type CustomerUpdate struct {
	Name  *string
	Phone *string
	Email *string
}

// CustomerRepository persists customers within a tenant scope.
type CustomerRepository interface {
	// List returns customers ordered by name.
	List(ctx context.Context, scope domain.Scope) ([]*domain.Customer, error)
	Get(ctx context.Context, scope domain.Scope, id int64) (*domain.Customer, error)
	Create(ctx context.Context, scope domain.Scope, c *domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, scope domain.Scope, id int64, u CustomerUpdate) (*domain.Customer, error)
}
