package ports

import (
	"context"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// EmployeeUpdate is a partial update; nil fields are left untouched.
type EmployeeUpdate struct {
	Name     *string
	Role     *domain.Role
	UserID   *string
	IsActive *bool
}

// EmployeeRepository persists employees within a tenant scope.
type EmployeeRepository interface {
	List(ctx context.Context, scope domain.Scope) ([]*domain.Employee, error)
	Get(ctx context.Context, scope domain.Scope, id int64) (*domain.Employee, error)
	Create(ctx context.Context, scope domain.Scope, e *domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, scope domain.Scope, id int64, u EmployeeUpdate) (*domain.Employee, error)
}
