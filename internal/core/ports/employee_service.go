package ports

import (
	"context"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// CreateEmployeeInput carries a new staff member. Email and Password are
// optional; together they make the employee able to log in.
type CreateEmployeeInput struct {
	Name     string
	Role     string
	UserID   *string
	Email    *string
	Password *string
}

// EmployeeService defines tenant-scoped employee use cases.
type EmployeeService interface {
	List(ctx context.Context) ([]*domain.Employee, error)
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	Create(ctx context.Context, in CreateEmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, id int64, in EmployeeUpdate) (*domain.Employee, error)
}
