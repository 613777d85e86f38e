package ports

import (
	"context"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// TaskFilter narrows a task listing. Nil fields do not filter.
type TaskFilter struct {
	WorkorderID        *string
	AssignedEmployeeID *int64
	Status             *domain.TaskStatus
}

// TaskUpdate is a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Name               *string
	AssignedEmployeeID *int64
	Status             *domain.TaskStatus
	TimeSpent          *string
}

// TaskRepository persists tasks within a tenant scope.
type TaskRepository interface {
	// List returns tasks newest first.
	List(ctx context.Context, scope domain.Scope, f TaskFilter) ([]*domain.Task, error)
	Get(ctx context.Context, scope domain.Scope, id int64) (*domain.Task, error)
	// ListByWorkorder returns the tasks of a work order without a tenant
	// predicate, oldest first. It backs the public portal only.
	ListByWorkorder(ctx context.Context, workorderID string) ([]*domain.Task, error)
	Create(ctx context.Context, scope domain.Scope, t *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, scope domain.Scope, id int64, u TaskUpdate) (*domain.Task, error)
}
