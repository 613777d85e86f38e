package ports

import (
	"context"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// ListTasksInput carries raw query parameters; Status is validated by the
// service.
type ListTasksInput struct {
	WorkorderID        *string
	AssignedEmployeeID *int64
	Status             *string
}

// CreateTaskInput carries a new task.
type CreateTaskInput struct {
	WorkorderID        string
	Name               string
	AssignedEmployeeID *int64
	Status             string
	TimeSpent          *string
}

// UpdateTaskInput is a partial update.
type UpdateTaskInput struct {
	Name               *string
	AssignedEmployeeID *int64
	Status             *string
	TimeSpent          *string
}

// TaskService defines tenant-scoped task use cases.
type TaskService interface {
	List(ctx context.Context, in ListTasksInput) ([]*domain.Task, error)
	Get(ctx context.Context, id int64) (*domain.Task, error)
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, id int64, in UpdateTaskInput) (*domain.Task, error)
}
