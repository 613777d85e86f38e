package ports

import (
	"context"
	"time"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// CreateWorkorderInput carries a new work order. ID is optional and generated
// when empty. IdempotencyKey, when set, makes retries return the original.
type CreateWorkorderInput struct {
	ID             string
	Vehicle        string
	CustomerID     *int64
	Received       *time.Time
	Due            *time.Time
	Complaint      *string
	Status         string
	IdempotencyKey string
}

// UpdateWorkorderInput is a partial update. Status is a raw spelling and is
// normalized by the service.
type UpdateWorkorderInput struct {
	Vehicle    *string
	CustomerID *int64
	Received   *time.Time
	Due        *time.Time
	Complaint  *string
	Status     *string
}

// WorkorderResult is returned by Create.
type WorkorderResult struct {
	Workorder *domain.Workorder
	// AlreadyExisted is true when the Idempotency-Key matched an earlier create.
	AlreadyExisted bool
}

// WorkorderService defines tenant-scoped work order use cases.
type WorkorderService interface {
	List(ctx context.Context, status string) ([]*domain.Workorder, error)
	Get(ctx context.Context, id string) (*domain.Workorder, error)
	Create(ctx context.Context, in CreateWorkorderInput) (*WorkorderResult, error)
	Update(ctx context.Context, id string, in UpdateWorkorderInput) (*domain.Workorder, error)
}
