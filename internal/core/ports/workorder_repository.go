package ports

import (
	"context"
	"time"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// WorkorderFilter narrows a work order listing.
type WorkorderFilter struct {
	Status *domain.WorkorderStatus
}

// WorkorderUpdate is a partial update; nil fields are left untouched.
type WorkorderUpdate struct {
	Vehicle    *string
	CustomerID *int64
	Received   *time.Time
	Due        *time.Time
	Complaint  *string
	Status     *domain.WorkorderStatus
}

// WorkorderRepository persists work orders. Reads return the linked
// customer's name and phone alongside the row.
type WorkorderRepository interface {
	// List returns work orders newest first.
	List(ctx context.Context, scope domain.Scope, f WorkorderFilter) ([]*domain.Workorder, error)
	Get(ctx context.Context, scope domain.Scope, id string) (*domain.Workorder, error)
	// FindByID looks a work order up without a tenant predicate. It backs the
	// public portal only.
	FindByID(ctx context.Context, id string) (*domain.Workorder, error)
	// Create fails with domain.ErrWorkorderExists when the id is taken.
	Create(ctx context.Context, scope domain.Scope, w *domain.Workorder) (*domain.Workorder, error)
	Update(ctx context.Context, scope domain.Scope, id string, u WorkorderUpdate) (*domain.Workorder, error)
}
