package ports

import (
	"context"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// ActivityRepository persists the work order audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, a domain.Activity) error
	// ListByWorkorder returns entries newest first, at most limit of them.
	ListByWorkorder(ctx context.Context, orgID, workorderID string, limit int64) ([]domain.Activity, error)
}
