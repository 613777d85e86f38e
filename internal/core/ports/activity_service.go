package ports

import (
	"context"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// ActivityService records and reads the work order audit trail.
type ActivityService interface {
	// Process persists one activity. It is called from the dispatcher workers.
	Process(ctx context.Context, a domain.Activity) error
	ListForWorkorder(ctx context.Context, workorderID string) ([]domain.Activity, error)
}
