package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
	"github.com/werkbank/workshop-system/internal/pkg/metrics"
)

// activityListLimit caps the audit trail returned for one work order.
const activityListLimit = 200

// ActivityRecorder accepts audit entries for asynchronous persistence.
// Record must not block the request path.
type ActivityRecorder interface {
	Record(a domain.Activity)
}

type nopRecorder struct{}

func (nopRecorder) Record(domain.Activity) {}

type activityService struct {
	repo       ports.ActivityRepository
	workorders ports.WorkorderRepository
	log        zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(repo ports.ActivityRepository, workorders ports.WorkorderRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, workorders: workorders, log: log}
}

// Process persists a single activity.
func (s *activityService) Process(ctx context.Context, a domain.Activity) error {
	start := time.Now()
	err := s.repo.Insert(ctx, a)

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.ActivityProcessingDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	return err
}

// ListForWorkorder returns the audit trail of a work order in the caller's
// organization, newest first.
func (s *activityService) ListForWorkorder(ctx context.Context, workorderID string) ([]domain.Activity, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.workorders.Get(ctx, scope, workorderID); err != nil {
		return nil, err
	}
	return s.repo.ListByWorkorder(ctx, scope.OrgID, workorderID, activityListLimit)
}

func actorID(ctx context.Context) int64 {
	if u, ok := domain.UserFromContext(ctx); ok {
		return u.SubjectID
	}
	return 0
}
