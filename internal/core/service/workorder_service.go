package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
	"github.com/werkbank/workshop-system/internal/pkg/metrics"
)

// IdempotencyStore remembers which work order an Idempotency-Key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, orgID, key string) (workorderID string, found bool, err error)
	Remember(ctx context.Context, orgID, key, workorderID string) error
}

// newWorkorderID returns a short, human-typeable work order id.
var newWorkorderID = func() string {
	return uuid.NewString()[:8]
}

type workorderService struct {
	repo      ports.WorkorderRepository
	customers ports.CustomerRepository
	idem      IdempotencyStore
	activity  ActivityRecorder
	log       zerolog.Logger
}

// NewWorkorderService returns a WorkorderService implementation. idem and
// activity may be nil.
func NewWorkorderService(
	repo ports.WorkorderRepository,
	customers ports.CustomerRepository,
	idem IdempotencyStore,
	activity ActivityRecorder,
	log zerolog.Logger,
) ports.WorkorderService {
	if activity == nil {
		activity = nopRecorder{}
	}
	return &workorderService{repo: repo, customers: customers, idem: idem, activity: activity, log: log}
}

// List returns the organization's work orders, newest first, optionally
// filtered by status. Unknown status spellings are rejected.
func (s *workorderService) List(ctx context.Context, status string) ([]*domain.Workorder, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var f ports.WorkorderFilter
	if status != "" {
		st, ok := domain.ParseWorkorderStatus(status)
		if !ok {
			return nil, domain.Validation("Unknown work order status: " + status)
		}
		f.Status = &st
	}
	return s.repo.List(ctx, scope, f)
}

func (s *workorderService) Get(ctx context.Context, id string) (*domain.Workorder, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, scope, id)
}

// Create stores a new work order. If an idempotency key is provided and
// already seen, the previously created work order is returned instead.
func (s *workorderService) Create(ctx context.Context, in ports.CreateWorkorderInput) (*ports.WorkorderResult, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if existing := s.replay(ctx, scope, in.IdempotencyKey); existing != nil {
		metrics.WorkordersCreatedTotal.WithLabelValues("true").Inc()
		return &ports.WorkorderResult{Workorder: existing, AlreadyExisted: true}, nil
	}

	vehicle := strings.TrimSpace(in.Vehicle)
	if vehicle == "" {
		return nil, domain.Validation("Vehicle is required")
	}
	if err := s.checkCustomer(ctx, scope, in.CustomerID); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = newWorkorderID()
	}

	w, err := s.repo.Create(ctx, scope, &domain.Workorder{
		ID:         id,
		OrgID:      scope.OrgID,
		Vehicle:    vehicle,
		CustomerID: in.CustomerID,
		Received:   in.Received,
		Due:        in.Due,
		Complaint:  in.Complaint,
		Status:     domain.NormalizeWorkorderStatus(in.Status),
	})
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, scope.OrgID, in.IdempotencyKey, w.ID); err != nil {
			s.log.Warn().Err(err).Str("workorder_id", w.ID).Msg("failed to store idempotency key")
		}
	}

	s.record(ctx, w, domain.ActionCreated)
	metrics.WorkordersCreatedTotal.WithLabelValues("false").Inc()
	s.log.Info().Str("workorder_id", w.ID).Str("org_id", scope.OrgID).Msg("work order created")

	return &ports.WorkorderResult{Workorder: w}, nil
}

// Update applies a partial update and returns the row with its customer.
func (s *workorderService) Update(ctx context.Context, id string, in ports.UpdateWorkorderInput) (*domain.Workorder, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	u := ports.WorkorderUpdate{
		CustomerID: in.CustomerID,
		Received:   in.Received,
		Due:        in.Due,
		Complaint:  in.Complaint,
	}
	if in.Vehicle != nil {
		v := strings.TrimSpace(*in.Vehicle)
		if v == "" {
			return nil, domain.Validation("Vehicle must not be empty")
		}
		u.Vehicle = &v
	}
	if in.Status != nil {
		st := domain.NormalizeWorkorderStatus(*in.Status)
		u.Status = &st
	}
	if err := s.checkCustomer(ctx, scope, in.CustomerID); err != nil {
		return nil, err
	}

	w, err := s.repo.Update(ctx, scope, id, u)
	if err != nil {
		return nil, err
	}

	s.record(ctx, w, domain.ActionUpdated)
	if u.Status != nil {
		s.record(ctx, w, domain.ActionStatusChanged)
		metrics.StatusChangesTotal.WithLabelValues(domain.EntityWorkorder, string(w.Status)).Inc()
	}
	return w, nil
}

// replay returns the work order an earlier request with key created, or nil.
// Store failures are logged and treated as a miss.
func (s *workorderService) replay(ctx context.Context, scope domain.Scope, key string) *domain.Workorder {
	if key == "" || s.idem == nil {
		return nil
	}

	id, found, err := s.idem.Lookup(ctx, scope.OrgID, key)
	if err != nil {
		metrics.IdempotencyLookupsTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		metrics.IdempotencyLookupsTotal.WithLabelValues("miss").Inc()
		return nil
	}

	w, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Str("workorder_id", id).Msg("idempotent replay lookup failed")
		}
		metrics.IdempotencyLookupsTotal.WithLabelValues("miss").Inc()
		return nil
	}

	metrics.IdempotencyLookupsTotal.WithLabelValues("hit").Inc()
	s.log.Info().Str("idempotency_key", key).Str("workorder_id", w.ID).Msg("idempotent replay")
	return w
}

func (s *workorderService) checkCustomer(ctx context.Context, scope domain.Scope, customerID *int64) error {
	if customerID == nil {
		return nil
	}
	if _, err := s.customers.Get(ctx, scope, *customerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("Customer not found")
		}
		return err
	}
	return nil
}

func (s *workorderService) record(ctx context.Context, w *domain.Workorder, action string) {
	s.activity.Record(domain.Activity{
		OrgID:       w.OrgID,
		EntityType:  domain.EntityWorkorder,
		EntityID:    w.ID,
		WorkorderID: w.ID,
		Action:      action,
		Status:      string(w.Status),
		ActorID:     actorID(ctx),
		OccurredAt:  time.Now().UTC(),
	})
}
