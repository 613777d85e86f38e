package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
	"github.com/werkbank/workshop-system/internal/pkg/metrics"
)

type taskService struct {
	repo       ports.TaskRepository
	workorders ports.WorkorderRepository
	employees  ports.EmployeeRepository
	activity   ActivityRecorder
	log        zerolog.Logger
}

// NewTaskService returns a TaskService implementation. activity may be nil.
func NewTaskService(
	repo ports.TaskRepository,
	workorders ports.WorkorderRepository,
	employees ports.EmployeeRepository,
	activity ActivityRecorder,
	log zerolog.Logger,
) ports.TaskService {
	if activity == nil {
		activity = nopRecorder{}
	}
	return &taskService{repo: repo, workorders: workorders, employees: employees, activity: activity, log: log}
}

// List returns the organization's tasks, newest first. Status filters accept
// any known spelling; unknown spellings are rejected.
func (s *taskService) List(ctx context.Context, in ports.ListTasksInput) ([]*domain.Task, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	f := ports.TaskFilter{
		WorkorderID:        in.WorkorderID,
		AssignedEmployeeID: in.AssignedEmployeeID,
	}
	if in.Status != nil {
		st, ok := domain.ParseTaskStatus(*in.Status)
		if !ok {
			return nil, domain.Validation("Unknown task status: " + *in.Status)
		}
		f.Status = &st
	}
	return s.repo.List(ctx, scope, f)
}

func (s *taskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, scope, id)
}

func (s *taskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("Name is required")
	}
	if _, err := s.workorders.Get(ctx, scope, in.WorkorderID); err != nil {
		return nil, err
	}
	if err := s.checkAssignee(ctx, scope, in.AssignedEmployeeID); err != nil {
		return nil, err
	}

	t, err := s.repo.Create(ctx, scope, &domain.Task{
		OrgID:              scope.OrgID,
		WorkorderID:        in.WorkorderID,
		Name:               name,
		AssignedEmployeeID: in.AssignedEmployeeID,
		Status:             domain.NormalizeTaskStatus(in.Status),
		TimeSpent:          in.TimeSpent,
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, t, domain.ActionCreated)
	s.log.Debug().Int64("task_id", t.ID).Str("workorder_id", t.WorkorderID).Msg("task created")
	return t, nil
}

func (s *taskService) Update(ctx context.Context, id int64, in ports.UpdateTaskInput) (*domain.Task, error) {
	scope, err := domain.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	u := ports.TaskUpdate{
		AssignedEmployeeID: in.AssignedEmployeeID,
		TimeSpent:          in.TimeSpent,
	}
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return nil, domain.Validation("Name must not be empty")
		}
		u.Name = &n
	}
	if in.Status != nil {
		st := domain.NormalizeTaskStatus(*in.Status)
		u.Status = &st
	}
	if err := s.checkAssignee(ctx, scope, in.AssignedEmployeeID); err != nil {
		return nil, err
	}

	t, err := s.repo.Update(ctx, scope, id, u)
	if err != nil {
		return nil, err
	}

	s.record(ctx, t, domain.ActionUpdated)
	if u.Status != nil {
		s.record(ctx, t, domain.ActionStatusChanged)
		metrics.StatusChangesTotal.WithLabelValues(domain.EntityTask, string(t.Status)).Inc()
	}
	return t, nil
}

func (s *taskService) checkAssignee(ctx context.Context, scope domain.Scope, employeeID *int64) error {
	if employeeID == nil {
		return nil
	}
	if _, err := s.employees.Get(ctx, scope, *employeeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("Employee not found")
		}
		return err
	}
	return nil
}

func (s *taskService) record(ctx context.Context, t *domain.Task, action string) {
	s.activity.Record(domain.Activity{
		OrgID:       t.OrgID,
		EntityType:  domain.EntityTask,
		EntityID:    strconv.FormatInt(t.ID, 10),
		WorkorderID: t.WorkorderID,
		Action:      action,
		Status:      string(t.Status),
		ActorID:     actorID(ctx),
		OccurredAt:  time.Now().UTC(),
	})
}
