package service

import (
	"context"
	"errors"
	"math"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

type portalService struct {
	workorders ports.WorkorderRepository
	tasks      ports.TaskRepository
}

// NewPortalService returns the customer portal. It is not tenant scoped: the
// work order id is the only key.
func NewPortalService(workorders ports.WorkorderRepository, tasks ports.TaskRepository) ports.PortalService {
	return &portalService{workorders: workorders, tasks: tasks}
}

func (s *portalService) Get(ctx context.Context, workorderID string) (*ports.PortalView, error) {
	w, err := s.workorders.FindByID(ctx, workorderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Not found")
		}
		return nil, err
	}

	tasks, err := s.tasks.ListByWorkorder(ctx, w.ID)
	if err != nil {
		return nil, err
	}

	view := &ports.PortalView{
		ID:        w.ID,
		Vehicle:   w.Vehicle,
		Customer:  w.DisplayCustomer(),
		Complaint: w.Complaint,
		Status:    string(w.Status),
		Tasks:     make([]ports.PortalTask, 0, len(tasks)),
	}

	done := 0
	for _, t := range tasks {
		if t.Status == domain.TaskDone {
			done++
		}
		view.Tasks = append(view.Tasks, ports.PortalTask{Name: t.Name, Status: string(t.Status)})
	}
	view.ProgressPct = ProgressPercent(done, len(tasks))

	return view, nil
}

// ProgressPercent returns done/total as a whole percentage, rounding halves
// to even. An empty work order is 0% done.
func ProgressPercent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(done) / float64(total) * 100))
}
