package ports

import "context"

// PortalTask is the customer-visible view of a task.
type PortalTask struct {
	Name   string
	Status string
}

// PortalView is the customer-visible progress of a work order.
type PortalView struct {
	ID          string
	Vehicle     string
	Customer    string
	Complaint   *string
	Status      string
	ProgressPct int
	Tasks       []PortalTask
}

// PortalService serves the unauthenticated customer portal.
type PortalService interface {
	Get(ctx context.Context, workorderID string) (*PortalView, error)
}
