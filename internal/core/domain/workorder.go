package domain

import "time"

// UnknownCustomer is shown in place of a customer name when a work order has
// no customer attached.
const UnknownCustomer = "N/A"

// Workorder is a repair job for one vehicle.
type Workorder struct {
	ID         string
	OrgID      string
	Vehicle    string
	CustomerID *int64
	Received   *time.Time
	Due        *time.Time
	Complaint  *string
	Status     WorkorderStatus
	CreatedAt  time.Time

	// Denormalized from the linked customer at read time.
	CustomerName  *string
	CustomerPhone *string
}

// DisplayCustomer returns the customer name or UnknownCustomer.
func (w *Workorder) DisplayCustomer() string {
	if w.CustomerName == nil || *w.CustomerName == "" {
		return UnknownCustomer
	}
	return *w.CustomerName
}

// Task is a unit of work within a work order.
type Task struct {
	ID                 int64
	OrgID              string
	WorkorderID        string
	Name               string
	AssignedEmployeeID *int64
	Status             TaskStatus
	TimeSpent          *string
	CreatedAt          time.Time
}
