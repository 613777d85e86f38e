package handler

import (
	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

// --- Domain → Response ---

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		ID:        e.ID,
		OrgID:     e.OrgID,
		Name:      e.Name,
		Role:      string(e.Role),
		UserID:    e.UserID,
		Email:     e.Email,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
	}
}

func toCustomerResponse(c *domain.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		OrgID:     c.OrgID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

func toWorkorderResponse(w *domain.Workorder) workorderResponse {
	return workorderResponse{
		ID:         w.ID,
		OrgID:      w.OrgID,
		Vehicle:    w.Vehicle,
		CustomerID: w.CustomerID,
		Customer:   w.DisplayCustomer(),
		Phone:      w.CustomerPhone,
		Received:   datePtr(w.Received),
		Due:        datePtr(w.Due),
		Complaint:  w.Complaint,
		Status:     string(w.Status),
		CreatedAt:  w.CreatedAt,
	}
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:                 t.ID,
		OrgID:              t.OrgID,
		WorkorderID:        t.WorkorderID,
		Name:               t.Name,
		AssignedEmployeeID: t.AssignedEmployeeID,
		Status:             string(t.Status),
		TimeSpent:          t.TimeSpent,
		CreatedAt:          t.CreatedAt,
	}
}

func toPortalResponse(v *ports.PortalView) portalResponse {
	tasks := make([]portalTaskResponse, 0, len(v.Tasks))
	for _, t := range v.Tasks {
		tasks = append(tasks, portalTaskResponse{Name: t.Name, Status: t.Status})
	}
	return portalResponse{
		ID:          v.ID,
		Vehicle:     v.Vehicle,
		Customer:    v.Customer,
		Complaint:   v.Complaint,
		Status:      v.Status,
		ProgressPct: v.ProgressPct,
		Tasks:       tasks,
	}
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

// --- Request → Service input ---

func toUpdateEmployee(req updateEmployeeRequest) (ports.EmployeeUpdate, error) {
	u := ports.EmployeeUpdate{
		Name:     req.Name,
		UserID:   req.UserID,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role, ok := domain.ParseRole(*req.Role)
		if !ok {
			return ports.EmployeeUpdate{}, domain.ErrUnknownRole
		}
		u.Role = &role
	}
	return u, nil
}

func toCreateWorkorder(req createWorkorderRequest, idempotencyKey string) ports.CreateWorkorderInput {
	return ports.CreateWorkorderInput{
		ID:             req.ID,
		Vehicle:        req.Vehicle,
		CustomerID:     req.CustomerID,
		Received:       req.Received.ptr(),
		Due:            req.Due.ptr(),
		Complaint:      req.Complaint,
		Status:         req.Status,
		IdempotencyKey: idempotencyKey,
	}
}

func toUpdateWorkorder(req updateWorkorderRequest) ports.UpdateWorkorderInput {
	return ports.UpdateWorkorderInput{
		Vehicle:    req.Vehicle,
		CustomerID: req.CustomerID,
		Received:   req.Received.ptr(),
		Due:        req.Due.ptr(),
		Complaint:  req.Complaint,
		Status:     req.Status,
	}
}
