package handler

import (
	"encoding/json"
	"time"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Detail string `json:"detail"`
}

const dateLayout = "2006-01-02"

// civilDate is a calendar date encoded as "YYYY-MM-DD". RFC 3339 timestamps
// are accepted on input and truncated to their date.
type civilDate struct {
	time.Time
}

func (d *civilDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, s)
		if tsErr != nil {
			return err
		}
		t = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
	d.Time = t
	return nil
}

func (d civilDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *civilDate) ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func datePtr(t *time.Time) *civilDate {
	if t == nil {
		return nil
	}
	return &civilDate{Time: *t}
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"`
	OrgID    string `json:"org_id"`
	OrgName  string `json:"org_name"`
}

// loginRequest accepts both form-encoded and JSON bodies.
type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type meResponse struct {
	UserID int64   `json:"user_id"`
	Email  string  `json:"email"`
	Role   *string `json:"role"`
	OrgID  string  `json:"org_id"`
}

// --- Employees ---

type createEmployeeRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Role     string  `json:"role"`
	UserID   *string `json:"user_id"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password"`
}

type updateEmployeeRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	UserID   *string `json:"user_id"`
	IsActive *bool   `json:"is_active"`
}

type employeeResponse struct {
	ID        int64     `json:"id"`
	OrgID     string    `json:"org_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	UserID    *string   `json:"user_id"`
	Email     *string   `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Customers ---

type createCustomerRequest struct {
	Name  string  `json:"name"  validate:"required"`
	Phone *string `json:"phone"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type updateCustomerRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type customerResponse struct {
	ID        int64     `json:"id"`
	OrgID     string    `json:"org_id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Work orders ---

type createWorkorderRequest struct {
	ID         string     `json:"id"          validate:"omitempty,max=64"`
	Vehicle    string     `json:"vehicle"     validate:"required"`
	CustomerID *int64     `json:"customer_id"`
	Received   *civilDate `json:"received"`
	Due        *civilDate `json:"due"`
	Complaint  *string    `json:"complaint"`
	Status     string     `json:"status"`
}

type updateWorkorderRequest struct {
	Vehicle    *string    `json:"vehicle"`
	CustomerID *int64     `json:"customer_id"`
	Received   *civilDate `json:"received"`
	Due        *civilDate `json:"due"`
	Complaint  *string    `json:"complaint"`
	Status     *string    `json:"status"`
}

type workorderResponse struct {
	ID         string     `json:"id"`
	OrgID      string     `json:"org_id"`
	Vehicle    string     `json:"vehicle"`
	CustomerID *int64     `json:"customer_id"`
	Customer   string     `json:"customer"`
	Phone      *string    `json:"phone"`
	Received   *civilDate `json:"received"`
	Due        *civilDate `json:"due"`
	Complaint  *string    `json:"complaint"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// --- Tasks ---

type createTaskRequest struct {
	WorkorderID        string  `json:"workorder_id" validate:"required"`
	Name               string  `json:"name"         validate:"required"`
	AssignedEmployeeID *int64  `json:"assigned_employee_id"`
	Status             string  `json:"status"`
	TimeSpent          *string `json:"time_spent"`
}

type updateTaskRequest struct {
	Name               *string `json:"name"`
	AssignedEmployeeID *int64  `json:"assigned_employee_id"`
	Status             *string `json:"status"`
	TimeSpent          *string `json:"time_spent"`
}

type taskResponse struct {
	ID                 int64     `json:"id"`
	OrgID              string    `json:"org_id"`
	WorkorderID        string    `json:"workorder_id"`
	Name               string    `json:"name"`
	AssignedEmployeeID *int64    `json:"assigned_employee_id"`
	Status             string    `json:"status"`
	TimeSpent          *string   `json:"time_spent"`
	CreatedAt          time.Time `json:"created_at"`
}

// --- Portal ---

type portalTaskResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type portalResponse struct {
	ID          string               `json:"id"`
	Vehicle     string               `json:"vehicle"`
	Customer    string               `json:"customer"`
	Complaint   *string              `json:"complaint"`
	Status      string               `json:"status"`
	ProgressPct int                  `json:"progress_pct"`
	Tasks       []portalTaskResponse `json:"tasks"`
}

// --- Activity ---

type activityListResponse struct {
	WorkorderID string            `json:"workorder_id"`
	Items       []domain.Activity `json:"items"`
}
