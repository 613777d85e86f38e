package domain

import "time"

// Employee is a staff member of an organization. Employees with an email and
// password hash double as the credential record used for login.
type Employee struct {
	ID           int64
	OrgID        string
	Name         string
	Role         Role
	UserID       *string
	Email        *string
	PasswordHash *string
	IsActive     bool
	CreatedAt    time.Time
}

// CanLogin reports whether the record carries usable credentials.
func (e *Employee) CanLogin() bool {
	return e.IsActive && e.Email != nil && e.PasswordHash != nil && *e.PasswordHash != ""
}
