package domain

import "time"

// Customer is the owner of the vehicles the workshop services.
type Customer struct {
	ID        int64
	OrgID     string
	Name      string
	Phone     *string
	Email     *string
	CreatedAt time.Time
}
