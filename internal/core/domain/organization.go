package domain

import "time"

// Organization is a tenant. Every other entity belongs to exactly one.
type Organization struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
