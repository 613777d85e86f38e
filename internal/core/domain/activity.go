package domain

import "time"

const (
	EntityWorkorder = "workorder"
	EntityTask      = "task"
)

const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionStatusChanged = "status_changed"
)

// Activity is one entry of the work order audit trail.
type Activity struct {
	OrgID       string    `json:"-" bson:"org_id"`
	EntityType  string    `json:"entity_type" bson:"entity_type"`
	EntityID    string    `json:"entity_id" bson:"entity_id"`
	WorkorderID string    `json:"workorder_id" bson:"workorder_id"`
	Action      string    `json:"action" bson:"action"`
	Status      string    `json:"status,omitempty" bson:"status,omitempty"`
	ActorID     int64     `json:"actor_id" bson:"actor_id"`
	OccurredAt  time.Time `json:"occurred_at" bson:"occurred_at"`
}

// Key groups activities that must be applied in order.
func (a Activity) Key() string {
	return a.OrgID + "/" + a.WorkorderID
}
