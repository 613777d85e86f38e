package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

const activityCollection = "activities"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	coll *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

// EnsureIndexes creates the compound index used by ListByWorkorder.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "org_id", Value: 1},
			{Key: "workorder_id", Value: 1},
			{Key: "occurred_at", Value: -1},
		},
	})
	if err != nil {
		return fmt.Errorf("create activity index: %w", err)
	}
	return nil
}

// Insert appends a to the audit trail.
func (r *ActivityRepository) Insert(ctx context.Context, a domain.Activity) error {
	a.OccurredAt = a.OccurredAt.UTC()
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByWorkorder(ctx context.Context, orgID, workorderID string, limit int64) ([]domain.Activity, error) {
	filter := bson.M{"org_id": orgID, "workorder_id": workorderID}
	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"_id": 0})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find activities: %w", err)
	}
	defer cursor.Close(ctx)

	out := []domain.Activity{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return out, nil
}
