package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultIdempotencyTTL is how long a work order create can be replayed.
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore maps Idempotency-Key headers to the work order they created.
// Key format: idempotency:<org_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the work order id recorded for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, orgID, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(orgID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember records workorderID under key. The first writer wins.
func (s *IdempotencyStore) Remember(ctx context.Context, orgID, key, workorderID string) error {
	if err := s.client.SetNX(ctx, s.key(orgID, key), workorderID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(orgID, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", orgID, key)
}
