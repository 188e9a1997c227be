package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockKey = "reminders:dispatch:lock"

// RunLock is a Redis lease that keeps concurrent replicas from dispatching
// the same tick. The sent flag remains the duplicate-prevention mechanism of
// record; the lock only narrows the race window between replicas.
type RunLock struct {
	client *redis.Client
	ttl    time.Duration
	token  string
}

// NewRunLock creates a run lock with the given lease duration.
func NewRunLock(client *redis.Client, ttl time.Duration) *RunLock {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RunLock{client: client, ttl: ttl, token: uuid.NewString()}
}

// Acquire attempts to take the lease. Returns false when another holder owns it.
func (l *RunLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKey, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dispatch: acquire run lock: %w", err)
	}
	return ok, nil
}

// Release drops the lease if this instance still holds it. An expired lease
// owned by someone else is left alone.
func (l *RunLock) Release(ctx context.Context) {
	holder, err := l.client.Get(ctx, lockKey).Result()
	if err != nil || holder != l.token {
		return
	}
	l.client.Del(ctx, lockKey)
}
