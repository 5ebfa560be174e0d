package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Throttle admits at most one reminder per key per window.
type Throttle interface {
	// Allow reports whether key may proceed and, if so, starts its window.
	Allow(ctx context.Context, key string, window time.Duration) (bool, error)
	// Release clears key so a failed delivery can be retried.
	Release(ctx context.Context, key string) error
}

// RedisThrottle keeps windows in Redis so they hold across replicas.
type RedisThrottle struct {
	client redis.UniversalClient
}

func NewRedisThrottle(client redis.UniversalClient) *RedisThrottle {
	return &RedisThrottle{client: client}
}

func (t *RedisThrottle) Allow(ctx context.Context, key string, window time.Duration) (bool, error) {
	ok, err := t.client.SetNX(ctx, key, time.Now().Unix(), window).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func (t *RedisThrottle) Release(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// MemoryThrottle is a process-local Throttle.
type MemoryThrottle struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryThrottle() *MemoryThrottle {
	return &MemoryThrottle{expires: make(map[string]time.Time), now: time.Now}
}

func (t *MemoryThrottle) Allow(_ context.Context, key string, window time.Duration) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if exp, ok := t.expires[key]; ok && now.Before(exp) {
		return false, nil
	}
	t.expires[key] = now.Add(window)

	// Drop stale entries so the map stays bounded by active windows.
	for k, exp := range t.expires {
		if !now.Before(exp) {
			delete(t.expires, k)
		}
	}
	return true, nil
}

func (t *MemoryThrottle) Release(_ context.Context, key string) error {
	t.mu.Lock()
	delete(t.expires, key)
	t.mu.Unlock()
	return nil
}
