package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptStore tracks failed attempts per client within a rolling time
// window. It is injected rather than held as package state so the
// backing store carries no process-lifetime assumptions.
type AttemptStore interface {
	// Incr bumps the counter for key and returns the new count. The
	// first increment of a window arms its expiry.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	// Count returns the current counter for key, zero once the window
	// has expired.
	Count(ctx context.Context, key string) (int64, error)
	// Reset clears the counter for key.
	Reset(ctx context.Context, key string) error
}

// RedisAttemptStore backs attempt windows with redis INCR + EXPIRE so
// counters are shared across instances.
type RedisAttemptStore struct {
	client *redis.Client
	prefix string
}

// NewRedisAttemptStore wraps a redis client.
func NewRedisAttemptStore(client *redis.Client) *RedisAttemptStore {
	return &RedisAttemptStore{client: client, prefix: "login_attempts:"}
}

func (s *RedisAttemptStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := s.prefix + key
	count, err := s.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, fmt.Errorf("incr attempt counter: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return count, fmt.Errorf("arm attempt window: %w", err)
		}
	}
	return count, nil
}

func (s *RedisAttemptStore) Count(ctx context.Context, key string) (int64, error) {
	count, err := s.client.Get(ctx, s.prefix+key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read attempt counter: %w", err)
	}
	return count, nil
}

func (s *RedisAttemptStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

// MemoryAttemptStore keeps windows in a mutex-guarded map. Used in tests
// and redis-less development deployments.
type MemoryAttemptStore struct {
	mu      sync.Mutex
	entries map[string]*attemptWindow
	now     func() time.Time
}

type attemptWindow struct {
	count     int64
	expiresAt time.Time
}

// NewMemoryAttemptStore returns an empty in-process store.
func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{entries: make(map[string]*attemptWindow), now: time.Now}
}

func (s *MemoryAttemptStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok || now.After(entry.expiresAt) {
		entry = &attemptWindow{expiresAt: now.Add(window)}
		s.entries[key] = entry
	}
	entry.count++
	return entry.count, nil
}

func (s *MemoryAttemptStore) Count(ctx context.Context, key string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || s.now().After(entry.expiresAt) {
		return 0, nil
	}
	return entry.count, nil
}

func (s *MemoryAttemptStore) Reset(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
