package auth

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// A MemoryRevoker keeps the deny-list in process memory.
//
// Restarts forget every revocation and instances do not share entries,
// so MemoryRevoker suits a single development server.
type MemoryRevoker struct {
	mu      sync.Mutex
	now     func() time.Time
	revoked map[string]time.Time
}

// NewMemoryRevoker constructs a *MemoryRevoker.
func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{now: time.Now, revoked: make(map[string]time.Time)}
}

// Revoke records tokenID until until.
// Each call sweeps entries whose tokens have expired.
func (m *MemoryRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, id)
		}
	}

	m.revoked[tokenID] = until
	return nil
}

// Revoked asserts whether tokenID is on the deny-list.
func (m *MemoryRevoker) Revoked(ctx context.Context, tokenID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.revoked[tokenID]
	return ok && exp.After(m.now()), nil
}

// RevokedKeyPrefix namespaces deny-list entries in Redis.
const RevokedKeyPrefix = "ridewitus:revoked:"

// A RedisRevoker keeps the deny-list in Redis so every instance shares it.
type RedisRevoker struct {
	client *redis.Client
}

// NewRedisRevoker constructs a RedisRevoker over client.
func NewRedisRevoker(client *redis.Client) RedisRevoker {
	return RedisRevoker{client: client}
}

// Revoke sets a key for tokenID that Redis expires at until.
func (r RedisRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}

	return r.client.Set(ctx, RevokedKeyPrefix+tokenID, 1, ttl).Err()
}

// Revoked asserts whether a key exists for tokenID.
func (r RedisRevoker) Revoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, RevokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}
