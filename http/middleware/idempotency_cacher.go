package middleware

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	idemTTL       = 24 * time.Hour
	idemKeyPrefix = "idempotency:"
)

var (
	_ IdempotencyCacher = (*IdemResMap)(nil)
	_ IdempotencyCacher = IdemResRedis{}
)

// An IdempotencyCacher can store responses paired to idempotency keys.
type IdempotencyCacher interface {
	Get(ctx context.Context, key string) (IdemRes, bool)
	Set(ctx context.Context, key string, idemRes IdemRes)
}

// An IdemResMap stores idempotency key, IdemRes value pairs in a map.
//
// Server restarts reset this map, so only single-instance deployments ought use it.
type IdemResMap struct {
	mu  sync.Mutex
	now func() time.Time
	val map[string]idemResMapVal
}

// NewIdemResMap constructs an *IdemResMap
// for use in an Idempotent middleware as a cache.
func NewIdemResMap() *IdemResMap {
	return &IdemResMap{now: time.Now, val: make(map[string]idemResMapVal)}
}

// An idemResMapVal is stored in an IdemResMap,
// wrapping an IdemRes.
type idemResMapVal struct {
	IdemRes

	at time.Time
}

// Get retrieves the result of the request matching the idempotency key
// much like a regular map.
func (m *IdemResMap) Get(ctx context.Context, key string) (IdemRes, bool) {
	if key == "" || ctx.Err() != nil {
		return IdemRes{}, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.val[key]
	if !ok || m.now().Sub(v.at) > idemTTL {
		return IdemRes{}, false
	}

	return copyIdemRes(v.IdemRes), true
}

// Set overwrites the value paired to key in the map.
//
// For each call to Set, keys older than 24 hours are evicted.
func (m *IdemResMap) Set(ctx context.Context, key string, idemRes IdemRes) {
	if ctx.Err() != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, v := range m.val {
		if now.Sub(v.at) > idemTTL {
			delete(m.val, k)
		}
	}

	at := now
	if prev, ok := m.val[key]; ok {
		at = prev.at
	}

	m.val[key] = idemResMapVal{IdemRes: copyIdemRes(idemRes), at: at}
}

// copyIdemRes detaches the body so callers cannot write into a cached response.
func copyIdemRes(ir IdemRes) IdemRes {
	if ir.Body != nil {
		ir.Body = bytes.NewBuffer(bytes.Clone(ir.Body.Bytes()))
	}

	return ir
}

// An IdemResRedis connects to a Redis backend
// for the purposes of caching idempotent responses.
type IdemResRedis struct {
	client *redis.Client
}

// NewRedisCache constructs an IdemResRedis sharing client.
func NewRedisCache(client *redis.Client) IdemResRedis {
	return IdemResRedis{client: client}
}

// Get retrieves the IdemRes paired to key from the connected Redis backend.
func (i IdemResRedis) Get(ctx context.Context, key string) (IdemRes, bool) {
	if ctx.Err() != nil {
		return IdemRes{}, false
	}

	b, err := i.client.Get(ctx, idemKeyPrefix+key).Bytes()
	if err != nil {
		return IdemRes{}, false
	}

	ir := new(IdemRes)
	if err := ir.GobDecode(b); err != nil {
		return IdemRes{}, false
	}

	return *ir, true
}

// Set saves the IdemRes by pairing it to the key in the Redis backend.
// Entries expire after 24 hours.
func (i IdemResRedis) Set(ctx context.Context, key string, idemRes IdemRes) {
	if ctx.Err() != nil {
		return
	}

	b, err := idemRes.GobEncode()
	if err != nil {
		return
	}

	i.client.Set(ctx, idemKeyPrefix+key, b, idemTTL)
}
