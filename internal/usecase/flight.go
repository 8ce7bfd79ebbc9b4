package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// FlightGuard tracks which sessions have a submission in flight. Acquire
// reports false when the key is already held.
type FlightGuard interface {
	Acquire(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, token string) error
}

// MemoryFlightGuard keeps flight markers in process memory.
type MemoryFlightGuard struct {
	mu      sync.Mutex
	holders map[string]string
}

// NewMemoryFlightGuard constructs an empty in-process guard.
func NewMemoryFlightGuard() *MemoryFlightGuard {
	return &MemoryFlightGuard{holders: make(map[string]string)}
}

// Acquire marks key as held by token. The ttl is ignored: the process owns the
// marker for as long as it lives.
func (g *MemoryFlightGuard) Acquire(_ context.Context, key, token string, _ time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.holders[key]; held {
		return false, nil
	}
	g.holders[key] = token
	return true, nil
}

// Release drops the marker if token still holds it.
func (g *MemoryFlightGuard) Release(_ context.Context, key, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.holders[key] == token {
		delete(g.holders, key)
	}
	return nil
}

// releaseScript deletes the key only when it still carries our token, so an
// expired marker re-acquired by another replica is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisFlightClient is the part of *redis.Client the guard needs.
type redisFlightClient interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisFlightGuard shares flight markers between replicas through Redis.
type RedisFlightGuard struct {
	client redisFlightClient
	prefix string
}

// NewRedisFlightGuard constructs a Redis-backed guard.
func NewRedisFlightGuard(client redisFlightClient) *RedisFlightGuard {
	return &RedisFlightGuard{client: client, prefix: "editor:flight:"}
}

// Acquire sets the marker with SET NX and an expiry.
func (g *RedisFlightGuard) Acquire(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	return g.client.SetNX(ctx, g.prefix+key, token, ttl).Result()
}

// Release removes the marker if it is still ours.
func (g *RedisFlightGuard) Release(ctx context.Context, key, token string) error {
	return releaseScript.Run(ctx, g.client, []string{g.prefix + key}, token).Err()
}
