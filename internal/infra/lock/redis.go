package lock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"car-rental-platform/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNotAcquired = errors.New("vehicle lock not acquired")

const (
	keyPrefix     = "lock:vehicle:"
	retryInterval = 50 * time.Millisecond
)

// Deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a per-vehicle mutex shared by all instances pointing at the same Redis.
type RedisLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
	wait   time.Duration
}

func NewRedisLocker(client redis.UniversalClient, cfg config.BookingConfig) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    cfg.LockTTL,
		wait:   cfg.LockWait,
	}
}

// Lock retries until the lock is free, wait elapses or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, vehicleID uuid.UUID) (func(), error) {
	key := keyPrefix + vehicleID.String()
	token := uuid.NewString()

	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}
		if !time.Now().Before(deadline) {
			return nil, ErrNotAcquired
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

func (l *RedisLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		// The TTL frees it eventually.
		slog.Warn("failed to release vehicle lock", "key", key, "error", err.Error())
	}
}

// NoopLocker is used when Redis is disabled; the vehicle row lock still serialises bookings.
type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, uuid.UUID) (func(), error) {
	return func() {}, nil
}
