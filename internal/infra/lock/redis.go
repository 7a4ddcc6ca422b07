package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

const retryInterval = 50 * time.Millisecond

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was taken by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a per-project lock shared by every instance using the same Redis.
type RedisLocker struct {
	client    redis.UniversalClient
	prefix    string
	ttl       time.Duration
	waitLimit time.Duration
}

// NewRedisLocker creates a RedisLocker. ttl bounds how long a crashed holder
// keeps the lock.
func NewRedisLocker(client redis.UniversalClient, prefix string, ttl, waitLimit time.Duration) *RedisLocker {
	return &RedisLocker{
		client:    client,
		prefix:    prefix,
		ttl:       ttl,
		waitLimit: waitLimit,
	}
}

// Lock polls SET NX until the lock is held, the wait limit expires or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, projectID uuid.UUID) (func(), error) {
	key := l.prefix + projectID.String()
	token := uuid.NewString()

	if l.waitLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.waitLimit)
		defer cancel()
	}

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("failed to acquire project lock: %w", err)
		}
		if ok {
			return l.unlocker(key, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, domainerror.ErrLockUnavailable
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlocker(key, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's context may already be cancelled.
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
				slog.Error("Failed to release project lock", "key", key, "error", err)
			}
		})
	}
}

var _ adapter.ProjectLocker = (*RedisLocker)(nil)
