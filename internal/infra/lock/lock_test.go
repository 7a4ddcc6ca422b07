package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

func newRedisLocker(t *testing.T, waitLimit time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, "test:project-lock:", 10*time.Second, waitLimit), server
}

func lockers(t *testing.T) map[string]adapter.ProjectLocker {
	redisLocker, _ := newRedisLocker(t, 200*time.Millisecond)
	return map[string]adapter.ProjectLocker{
		"memory": NewMemoryLocker(200 * time.Millisecond),
		"redis":  redisLocker,
	}
}

func TestLocker_Exclusive(t *testing.T) {
	for name, locker := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			projectID := uuid.New()

			unlock, err := locker.Lock(ctx, projectID)
			require.NoError(t, err)

			_, err = locker.Lock(ctx, projectID)
			assert.ErrorIs(t, err, domainerror.ErrLockUnavailable)

			// Other projects are unaffected.
			unlockOther, err := locker.Lock(ctx, uuid.New())
			require.NoError(t, err)
			unlockOther()

			unlock()
			unlock() // Safe to call twice.

			unlockAgain, err := locker.Lock(ctx, projectID)
			require.NoError(t, err)
			unlockAgain()
		})
	}
}

func TestLocker_WaitsForRelease(t *testing.T) {
	for name, locker := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			projectID := uuid.New()

			unlock, err := locker.Lock(ctx, projectID)
			require.NoError(t, err)

			go func() {
				time.Sleep(20 * time.Millisecond)
				unlock()
			}()

			unlockNext, err := locker.Lock(ctx, projectID)
			require.NoError(t, err)
			unlockNext()
		})
	}
}

func TestMemoryLocker_SerializesCriticalSections(t *testing.T) {
	locker := NewMemoryLocker(0)
	projectID := uuid.New()

	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		counter sync.Mutex
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), projectID)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			counter.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			counter.Unlock()

			time.Sleep(time.Millisecond)

			counter.Lock()
			inside--
			counter.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, locker.entries)
}

func TestMemoryLocker_ContextCancelled(t *testing.T) {
	locker := NewMemoryLocker(0)
	projectID := uuid.New()

	unlock, err := locker.Lock(context.Background(), projectID)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = locker.Lock(ctx, projectID)
	assert.ErrorIs(t, err, domainerror.ErrLockUnavailable)
}

func TestRedisLocker_ExpiredLockIsNotReleasedByOldHolder(t *testing.T) {
	locker, server := newRedisLocker(t, 100*time.Millisecond)
	ctx := context.Background()
	projectID := uuid.New()
	key := "test:project-lock:" + projectID.String()

	unlockStale, err := locker.Lock(ctx, projectID)
	require.NoError(t, err)

	server.FastForward(11 * time.Second)
	require.False(t, server.Exists(key))

	unlockFresh, err := locker.Lock(ctx, projectID)
	require.NoError(t, err)

	unlockStale()
	assert.True(t, server.Exists(key), "stale holder must not release the new lock")

	unlockFresh()
	assert.False(t, server.Exists(key))
}
