// Package lock serializes mutations of a single project, in process or across
// instances through Redis.
package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

// memoryEntry is the lock of one project and the number of callers holding or waiting for it.
type memoryEntry struct {
	slot chan struct{}
	refs int
}

// MemoryLocker is a per-project mutex for single-instance deployments.
type MemoryLocker struct {
	mu        sync.Mutex
	entries   map[uuid.UUID]*memoryEntry
	waitLimit time.Duration
}

// NewMemoryLocker creates a MemoryLocker. A zero waitLimit waits until the context is done.
func NewMemoryLocker(waitLimit time.Duration) *MemoryLocker {
	return &MemoryLocker{
		entries:   make(map[uuid.UUID]*memoryEntry),
		waitLimit: waitLimit,
	}
}

// Lock blocks until the project lock is held, the wait limit expires or ctx is done.
func (l *MemoryLocker) Lock(ctx context.Context, projectID uuid.UUID) (func(), error) {
	entry := l.acquire(projectID)

	if l.waitLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.waitLimit)
		defer cancel()
	}

	select {
	case entry.slot <- struct{}{}:
	case <-ctx.Done():
		l.release(projectID)
		return nil, domainerror.ErrLockUnavailable
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.slot
			l.release(projectID)
		})
	}, nil
}

func (l *MemoryLocker) acquire(projectID uuid.UUID) *memoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[projectID]
	if !ok {
		entry = &memoryEntry{slot: make(chan struct{}, 1)}
		l.entries[projectID] = entry
	}
	entry.refs++
	return entry
}

func (l *MemoryLocker) release(projectID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[projectID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, projectID)
	}
}

var _ adapter.ProjectLocker = (*MemoryLocker)(nil)
