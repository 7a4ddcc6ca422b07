package mock

import (
	"sync"
	"time"
)

// Time is a settable clock. Until SetCurrentTime is called it follows the wall clock.
type Time struct {
	mu      sync.RWMutex
	current *time.Time
}

func NewTime() *Time {
	return &Time{}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	current := currentTime.UTC()
	t.current = &current
}

func (t *Time) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = nil
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.current == nil {
		return time.Now().UTC()
	}
	return *t.current
}
