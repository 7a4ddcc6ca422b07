// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// ProjectLocker serializes mutations of a single project.
type ProjectLocker interface {
	// Lock blocks until the project lock is held or the wait limit expires.
	// The returned function releases the lock and is safe to call once.
	Lock(ctx context.Context, projectID uuid.UUID) (unlock func(), err error)
}
