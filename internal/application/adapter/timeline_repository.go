// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// TimelineFilter defines filter options for reading the timeline.
type TimelineFilter struct {
	EntityKind *entity.EntityKind
	EntityID   string
	Limit      int
}

// TimelineRepository stores the append-only audit trail.
// There is deliberately no update or delete.
type TimelineRepository interface {
	// Append stores a new timeline event.
	Append(ctx context.Context, event *entity.TimelineEvent) error

	// List retrieves events matching the filter, newest first.
	List(ctx context.Context, filter TimelineFilter) ([]*entity.TimelineEvent, error)
}
