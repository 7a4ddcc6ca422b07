// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// EventPublisher fans stored timeline events out to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event *entity.TimelineEvent) error
}
