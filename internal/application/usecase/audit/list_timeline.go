package audit

import (
	"context"
	"fmt"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

const (
	defaultTimelineLimit = 50
	maxTimelineLimit     = 200
)

// ListTimelineInput represents the input for reading the timeline.
type ListTimelineInput struct {
	EntityKind *entity.EntityKind
	EntityID   string
	Limit      int
}

// ListTimelineOutput represents the output of reading the timeline.
type ListTimelineOutput struct {
	Events []*entity.TimelineEvent
}

// ListTimelineUseCase handles reading the audit trail.
type ListTimelineUseCase struct {
	timelineRepo adapter.TimelineRepository
}

// NewListTimelineUseCase creates a new ListTimelineUseCase instance.
func NewListTimelineUseCase(timelineRepo adapter.TimelineRepository) *ListTimelineUseCase {
	return &ListTimelineUseCase{
		timelineRepo: timelineRepo,
	}
}

// Execute lists events newest first.
func (uc *ListTimelineUseCase) Execute(ctx context.Context, input ListTimelineInput) (*ListTimelineOutput, error) {
	if input.EntityKind != nil && !input.EntityKind.IsValid() {
		return nil, domainerror.NewAuditError(
			domainerror.ErrCodeInvalidEntityKind,
			"invalid entity kind",
			domainerror.ErrInvalidEntityKind,
		)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultTimelineLimit
	}
	if limit > maxTimelineLimit {
		limit = maxTimelineLimit
	}

	events, err := uc.timelineRepo.List(ctx, adapter.TimelineFilter{
		EntityKind: input.EntityKind,
		EntityID:   input.EntityID,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline events: %w", err)
	}

	return &ListTimelineOutput{Events: events}, nil
}
