package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/integration/persistence/model"
)

// timelineRepository implements the adapter.TimelineRepository interface.
type timelineRepository struct {
	db *gorm.DB
}

// NewTimelineRepository creates a new timeline repository instance.
func NewTimelineRepository(db *gorm.DB) adapter.TimelineRepository {
	return &timelineRepository{
		db: db,
	}
}

// Append inserts a timeline event.
func (r *timelineRepository) Append(ctx context.Context, event *entity.TimelineEvent) error {
	return r.db.WithContext(ctx).Create(model.TimelineEventFromEntity(event)).Error
}

// List retrieves events matching the filter, newest first.
func (r *timelineRepository) List(ctx context.Context, filter adapter.TimelineFilter) ([]*entity.TimelineEvent, error) {
	query := r.db.WithContext(ctx).Model(&model.TimelineEventModel{})

	if filter.EntityKind != nil {
		query = query.Where("entity_kind = ?", string(*filter.EntityKind))
	}
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var eventModels []model.TimelineEventModel
	if err := query.Order("date DESC, id DESC").Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]*entity.TimelineEvent, len(eventModels))
	for i := range eventModels {
		events[i] = eventModels[i].ToEntity()
	}
	return events, nil
}
