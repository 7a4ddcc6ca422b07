package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
	"github.com/arquitetura-app/backend/internal/integration/persistence/model"
)

// alertQueueRepository implements the adapter.AlertQueueRepository interface.
type alertQueueRepository struct {
	db *gorm.DB
}

// NewAlertQueueRepository creates a new alert queue repository instance.
func NewAlertQueueRepository(db *gorm.DB) adapter.AlertQueueRepository {
	return &alertQueueRepository{
		db: db,
	}
}

// Create adds a new alert job to the queue.
func (r *alertQueueRepository) Create(ctx context.Context, job *entity.AlertJob) error {
	alertModel := model.AlertQueueModelFromEntity(job)
	result := r.db.WithContext(ctx).Create(alertModel)
	if result.Error != nil {
		return domainerror.NewAlertError(
			domainerror.ErrCodeAlertQueueFailed,
			"failed to create alert job",
			result.Error,
		)
	}
	return nil
}

// GetPendingJobs retrieves jobs ready to be processed.
func (r *alertQueueRepository) GetPendingJobs(ctx context.Context, limit int) ([]*entity.AlertJob, error) {
	var models []model.AlertQueueModel

	result := r.db.WithContext(ctx).
		Where("status = ?", entity.AlertStatusPending).
		Where("scheduled_at <= ?", time.Now().UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	jobs := make([]*entity.AlertJob, len(models))
	for i := range models {
		jobs[i] = models[i].ToEntity()
	}

	return jobs, nil
}

// Update saves changes to an alert job.
func (r *alertQueueRepository) Update(ctx context.Context, job *entity.AlertJob) error {
	alertModel := model.AlertQueueModelFromEntity(job)
	return r.db.WithContext(ctx).Save(alertModel).Error
}

// GetByID retrieves a specific job by its ID.
func (r *alertQueueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AlertJob, error) {
	var alertModel model.AlertQueueModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&alertModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAlertJobNotFound
		}
		return nil, result.Error
	}
	return alertModel.ToEntity(), nil
}

// DeleteOldSentJobs removes sent jobs older than the specified number of days.
func (r *alertQueueRepository) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)

	result := r.db.WithContext(ctx).
		Where("status = ?", entity.AlertStatusSent).
		Where("processed_at < ?", cutoff).
		Delete(&model.AlertQueueModel{})

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
