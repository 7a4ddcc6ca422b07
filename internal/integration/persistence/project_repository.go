// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
	"github.com/arquitetura-app/backend/internal/integration/persistence/model"
)

// projectRepository implements the adapter.ProjectRepository interface.
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance.
func NewProjectRepository(db *gorm.DB) adapter.ProjectRepository {
	return &projectRepository{
		db: db,
	}
}

// Create stores a new project, its schedule and its initial ledger together.
func (r *projectRepository) Create(ctx context.Context, project *entity.Project, transactions []*entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model.ProjectFromEntity(project)).Error; err != nil {
			return err
		}
		if installments := model.InstallmentsFromEntity(project); len(installments) > 0 {
			if err := tx.Create(&installments).Error; err != nil {
				return err
			}
		}
		for _, t := range transactions {
			if err := tx.Create(model.TransactionFromEntity(t)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID retrieves a project with its installments.
func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var projectModel model.ProjectModel
	result := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Where("id = ?", id).
		First(&projectModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProjectNotFound
		}
		return nil, result.Error
	}
	return projectModel.ToEntity(), nil
}

// List retrieves every project that has not been deleted, oldest first.
func (r *projectRepository) List(ctx context.Context) ([]*entity.Project, error) {
	var projectModels []model.ProjectModel
	result := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Order("created_at ASC").
		Find(&projectModels)
	if result.Error != nil {
		return nil, result.Error
	}

	projects := make([]*entity.Project, len(projectModels))
	for i := range projectModels {
		projects[i] = projectModels[i].ToEntity()
	}
	return projects, nil
}

// Save replaces the stored project and its schedule.
func (r *projectRepository) Save(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveProject(tx, project)
	})
}

// SaveWithTransactions stores the project, its schedule and its ledger changes atomically.
func (r *projectRepository) SaveWithTransactions(
	ctx context.Context,
	project *entity.Project,
	transactions []*entity.Transaction,
	detached []uuid.UUID,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveProject(tx, project); err != nil {
			return err
		}

		// Unlink before deleting so the (project, installment) key is free again.
		if len(detached) > 0 {
			result := tx.Model(&model.TransactionModel{}).
				Where("id IN ?", detached).
				Updates(map[string]interface{}{
					"installment_number": nil,
					"updated_at":         time.Now().UTC(),
				})
			if result.Error != nil {
				return result.Error
			}
			if err := tx.Where("id IN ?", detached).Delete(&model.TransactionModel{}).Error; err != nil {
				return err
			}
		}

		for _, t := range transactions {
			if err := tx.Save(model.TransactionFromEntity(t)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete soft-deletes a project. Its installments and transactions are kept.
func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProjectModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrProjectNotFound
	}
	return nil
}

// saveProject updates the project row and rewrites its schedule.
func saveProject(tx *gorm.DB, project *entity.Project) error {
	result := tx.Omit(clause.Associations).Save(model.ProjectFromEntity(project))
	if result.Error != nil {
		return result.Error
	}

	if err := tx.Where("project_id = ?", project.ID).Delete(&model.InstallmentModel{}).Error; err != nil {
		return err
	}
	if installments := model.InstallmentsFromEntity(project); len(installments) > 0 {
		if err := tx.Create(&installments).Error; err != nil {
			return err
		}
	}
	return nil
}
