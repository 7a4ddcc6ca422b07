// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// ProjectModel represents the projects table in the database.
type ProjectModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name             string          `gorm:"type:varchar(255);not null"`
	ClientName       string          `gorm:"type:varchar(255)"`
	Budget           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaymentMethod    string          `gorm:"type:varchar(20);not null"`
	InstallmentCount int             `gorm:"not null;default:1"`
	AnchorDate       time.Time       `gorm:"type:date;not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
	DeletedAt        gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Installments []InstallmentModel `gorm:"foreignKey:ProjectID;references:ID"`
}

// TableName returns the table name for the ProjectModel.
func (ProjectModel) TableName() string {
	return "projects"
}

// ToEntity converts a ProjectModel to a domain Project entity.
// Installments are included when they were preloaded.
func (m *ProjectModel) ToEntity() *entity.Project {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	project := &entity.Project{
		ID:               m.ID,
		Name:             m.Name,
		ClientName:       m.ClientName,
		Budget:           m.Budget,
		PaymentMethod:    entity.PaymentMethod(m.PaymentMethod),
		InstallmentCount: m.InstallmentCount,
		AnchorDate:       m.AnchorDate,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		DeletedAt:        deletedAt,
	}

	project.Installments = make([]*entity.Installment, len(m.Installments))
	for i := range m.Installments {
		project.Installments[i] = m.Installments[i].ToEntity()
	}
	project.SortInstallments()

	return project
}

// ProjectFromEntity creates a ProjectModel from a domain Project entity.
// The schedule is converted separately with InstallmentsFromEntity.
func ProjectFromEntity(project *entity.Project) *ProjectModel {
	var deletedAt gorm.DeletedAt
	if project.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *project.DeletedAt, Valid: true}
	}

	return &ProjectModel{
		ID:               project.ID,
		Name:             project.Name,
		ClientName:       project.ClientName,
		Budget:           project.Budget,
		PaymentMethod:    string(project.PaymentMethod),
		InstallmentCount: project.InstallmentCount,
		AnchorDate:       project.AnchorDate,
		CreatedAt:        project.CreatedAt,
		UpdatedAt:        project.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}
