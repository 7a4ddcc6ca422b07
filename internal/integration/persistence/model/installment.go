package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// InstallmentModel represents the installments table in the database.
type InstallmentModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_installments_project_number"`
	Number      int             `gorm:"not null;uniqueIndex:idx_installments_project_number"`
	DueDate     time.Time       `gorm:"type:date;not null;index"`
	Value       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status      string          `gorm:"type:varchar(10);not null;default:'pending'"`
	PaymentDate *time.Time      `gorm:"type:timestamp"`
	Orphaned    bool            `gorm:"default:false"`
}

// TableName returns the table name for the InstallmentModel.
func (InstallmentModel) TableName() string {
	return "installments"
}

// ToEntity converts an InstallmentModel to a domain Installment entity.
func (m *InstallmentModel) ToEntity() *entity.Installment {
	return &entity.Installment{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Number:      m.Number,
		DueDate:     m.DueDate,
		Value:       m.Value,
		Status:      entity.InstallmentStatus(m.Status),
		PaymentDate: m.PaymentDate,
		Orphaned:    m.Orphaned,
	}
}

// InstallmentsFromEntity converts a project's schedule to models.
func InstallmentsFromEntity(project *entity.Project) []InstallmentModel {
	models := make([]InstallmentModel, len(project.Installments))
	for i, inst := range project.Installments {
		id := inst.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		models[i] = InstallmentModel{
			ID:          id,
			ProjectID:   project.ID,
			Number:      inst.Number,
			DueDate:     inst.DueDate,
			Value:       inst.Value,
			Status:      string(inst.Status),
			PaymentDate: inst.PaymentDate,
			Orphaned:    inst.Orphaned,
		}
	}
	return models
}
