package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// (project_id, installment_number) is unique; free-standing rows leave both null.
type TransactionModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProjectID         *uuid.UUID      `gorm:"type:uuid;index;uniqueIndex:idx_transactions_project_installment"`
	Type              string          `gorm:"type:varchar(10);not null;index"`
	Description       string          `gorm:"type:varchar(255);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status            string          `gorm:"type:varchar(10);not null;default:'pending'"`
	Date              time.Time       `gorm:"type:date;not null;index"`
	DueDate           *time.Time      `gorm:"type:date;index"`
	InstallmentNumber *int            `gorm:"type:integer;uniqueIndex:idx_transactions_project_installment"`
	PaidAt            *time.Time      `gorm:"type:timestamp"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
	DeletedAt         gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:                m.ID,
		ProjectID:         m.ProjectID,
		Type:              entity.TransactionType(m.Type),
		Description:       m.Description,
		Amount:            m.Amount,
		Status:            entity.TransactionStatus(m.Status),
		Date:              m.Date,
		DueDate:           m.DueDate,
		InstallmentNumber: m.InstallmentNumber,
		PaidAt:            m.PaidAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                transaction.ID,
		ProjectID:         transaction.ProjectID,
		Type:              string(transaction.Type),
		Description:       transaction.Description,
		Amount:            transaction.Amount,
		Status:            string(transaction.Status),
		Date:              transaction.Date,
		DueDate:           transaction.DueDate,
		InstallmentNumber: transaction.InstallmentNumber,
		PaidAt:            transaction.PaidAt,
		CreatedAt:         transaction.CreatedAt,
		UpdatedAt:         transaction.UpdatedAt,
	}
}
