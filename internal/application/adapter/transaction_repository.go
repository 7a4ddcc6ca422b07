// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	ProjectID *uuid.UUID
	Type      *entity.TransactionType
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Save creates or updates a transaction.
	Save(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByProject retrieves every transaction that references the project, oldest first.
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Transaction, error)

	// FindByFilter retrieves transactions matching the filter, most recent first.
	FindByFilter(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)
}
