// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// ProjectRepository defines the interface for project persistence operations.
// Projects are always loaded and stored together with their installments.
type ProjectRepository interface {
	// Create stores a new project, its installments and its initial ledger
	// transactions in a single database transaction.
	Create(ctx context.Context, project *entity.Project, transactions []*entity.Transaction) error

	// FindByID retrieves a project with its installments ordered by number.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)

	// List retrieves every project that has not been deleted.
	List(ctx context.Context) ([]*entity.Project, error)

	// Save replaces the stored project and its installment schedule.
	Save(ctx context.Context, project *entity.Project) error

	// SaveWithTransactions stores the project, its schedule and the given ledger
	// transactions in a single database transaction. Detached transactions lose
	// their installment link and are soft-deleted in the same transaction.
	SaveWithTransactions(
		ctx context.Context,
		project *entity.Project,
		transactions []*entity.Transaction,
		detached []uuid.UUID,
	) error

	// Delete soft-deletes a project. Its transactions are left untouched.
	Delete(ctx context.Context, id uuid.UUID) error
}
