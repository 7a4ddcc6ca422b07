package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// GetCashFlowInput represents the input for a project cash-flow projection.
type GetCashFlowInput struct {
	ProjectID   uuid.UUID
	AsOf        *time.Time
	Granularity Granularity // Defaults to monthly
}

// GetCashFlowOutput represents a project cash-flow projection.
type GetCashFlowOutput struct {
	AsOf        time.Time
	Granularity Granularity
	Periods     []valueobject.CashFlowPeriod
}

// GetCashFlowUseCase projects a project's income over time.
type GetCashFlowUseCase struct {
	projectRepo     adapter.ProjectRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetCashFlowUseCase creates a new GetCashFlowUseCase instance.
func NewGetCashFlowUseCase(
	projectRepo adapter.ProjectRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *GetCashFlowUseCase {
	return &GetCashFlowUseCase{
		projectRepo:     projectRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute builds the projection.
func (uc *GetCashFlowUseCase) Execute(ctx context.Context, input GetCashFlowInput) (*GetCashFlowOutput, error) {
	granularity := input.Granularity
	if granularity == "" {
		granularity = GranularityMonthly
	}
	if !granularity.IsValid() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidGranularity,
			"granularity must be 'weekly', 'monthly' or 'quarterly'",
			domainerror.ErrInvalidGranularity,
		)
	}

	project, err := findProject(ctx, uc.projectRepo, input.ProjectID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project transactions: %w", err)
	}

	asOf := resolveAsOf(uc.clock, input.AsOf)
	return &GetCashFlowOutput{
		AsOf:        asOf,
		Granularity: granularity,
		Periods:     CashFlow(transactions, asOf, granularity),
	}, nil
}
