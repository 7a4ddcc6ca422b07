package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// GetPortfolioSummaryInput represents the input for the firm-wide summary.
type GetPortfolioSummaryInput struct {
	AsOf      *time.Time
	StartDate *time.Time
	EndDate   *time.Time
}

// GetPortfolioSummaryOutput represents the firm-wide summary.
type GetPortfolioSummaryOutput struct {
	Summary valueobject.FinancialSummary
}

// GetPortfolioSummaryUseCase summarizes every transaction, linked or free-standing.
type GetPortfolioSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetPortfolioSummaryUseCase creates a new GetPortfolioSummaryUseCase instance.
func NewGetPortfolioSummaryUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *GetPortfolioSummaryUseCase {
	return &GetPortfolioSummaryUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute computes the summary.
func (uc *GetPortfolioSummaryUseCase) Execute(ctx context.Context, input GetPortfolioSummaryInput) (*GetPortfolioSummaryOutput, error) {
	transactions, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &GetPortfolioSummaryOutput{
		Summary: Summarize(transactions, resolveAsOf(uc.clock, input.AsOf)),
	}, nil
}
