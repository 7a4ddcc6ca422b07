package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// ListDueInput represents the input for the upcoming and overdue listings.
type ListDueInput struct {
	AsOf        *time.Time
	HorizonDays *int // Upcoming only, defaults to the configured horizon
	ProjectID   *uuid.UUID
	Type        *entity.TransactionType
}

// ListDueOutput holds the matching transactions and the instant they were evaluated at.
type ListDueOutput struct {
	AsOf         time.Time
	HorizonDays  int
	Transactions []*entity.Transaction
}

// ListUpcomingUseCase lists pending transactions falling due soon.
type ListUpcomingUseCase struct {
	transactionRepo    adapter.TransactionRepository
	clock              adapter.Clock
	defaultHorizonDays int
}

// NewListUpcomingUseCase creates a new ListUpcomingUseCase instance.
func NewListUpcomingUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock, defaultHorizonDays int) *ListUpcomingUseCase {
	return &ListUpcomingUseCase{
		transactionRepo:    transactionRepo,
		clock:              clock,
		defaultHorizonDays: defaultHorizonDays,
	}
}

// Execute lists the upcoming transactions.
func (uc *ListUpcomingUseCase) Execute(ctx context.Context, input ListDueInput) (*ListDueOutput, error) {
	transactions, err := listForDue(ctx, uc.transactionRepo, input)
	if err != nil {
		return nil, err
	}

	horizon := uc.defaultHorizonDays
	if input.HorizonDays != nil && *input.HorizonDays >= 0 {
		horizon = *input.HorizonDays
	}
	asOf := resolveAsOf(uc.clock, input.AsOf)

	return &ListDueOutput{
		AsOf:         asOf,
		HorizonDays:  horizon,
		Transactions: ListUpcoming(transactions, asOf, horizon),
	}, nil
}

// ListOverdueUseCase lists transactions past their due date.
type ListOverdueUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewListOverdueUseCase creates a new ListOverdueUseCase instance.
func NewListOverdueUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *ListOverdueUseCase {
	return &ListOverdueUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute lists the overdue transactions.
func (uc *ListOverdueUseCase) Execute(ctx context.Context, input ListDueInput) (*ListDueOutput, error) {
	transactions, err := listForDue(ctx, uc.transactionRepo, input)
	if err != nil {
		return nil, err
	}

	asOf := resolveAsOf(uc.clock, input.AsOf)
	return &ListDueOutput{
		AsOf:         asOf,
		Transactions: ListOverdue(transactions, asOf),
	}, nil
}

func listForDue(ctx context.Context, repo adapter.TransactionRepository, input ListDueInput) ([]*entity.Transaction, error) {
	transactions, err := repo.FindByFilter(ctx, adapter.TransactionFilter{
		ProjectID: input.ProjectID,
		Type:      input.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}
