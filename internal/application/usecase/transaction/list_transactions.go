package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	ProjectID *uuid.UUID
	Type      *entity.TransactionType
	StartDate *time.Time
	EndDate   *time.Time
	AsOf      *time.Time // Optional, defaults to the clock
}

// TransactionOutput represents a single transaction with its effective status.
type TransactionOutput struct {
	ID                uuid.UUID
	ProjectID         *uuid.UUID
	Type              entity.TransactionType
	Description       string
	Amount            decimal.Decimal
	Status            entity.TransactionStatus
	EffectiveStatus   valueobject.EffectiveStatus
	Date              time.Time
	DueDate           *time.Time
	InstallmentNumber *int
	PaidAt            *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewTransactionOutput builds the output of a transaction as of asOf.
func NewTransactionOutput(tx *entity.Transaction, asOf time.Time) *TransactionOutput {
	return &TransactionOutput{
		ID:                tx.ID,
		ProjectID:         tx.ProjectID,
		Type:              tx.Type,
		Description:       tx.Description,
		Amount:            tx.Amount,
		Status:            tx.Status,
		EffectiveStatus:   valueobject.TransactionStatusAt(tx, asOf),
		Date:              tx.Date,
		DueDate:           tx.DueDate,
		InstallmentNumber: tx.InstallmentNumber,
		PaidAt:            tx.PaidAt,
		CreatedAt:         tx.CreatedAt,
		UpdatedAt:         tx.UpdatedAt,
	}
}

// TotalsOutput represents aggregated totals in the output.
type TotalsOutput struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Totals       TotalsOutput
	AsOf         time.Time
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	asOf := uc.clock.Now()
	if input.AsOf != nil {
		asOf = *input.AsOf
	}

	transactions, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		ProjectID: input.ProjectID,
		Type:      input.Type,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, len(transactions)),
		Totals: TotalsOutput{
			IncomeTotal:  decimal.Zero,
			ExpenseTotal: decimal.Zero,
		},
		AsOf: asOf,
	}

	for i, tx := range transactions {
		output.Transactions[i] = NewTransactionOutput(tx, asOf)
		if tx.Type == entity.TransactionTypeIncome {
			output.Totals.IncomeTotal = output.Totals.IncomeTotal.Add(tx.Amount)
		} else {
			output.Totals.ExpenseTotal = output.Totals.ExpenseTotal.Add(tx.Amount)
		}
	}
	output.Totals.NetTotal = output.Totals.IncomeTotal.Sub(output.Totals.ExpenseTotal)

	return output, nil
}
