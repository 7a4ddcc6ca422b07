// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/application/usecase/audit"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// CreateTransactionInput represents the input for creating a free-standing transaction.
// Installment transactions are created by the ledger sync, never through here.
type CreateTransactionInput struct {
	ProjectID   *uuid.UUID // Optional weak link, e.g. a project expense
	Type        entity.TransactionType
	Description string
	Amount      decimal.Decimal
	Status      entity.TransactionStatus // Defaults to pending
	Date        time.Time
	DueDate     *time.Time
	User        string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	projectRepo     adapter.ProjectRepository
	recorder        *audit.Recorder
	clock           adapter.Clock
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	projectRepo adapter.ProjectRepository,
	recorder *audit.Recorder,
	clock adapter.Clock,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		projectRepo:     projectRepo,
		recorder:        recorder,
		clock:           clock,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}

	if !input.Type.IsValid() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidTransaction,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransaction,
		)
	}

	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.Date.IsZero() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDate,
			"date is required",
			domainerror.ErrInvalidTransaction,
		)
	}

	status := input.Status
	if status == "" {
		status = entity.TransactionStatusPending
	}
	if !status.IsValid() {
		return nil, invalidStatusError()
	}

	if input.ProjectID != nil {
		if _, err := uc.projectRepo.FindByID(ctx, *input.ProjectID); err != nil {
			if errors.Is(err, domainerror.ErrProjectNotFound) {
				return nil, domainerror.NewProjectError(
					domainerror.ErrCodeProjectNotFound,
					"project not found",
					domainerror.ErrProjectNotFound,
				)
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
	}

	now := uc.clock.Now()
	transaction := entity.NewTransaction(
		input.ProjectID,
		input.Type,
		input.Description,
		valueobject.RoundMoney(input.Amount),
		status,
		input.Date,
		input.DueDate,
	)
	transaction.CreatedAt, transaction.UpdatedAt = now, now
	if status == entity.TransactionStatusCompleted {
		transaction.Complete(now)
	}

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	uc.recorder.RecordCreate(ctx, entity.EntityKindTransaction, transaction.ID.String(), transaction.AuditRecord(), input.User)

	return &CreateTransactionOutput{
		Transaction: NewTransactionOutput(transaction, now),
	}, nil
}

func validateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrInvalidTransaction,
		)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if !valueobject.RoundMoney(amount).IsPositive() {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransaction,
		)
	}
	return nil
}

func invalidStatusError() error {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeInvalidStatus,
		"status must be 'pending', 'completed' or 'overdue'",
		domainerror.ErrInvalidTransaction,
	)
}
