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
	"github.com/arquitetura-app/backend/internal/application/usecase/ledger"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// UpdateTransactionInput represents the input for transaction update.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	Description   *string
	Amount        *decimal.Decimal
	Status        *entity.TransactionStatus
	Date          *time.Time
	DueDate       *time.Time
	User          string
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
	// Installment is set when the transaction belongs to an installment and its
	// payment status was carried over to it.
	Installment *entity.Installment
}

// UpdateTransactionUseCase handles transaction update logic. Installment
// transactions are updated under the project lock and a status change flips
// the installment with them; their amount and due date follow the schedule
// and cannot be edited here.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	projectRepo     adapter.ProjectRepository
	locker          adapter.ProjectLocker
	recorder        *audit.Recorder
	clock           adapter.Clock
	saveRetries     int
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	projectRepo adapter.ProjectRepository,
	locker adapter.ProjectLocker,
	recorder *audit.Recorder,
	clock adapter.Clock,
	saveRetries int,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		projectRepo:     projectRepo,
		locker:          locker,
		recorder:        recorder,
		clock:           clock,
		saveRetries:     saveRetries,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	transaction, err := uc.findTransaction(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}

	if transaction.InstallmentNumber == nil || transaction.ProjectID == nil {
		return uc.updateFreeStanding(ctx, transaction, input)
	}

	if input.Amount != nil || input.DueDate != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInstallmentLinkLocked,
			"amount and due date of an installment transaction follow the project schedule",
			domainerror.ErrInvalidTransaction,
		)
	}

	unlock, err := uc.locker.Lock(ctx, *transaction.ProjectID)
	if err != nil {
		if errors.Is(err, domainerror.ErrLockUnavailable) {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeProjectBusy,
				"project is being modified by another request, try again",
				err,
			)
		}
		return nil, fmt.Errorf("failed to lock project: %w", err)
	}
	defer unlock()

	project, err := uc.projectRepo.FindByID(ctx, *transaction.ProjectID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			// The project is gone; the transaction survives on its own.
			return uc.updateFreeStanding(ctx, transaction, input)
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	return uc.updateInstallmentTransaction(ctx, project, input)
}

func (uc *UpdateTransactionUseCase) findTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return transaction, nil
}

func (uc *UpdateTransactionUseCase) updateFreeStanding(
	ctx context.Context,
	transaction *entity.Transaction,
	input UpdateTransactionInput,
) (*UpdateTransactionOutput, error) {
	before := transaction.AuditRecord()
	now := uc.clock.Now()

	applyFields(transaction, input)
	if input.Amount != nil {
		transaction.Amount = valueobject.RoundMoney(*input.Amount)
	}
	if input.DueDate != nil {
		dueDate := *input.DueDate
		transaction.DueDate = &dueDate
	}
	if input.Status != nil && *input.Status != transaction.Status {
		switch *input.Status {
		case entity.TransactionStatusCompleted:
			transaction.Complete(now)
		default:
			transaction.Reopen()
			transaction.Status = *input.Status
		}
	}
	transaction.UpdatedAt = now

	if err := uc.transactionRepo.Save(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	uc.recorder.RecordUpdate(ctx, entity.EntityKindTransaction, transaction.ID.String(), before, transaction.AuditRecord(), input.User)

	return &UpdateTransactionOutput{Transaction: NewTransactionOutput(transaction, now)}, nil
}

func (uc *UpdateTransactionUseCase) updateInstallmentTransaction(
	ctx context.Context,
	project *entity.Project,
	input UpdateTransactionInput,
) (*UpdateTransactionOutput, error) {
	transactions, err := uc.transactionRepo.FindByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project transactions: %w", err)
	}

	// Reload under the lock.
	var current *entity.Transaction
	for _, tx := range transactions {
		if tx.ID == input.TransactionID {
			current = tx
			break
		}
	}
	if current == nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	number := *current.InstallmentNumber
	inst := project.Installment(number)
	if inst == nil {
		// Linked to an installment that no longer exists, e.g. a paid orphan
		// that was archived. Treat it as free-standing.
		return uc.updateFreeStanding(ctx, current, input)
	}

	txBefore := current.AuditRecord()
	instBefore := inst.AuditRecord()
	now := uc.clock.Now()

	result := &ledger.PaymentResult{Project: project, Installment: inst, Transaction: current}
	if input.Status != nil {
		flip := ledger.RevertPayment
		if *input.Status == entity.TransactionStatusCompleted {
			flip = ledger.MarkAsPaid
		}
		result, err = flip(project, number, []*entity.Transaction{current}, now)
		if err != nil {
			return nil, err
		}
	}

	applyFields(result.Transaction, input)
	result.Transaction.UpdatedAt = now
	result.Project.UpdatedAt = now

	err = ledger.SaveWithRetry(ctx, uc.projectRepo, result.Project, []*entity.Transaction{result.Transaction}, nil, uc.saveRetries)
	if err != nil {
		return nil, err
	}

	uc.recorder.RecordUpdate(ctx, entity.EntityKindTransaction, result.Transaction.ID.String(), txBefore, result.Transaction.AuditRecord(), input.User)
	uc.recorder.RecordUpdate(
		ctx,
		entity.EntityKindInstallment,
		fmt.Sprintf("%s#%d", project.ID, number),
		instBefore,
		result.Installment.AuditRecord(),
		input.User,
	)

	return &UpdateTransactionOutput{
		Transaction: NewTransactionOutput(result.Transaction, now),
		Installment: result.Installment,
	}, nil
}

// applyFields sets the fields any transaction may change.
func applyFields(transaction *entity.Transaction, input UpdateTransactionInput) {
	if input.Description != nil {
		transaction.Description = *input.Description
	}
	if input.Date != nil {
		transaction.Date = *input.Date
	}
}

func validateUpdate(input UpdateTransactionInput) error {
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return err
		}
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return err
		}
	}
	if input.Status != nil && !input.Status.IsValid() {
		return invalidStatusError()
	}
	if input.Date != nil && input.Date.IsZero() {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDate,
			"date cannot be empty",
			domainerror.ErrInvalidTransaction,
		)
	}
	return nil
}
