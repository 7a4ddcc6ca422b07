package project

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/application/usecase/audit"
	"github.com/arquitetura-app/backend/internal/application/usecase/ledger"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

// InstallmentPaymentInput identifies the installment a payment flip applies to.
type InstallmentPaymentInput struct {
	ProjectID         uuid.UUID
	InstallmentNumber int
	User              string
}

// InstallmentPaymentOutput holds the installment and its transaction after the flip.
type InstallmentPaymentOutput struct {
	Project     *entity.Project
	Installment *entity.Installment
	Transaction *entity.Transaction
	// Changed is false when the installment already was in the requested state.
	Changed  bool
	Warnings []*domainerror.LedgerError
}

// paymentFlip is either ledger.MarkAsPaid or ledger.RevertPayment.
type paymentFlip func(*entity.Project, int, []*entity.Transaction, time.Time) (*ledger.PaymentResult, error)

// installmentPayments carries what both payment use cases share.
type installmentPayments struct {
	projectRepo     adapter.ProjectRepository
	transactionRepo adapter.TransactionRepository
	locker          adapter.ProjectLocker
	recorder        *audit.Recorder
	clock           adapter.Clock
	saveRetries     int
}

func (p *installmentPayments) execute(ctx context.Context, input InstallmentPaymentInput, flip paymentFlip) (*InstallmentPaymentOutput, error) {
	unlock, err := lockProject(ctx, p.locker, input.ProjectID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	project, err := findProject(ctx, p.projectRepo, input.ProjectID)
	if err != nil {
		return nil, err
	}

	transactions, err := p.transactionRepo.FindByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project transactions: %w", err)
	}

	var (
		txBefore   map[string]any
		instBefore = installmentAudit(project.Installment(input.InstallmentNumber))
	)
	for _, tx := range transactions {
		if tx.Type == entity.TransactionTypeIncome && tx.IsLinkedTo(project.ID, input.InstallmentNumber) {
			txBefore = tx.AuditRecord()
			break
		}
	}

	now := p.clock.Now()
	result, err := flip(project, input.InstallmentNumber, transactions, now)
	if err != nil {
		return nil, err
	}

	output := &InstallmentPaymentOutput{
		Project:     result.Project,
		Installment: result.Installment,
		Transaction: result.Transaction,
		Changed:     result.Changed,
		Warnings:    result.Warnings,
	}
	if !result.Changed {
		return output, nil
	}

	result.Project.UpdatedAt = now
	err = ledger.SaveWithRetry(ctx, p.projectRepo, result.Project, []*entity.Transaction{result.Transaction}, nil, p.saveRetries)
	if err != nil {
		return nil, err
	}
	ledger.ReportWarnings(ctx, nil, result.Project, nil, result.Warnings)

	p.recorder.RecordUpdate(
		ctx,
		entity.EntityKindInstallment,
		installmentEntityID(project.ID, input.InstallmentNumber),
		instBefore,
		result.Installment.AuditRecord(),
		input.User,
	)
	if result.Created {
		p.recorder.RecordCreate(ctx, entity.EntityKindTransaction, result.Transaction.ID.String(), result.Transaction.AuditRecord(), input.User)
	} else {
		p.recorder.RecordUpdate(ctx, entity.EntityKindTransaction, result.Transaction.ID.String(), txBefore, result.Transaction.AuditRecord(), input.User)
	}

	return output, nil
}

// MarkInstallmentPaidUseCase marks an installment and its transaction as paid together.
type MarkInstallmentPaidUseCase struct {
	installmentPayments
}

// NewMarkInstallmentPaidUseCase creates a new MarkInstallmentPaidUseCase instance.
func NewMarkInstallmentPaidUseCase(
	projectRepo adapter.ProjectRepository,
	transactionRepo adapter.TransactionRepository,
	locker adapter.ProjectLocker,
	recorder *audit.Recorder,
	clock adapter.Clock,
	saveRetries int,
) *MarkInstallmentPaidUseCase {
	return &MarkInstallmentPaidUseCase{installmentPayments{
		projectRepo:     projectRepo,
		transactionRepo: transactionRepo,
		locker:          locker,
		recorder:        recorder,
		clock:           clock,
		saveRetries:     saveRetries,
	}}
}

// Execute marks the installment as paid now. Paying a paid installment changes nothing.
func (uc *MarkInstallmentPaidUseCase) Execute(ctx context.Context, input InstallmentPaymentInput) (*InstallmentPaymentOutput, error) {
	return uc.execute(ctx, input, ledger.MarkAsPaid)
}
