package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/application/usecase/audit"
	"github.com/arquitetura-app/backend/internal/application/usecase/installment"
	"github.com/arquitetura-app/backend/internal/application/usecase/ledger"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

// EditProjectInput represents a partial edit of a project. Nil fields are left unchanged.
type EditProjectInput struct {
	ProjectID        uuid.UUID
	Name             *string
	ClientName       *string
	Budget           *decimal.Decimal
	PaymentMethod    *entity.PaymentMethod
	InstallmentCount *int
	AnchorDate       *time.Time
	User             string
}

// EditProjectOutput represents the reconciled project.
type EditProjectOutput struct {
	Project      *entity.Project
	Transactions []*entity.Transaction
	// Orphaned lists paid installments kept beyond the new installment count.
	Orphaned []*entity.Installment
	// Warnings are non-blocking: orphans, desyncs and duplicate transactions.
	Warnings []*domainerror.LedgerError
	// Drift is the budget minus the schedule total after reconciliation.
	Drift decimal.Decimal
}

// EditProjectUseCase applies an edit to a project and reconciles its schedule
// and ledger without losing paid installments.
type EditProjectUseCase struct {
	projectRepo     adapter.ProjectRepository
	transactionRepo adapter.TransactionRepository
	locker          adapter.ProjectLocker
	notifier        adapter.OperatorNotifier
	recorder        *audit.Recorder
	clock           adapter.Clock
	maxInstallments int
	saveRetries     int
}

// NewEditProjectUseCase creates a new EditProjectUseCase instance.
func NewEditProjectUseCase(
	projectRepo adapter.ProjectRepository,
	transactionRepo adapter.TransactionRepository,
	locker adapter.ProjectLocker,
	notifier adapter.OperatorNotifier,
	recorder *audit.Recorder,
	clock adapter.Clock,
	maxInstallments int,
	saveRetries int,
) *EditProjectUseCase {
	return &EditProjectUseCase{
		projectRepo:     projectRepo,
		transactionRepo: transactionRepo,
		locker:          locker,
		notifier:        notifier,
		recorder:        recorder,
		clock:           clock,
		maxInstallments: maxInstallments,
		saveRetries:     saveRetries,
	}
}

// Execute runs the edit under the project lock:
//  1. load the project and its transactions;
//  2. sync first so payments confirmed on the transaction side are not lost;
//  3. regenerate the schedule from the new terms and reconcile it;
//  4. sync the ledger against the reconciled schedule;
//  5. persist project, schedule and transactions together, retrying on failure.
//
// Invalid terms are rejected before anything is written.
func (uc *EditProjectUseCase) Execute(ctx context.Context, input EditProjectInput) (*EditProjectOutput, error) {
	unlock, err := lockProject(ctx, uc.locker, input.ProjectID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	stored, err := findProject(ctx, uc.projectRepo, input.ProjectID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByProject(ctx, stored.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project transactions: %w", err)
	}

	now := uc.clock.Now()
	before := stored.AuditRecord()

	current := ledger.Sync(stored, transactions, now)

	edited := current.Project.Clone()
	if err := applyEdit(edited, input); err != nil {
		return nil, err
	}

	generated, err := installment.GenerateForProject(edited, uc.maxInstallments)
	if err != nil {
		return nil, err
	}

	reconciled := installment.Reconcile(installment.ReconcileInput{
		Existing:      current.Project.Installments,
		Generated:     generated,
		PreviousCount: stored.ScheduleSize(),
	})
	edited.Installments = reconciled.Installments
	edited.UpdatedAt = now

	synced := ledger.Sync(edited, current.Transactions, now)
	changed, detached := ledger.MergeChanges(current, synced)

	if len(changed) == 0 && len(detached) == 0 {
		if err := uc.projectRepo.Save(ctx, synced.Project); err != nil {
			return nil, fmt.Errorf("failed to save project: %w", err)
		}
	} else {
		err := ledger.SaveWithRetry(ctx, uc.projectRepo, synced.Project, changed, detached, uc.saveRetries)
		if err != nil {
			return nil, err
		}
	}

	ledgerWarnings := make([]*domainerror.LedgerError, 0, len(current.Warnings)+len(synced.Warnings))
	ledgerWarnings = append(ledgerWarnings, current.Warnings...)
	ledgerWarnings = append(ledgerWarnings, synced.Warnings...)
	ledger.ReportWarnings(ctx, uc.notifier, synced.Project, reconciled.Orphaned, ledgerWarnings)

	uc.recorder.RecordUpdate(
		ctx,
		entity.EntityKindProject,
		synced.Project.ID.String(),
		before,
		synced.Project.AuditRecord(),
		input.User,
	)

	warnings := make([]*domainerror.LedgerError, 0, len(reconciled.Orphaned)+len(ledgerWarnings))
	for _, inst := range reconciled.Orphaned {
		warnings = append(warnings, domainerror.NewOrphanedPaidInstallmentWarning(inst.Number, synced.Project.ScheduleSize()))
	}
	warnings = append(warnings, ledgerWarnings...)

	return &EditProjectOutput{
		Project:      synced.Project,
		Transactions: synced.Transactions,
		Orphaned:     reconciled.Orphaned,
		Warnings:     warnings,
		Drift:        reconciled.Drift,
	}, nil
}

func applyEdit(project *entity.Project, input EditProjectInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return domainerror.NewProjectError(
				domainerror.ErrCodeMissingProjectFields,
				"project name cannot be empty",
				domainerror.ErrProjectMissingFields,
			)
		}
		project.Name = name
	}
	if input.ClientName != nil {
		project.ClientName = strings.TrimSpace(*input.ClientName)
	}
	if input.Budget != nil {
		project.Budget = *input.Budget
	}
	if input.PaymentMethod != nil {
		project.PaymentMethod = *input.PaymentMethod
	}
	if input.InstallmentCount != nil {
		project.InstallmentCount = *input.InstallmentCount
	}
	if input.AnchorDate != nil {
		if input.AnchorDate.IsZero() {
			return domainerror.NewProjectError(
				domainerror.ErrCodeInvalidAnchorDate,
				"first due date cannot be empty",
				domainerror.ErrProjectMissingFields,
			)
		}
		project.AnchorDate = *input.AnchorDate
	}
	if project.PaymentMethod == entity.PaymentMethodSingle {
		project.InstallmentCount = 1
	}
	return nil
}
