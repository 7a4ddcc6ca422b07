package project

import (
	"context"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/application/usecase/audit"
	"github.com/arquitetura-app/backend/internal/application/usecase/ledger"
)

// RevertInstallmentUseCase returns a paid installment and its transaction to pending.
type RevertInstallmentUseCase struct {
	installmentPayments
}

// NewRevertInstallmentUseCase creates a new RevertInstallmentUseCase instance.
func NewRevertInstallmentUseCase(
	projectRepo adapter.ProjectRepository,
	transactionRepo adapter.TransactionRepository,
	locker adapter.ProjectLocker,
	recorder *audit.Recorder,
	clock adapter.Clock,
	saveRetries int,
) *RevertInstallmentUseCase {
	return &RevertInstallmentUseCase{installmentPayments{
		projectRepo:     projectRepo,
		transactionRepo: transactionRepo,
		locker:          locker,
		recorder:        recorder,
		clock:           clock,
		saveRetries:     saveRetries,
	}}
}

// Execute reverts the payment. Reverting a pending installment changes nothing.
func (uc *RevertInstallmentUseCase) Execute(ctx context.Context, input InstallmentPaymentInput) (*InstallmentPaymentOutput, error) {
	return uc.execute(ctx, input, ledger.RevertPayment)
}
