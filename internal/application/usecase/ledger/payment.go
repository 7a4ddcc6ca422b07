package ledger

import (
	"time"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

// PaymentResult holds an installment and its transaction after a payment flip.
// Both must be persisted together.
type PaymentResult struct {
	Project     *entity.Project
	Installment *entity.Installment
	Transaction *entity.Transaction
	Created     bool // Transaction did not exist before
	Changed     bool // False when the installment was already in the requested state
	// Warnings reports an installment and transaction that disagreed before the flip.
	Warnings []*domainerror.LedgerError
}

// MarkAsPaid marks an installment and its transaction as paid at now. The
// transaction is created when the installment has none yet. When one side is
// already settled its payment date is kept and copied to the other side, with
// a desync warning.
func MarkAsPaid(project *entity.Project, number int, transactions []*entity.Transaction, now time.Time) (*PaymentResult, error) {
	result, err := preparePayment(project, number, transactions, now)
	if err != nil {
		return nil, err
	}

	inst, tx := result.Installment, result.Transaction
	switch {
	case inst.IsPaid() && tx.IsCompleted():
		return result, nil
	case tx.IsCompleted():
		result.Warnings = append(result.Warnings,
			domainerror.NewLedgerDesyncWarning(inst.Number, string(inst.Status), string(tx.Status)))
		paidAt := tx.Date
		if tx.PaidAt != nil {
			paidAt = *tx.PaidAt
		}
		inst.MarkPaid(paidAt)
		inst.Value = tx.Amount
	case inst.IsPaid():
		result.Warnings = append(result.Warnings,
			domainerror.NewLedgerDesyncWarning(inst.Number, string(inst.Status), string(tx.Status)))
		paidAt := now
		if inst.PaymentDate != nil {
			paidAt = *inst.PaymentDate
		}
		tx.Complete(paidAt)
		tx.Amount = inst.Value
	default:
		inst.MarkPaid(now)
		tx.Complete(now)
		tx.Amount = inst.Value
	}

	tx.UpdatedAt = now
	result.Changed = true

	return result, nil
}

// RevertPayment returns an installment and its transaction to pending.
func RevertPayment(project *entity.Project, number int, transactions []*entity.Transaction, now time.Time) (*PaymentResult, error) {
	result, err := preparePayment(project, number, transactions, now)
	if err != nil {
		return nil, err
	}

	inst, tx := result.Installment, result.Transaction
	if !inst.IsPaid() && tx.Status == entity.TransactionStatusPending {
		return result, nil
	}

	inst.Revert()
	tx.Reopen()
	tx.Amount = inst.Value
	dueDate := inst.DueDate
	tx.DueDate = &dueDate
	tx.UpdatedAt = now
	result.Changed = true

	return result, nil
}

func preparePayment(project *entity.Project, number int, transactions []*entity.Transaction, now time.Time) (*PaymentResult, error) {
	clone := project.Clone()
	inst := clone.Installment(number)
	if inst == nil {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeInstallmentNotFound,
			"installment not found",
			domainerror.ErrInstallmentNotFound,
		)
	}

	result := &PaymentResult{Project: clone, Installment: inst}
	for _, tx := range transactions {
		if tx.Type == entity.TransactionTypeIncome && tx.IsLinkedTo(clone.ID, number) {
			result.Transaction = tx.Clone()
			break
		}
	}
	if result.Transaction == nil {
		result.Transaction = NewInstallmentTransaction(clone, inst, clone.ScheduleSize(), now)
		result.Created = true
		result.Changed = true
	}

	return result, nil
}
