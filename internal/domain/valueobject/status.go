package valueobject

import (
	"time"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// EffectiveStatus is the status of an installment or transaction as of a given
// time. It is derived, never persisted as the source of truth.
type EffectiveStatus string

const (
	EffectiveStatusPending EffectiveStatus = "pending"
	EffectiveStatusPaid    EffectiveStatus = "paid"
	EffectiveStatusOverdue EffectiveStatus = "overdue"
)

// DeriveStatus computes the effective status from a stored installment status.
// Paid is terminal; a pending installment is overdue strictly after its due date.
// Moving now backwards turns overdue back into pending.
func DeriveStatus(stored entity.InstallmentStatus, dueDate time.Time, now time.Time) EffectiveStatus {
	if stored == entity.InstallmentStatusPaid {
		return EffectiveStatusPaid
	}
	if dueDate.Before(now) {
		return EffectiveStatusOverdue
	}
	return EffectiveStatusPending
}

// InstallmentStatusAt returns the effective status of an installment.
func InstallmentStatusAt(inst *entity.Installment, now time.Time) EffectiveStatus {
	return DeriveStatus(inst.Status, inst.DueDate, now)
}

// TransactionStatusAt returns the effective status of a transaction. A stored
// overdue flag is ignored in favour of recomputation from the due date.
func TransactionStatusAt(tx *entity.Transaction, now time.Time) EffectiveStatus {
	stored := entity.InstallmentStatusPending
	if tx.IsCompleted() {
		stored = entity.InstallmentStatusPaid
	}
	return DeriveStatus(stored, tx.EffectiveDueDate(), now)
}

// InstallmentStatusFor maps a transaction status to the installment status it implies.
func InstallmentStatusFor(status entity.TransactionStatus) entity.InstallmentStatus {
	if status == entity.TransactionStatusCompleted {
		return entity.InstallmentStatusPaid
	}
	return entity.InstallmentStatusPending
}

// TransactionStatusFor maps an installment status to the transaction status that mirrors it.
func TransactionStatusFor(status entity.InstallmentStatus) entity.TransactionStatus {
	if status == entity.InstallmentStatusPaid {
		return entity.TransactionStatusCompleted
	}
	return entity.TransactionStatusPending
}
