package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstallmentStatus represents the stored payment status of an installment.
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPaid    InstallmentStatus = "paid"
)

// Installment is one scheduled portion of a project's budget.
type Installment struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Number      int // 1-based, unique within the project
	DueDate     time.Time
	Value       decimal.Decimal
	Status      InstallmentStatus
	PaymentDate *time.Time // Set iff Status is paid
	Orphaned    bool       // Paid installment kept beyond the current installment count
}

// IsPaid reports whether the installment has been paid.
func (i *Installment) IsPaid() bool {
	return i.Status == InstallmentStatusPaid
}

// MarkPaid records the payment of the installment at the given time.
func (i *Installment) MarkPaid(at time.Time) {
	i.Status = InstallmentStatusPaid
	paidAt := at
	i.PaymentDate = &paidAt
}

// Revert returns a paid installment to pending.
func (i *Installment) Revert() {
	i.Status = InstallmentStatusPending
	i.PaymentDate = nil
}

// Clone returns a copy of the installment that shares no pointers with the original.
func (i *Installment) Clone() *Installment {
	if i == nil {
		return nil
	}
	c := *i
	if i.PaymentDate != nil {
		paymentDate := *i.PaymentDate
		c.PaymentDate = &paymentDate
	}
	return &c
}

// CloneInstallments deep-copies a schedule.
func CloneInstallments(installments []*Installment) []*Installment {
	if installments == nil {
		return nil
	}
	out := make([]*Installment, len(installments))
	for i, inst := range installments {
		out[i] = inst.Clone()
	}
	return out
}

// AuditRecord flattens the tracked installment fields for the audit trail.
func (i *Installment) AuditRecord() map[string]any {
	return map[string]any{
		"number":       i.Number,
		"due_date":     i.DueDate,
		"value":        i.Value,
		"status":       string(i.Status),
		"payment_date": i.PaymentDate,
		"orphaned":     i.Orphaned,
	}
}
