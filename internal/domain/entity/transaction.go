package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the transaction type is known.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// TransactionStatus represents the stored status of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusOverdue   TransactionStatus = "overdue" // Advisory cache, recomputed from DueDate
)

// IsValid reports whether the transaction status is known.
func (s TransactionStatus) IsValid() bool {
	return s == TransactionStatusPending ||
		s == TransactionStatusCompleted ||
		s == TransactionStatusOverdue
}

// Transaction represents a ledger entry. Installment-linked transactions carry
// the project id and installment number; free-standing ones may carry neither.
type Transaction struct {
	ID                uuid.UUID
	ProjectID         *uuid.UUID // Weak reference, survives project deletion
	Type              TransactionType
	Description       string
	Amount            decimal.Decimal
	Status            TransactionStatus
	Date              time.Time
	DueDate           *time.Time
	InstallmentNumber *int
	PaidAt            *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	projectID *uuid.UUID,
	transactionType TransactionType,
	description string,
	amount decimal.Decimal,
	status TransactionStatus,
	date time.Time,
	dueDate *time.Time,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Type:        transactionType,
		Description: description,
		Amount:      amount,
		Status:      status,
		Date:        date,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsCompleted reports whether the transaction has been settled.
func (t *Transaction) IsCompleted() bool {
	return t.Status == TransactionStatusCompleted
}

// EffectiveDueDate returns the due date, falling back to the transaction date.
func (t *Transaction) EffectiveDueDate() time.Time {
	if t.DueDate != nil {
		return *t.DueDate
	}
	return t.Date
}

// IsLinkedTo reports whether the transaction is the ledger entry of the given installment.
func (t *Transaction) IsLinkedTo(projectID uuid.UUID, installmentNumber int) bool {
	return t.ProjectID != nil && *t.ProjectID == projectID &&
		t.InstallmentNumber != nil && *t.InstallmentNumber == installmentNumber
}

// Complete settles the transaction at the given time.
func (t *Transaction) Complete(at time.Time) {
	t.Status = TransactionStatusCompleted
	paidAt := at
	t.PaidAt = &paidAt
}

// Reopen returns a settled transaction to pending.
func (t *Transaction) Reopen() {
	t.Status = TransactionStatusPending
	t.PaidAt = nil
}

// Clone returns a copy of the transaction that shares no pointers with the original.
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	c := *t
	if t.ProjectID != nil {
		projectID := *t.ProjectID
		c.ProjectID = &projectID
	}
	if t.DueDate != nil {
		dueDate := *t.DueDate
		c.DueDate = &dueDate
	}
	if t.InstallmentNumber != nil {
		number := *t.InstallmentNumber
		c.InstallmentNumber = &number
	}
	if t.PaidAt != nil {
		paidAt := *t.PaidAt
		c.PaidAt = &paidAt
	}
	return &c
}

// AuditRecord flattens the tracked transaction fields for the audit trail.
func (t *Transaction) AuditRecord() map[string]any {
	return map[string]any{
		"description":        t.Description,
		"type":               string(t.Type),
		"amount":             t.Amount,
		"status":             string(t.Status),
		"date":               t.Date,
		"due_date":           t.DueDate,
		"installment_number": t.InstallmentNumber,
		"paid_at":            t.PaidAt,
	}
}
