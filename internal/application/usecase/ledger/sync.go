// Package ledger keeps project installments and income transactions in step and
// aggregates transactions into financial summaries.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// SyncResult is the outcome of one sync pass over a project.
type SyncResult struct {
	// Project is a copy of the input with installment statuses adopted from transactions.
	Project *entity.Project
	// Transactions holds exactly one transaction per installment, in installment order.
	Transactions []*entity.Transaction
	Created      []*entity.Transaction
	Updated      []*entity.Transaction
	// Detached are pending transactions whose installment no longer exists.
	// They must be unlinked and removed when the result is persisted.
	Detached []*entity.Transaction
	Warnings []*domainerror.LedgerError
}

// Changed lists every transaction the pass created or modified.
func (r SyncResult) Changed() []*entity.Transaction {
	changed := make([]*entity.Transaction, 0, len(r.Created)+len(r.Updated))
	changed = append(changed, r.Created...)
	changed = append(changed, r.Updated...)
	return changed
}

// DetachedIDs returns the ids of the detached transactions.
func (r SyncResult) DetachedIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Detached))
	for i, tx := range r.Detached {
		ids[i] = tx.ID
	}
	return ids
}

// HasDesync reports whether any installment status was overridden.
func (r SyncResult) HasDesync() bool {
	for _, w := range r.Warnings {
		if w.Code == domainerror.ErrCodeLedgerDesync {
			return true
		}
	}
	return false
}

// Sync makes sure every installment of the project has exactly one income
// transaction keyed by (project, installment number).
//
// Missing transactions are created mirroring the installment. When both sides
// agree on payment, the transaction follows the installment's amount and due
// date. When they disagree, the transaction owns payment confirmation and the
// installment adopts its status, with a desync warning.
//
// Inputs are not modified. Transactions of other projects, free-standing ones and
// expenses are ignored.
func Sync(project *entity.Project, transactions []*entity.Transaction, now time.Time) SyncResult {
	result := SyncResult{Project: project.Clone()}
	result.Project.SortInstallments()

	index := make(map[int]*entity.Transaction)
	for _, tx := range transactions {
		if !isInstallmentTransaction(project.ID, tx) {
			continue
		}
		number := *tx.InstallmentNumber
		if kept, exists := index[number]; exists {
			result.Warnings = append(result.Warnings, domainerror.NewLedgerError(
				domainerror.ErrCodeDuplicateTransaction,
				fmt.Sprintf("installment %d has transactions %s and %s; keeping the first", number, kept.ID, tx.ID),
				domainerror.ErrDuplicateInstallmentTransaction,
			))
			continue
		}
		index[number] = tx.Clone()
	}

	scheduleSize := len(result.Project.Installments)
	inSchedule := make(map[int]bool, scheduleSize)

	for _, inst := range result.Project.Installments {
		inSchedule[inst.Number] = true

		tx, found := index[inst.Number]
		if !found {
			tx = NewInstallmentTransaction(result.Project, inst, scheduleSize, now)
			result.Created = append(result.Created, tx)
			result.Transactions = append(result.Transactions, tx)
			continue
		}

		before := tx.Clone()
		if warning := reconcilePair(inst, tx); warning != nil {
			result.Warnings = append(result.Warnings, warning)
		}
		if transactionChanged(before, tx) {
			tx.UpdatedAt = now
			result.Updated = append(result.Updated, tx)
		}
		result.Transactions = append(result.Transactions, tx)
	}

	for number, tx := range index {
		if inSchedule[number] || tx.IsCompleted() {
			continue
		}
		result.Detached = append(result.Detached, tx)
	}
	sort.Slice(result.Detached, func(i, j int) bool {
		return *result.Detached[i].InstallmentNumber < *result.Detached[j].InstallmentNumber
	})

	return result
}

// NewInstallmentTransaction builds the income transaction mirroring an installment.
func NewInstallmentTransaction(project *entity.Project, inst *entity.Installment, scheduleSize int, now time.Time) *entity.Transaction {
	projectID := project.ID
	number := inst.Number
	dueDate := inst.DueDate

	tx := entity.NewTransaction(
		&projectID,
		entity.TransactionTypeIncome,
		InstallmentDescription(project.Name, inst.Number, scheduleSize),
		inst.Value,
		valueobject.TransactionStatusFor(inst.Status),
		inst.DueDate,
		&dueDate,
	)
	tx.InstallmentNumber = &number
	if inst.IsPaid() && inst.PaymentDate != nil {
		paidAt := *inst.PaymentDate
		tx.PaidAt = &paidAt
	}
	tx.CreatedAt = now
	tx.UpdatedAt = now
	return tx
}

// InstallmentDescription is the description given to installment transactions.
func InstallmentDescription(projectName string, number, total int) string {
	if projectName == "" {
		return fmt.Sprintf("Installment %d of %d", number, total)
	}
	return fmt.Sprintf("%s - Installment %d of %d", projectName, number, total)
}

// reconcilePair resolves one installment against its transaction in place.
func reconcilePair(inst *entity.Installment, tx *entity.Transaction) *domainerror.LedgerError {
	implied := valueobject.InstallmentStatusFor(tx.Status)

	var warning *domainerror.LedgerError
	if implied != inst.Status {
		warning = domainerror.NewLedgerDesyncWarning(inst.Number, string(inst.Status), string(tx.Status))
		if tx.IsCompleted() {
			paidAt := tx.Date
			if tx.PaidAt != nil {
				paidAt = *tx.PaidAt
			}
			inst.MarkPaid(paidAt)
			inst.Value = tx.Amount
			return warning
		}
		inst.Revert()
	}

	tx.Amount = inst.Value
	dueDate := inst.DueDate
	tx.DueDate = &dueDate
	if inst.IsPaid() && tx.PaidAt == nil && inst.PaymentDate != nil {
		paidAt := *inst.PaymentDate
		tx.PaidAt = &paidAt
	}
	return warning
}

func isInstallmentTransaction(projectID uuid.UUID, tx *entity.Transaction) bool {
	return tx.Type == entity.TransactionTypeIncome &&
		tx.ProjectID != nil && *tx.ProjectID == projectID &&
		tx.InstallmentNumber != nil
}

func transactionChanged(before, after *entity.Transaction) bool {
	if !before.Amount.Equal(after.Amount) || before.Status != after.Status {
		return true
	}
	if !sameTime(before.DueDate, after.DueDate) || !sameTime(before.PaidAt, after.PaidAt) {
		return true
	}
	return false
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// MergeChanges folds the changes of consecutive sync passes over the same
// project into one write set. A transaction touched by several passes appears
// once, in its latest version.
func MergeChanges(passes ...SyncResult) ([]*entity.Transaction, []uuid.UUID) {
	var (
		order    []uuid.UUID
		latest   = make(map[uuid.UUID]*entity.Transaction)
		detached []uuid.UUID
		seen     = make(map[uuid.UUID]bool)
	)

	for _, pass := range passes {
		for _, tx := range pass.Transactions {
			if _, tracked := latest[tx.ID]; tracked {
				latest[tx.ID] = tx
			}
		}
		for _, tx := range pass.Changed() {
			if _, tracked := latest[tx.ID]; !tracked {
				order = append(order, tx.ID)
			}
			latest[tx.ID] = tx
		}
		for _, tx := range pass.Detached {
			if !seen[tx.ID] {
				seen[tx.ID] = true
				detached = append(detached, tx.ID)
			}
		}
	}

	changed := make([]*entity.Transaction, 0, len(order))
	for _, id := range order {
		if seen[id] {
			continue
		}
		changed = append(changed, latest[id])
	}
	return changed, detached
}
