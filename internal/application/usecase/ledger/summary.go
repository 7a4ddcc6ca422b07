package ledger

import (
	"time"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// Summarize aggregates transactions as of asOf. Income is bucketed by effective
// status, so a pending transaction past its due date counts as overdue even if
// the stored status was never updated.
func Summarize(transactions []*entity.Transaction, asOf time.Time) valueobject.FinancialSummary {
	summary := valueobject.NewFinancialSummary(asOf)

	for _, tx := range transactions {
		if tx.Type == entity.TransactionTypeExpense {
			summary.Expenses = summary.Expenses.Add(tx.Amount)
			if tx.IsCompleted() {
				summary.PaidExpenses = summary.PaidExpenses.Add(tx.Amount)
			}
			continue
		}

		summary.TotalBudget = summary.TotalBudget.Add(tx.Amount)
		switch valueobject.TransactionStatusAt(tx, asOf) {
		case valueobject.EffectiveStatusPaid:
			summary.Received = summary.Received.Add(tx.Amount)
			summary.ReceivedCount++
		case valueobject.EffectiveStatusOverdue:
			summary.Overdue = summary.Overdue.Add(tx.Amount)
			summary.OverdueCount++
		default:
			summary.Pending = summary.Pending.Add(tx.Amount)
			summary.PendingCount++
		}
	}

	summary.Balance = summary.Received.Sub(summary.PaidExpenses)
	return summary
}
