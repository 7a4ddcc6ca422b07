package valueobject

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialSummary aggregates a set of transactions as of a point in time.
// Income buckets use effective status, so Overdue is always current.
type FinancialSummary struct {
	AsOf         time.Time
	TotalBudget  decimal.Decimal // All income, whatever its status
	Received     decimal.Decimal
	Pending      decimal.Decimal
	Overdue      decimal.Decimal
	Expenses     decimal.Decimal
	PaidExpenses decimal.Decimal
	Balance      decimal.Decimal // Received - PaidExpenses

	ReceivedCount int
	PendingCount  int
	OverdueCount  int
}

// NewFinancialSummary returns a zeroed summary.
func NewFinancialSummary(asOf time.Time) FinancialSummary {
	return FinancialSummary{
		AsOf:         asOf,
		TotalBudget:  decimal.Zero,
		Received:     decimal.Zero,
		Pending:      decimal.Zero,
		Overdue:      decimal.Zero,
		Expenses:     decimal.Zero,
		PaidExpenses: decimal.Zero,
		Balance:      decimal.Zero,
	}
}

// CashFlowPeriod is one bucket of expected and realised income.
type CashFlowPeriod struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	PeriodLabel string // e.g. "Mar 2025"
	Expected    decimal.Decimal
	Received    decimal.Decimal
	Overdue     decimal.Decimal
}
