package ledger

import (
	"time"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// CashFlow projects income by due period. Expected holds every income due in the
// period, Received the part already paid and Overdue the part past due at asOf.
// The series spans the earliest to the latest due date with no gaps.
func CashFlow(transactions []*entity.Transaction, asOf time.Time, granularity Granularity) []valueobject.CashFlowPeriod {
	var income []*entity.Transaction
	for _, tx := range transactions {
		if tx.Type == entity.TransactionTypeIncome {
			income = append(income, tx)
		}
	}
	if len(income) == 0 {
		return []valueobject.CashFlowPeriod{}
	}

	first, last := income[0].EffectiveDueDate(), income[0].EffectiveDueDate()
	for _, tx := range income[1:] {
		due := tx.EffectiveDueDate()
		if due.Before(first) {
			first = due
		}
		if due.After(last) {
			last = due
		}
	}

	series := PeriodSeries(first, last, granularity)
	periods := make([]valueobject.CashFlowPeriod, len(series))
	byKey := make(map[string]*valueobject.CashFlowPeriod, len(series))
	for i, p := range series {
		periods[i] = valueobject.CashFlowPeriod{
			PeriodStart: p.PeriodStart,
			PeriodEnd:   p.PeriodEnd,
			PeriodLabel: p.PeriodLabel,
		}
		byKey[periodKey(p.PeriodStart, granularity)] = &periods[i]
	}

	for _, tx := range income {
		period, ok := byKey[periodKey(tx.EffectiveDueDate(), granularity)]
		if !ok {
			continue
		}
		period.Expected = period.Expected.Add(tx.Amount)
		switch valueobject.TransactionStatusAt(tx, asOf) {
		case valueobject.EffectiveStatusPaid:
			period.Received = period.Received.Add(tx.Amount)
		case valueobject.EffectiveStatusOverdue:
			period.Overdue = period.Overdue.Add(tx.Amount)
		}
	}

	return periods
}
