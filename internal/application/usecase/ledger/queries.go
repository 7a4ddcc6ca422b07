package ledger

import (
	"sort"
	"time"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// ListUpcoming returns transactions that are effectively pending and fall due
// within horizonDays of asOf (inclusive), soonest first.
func ListUpcoming(transactions []*entity.Transaction, asOf time.Time, horizonDays int) []*entity.Transaction {
	horizon := asOf.AddDate(0, 0, horizonDays)

	var upcoming []*entity.Transaction
	for _, tx := range transactions {
		if valueobject.TransactionStatusAt(tx, asOf) != valueobject.EffectiveStatusPending {
			continue
		}
		if due := tx.EffectiveDueDate(); due.After(horizon) {
			continue
		}
		upcoming = append(upcoming, tx)
	}

	sortByDueDate(upcoming)
	return upcoming
}

// ListOverdue returns transactions that are effectively overdue at asOf, oldest first.
func ListOverdue(transactions []*entity.Transaction, asOf time.Time) []*entity.Transaction {
	var overdue []*entity.Transaction
	for _, tx := range transactions {
		if valueobject.TransactionStatusAt(tx, asOf) == valueobject.EffectiveStatusOverdue {
			overdue = append(overdue, tx)
		}
	}

	sortByDueDate(overdue)
	return overdue
}

func sortByDueDate(transactions []*entity.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].EffectiveDueDate().Before(transactions[j].EffectiveDueDate())
	})
}
