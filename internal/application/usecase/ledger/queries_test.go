package ledger

import (
	"testing"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

func TestListUpcoming(t *testing.T) {
	asOf := mustDate(t, "2024-03-01")
	inWindowLate := income(nil, 100, entity.TransactionStatusPending, mustDate(t, "2024-03-25"))
	inWindowEarly := income(nil, 100, entity.TransactionStatusPending, mustDate(t, "2024-03-01"))
	atHorizon := income(nil, 100, entity.TransactionStatusPending, mustDate(t, "2024-03-31"))
	beyond := income(nil, 100, entity.TransactionStatusPending, mustDate(t, "2024-04-01"))
	overdue := income(nil, 100, entity.TransactionStatusPending, mustDate(t, "2024-02-28"))
	paid := income(nil, 100, entity.TransactionStatusCompleted, mustDate(t, "2024-03-10"))

	got := ListUpcoming([]*entity.Transaction{inWindowLate, beyond, overdue, paid, atHorizon, inWindowEarly}, asOf, 30)

	expected := []*entity.Transaction{inWindowEarly, inWindowLate, atHorizon}
	if len(got) != len(expected) {
		t.Fatalf("expected %d transactions, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("position %d: expected due %s, got %s", i, expected[i].EffectiveDueDate(), got[i].EffectiveDueDate())
		}
	}
}

func TestListOverdue(t *testing.T) {
	asOf := mustDate(t, "2024-03-01")
	older := income(nil, 100, entity.TransactionStatusPending, mustDate(t, "2024-01-01"))
	newer := income(nil, 100, entity.TransactionStatusOverdue, mustDate(t, "2024-02-01"))
	future := income(nil, 100, entity.TransactionStatusOverdue, mustDate(t, "2024-05-01"))
	paid := income(nil, 100, entity.TransactionStatusCompleted, mustDate(t, "2024-01-15"))
	unpaidBill := expense(50, entity.TransactionStatusPending, mustDate(t, "2024-02-20"))

	got := ListOverdue([]*entity.Transaction{newer, future, paid, older, unpaidBill}, asOf)

	expected := []*entity.Transaction{older, newer, unpaidBill}
	if len(got) != len(expected) {
		t.Fatalf("expected %d transactions, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("position %d: unexpected transaction due %s", i, got[i].EffectiveDueDate())
		}
	}
}
