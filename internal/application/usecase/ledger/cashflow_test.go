package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

func TestCashFlow_Monthly(t *testing.T) {
	asOf := mustDate(t, "2024-03-15")
	transactions := []*entity.Transaction{
		income(nil, 1000, entity.TransactionStatusCompleted, mustDate(t, "2024-01-10")),
		income(nil, 500, entity.TransactionStatusPending, mustDate(t, "2024-01-20")),
		income(nil, 700, entity.TransactionStatusPending, mustDate(t, "2024-04-05")),
		expense(999, entity.TransactionStatusPending, mustDate(t, "2024-02-01")),
	}

	periods := CashFlow(transactions, asOf, GranularityMonthly)

	labels := []string{"Jan 2024", "Fev 2024", "Mar 2024", "Abr 2024"}
	if len(periods) != len(labels) {
		t.Fatalf("expected %d periods, got %d", len(labels), len(periods))
	}
	for i, want := range labels {
		if periods[i].PeriodLabel != want {
			t.Errorf("period %d: expected label %s, got %s", i, want, periods[i].PeriodLabel)
		}
	}

	jan := periods[0]
	if !jan.Expected.Equal(decimal.NewFromInt(1500)) || !jan.Received.Equal(decimal.NewFromInt(1000)) || !jan.Overdue.Equal(decimal.NewFromInt(500)) {
		t.Errorf("unexpected January bucket: %+v", jan)
	}
	if !periods[1].Expected.IsZero() {
		t.Errorf("expenses must not show up in the projection")
	}
	if !periods[3].Expected.Equal(decimal.NewFromInt(700)) || !periods[3].Overdue.IsZero() {
		t.Errorf("unexpected April bucket: %+v", periods[3])
	}
	if got := periods[1].PeriodEnd.Format("2006-01-02"); got != "2024-02-29" {
		t.Errorf("expected February to end on the 29th, got %s", got)
	}
}

func TestCashFlow_Quarterly(t *testing.T) {
	transactions := []*entity.Transaction{
		income(nil, 100, entity.TransactionStatusPending, mustDate(t, "2024-02-10")),
		income(nil, 100, entity.TransactionStatusPending, mustDate(t, "2024-08-10")),
	}

	periods := CashFlow(transactions, mustDate(t, "2024-01-01"), GranularityQuarterly)

	labels := []string{"T1 2024", "T2 2024", "T3 2024"}
	if len(periods) != len(labels) {
		t.Fatalf("expected %d periods, got %d", len(labels), len(periods))
	}
	for i, want := range labels {
		if periods[i].PeriodLabel != want {
			t.Errorf("period %d: expected %s, got %s", i, want, periods[i].PeriodLabel)
		}
	}
}

func TestCashFlow_Empty(t *testing.T) {
	if periods := CashFlow(nil, mustDate(t, "2024-01-01"), GranularityMonthly); len(periods) != 0 {
		t.Errorf("expected no periods, got %d", len(periods))
	}
}
