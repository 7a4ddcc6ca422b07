package valueobject

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

func TestDeriveStatus(t *testing.T) {
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		stored   entity.InstallmentStatus
		now      time.Time
		expected EffectiveStatus
	}{
		{"paid stays paid after due date", entity.InstallmentStatusPaid, due.AddDate(0, 2, 0), EffectiveStatusPaid},
		{"pending before due date", entity.InstallmentStatusPending, due.AddDate(0, 0, -1), EffectiveStatusPending},
		{"pending exactly at due date", entity.InstallmentStatusPending, due, EffectiveStatusPending},
		{"pending after due date is overdue", entity.InstallmentStatusPending, due.Add(time.Second), EffectiveStatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.stored, due, tt.now); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestDeriveStatus_Reversible(t *testing.T) {
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	later := due.AddDate(0, 1, 0)
	earlier := due.AddDate(0, -1, 0)

	if got := DeriveStatus(entity.InstallmentStatusPending, due, later); got != EffectiveStatusOverdue {
		t.Fatalf("expected overdue, got %s", got)
	}
	if got := DeriveStatus(entity.InstallmentStatusPending, due, earlier); got != EffectiveStatusPending {
		t.Errorf("expected pending once now moves back, got %s", got)
	}
}

func TestTransactionStatusAt(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("completed maps to paid", func(t *testing.T) {
		tx := entity.NewTransaction(nil, entity.TransactionTypeIncome, "fee", decimal.NewFromInt(10), entity.TransactionStatusCompleted, date, &due)
		if got := TransactionStatusAt(tx, now); got != EffectiveStatusPaid {
			t.Errorf("expected paid, got %s", got)
		}
	})

	t.Run("stored overdue is recomputed from due date", func(t *testing.T) {
		future := now.AddDate(0, 1, 0)
		tx := entity.NewTransaction(nil, entity.TransactionTypeIncome, "fee", decimal.NewFromInt(10), entity.TransactionStatusOverdue, date, &future)
		if got := TransactionStatusAt(tx, now); got != EffectiveStatusPending {
			t.Errorf("expected pending, got %s", got)
		}
	})

	t.Run("missing due date falls back to date", func(t *testing.T) {
		tx := entity.NewTransaction(nil, entity.TransactionTypeExpense, "plotter", decimal.NewFromInt(10), entity.TransactionStatusPending, date, nil)
		if got := TransactionStatusAt(tx, now); got != EffectiveStatusOverdue {
			t.Errorf("expected overdue, got %s", got)
		}
	})
}
