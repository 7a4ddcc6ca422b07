package ledger

import (
	"errors"
	"testing"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

func TestMarkAsPaid(t *testing.T) {
	project := newProject(t, 90000, 3, "2024-01-01")
	now := mustDate(t, "2024-01-20")
	synced := Sync(project, nil, now)

	t.Run("flips installment and transaction together", func(t *testing.T) {
		result, err := MarkAsPaid(synced.Project, 1, synced.Transactions, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Installment.IsPaid() || result.Installment.PaymentDate == nil || !result.Installment.PaymentDate.Equal(now) {
			t.Errorf("expected installment paid at now")
		}
		if !result.Transaction.IsCompleted() || result.Transaction.PaidAt == nil {
			t.Errorf("expected transaction completed")
		}
		if result.Transaction.ID != synced.Transactions[0].ID {
			t.Errorf("expected the linked transaction to be reused")
		}
		if result.Created || !result.Changed {
			t.Errorf("expected an in-place change, got created=%v changed=%v", result.Created, result.Changed)
		}
		if result.Project.Installment(1) != result.Installment {
			t.Errorf("expected the returned installment to belong to the returned project")
		}
		if synced.Project.Installment(1).IsPaid() || synced.Transactions[0].IsCompleted() {
			t.Errorf("inputs were modified")
		}
	})

	t.Run("creates the transaction when missing", func(t *testing.T) {
		result, err := MarkAsPaid(synced.Project, 2, nil, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Created {
			t.Errorf("expected a new transaction")
		}
		if !result.Transaction.IsLinkedTo(project.ID, 2) || !result.Transaction.IsCompleted() {
			t.Errorf("expected a completed transaction linked to installment 2")
		}
	})

	t.Run("already paid is a no-op", func(t *testing.T) {
		paid, err := MarkAsPaid(synced.Project, 3, synced.Transactions, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		again, err := MarkAsPaid(paid.Project, 3, []*entity.Transaction{paid.Transaction}, now.AddDate(0, 0, 5))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again.Changed {
			t.Errorf("expected no change")
		}
		if !again.Installment.PaymentDate.Equal(now) {
			t.Errorf("expected original payment date to be kept")
		}
	})

	t.Run("unknown installment", func(t *testing.T) {
		_, err := MarkAsPaid(synced.Project, 9, synced.Transactions, now)
		if !errors.Is(err, domainerror.ErrInstallmentNotFound) {
			t.Errorf("expected ErrInstallmentNotFound, got %v", err)
		}
	})
}

func TestRevertPayment(t *testing.T) {
	project := newProject(t, 90000, 3, "2024-01-01")
	now := mustDate(t, "2024-01-20")
	synced := Sync(project, nil, now)

	paid, err := MarkAsPaid(synced.Project, 1, synced.Transactions, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reverted, err := RevertPayment(paid.Project, 1, []*entity.Transaction{paid.Transaction}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reverted.Installment.IsPaid() || reverted.Installment.PaymentDate != nil {
		t.Errorf("expected installment pending without payment date")
	}
	if reverted.Transaction.Status != entity.TransactionStatusPending || reverted.Transaction.PaidAt != nil {
		t.Errorf("expected transaction pending without paid_at")
	}
	if !reverted.Changed {
		t.Errorf("expected a change")
	}

	again, err := RevertPayment(reverted.Project, 1, []*entity.Transaction{reverted.Transaction}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Changed {
		t.Errorf("expected reverting a pending installment to be a no-op")
	}
}

func TestMarkAsPaid_KeepsExistingPaymentDate(t *testing.T) {
	project := newProject(t, 90000, 3, "2024-01-01")
	synced := Sync(project, nil, mustDate(t, "2024-01-05"))
	settledAt := mustDate(t, "2024-01-10")
	now := mustDate(t, "2024-03-01")

	t.Run("completed transaction keeps its paid date", func(t *testing.T) {
		tx := synced.Transactions[0].Clone()
		tx.Complete(settledAt)

		result, err := MarkAsPaid(synced.Project, 1, []*entity.Transaction{tx}, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Transaction.PaidAt.Equal(settledAt) {
			t.Errorf("expected transaction paid at %s, got %s", settledAt, result.Transaction.PaidAt)
		}
		if !result.Installment.IsPaid() || !result.Installment.PaymentDate.Equal(settledAt) {
			t.Errorf("expected installment paid at %s, got %v", settledAt, result.Installment.PaymentDate)
		}
		if !result.Changed {
			t.Errorf("expected the installment to change")
		}
		if len(result.Warnings) != 1 || result.Warnings[0].Code != domainerror.ErrCodeLedgerDesync {
			t.Errorf("expected one desync warning, got %v", result.Warnings)
		}
		if !tx.PaidAt.Equal(settledAt) {
			t.Errorf("input transaction was modified")
		}
	})

	t.Run("paid installment keeps its payment date", func(t *testing.T) {
		paidProject := synced.Project.Clone()
		paidProject.Installment(2).MarkPaid(settledAt)

		result, err := MarkAsPaid(paidProject, 2, synced.Transactions, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Installment.PaymentDate.Equal(settledAt) {
			t.Errorf("expected installment payment date %s, got %s", settledAt, result.Installment.PaymentDate)
		}
		if !result.Transaction.IsCompleted() || !result.Transaction.PaidAt.Equal(settledAt) {
			t.Errorf("expected transaction completed at %s, got %v", settledAt, result.Transaction.PaidAt)
		}
		if len(result.Warnings) != 1 || result.Warnings[0].Code != domainerror.ErrCodeLedgerDesync {
			t.Errorf("expected one desync warning, got %v", result.Warnings)
		}
	})

	t.Run("agreeing sides carry no warning", func(t *testing.T) {
		result, err := MarkAsPaid(synced.Project, 3, synced.Transactions, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Warnings) != 0 {
			t.Errorf("expected no warnings, got %v", result.Warnings)
		}
		if !result.Installment.PaymentDate.Equal(now) {
			t.Errorf("expected payment date %s", now)
		}
	})
}
