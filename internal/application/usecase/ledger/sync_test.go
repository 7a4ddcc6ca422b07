package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/application/usecase/installment"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

func TestSync_CreatesOneTransactionPerInstallment(t *testing.T) {
	project := newProject(t, 90000, 3, "2024-01-01")
	now := mustDate(t, "2024-01-01")

	result := Sync(project, nil, now)

	if len(result.Created) != 3 || len(result.Transactions) != 3 {
		t.Fatalf("expected 3 created transactions, got %d", len(result.Created))
	}
	for i, tx := range result.Transactions {
		inst := project.Installments[i]
		if !tx.IsLinkedTo(project.ID, inst.Number) {
			t.Errorf("transaction %d not linked to installment %d", i, inst.Number)
		}
		if tx.Type != entity.TransactionTypeIncome {
			t.Errorf("transaction %d: expected income, got %s", i, tx.Type)
		}
		if !tx.Amount.Equal(inst.Value) {
			t.Errorf("transaction %d: expected amount %s, got %s", i, inst.Value, tx.Amount)
		}
		if tx.DueDate == nil || !tx.DueDate.Equal(inst.DueDate) {
			t.Errorf("transaction %d: due date does not mirror installment", i)
		}
		if tx.Status != entity.TransactionStatusPending {
			t.Errorf("transaction %d: expected pending, got %s", i, tx.Status)
		}
	}
	if tx := result.Transactions[1]; tx.Description != "Casa Jardim - Installment 2 of 3" {
		t.Errorf("unexpected description %q", tx.Description)
	}
}

func TestSync_RepeatedSyncKeepsOneToOne(t *testing.T) {
	project := newProject(t, 100000, 4, "2024-01-01")
	now := mustDate(t, "2024-01-01")

	stored := []*entity.Transaction{}
	for i := 0; i < 5; i++ {
		result := Sync(project, stored, now)
		if i > 0 && len(result.Created) != 0 {
			t.Fatalf("pass %d created %d transactions", i, len(result.Created))
		}
		stored = append(stored, result.Created...)
		for _, updated := range result.Updated {
			for j, tx := range stored {
				if tx.ID == updated.ID {
					stored[j] = updated
				}
			}
		}
	}

	for number, count := range countLinked(stored, project.ID) {
		if count != 1 {
			t.Errorf("installment %d has %d transactions", number, count)
		}
	}
	if len(stored) != 4 {
		t.Errorf("expected 4 transactions, got %d", len(stored))
	}
}

func TestSync_FollowsRegeneratedSchedule(t *testing.T) {
	project := newProject(t, 90000, 3, "2024-01-01")
	now := mustDate(t, "2024-01-01")
	first := Sync(project, nil, now)

	project.Budget = decimal.NewFromInt(120000)
	regenerated, err := installment.GenerateForProject(project, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	merged := installment.Reconcile(installment.ReconcileInput{
		Existing:      project.Installments,
		Generated:     regenerated,
		PreviousCount: 3,
	})
	project.Installments = merged.Installments

	second := Sync(project, first.Transactions, now)
	if len(second.Created) != 0 {
		t.Errorf("expected no new transactions, got %d", len(second.Created))
	}
	if len(second.Updated) != 3 {
		t.Fatalf("expected 3 updated transactions, got %d", len(second.Updated))
	}
	for _, tx := range second.Transactions {
		if !tx.Amount.Equal(decimal.NewFromInt(40000)) {
			t.Errorf("expected amount 40000, got %s", tx.Amount)
		}
	}
	if len(second.Warnings) != 0 {
		t.Errorf("expected no warnings, got %d", len(second.Warnings))
	}
}

func TestSync_CompletedTransactionWins(t *testing.T) {
	project := newProject(t, 90000, 3, "2024-01-01")
	now := mustDate(t, "2024-02-10")
	first := Sync(project, nil, now)

	paidAt := mustDate(t, "2024-02-03")
	confirmed := first.Transactions[1].Clone()
	confirmed.Complete(paidAt)
	confirmed.Amount = decimal.NewFromInt(29500)
	transactions := []*entity.Transaction{first.Transactions[0], confirmed, first.Transactions[2]}

	result := Sync(project, transactions, now)

	inst := result.Project.Installment(2)
	if !inst.IsPaid() {
		t.Fatalf("expected installment 2 to adopt the paid status")
	}
	if inst.PaymentDate == nil || !inst.PaymentDate.Equal(paidAt) {
		t.Errorf("expected payment date from the transaction")
	}
	if !inst.Value.Equal(decimal.NewFromInt(29500)) {
		t.Errorf("expected received amount 29500, got %s", inst.Value)
	}
	if !result.HasDesync() {
		t.Errorf("expected a desync warning")
	}
	if project.Installment(2).IsPaid() {
		t.Errorf("input project was modified")
	}
}

func TestSync_ReopenedTransactionRevertsInstallment(t *testing.T) {
	project := newProject(t, 90000, 3, "2024-01-01")
	project.Installments[0].MarkPaid(mustDate(t, "2024-01-02"))
	now := mustDate(t, "2024-01-10")
	first := Sync(project, nil, now)

	if first.Transactions[0].Status != entity.TransactionStatusCompleted {
		t.Fatalf("expected mirrored completed status, got %s", first.Transactions[0].Status)
	}

	reopened := first.Transactions[0].Clone()
	reopened.Reopen()
	result := Sync(project, []*entity.Transaction{reopened, first.Transactions[1], first.Transactions[2]}, now)

	if result.Project.Installment(1).IsPaid() {
		t.Errorf("expected installment 1 to be reverted")
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Code != domainerror.ErrCodeLedgerDesync {
		t.Errorf("expected exactly one desync warning, got %v", result.Warnings)
	}
}

func TestSync_DuplicateTransactionsAreReported(t *testing.T) {
	project := newProject(t, 90000, 3, "2024-01-01")
	now := mustDate(t, "2024-01-01")
	first := Sync(project, nil, now)

	duplicate := first.Transactions[0].Clone()
	duplicate.ID = uuid.New()
	transactions := append([]*entity.Transaction{}, first.Transactions...)
	transactions = append(transactions, duplicate)

	result := Sync(project, transactions, now)

	if len(result.Created) != 0 {
		t.Errorf("expected no new transactions, got %d", len(result.Created))
	}
	if len(result.Transactions) != 3 {
		t.Errorf("expected 3 transactions, got %d", len(result.Transactions))
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Code != domainerror.ErrCodeDuplicateTransaction {
		t.Errorf("expected one duplicate warning, got %v", result.Warnings)
	}
}

func TestSync_DetachesDroppedPendingInstallments(t *testing.T) {
	project := newProject(t, 120000, 4, "2024-01-01")
	now := mustDate(t, "2024-01-01")
	first := Sync(project, nil, now)

	project.InstallmentCount = 2
	regenerated, err := installment.GenerateForProject(project, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	project.Installments = installment.Reconcile(installment.ReconcileInput{
		Existing:      project.Installments,
		Generated:     regenerated,
		PreviousCount: 4,
	}).Installments

	result := Sync(project, first.Transactions, now)

	if len(result.Detached) != 2 {
		t.Fatalf("expected 2 detached transactions, got %d", len(result.Detached))
	}
	if *result.Detached[0].InstallmentNumber != 3 || *result.Detached[1].InstallmentNumber != 4 {
		t.Errorf("expected installments 3 and 4 detached in order")
	}
	if len(result.Transactions) != 2 {
		t.Errorf("expected 2 linked transactions, got %d", len(result.Transactions))
	}
}

func TestSync_IgnoresUnrelatedTransactions(t *testing.T) {
	project := newProject(t, 90000, 3, "2024-01-01")
	other := newProject(t, 1000, 1, "2024-01-01")
	now := mustDate(t, "2024-01-01")

	otherTx := Sync(other, nil, now).Transactions[0]
	freeStanding := expense(500, entity.TransactionStatusCompleted, now)

	result := Sync(project, []*entity.Transaction{otherTx, freeStanding}, now)
	if len(result.Created) != 3 {
		t.Errorf("expected 3 created transactions, got %d", len(result.Created))
	}
	if len(result.Detached) != 0 {
		t.Errorf("expected nothing detached, got %d", len(result.Detached))
	}
}
