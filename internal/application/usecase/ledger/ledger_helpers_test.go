package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/application/usecase/installment"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := valueobject.ParseDate(value)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", value, err)
	}
	return d
}

func newProject(t *testing.T, budget int64, count int, anchor string) *entity.Project {
	t.Helper()
	project := entity.NewProject(
		"Casa Jardim",
		"Ana Souza",
		decimal.NewFromInt(budget),
		entity.PaymentMethodInstallmentPlan,
		count,
		mustDate(t, anchor),
	)
	installments, err := installment.GenerateForProject(project, 0)
	if err != nil {
		t.Fatalf("failed to generate schedule: %v", err)
	}
	project.Installments = installments
	return project
}

func income(projectID *uuid.UUID, amount int64, status entity.TransactionStatus, due time.Time) *entity.Transaction {
	d := due
	return entity.NewTransaction(projectID, entity.TransactionTypeIncome, "income", decimal.NewFromInt(amount), status, due, &d)
}

func expense(amount int64, status entity.TransactionStatus, date time.Time) *entity.Transaction {
	return entity.NewTransaction(nil, entity.TransactionTypeExpense, "expense", decimal.NewFromInt(amount), status, date, nil)
}

func countLinked(transactions []*entity.Transaction, projectID uuid.UUID) map[int]int {
	counts := make(map[int]int)
	for _, tx := range transactions {
		if tx.ProjectID != nil && *tx.ProjectID == projectID && tx.InstallmentNumber != nil {
			counts[*tx.InstallmentNumber]++
		}
	}
	return counts
}
