package project

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/application/usecase/audit"
	"github.com/arquitetura-app/backend/internal/application/usecase/usecasetest"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// harness wires the project use cases over in-memory adapters.
type harness struct {
	store    *usecasetest.Store
	projects usecasetest.ProjectRepository
	timeline *usecasetest.Timeline
	notifier *usecasetest.Notifier
	clock    *usecasetest.Clock

	create *CreateProjectUseCase
	edit   *EditProjectUseCase
	pay    *MarkInstallmentPaidUseCase
	revert *RevertInstallmentUseCase
	get    *GetProjectUseCase
	remove *DeleteProjectUseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := usecasetest.NewStore()
	h := &harness{
		store:    store,
		projects: usecasetest.ProjectRepository{Store: store},
		timeline: &usecasetest.Timeline{},
		notifier: &usecasetest.Notifier{},
		clock:    &usecasetest.Clock{Current: mustDate(t, "2024-01-01")},
	}
	transactions := usecasetest.TransactionRepository{Store: store}
	recorder := audit.NewRecorder(h.timeline, nil, h.notifier, h.clock)
	locker := usecasetest.NoopLocker{}

	h.create = NewCreateProjectUseCase(h.projects, recorder, h.clock, 12)
	h.edit = NewEditProjectUseCase(h.projects, transactions, locker, h.notifier, recorder, h.clock, 12, 3)
	h.pay = NewMarkInstallmentPaidUseCase(h.projects, transactions, locker, recorder, h.clock, 3)
	h.revert = NewRevertInstallmentUseCase(h.projects, transactions, locker, recorder, h.clock, 3)
	h.get = NewGetProjectUseCase(h.projects, h.clock)
	h.remove = NewDeleteProjectUseCase(h.projects, locker, recorder)
	return h
}

func (h *harness) setNow(t *testing.T, value string) {
	t.Helper()
	h.clock.Current = mustDate(t, value)
}

func (h *harness) createProject(t *testing.T, budget int64, count int) *entity.Project {
	t.Helper()
	out, err := h.create.Execute(context.Background(), CreateProjectInput{
		Name:             "Casa Jardim",
		ClientName:       "Ana Souza",
		Budget:           decimal.NewFromInt(budget),
		PaymentMethod:    entity.PaymentMethodInstallmentPlan,
		InstallmentCount: count,
		AnchorDate:       mustDate(t, "2024-01-01"),
		User:             "ana",
	})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return out.Project
}

func (h *harness) storedTransactions(t *testing.T, projectID uuid.UUID) map[int]*entity.Transaction {
	t.Helper()
	txs, err := usecasetest.TransactionRepository{Store: h.store}.FindByProject(context.Background(), projectID)
	if err != nil {
		t.Fatalf("failed to list transactions: %v", err)
	}
	byNumber := make(map[int]*entity.Transaction)
	for _, tx := range txs {
		if tx.InstallmentNumber == nil {
			continue
		}
		if _, dup := byNumber[*tx.InstallmentNumber]; dup {
			t.Fatalf("installment %d has more than one transaction", *tx.InstallmentNumber)
		}
		byNumber[*tx.InstallmentNumber] = tx
	}
	return byNumber
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := valueobject.ParseDate(value)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", value, err)
	}
	return d
}

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
