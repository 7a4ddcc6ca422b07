package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

func TestProjectRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	txRepo := NewTransactionRepository(db)
	ctx := context.Background()

	project, transactions := newScheduledProject()
	require.NoError(t, repo.Create(ctx, project, transactions))

	found, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Casa Jardim", found.Name)
	assert.True(t, found.Budget.Equal(decimal.NewFromInt(90000)))
	require.Len(t, found.Installments, 3)
	for i, inst := range found.Installments {
		assert.Equal(t, i+1, inst.Number)
		assert.True(t, inst.Value.Equal(decimal.NewFromInt(30000)))
		assert.Equal(t, entity.InstallmentStatusPending, inst.Status)
	}
	assert.True(t, found.Installments[1].DueDate.Equal(day(2024, 2, 1)))

	stored, err := txRepo.FindByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrProjectNotFound)
}

func TestProjectRepository_SaveReplacesSchedule(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project, transactions := newScheduledProject()
	require.NoError(t, repo.Create(ctx, project, transactions))

	paidAt := day(2024, 1, 3)
	project.Installments[0].Status = entity.InstallmentStatusPaid
	project.Installments[0].PaymentDate = &paidAt
	project.Installments = project.Installments[:2]
	project.InstallmentCount = 2
	require.NoError(t, repo.Save(ctx, project))

	found, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.InstallmentCount)
	require.Len(t, found.Installments, 2)
	assert.True(t, found.Installments[0].IsPaid())
	require.NotNil(t, found.Installments[0].PaymentDate)
	assert.True(t, found.Installments[0].PaymentDate.Equal(paidAt))
}

func TestProjectRepository_SaveWithTransactions(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	txRepo := NewTransactionRepository(db)
	ctx := context.Background()

	project, transactions := newScheduledProject()
	require.NoError(t, repo.Create(ctx, project, transactions))

	// Shrink to two installments; installment 3's transaction is detached and
	// installment 1 is settled.
	project.Installments = project.Installments[:2]
	project.InstallmentCount = 2
	transactions[0].Complete(day(2024, 1, 2))

	require.NoError(t, repo.SaveWithTransactions(ctx, project, transactions[:1], []uuid.UUID{transactions[2].ID}))

	stored, err := txRepo.FindByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.True(t, stored[0].IsCompleted() || stored[1].IsCompleted())

	_, err = txRepo.FindByID(ctx, transactions[2].ID)
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)

	// The freed installment number can be linked again.
	number := 3
	projectID := project.ID
	relinked := entity.NewTransaction(&projectID, entity.TransactionTypeIncome, "Parcela 3",
		decimal.NewFromInt(10), entity.TransactionStatusPending, day(2024, 3, 1), nil)
	relinked.InstallmentNumber = &number
	assert.NoError(t, repo.SaveWithTransactions(ctx, project, []*entity.Transaction{relinked}, nil))
}

func TestProjectRepository_UniqueInstallmentTransaction(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project, transactions := newScheduledProject()
	require.NoError(t, repo.Create(ctx, project, transactions))

	duplicate := transactions[0].Clone()
	duplicate.ID = uuid.New()
	err := repo.SaveWithTransactions(ctx, project, []*entity.Transaction{duplicate}, nil)
	assert.Error(t, err)
}

func TestProjectRepository_ListAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	txRepo := NewTransactionRepository(db)
	ctx := context.Background()

	first, firstTxs := newScheduledProject()
	second, secondTxs := newScheduledProject()
	require.NoError(t, repo.Create(ctx, first, firstTxs))
	require.NoError(t, repo.Create(ctx, second, secondTxs))

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), domainerror.ErrProjectNotFound)

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, second.ID, projects[0].ID)
	assert.Len(t, projects[0].Installments, 3)

	_, err = repo.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, domainerror.ErrProjectNotFound)

	// Transactions outlive their project.
	kept, err := txRepo.FindByProject(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 3)
}
