package persistence

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/integration/persistence/model"
)

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// newScheduledProject builds a 90000/3 project with its schedule and installment transactions.
func newScheduledProject() (*entity.Project, []*entity.Transaction) {
	project := entity.NewProject("Casa Jardim", "Ana Souza", decimal.NewFromInt(90000),
		entity.PaymentMethodInstallmentPlan, 3, day(2024, 1, 1))

	var transactions []*entity.Transaction
	for i := 1; i <= 3; i++ {
		due := day(2024, time.Month(i), 1)
		project.Installments = append(project.Installments, &entity.Installment{
			ID:        uuid.New(),
			ProjectID: project.ID,
			Number:    i,
			DueDate:   due,
			Value:     decimal.NewFromInt(30000),
			Status:    entity.InstallmentStatusPending,
		})

		number := i
		projectID := project.ID
		dueDate := due
		tx := entity.NewTransaction(&projectID, entity.TransactionTypeIncome,
			fmt.Sprintf("Casa Jardim - Parcela %d/3", i), decimal.NewFromInt(30000),
			entity.TransactionStatusPending, due, &dueDate)
		tx.InstallmentNumber = &number
		transactions = append(transactions, tx)
	}
	return project, transactions
}
