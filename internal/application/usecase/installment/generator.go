// Package installment builds and reconciles project payment schedules.
package installment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// DefaultMaxInstallments is the largest installment plan accepted when no limit is configured.
const DefaultMaxInstallments = 12

// GenerateInput represents the payment terms a schedule is generated from.
type GenerateInput struct {
	ProjectID        uuid.UUID
	Budget           decimal.Decimal
	PaymentMethod    entity.PaymentMethod
	InstallmentCount int
	AnchorDate       time.Time
	MaxInstallments  int // Zero means DefaultMaxInstallments
}

// Generate builds a fresh pending schedule. Installment i is due AddMonths(anchor, i)
// and every installment but the last is worth floor(budget/n); the last absorbs the
// remainder so the schedule always sums to the budget.
func Generate(input GenerateInput) ([]*entity.Installment, error) {
	count, err := validateTerms(input)
	if err != nil {
		return nil, err
	}

	values := valueobject.SplitEvenly(input.Budget, count)
	installments := make([]*entity.Installment, count)
	for i := 0; i < count; i++ {
		installments[i] = &entity.Installment{
			ID:        uuid.New(),
			ProjectID: input.ProjectID,
			Number:    i + 1,
			DueDate:   valueobject.AddMonths(input.AnchorDate, i),
			Value:     values[i],
			Status:    entity.InstallmentStatusPending,
		}
	}

	return installments, nil
}

// GenerateForProject generates the schedule called for by the project's current terms.
func GenerateForProject(project *entity.Project, maxInstallments int) ([]*entity.Installment, error) {
	return Generate(GenerateInput{
		ProjectID:        project.ID,
		Budget:           project.Budget,
		PaymentMethod:    project.PaymentMethod,
		InstallmentCount: project.InstallmentCount,
		AnchorDate:       project.AnchorDate,
		MaxInstallments:  maxInstallments,
	})
}

// validateTerms checks the payment terms and returns the schedule size.
func validateTerms(input GenerateInput) (int, error) {
	if !input.Budget.IsPositive() || !valueobject.RoundMoney(input.Budget).IsPositive() {
		return 0, domainerror.NewProjectError(
			domainerror.ErrCodeInvalidBudget,
			"budget must be greater than zero",
			domainerror.ErrInvalidBudget,
		)
	}

	if !input.PaymentMethod.IsValid() {
		return 0, domainerror.NewProjectError(
			domainerror.ErrCodeInvalidPaymentMethod,
			"payment method must be 'single' or 'installment_plan'",
			domainerror.ErrInvalidPaymentMethod,
		)
	}

	if input.PaymentMethod == entity.PaymentMethodSingle {
		return 1, nil
	}

	maxInstallments := input.MaxInstallments
	if maxInstallments <= 0 {
		maxInstallments = DefaultMaxInstallments
	}
	if input.InstallmentCount < 1 || input.InstallmentCount > maxInstallments {
		return 0, domainerror.NewProjectError(
			domainerror.ErrCodeInvalidInstallmentCount,
			"installment count must be between 1 and the configured maximum",
			domainerror.ErrInvalidInstallmentCount,
		)
	}

	minimum := decimal.New(int64(input.InstallmentCount), -valueobject.MoneyPlaces)
	if valueobject.RoundMoney(input.Budget).LessThan(minimum) {
		return 0, domainerror.NewProjectError(
			domainerror.ErrCodeInvalidBudget,
			"budget must cover at least one cent per installment",
			domainerror.ErrInvalidBudget,
		)
	}

	return input.InstallmentCount, nil
}
