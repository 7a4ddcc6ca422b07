package installment

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := valueobject.ParseDate(value)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", value, err)
	}
	return d
}

func TestGenerate_EvenBudget(t *testing.T) {
	projectID := uuid.New()

	installments, err := Generate(GenerateInput{
		ProjectID:        projectID,
		Budget:           decimal.NewFromInt(90000),
		PaymentMethod:    entity.PaymentMethodInstallmentPlan,
		InstallmentCount: 3,
		AnchorDate:       date(t, "2024-01-01"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedDates := []string{"2024-01-01", "2024-02-01", "2024-03-01"}
	if len(installments) != len(expectedDates) {
		t.Fatalf("expected %d installments, got %d", len(expectedDates), len(installments))
	}

	for i, inst := range installments {
		if inst.Number != i+1 {
			t.Errorf("installment %d: expected number %d, got %d", i, i+1, inst.Number)
		}
		if inst.DueDate.Format(valueobject.DateLayout) != expectedDates[i] {
			t.Errorf("installment %d: expected due date %s, got %s", i+1, expectedDates[i], inst.DueDate.Format(valueobject.DateLayout))
		}
		if !inst.Value.Equal(decimal.NewFromInt(30000)) {
			t.Errorf("installment %d: expected value 30000, got %s", i+1, inst.Value)
		}
		if inst.Status != entity.InstallmentStatusPending {
			t.Errorf("installment %d: expected pending, got %s", i+1, inst.Status)
		}
		if inst.ProjectID != projectID {
			t.Errorf("installment %d: project id not set", i+1)
		}
		if inst.PaymentDate != nil {
			t.Errorf("installment %d: pending installment has a payment date", i+1)
		}
	}
}

func TestGenerate_RemainderOnLast(t *testing.T) {
	installments, err := Generate(GenerateInput{
		Budget:           decimal.NewFromInt(100000),
		PaymentMethod:    entity.PaymentMethodInstallmentPlan,
		InstallmentCount: 3,
		AnchorDate:       date(t, "2024-01-01"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"33333.33", "33333.33", "33333.34"}
	for i, want := range expected {
		if got := valueobject.FormatMoney(installments[i].Value); got != want {
			t.Errorf("installment %d: expected %s, got %s", i+1, want, got)
		}
	}
}

func TestGenerate_SingleIgnoresCount(t *testing.T) {
	installments, err := Generate(GenerateInput{
		Budget:           decimal.NewFromInt(5000),
		PaymentMethod:    entity.PaymentMethodSingle,
		InstallmentCount: 7,
		AnchorDate:       date(t, "2024-06-15"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(installments) != 1 {
		t.Fatalf("expected 1 installment, got %d", len(installments))
	}
	if !installments[0].Value.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected the whole budget, got %s", installments[0].Value)
	}
}

func TestGenerate_MonthEndAnchor(t *testing.T) {
	installments, err := Generate(GenerateInput{
		Budget:           decimal.NewFromInt(3000),
		PaymentMethod:    entity.PaymentMethodInstallmentPlan,
		InstallmentCount: 3,
		AnchorDate:       date(t, "2024-01-31"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"2024-01-31", "2024-02-29", "2024-03-31"}
	for i, want := range expected {
		if got := installments[i].DueDate.Format(valueobject.DateLayout); got != want {
			t.Errorf("installment %d: expected %s, got %s", i+1, want, got)
		}
	}
}

func TestGenerate_SumInvariant(t *testing.T) {
	budgets := []string{"0.01", "0.05", "1", "10.01", "999.99", "33333.33", "100000", "120000", "7654321.09"}

	for _, b := range budgets {
		budget := decimal.RequireFromString(b)
		for n := 1; n <= DefaultMaxInstallments; n++ {
			installments, err := Generate(GenerateInput{
				Budget:           budget,
				PaymentMethod:    entity.PaymentMethodInstallmentPlan,
				InstallmentCount: n,
				AnchorDate:       date(t, "2024-01-01"),
			})
			if budget.LessThan(decimal.New(int64(n), -2)) {
				if !errors.Is(err, domainerror.ErrInvalidBudget) {
					t.Fatalf("budget %s count %d: expected ErrInvalidBudget, got %v", b, n, err)
				}
				continue
			}
			if err != nil {
				t.Fatalf("budget %s count %d: unexpected error: %v", b, n, err)
			}
			if len(installments) != n {
				t.Fatalf("budget %s count %d: got %d installments", b, n, len(installments))
			}

			sum := decimal.Zero
			for _, inst := range installments {
				if !inst.Value.IsPositive() {
					t.Errorf("budget %s count %d: installment %d is worth %s", b, n, inst.Number, inst.Value)
				}
				sum = sum.Add(inst.Value)
			}
			if !sum.Equal(budget) {
				t.Errorf("budget %s count %d: installments sum to %s", b, n, sum)
			}
		}
	}
}

func TestGenerate_Validation(t *testing.T) {
	tests := []struct {
		name     string
		input    GenerateInput
		expected error
		code     domainerror.ProjectErrorCode
	}{
		{
			name:     "zero budget",
			input:    GenerateInput{Budget: decimal.Zero, PaymentMethod: entity.PaymentMethodSingle},
			expected: domainerror.ErrInvalidBudget,
			code:     domainerror.ErrCodeInvalidBudget,
		},
		{
			name:     "negative budget",
			input:    GenerateInput{Budget: decimal.NewFromInt(-10), PaymentMethod: entity.PaymentMethodSingle},
			expected: domainerror.ErrInvalidBudget,
			code:     domainerror.ErrCodeInvalidBudget,
		},
		{
			name:     "budget below one cent",
			input:    GenerateInput{Budget: decimal.RequireFromString("0.001"), PaymentMethod: entity.PaymentMethodSingle},
			expected: domainerror.ErrInvalidBudget,
			code:     domainerror.ErrCodeInvalidBudget,
		},
		{
			name:     "budget below one cent per installment",
			input:    GenerateInput{Budget: decimal.RequireFromString("0.02"), PaymentMethod: entity.PaymentMethodInstallmentPlan, InstallmentCount: 3},
			expected: domainerror.ErrInvalidBudget,
			code:     domainerror.ErrCodeInvalidBudget,
		},
		{
			name:     "zero installments",
			input:    GenerateInput{Budget: decimal.NewFromInt(100), PaymentMethod: entity.PaymentMethodInstallmentPlan, InstallmentCount: 0},
			expected: domainerror.ErrInvalidInstallmentCount,
			code:     domainerror.ErrCodeInvalidInstallmentCount,
		},
		{
			name:     "above maximum",
			input:    GenerateInput{Budget: decimal.NewFromInt(100), PaymentMethod: entity.PaymentMethodInstallmentPlan, InstallmentCount: 13},
			expected: domainerror.ErrInvalidInstallmentCount,
			code:     domainerror.ErrCodeInvalidInstallmentCount,
		},
		{
			name:     "above configured maximum",
			input:    GenerateInput{Budget: decimal.NewFromInt(100), PaymentMethod: entity.PaymentMethodInstallmentPlan, InstallmentCount: 5, MaxInstallments: 4},
			expected: domainerror.ErrInvalidInstallmentCount,
			code:     domainerror.ErrCodeInvalidInstallmentCount,
		},
		{
			name:     "unknown payment method",
			input:    GenerateInput{Budget: decimal.NewFromInt(100), PaymentMethod: "barter", InstallmentCount: 2},
			expected: domainerror.ErrInvalidPaymentMethod,
			code:     domainerror.ErrCodeInvalidPaymentMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			installments, err := Generate(tt.input)
			if installments != nil {
				t.Errorf("expected no installments, got %d", len(installments))
			}
			if !errors.Is(err, tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, err)
			}
			var projectErr *domainerror.ProjectError
			if !errors.As(err, &projectErr) {
				t.Fatalf("expected a ProjectError, got %T", err)
			}
			if projectErr.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, projectErr.Code)
			}
		})
	}
}
