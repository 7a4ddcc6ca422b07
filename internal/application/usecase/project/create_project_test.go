package project

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

func TestCreateProject(t *testing.T) {
	h := newHarness(t)

	project := h.createProject(t, 90000, 3)

	expected := []struct {
		due   string
		value string
	}{
		{"2024-01-01", "30000"},
		{"2024-02-01", "30000"},
		{"2024-03-01", "30000"},
	}
	if len(project.Installments) != len(expected) {
		t.Fatalf("expected %d installments, got %d", len(expected), len(project.Installments))
	}
	for i, want := range expected {
		inst := project.Installments[i]
		if inst.Number != i+1 || !inst.DueDate.Equal(mustDate(t, want.due)) || !inst.Value.Equal(money(want.value)) {
			t.Errorf("installment %d: got number=%d due=%s value=%s", i+1, inst.Number, inst.DueDate.Format("2006-01-02"), inst.Value)
		}
		if inst.Status != entity.InstallmentStatusPending {
			t.Errorf("installment %d: expected pending", i+1)
		}
	}

	stored := h.storedTransactions(t, project.ID)
	if len(stored) != 3 {
		t.Fatalf("expected one transaction per installment, got %d", len(stored))
	}
	if stored[2].Description != "Casa Jardim - Installment 2 of 3" {
		t.Errorf("unexpected description %q", stored[2].Description)
	}

	if types := h.timeline.Types(); len(types) != 1 || types[0] != "project_created" {
		t.Errorf("expected a project_created event, got %v", types)
	}
}

func TestCreateProject_SinglePayment(t *testing.T) {
	h := newHarness(t)

	out, err := h.create.Execute(context.Background(), CreateProjectInput{
		Name:             "Reforma",
		Budget:           decimal.NewFromInt(15000),
		PaymentMethod:    entity.PaymentMethodSingle,
		InstallmentCount: 6,
		AnchorDate:       mustDate(t, "2024-05-31"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Project.Installments) != 1 || out.Project.InstallmentCount != 1 {
		t.Fatalf("expected a single installment, got %d", len(out.Project.Installments))
	}
	if !out.Project.Installments[0].Value.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("expected the whole budget on one installment")
	}
}

func TestCreateProject_RejectsInvalidTerms(t *testing.T) {
	tests := []struct {
		name     string
		input    CreateProjectInput
		expected error
	}{
		{
			name:     "zero budget",
			input:    CreateProjectInput{Name: "A", Budget: decimal.Zero, PaymentMethod: entity.PaymentMethodInstallmentPlan, InstallmentCount: 3},
			expected: domainerror.ErrInvalidBudget,
		},
		{
			name:     "too many installments",
			input:    CreateProjectInput{Name: "A", Budget: decimal.NewFromInt(1000), PaymentMethod: entity.PaymentMethodInstallmentPlan, InstallmentCount: 13},
			expected: domainerror.ErrInvalidInstallmentCount,
		},
		{
			name:     "no installments",
			input:    CreateProjectInput{Name: "A", Budget: decimal.NewFromInt(1000), PaymentMethod: entity.PaymentMethodInstallmentPlan},
			expected: domainerror.ErrInvalidInstallmentCount,
		},
		{
			name:     "unknown payment method",
			input:    CreateProjectInput{Name: "A", Budget: decimal.NewFromInt(1000), PaymentMethod: "barter", InstallmentCount: 1},
			expected: domainerror.ErrInvalidPaymentMethod,
		},
		{
			name:     "missing name",
			input:    CreateProjectInput{Budget: decimal.NewFromInt(1000), PaymentMethod: entity.PaymentMethodSingle},
			expected: domainerror.ErrProjectMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.input.Name != "" {
				tt.input.AnchorDate = mustDate(t, "2024-01-01")
			}

			_, err := h.create.Execute(context.Background(), tt.input)

			if !errors.Is(err, tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, err)
			}
			if len(h.store.Projects) != 0 || len(h.store.Transactions) != 0 {
				t.Errorf("nothing should be stored on validation errors")
			}
		})
	}
}
