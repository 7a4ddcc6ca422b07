// Package entity defines the core business entities for the domain layer.
package entity

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a project's budget is billed.
type PaymentMethod string

const (
	PaymentMethodSingle          PaymentMethod = "single"
	PaymentMethodInstallmentPlan PaymentMethod = "installment_plan"
)

// IsValid reports whether the payment method is known.
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodSingle || m == PaymentMethodInstallmentPlan
}

// Project represents an architecture project and its payment schedule.
type Project struct {
	ID               uuid.UUID
	Name             string
	ClientName       string
	Budget           decimal.Decimal
	PaymentMethod    PaymentMethod
	InstallmentCount int // Meaningful only for installment plans
	AnchorDate       time.Time
	Installments     []*Installment
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time // Soft-delete support
}

// NewProject creates a new Project entity without a schedule.
func NewProject(
	name string,
	clientName string,
	budget decimal.Decimal,
	paymentMethod PaymentMethod,
	installmentCount int,
	anchorDate time.Time,
) *Project {
	now := time.Now().UTC()

	return &Project{
		ID:               uuid.New(),
		Name:             name,
		ClientName:       clientName,
		Budget:           budget,
		PaymentMethod:    paymentMethod,
		InstallmentCount: installmentCount,
		AnchorDate:       anchorDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// ScheduleSize returns how many installments the payment terms call for.
func (p *Project) ScheduleSize() int {
	if p.PaymentMethod == PaymentMethodSingle {
		return 1
	}
	return p.InstallmentCount
}

// Installment returns the installment with the given number, or nil.
func (p *Project) Installment(number int) *Installment {
	for _, inst := range p.Installments {
		if inst.Number == number {
			return inst
		}
	}
	return nil
}

// SortInstallments orders the schedule by installment number.
func (p *Project) SortInstallments() {
	sort.SliceStable(p.Installments, func(i, j int) bool {
		return p.Installments[i].Number < p.Installments[j].Number
	})
}

// ScheduleTotal sums the value of every installment in the schedule.
func (p *Project) ScheduleTotal() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range p.Installments {
		total = total.Add(inst.Value)
	}
	return total
}

// Clone returns a deep copy of the project, including its installments.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.Installments = CloneInstallments(p.Installments)
	if p.DeletedAt != nil {
		deletedAt := *p.DeletedAt
		c.DeletedAt = &deletedAt
	}
	return &c
}

// AuditRecord flattens the tracked project fields for the audit trail.
func (p *Project) AuditRecord() map[string]any {
	return map[string]any{
		"name":              p.Name,
		"client_name":       p.ClientName,
		"budget":            p.Budget,
		"payment_method":    string(p.PaymentMethod),
		"installment_count": p.ScheduleSize(),
		"anchor_date":       p.AnchorDate,
	}
}
