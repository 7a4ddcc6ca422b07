package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/application/usecase/project"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// CreateProjectRequest represents the request body for project creation.
type CreateProjectRequest struct {
	Name             string          `json:"name" binding:"required,min=1,max=255"`
	ClientName       string          `json:"client_name" binding:"max=255"`
	Budget           decimal.Decimal `json:"budget"`
	PaymentMethod    string          `json:"payment_method" binding:"required,oneof=single installment_plan"`
	InstallmentCount int             `json:"installment_count"`
	AnchorDate       string          `json:"anchor_date" binding:"required"`
}

// EditProjectRequest represents the request body for a partial project edit.
type EditProjectRequest struct {
	Name             *string          `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	ClientName       *string          `json:"client_name,omitempty" binding:"omitempty,max=255"`
	Budget           *decimal.Decimal `json:"budget,omitempty"`
	PaymentMethod    *string          `json:"payment_method,omitempty" binding:"omitempty,oneof=single installment_plan"`
	InstallmentCount *int             `json:"installment_count,omitempty"`
	AnchorDate       *string          `json:"anchor_date,omitempty"`
}

// InstallmentResponse represents an installment with its effective status.
type InstallmentResponse struct {
	Number          int     `json:"number"`
	DueDate         string  `json:"due_date"`
	Value           string  `json:"value"`
	Status          string  `json:"status"`
	EffectiveStatus string  `json:"effective_status"`
	PaymentDate     *string `json:"payment_date,omitempty"`
	Orphaned        bool    `json:"orphaned,omitempty"`
}

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	ClientName       string                `json:"client_name"`
	Budget           string                `json:"budget"`
	PaymentMethod    string                `json:"payment_method"`
	InstallmentCount int                   `json:"installment_count"`
	AnchorDate       string                `json:"anchor_date"`
	ScheduleTotal    string                `json:"schedule_total"`
	Installments     []InstallmentResponse `json:"installments"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// ProjectListResponse represents the response for listing projects.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// WarningResponse represents a non-blocking ledger warning.
type WarningResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProjectMutationResponse represents a project after creation or edit, with
// the ledger state that came out of it.
type ProjectMutationResponse struct {
	Project      ProjectResponse       `json:"project"`
	Transactions []TransactionResponse `json:"transactions"`
	Orphaned     []int                 `json:"orphaned_installments,omitempty"`
	Warnings     []WarningResponse     `json:"warnings,omitempty"`
	Drift        string                `json:"drift"`
}

// InstallmentPaymentResponse represents an installment and its transaction after a payment flip.
type InstallmentPaymentResponse struct {
	Installment InstallmentResponse  `json:"installment"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	Changed     bool                 `json:"changed"`
	Warnings    []WarningResponse    `json:"warnings,omitempty"`
}

// ToInstallmentResponse converts an installment to its DTO as of asOf.
func ToInstallmentResponse(inst *entity.Installment, asOf time.Time) InstallmentResponse {
	response := InstallmentResponse{
		Number:          inst.Number,
		DueDate:         inst.DueDate.Format(DateLayout),
		Value:           valueobject.FormatMoney(inst.Value),
		Status:          string(inst.Status),
		EffectiveStatus: string(valueobject.InstallmentStatusAt(inst, asOf)),
		Orphaned:        inst.Orphaned,
	}
	if inst.PaymentDate != nil {
		paid := inst.PaymentDate.Format(DateLayout)
		response.PaymentDate = &paid
	}
	return response
}

// ToProjectResponse converts a project to its DTO as of asOf.
func ToProjectResponse(p *entity.Project, asOf time.Time) ProjectResponse {
	installments := make([]InstallmentResponse, len(p.Installments))
	for i, inst := range p.Installments {
		installments[i] = ToInstallmentResponse(inst, asOf)
	}
	return ProjectResponse{
		ID:               p.ID.String(),
		Name:             p.Name,
		ClientName:       p.ClientName,
		Budget:           valueobject.FormatMoney(p.Budget),
		PaymentMethod:    string(p.PaymentMethod),
		InstallmentCount: p.ScheduleSize(),
		AnchorDate:       p.AnchorDate.Format(DateLayout),
		ScheduleTotal:    valueobject.FormatMoney(p.ScheduleTotal()),
		Installments:     installments,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToProjectListResponse converts a project list to its DTO.
func ToProjectListResponse(projects []*entity.Project, asOf time.Time) ProjectListResponse {
	response := ProjectListResponse{Projects: make([]ProjectResponse, len(projects))}
	for i, p := range projects {
		response.Projects[i] = ToProjectResponse(p, asOf)
	}
	return response
}

// ToCreateProjectResponse converts the output of project creation.
func ToCreateProjectResponse(output *project.CreateProjectOutput, asOf time.Time) ProjectMutationResponse {
	return ProjectMutationResponse{
		Project:      ToProjectResponse(output.Project, asOf),
		Transactions: ToTransactionResponses(output.Transactions, asOf),
		Drift:        valueobject.FormatMoney(output.Project.Budget.Sub(output.Project.ScheduleTotal())),
	}
}

// ToEditProjectResponse converts the output of a project edit.
func ToEditProjectResponse(output *project.EditProjectOutput, asOf time.Time) ProjectMutationResponse {
	response := ProjectMutationResponse{
		Project:      ToProjectResponse(output.Project, asOf),
		Transactions: ToTransactionResponses(output.Transactions, asOf),
		Warnings:     ToWarningResponses(output.Warnings),
		Drift:        valueobject.FormatMoney(output.Drift),
	}
	for _, inst := range output.Orphaned {
		response.Orphaned = append(response.Orphaned, inst.Number)
	}
	return response
}

// ToInstallmentPaymentResponse converts the output of a payment flip.
func ToInstallmentPaymentResponse(output *project.InstallmentPaymentOutput, asOf time.Time) InstallmentPaymentResponse {
	response := InstallmentPaymentResponse{
		Installment: ToInstallmentResponse(output.Installment, asOf),
		Changed:     output.Changed,
		Warnings:    ToWarningResponses(output.Warnings),
	}
	if output.Transaction != nil {
		tx := ToTransactionEntityResponse(output.Transaction, asOf)
		response.Transaction = &tx
	}
	return response
}

// ToWarningResponses converts ledger warnings to their DTOs.
func ToWarningResponses(warnings []*domainerror.LedgerError) []WarningResponse {
	if len(warnings) == 0 {
		return nil
	}
	response := make([]WarningResponse, len(warnings))
	for i, w := range warnings {
		response[i] = WarningResponse{Code: string(w.Code), Message: w.Message}
	}
	return response
}
