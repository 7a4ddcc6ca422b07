package dto

import (
	"time"

	"github.com/arquitetura-app/backend/internal/application/usecase/ledger"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// FinancialSummaryResponse represents aggregated income and expenses.
type FinancialSummaryResponse struct {
	AsOf          time.Time `json:"as_of"`
	TotalBudget   string    `json:"total_budget"`
	Received      string    `json:"received"`
	Pending       string    `json:"pending"`
	Overdue       string    `json:"overdue"`
	Expenses      string    `json:"expenses"`
	PaidExpenses  string    `json:"paid_expenses"`
	Balance       string    `json:"balance"`
	ReceivedCount int       `json:"received_count"`
	PendingCount  int       `json:"pending_count"`
	OverdueCount  int       `json:"overdue_count"`
}

// ProjectSummaryResponse represents the financial summary of one project.
type ProjectSummaryResponse struct {
	ProjectID string                   `json:"project_id"`
	Name      string                   `json:"name"`
	Budget    string                   `json:"budget"`
	Drift     string                   `json:"drift"`
	Summary   FinancialSummaryResponse `json:"summary"`
}

// CashFlowPeriodResponse represents one bucket of a cash-flow projection.
type CashFlowPeriodResponse struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	PeriodLabel string `json:"period_label"`
	Expected    string `json:"expected"`
	Received    string `json:"received"`
	Overdue     string `json:"overdue"`
}

// CashFlowResponse represents a cash-flow projection.
type CashFlowResponse struct {
	AsOf        time.Time                `json:"as_of"`
	Granularity string                   `json:"granularity"`
	Periods     []CashFlowPeriodResponse `json:"periods"`
}

// DueListResponse represents the upcoming or overdue listing.
type DueListResponse struct {
	AsOf         time.Time             `json:"as_of"`
	HorizonDays  *int                  `json:"horizon_days,omitempty"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ResyncLedgerResponse represents what an operator resync changed.
type ResyncLedgerResponse struct {
	ProjectsScanned     int `json:"projects_scanned"`
	ProjectsChanged     int `json:"projects_changed"`
	TransactionsCreated int `json:"transactions_created"`
	TransactionsUpdated int `json:"transactions_updated"`
	TransactionsRemoved int `json:"transactions_removed"`
	Warnings            int `json:"warnings"`
}

// ToFinancialSummaryResponse converts a FinancialSummary to its DTO.
func ToFinancialSummaryResponse(s valueobject.FinancialSummary) FinancialSummaryResponse {
	return FinancialSummaryResponse{
		AsOf:          s.AsOf,
		TotalBudget:   valueobject.FormatMoney(s.TotalBudget),
		Received:      valueobject.FormatMoney(s.Received),
		Pending:       valueobject.FormatMoney(s.Pending),
		Overdue:       valueobject.FormatMoney(s.Overdue),
		Expenses:      valueobject.FormatMoney(s.Expenses),
		PaidExpenses:  valueobject.FormatMoney(s.PaidExpenses),
		Balance:       valueobject.FormatMoney(s.Balance),
		ReceivedCount: s.ReceivedCount,
		PendingCount:  s.PendingCount,
		OverdueCount:  s.OverdueCount,
	}
}

// ToProjectSummaryResponse converts a GetProjectSummaryOutput to its DTO.
func ToProjectSummaryResponse(output *ledger.GetProjectSummaryOutput) ProjectSummaryResponse {
	return ProjectSummaryResponse{
		ProjectID: output.Project.ID.String(),
		Name:      output.Project.Name,
		Budget:    valueobject.FormatMoney(output.Project.Budget),
		Drift:     valueobject.FormatMoney(output.Drift),
		Summary:   ToFinancialSummaryResponse(output.Summary),
	}
}

// ToCashFlowResponse converts a GetCashFlowOutput to its DTO.
func ToCashFlowResponse(output *ledger.GetCashFlowOutput) CashFlowResponse {
	periods := make([]CashFlowPeriodResponse, len(output.Periods))
	for i, p := range output.Periods {
		periods[i] = CashFlowPeriodResponse{
			PeriodStart: p.PeriodStart.Format(DateLayout),
			PeriodEnd:   p.PeriodEnd.Format(DateLayout),
			PeriodLabel: p.PeriodLabel,
			Expected:    valueobject.FormatMoney(p.Expected),
			Received:    valueobject.FormatMoney(p.Received),
			Overdue:     valueobject.FormatMoney(p.Overdue),
		}
	}
	return CashFlowResponse{
		AsOf:        output.AsOf,
		Granularity: string(output.Granularity),
		Periods:     periods,
	}
}

// ToDueListResponse converts a ListDueOutput to its DTO. The horizon is only
// reported for the upcoming listing.
func ToDueListResponse(output *ledger.ListDueOutput, withHorizon bool) DueListResponse {
	response := DueListResponse{
		AsOf:         output.AsOf,
		Transactions: ToTransactionResponses(output.Transactions, output.AsOf),
	}
	if withHorizon {
		horizon := output.HorizonDays
		response.HorizonDays = &horizon
	}
	return response
}

// ToResyncLedgerResponse converts a ResyncLedgerOutput to its DTO.
func ToResyncLedgerResponse(output *ledger.ResyncLedgerOutput) ResyncLedgerResponse {
	return ResyncLedgerResponse{
		ProjectsScanned:     output.ProjectsScanned,
		ProjectsChanged:     output.ProjectsChanged,
		TransactionsCreated: output.TransactionsCreated,
		TransactionsUpdated: output.TransactionsUpdated,
		TransactionsRemoved: output.TransactionsRemoved,
		Warnings:            output.Warnings,
	}
}
