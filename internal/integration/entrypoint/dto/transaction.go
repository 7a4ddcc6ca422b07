package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/application/usecase/transaction"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	ProjectID   *string         `json:"project_id,omitempty"`
	Type        string          `json:"type" binding:"required,oneof=expense income"`
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status,omitempty" binding:"omitempty,oneof=pending completed overdue"`
	Date        string          `json:"date" binding:"required"`
	DueDate     *string         `json:"due_date,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Description *string          `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Status      *string          `json:"status,omitempty" binding:"omitempty,oneof=pending completed overdue"`
	Date        *string          `json:"date,omitempty"`
	DueDate     *string          `json:"due_date,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                string    `json:"id"`
	ProjectID         *string   `json:"project_id,omitempty"`
	Type              string    `json:"type"`
	Description       string    `json:"description"`
	Amount            string    `json:"amount"`
	Status            string    `json:"status"`
	EffectiveStatus   string    `json:"effective_status"`
	Date              string    `json:"date"`
	DueDate           *string   `json:"due_date,omitempty"`
	InstallmentNumber *int      `json:"installment_number,omitempty"`
	PaidAt            *string   `json:"paid_at,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	NetTotal     string `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse     `json:"transactions"`
	Totals       TransactionTotalsResponse `json:"totals"`
	AsOf         time.Time                 `json:"as_of"`
}

// UpdateTransactionResponse represents a transaction after update, with the
// installment it carried its status over to.
type UpdateTransactionResponse struct {
	Transaction TransactionResponse  `json:"transaction"`
	Installment *InstallmentResponse `json:"installment,omitempty"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:                txn.ID.String(),
		Type:              string(txn.Type),
		Description:       txn.Description,
		Amount:            valueobject.FormatMoney(txn.Amount),
		Status:            string(txn.Status),
		EffectiveStatus:   string(txn.EffectiveStatus),
		Date:              txn.Date.Format(DateLayout),
		InstallmentNumber: txn.InstallmentNumber,
		CreatedAt:         txn.CreatedAt,
		UpdatedAt:         txn.UpdatedAt,
	}

	if txn.ProjectID != nil {
		projectID := txn.ProjectID.String()
		response.ProjectID = &projectID
	}
	if txn.DueDate != nil {
		dueDate := txn.DueDate.Format(DateLayout)
		response.DueDate = &dueDate
	}
	if txn.PaidAt != nil {
		paidAt := txn.PaidAt.Format(time.RFC3339)
		response.PaidAt = &paidAt
	}

	return response
}

// ToTransactionEntityResponse converts a transaction entity as of asOf.
func ToTransactionEntityResponse(tx *entity.Transaction, asOf time.Time) TransactionResponse {
	return ToTransactionResponse(transaction.NewTransactionOutput(tx, asOf))
}

// ToTransactionResponses converts transaction entities as of asOf.
func ToTransactionResponses(transactions []*entity.Transaction, asOf time.Time) []TransactionResponse {
	response := make([]TransactionResponse, len(transactions))
	for i, tx := range transactions {
		response[i] = ToTransactionEntityResponse(tx, asOf)
	}
	return response
}

// ToTransactionListResponse converts a ListTransactionsOutput to a TransactionListResponse DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Totals: TransactionTotalsResponse{
			IncomeTotal:  valueobject.FormatMoney(output.Totals.IncomeTotal),
			ExpenseTotal: valueobject.FormatMoney(output.Totals.ExpenseTotal),
			NetTotal:     valueobject.FormatMoney(output.Totals.NetTotal),
		},
		AsOf: output.AsOf,
	}
}

// ToUpdateTransactionResponse converts an UpdateTransactionOutput.
func ToUpdateTransactionResponse(output *transaction.UpdateTransactionOutput, asOf time.Time) UpdateTransactionResponse {
	response := UpdateTransactionResponse{
		Transaction: ToTransactionResponse(output.Transaction),
	}
	if output.Installment != nil {
		inst := ToInstallmentResponse(output.Installment, asOf)
		response.Installment = &inst
	}
	return response
}
