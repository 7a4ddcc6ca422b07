package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/application/usecase/transaction"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/integration/entrypoint/dto"
	"github.com/arquitetura-app/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	clock         adapter.Clock
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	clock adapter.Clock,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		clock:         clock,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	projectID, ok := parseUUIDQuery(ctx, "project_id")
	if !ok {
		return
	}
	startDate, ok := parseDateQuery(ctx, "start_date")
	if !ok {
		return
	}
	endDate, ok := parseDateQuery(ctx, "end_date")
	if !ok {
		return
	}
	asOf, ok := parseDateQuery(ctx, "as_of")
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		ProjectID: projectID,
		StartDate: startDate,
		EndDate:   endDate,
		AsOf:      asOf,
	}
	if typeStr := ctx.Query("type"); typeStr != "" {
		txnType := entity.TransactionType(typeStr)
		if !txnType.IsValid() {
			badRequest(ctx, dto.ErrCodeInvalidRequest, "Invalid type. Use 'expense' or 'income'")
			return
		}
		input.Type = &txnType
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, dto.ErrCodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(ctx, dto.ErrCodeInvalidDate, "Invalid date format. Use YYYY-MM-DD")
		return
	}
	dueDate, ok := parseOptionalDate(ctx, "due_date", req.DueDate)
	if !ok {
		return
	}

	input := transaction.CreateTransactionInput{
		Type:        entity.TransactionType(req.Type),
		Description: req.Description,
		Amount:      req.Amount,
		Status:      entity.TransactionStatus(req.Status),
		Date:        date,
		DueDate:     dueDate,
		User:        middleware.GetActorFromContext(ctx),
	}
	if req.ProjectID != nil && *req.ProjectID != "" {
		id, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			badRequest(ctx, dto.ErrCodeInvalidID, "Invalid project_id format")
			return
		}
		input.ProjectID = &id
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	transactionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, dto.ErrCodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}

	date, ok := parseOptionalDate(ctx, "date", req.Date)
	if !ok {
		return
	}
	dueDate, ok := parseOptionalDate(ctx, "due_date", req.DueDate)
	if !ok {
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		Description:   req.Description,
		Amount:        req.Amount,
		Date:          date,
		DueDate:       dueDate,
		User:          middleware.GetActorFromContext(ctx),
	}
	if req.Status != nil {
		status := entity.TransactionStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUpdateTransactionResponse(output, c.clock.Now()))
}
