package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arquitetura-app/backend/internal/application/usecase/ledger"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/integration/entrypoint/dto"
)

// FinanceController handles the firm-wide finance views.
type FinanceController struct {
	portfolioUseCase *ledger.GetPortfolioSummaryUseCase
	upcomingUseCase  *ledger.ListUpcomingUseCase
	overdueUseCase   *ledger.ListOverdueUseCase
}

// NewFinanceController creates a new finance controller instance.
func NewFinanceController(
	portfolioUseCase *ledger.GetPortfolioSummaryUseCase,
	upcomingUseCase *ledger.ListUpcomingUseCase,
	overdueUseCase *ledger.ListOverdueUseCase,
) *FinanceController {
	return &FinanceController{
		portfolioUseCase: portfolioUseCase,
		upcomingUseCase:  upcomingUseCase,
		overdueUseCase:   overdueUseCase,
	}
}

// Summary handles GET /finance/summary requests.
func (c *FinanceController) Summary(ctx *gin.Context) {
	asOf, ok := parseDateQuery(ctx, "as_of")
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

	output, err := c.portfolioUseCase.Execute(ctx.Request.Context(), ledger.GetPortfolioSummaryInput{
		AsOf:      asOf,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFinancialSummaryResponse(output.Summary))
}

// Upcoming handles GET /finance/upcoming requests.
func (c *FinanceController) Upcoming(ctx *gin.Context) {
	input, ok := dueInput(ctx)
	if !ok {
		return
	}
	horizon, ok := parseIntQuery(ctx, "horizon_days")
	if !ok {
		return
	}
	input.HorizonDays = horizon

	output, err := c.upcomingUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDueListResponse(output, true))
}

// Overdue handles GET /finance/overdue requests.
func (c *FinanceController) Overdue(ctx *gin.Context) {
	input, ok := dueInput(ctx)
	if !ok {
		return
	}

	output, err := c.overdueUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDueListResponse(output, false))
}

func dueInput(ctx *gin.Context) (ledger.ListDueInput, bool) {
	asOf, ok := parseDateQuery(ctx, "as_of")
	if !ok {
		return ledger.ListDueInput{}, false
	}
	projectID, ok := parseUUIDQuery(ctx, "project_id")
	if !ok {
		return ledger.ListDueInput{}, false
	}

	input := ledger.ListDueInput{AsOf: asOf, ProjectID: projectID}
	if typeStr := ctx.Query("type"); typeStr != "" {
		txnType := entity.TransactionType(typeStr)
		if !txnType.IsValid() {
			badRequest(ctx, dto.ErrCodeInvalidRequest, "Invalid type. Use 'expense' or 'income'")
			return ledger.ListDueInput{}, false
		}
		input.Type = &txnType
	}
	return input, true
}
