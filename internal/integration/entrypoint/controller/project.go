package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/application/usecase/ledger"
	"github.com/arquitetura-app/backend/internal/application/usecase/project"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/integration/entrypoint/dto"
	"github.com/arquitetura-app/backend/internal/integration/entrypoint/middleware"
)

// ProjectController handles project, installment and per-project finance endpoints.
type ProjectController struct {
	listUseCase     *project.ListProjectsUseCase
	getUseCase      *project.GetProjectUseCase
	createUseCase   *project.CreateProjectUseCase
	editUseCase     *project.EditProjectUseCase
	deleteUseCase   *project.DeleteProjectUseCase
	markPaidUseCase *project.MarkInstallmentPaidUseCase
	revertUseCase   *project.RevertInstallmentUseCase
	summaryUseCase  *ledger.GetProjectSummaryUseCase
	cashFlowUseCase *ledger.GetCashFlowUseCase
	clock           adapter.Clock
}

// NewProjectController creates a new project controller instance.
func NewProjectController(
	listUseCase *project.ListProjectsUseCase,
	getUseCase *project.GetProjectUseCase,
	createUseCase *project.CreateProjectUseCase,
	editUseCase *project.EditProjectUseCase,
	deleteUseCase *project.DeleteProjectUseCase,
	markPaidUseCase *project.MarkInstallmentPaidUseCase,
	revertUseCase *project.RevertInstallmentUseCase,
	summaryUseCase *ledger.GetProjectSummaryUseCase,
	cashFlowUseCase *ledger.GetCashFlowUseCase,
	clock adapter.Clock,
) *ProjectController {
	return &ProjectController{
		listUseCase:     listUseCase,
		getUseCase:      getUseCase,
		createUseCase:   createUseCase,
		editUseCase:     editUseCase,
		deleteUseCase:   deleteUseCase,
		markPaidUseCase: markPaidUseCase,
		revertUseCase:   revertUseCase,
		summaryUseCase:  summaryUseCase,
		cashFlowUseCase: cashFlowUseCase,
		clock:           clock,
	}
}

// List handles GET /projects requests.
func (c *ProjectController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectListResponse(output.Projects, c.clock.Now()))
}

// Get handles GET /projects/:id requests.
func (c *ProjectController) Get(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	asOf, ok := parseDateQuery(ctx, "as_of")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), project.GetProjectInput{
		ProjectID: projectID,
		AsOf:      asOf,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectResponse(output.Project, output.AsOf))
}

// Create handles POST /projects requests.
func (c *ProjectController) Create(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, dto.ErrCodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}

	anchorDate, err := parseDate(req.AnchorDate)
	if err != nil {
		badRequest(ctx, dto.ErrCodeInvalidDate, "Invalid anchor_date format. Use YYYY-MM-DD")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), project.CreateProjectInput{
		Name:             req.Name,
		ClientName:       req.ClientName,
		Budget:           req.Budget,
		PaymentMethod:    entity.PaymentMethod(req.PaymentMethod),
		InstallmentCount: req.InstallmentCount,
		AnchorDate:       anchorDate,
		User:             middleware.GetActorFromContext(ctx),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCreateProjectResponse(output, c.clock.Now()))
}

// Edit handles PATCH /projects/:id requests.
func (c *ProjectController) Edit(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.EditProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, dto.ErrCodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}

	anchorDate, ok := parseOptionalDate(ctx, "anchor_date", req.AnchorDate)
	if !ok {
		return
	}

	input := project.EditProjectInput{
		ProjectID:        projectID,
		Name:             req.Name,
		ClientName:       req.ClientName,
		Budget:           req.Budget,
		InstallmentCount: req.InstallmentCount,
		AnchorDate:       anchorDate,
		User:             middleware.GetActorFromContext(ctx),
	}
	if req.PaymentMethod != nil {
		method := entity.PaymentMethod(*req.PaymentMethod)
		input.PaymentMethod = &method
	}

	output, err := c.editUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEditProjectResponse(output, c.clock.Now()))
}

// Delete handles DELETE /projects/:id requests.
func (c *ProjectController) Delete(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), project.DeleteProjectInput{
		ProjectID: projectID,
		User:      middleware.GetActorFromContext(ctx),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// MarkInstallmentPaid handles POST /projects/:id/installments/:number/pay requests.
func (c *ProjectController) MarkInstallmentPaid(ctx *gin.Context) {
	input, ok := c.paymentInput(ctx)
	if !ok {
		return
	}

	output, err := c.markPaidUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstallmentPaymentResponse(output, c.clock.Now()))
}

// RevertInstallment handles POST /projects/:id/installments/:number/revert requests.
func (c *ProjectController) RevertInstallment(ctx *gin.Context) {
	input, ok := c.paymentInput(ctx)
	if !ok {
		return
	}

	output, err := c.revertUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstallmentPaymentResponse(output, c.clock.Now()))
}

func (c *ProjectController) paymentInput(ctx *gin.Context) (project.InstallmentPaymentInput, bool) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return project.InstallmentPaymentInput{}, false
	}
	number, err := strconv.Atoi(ctx.Param("number"))
	if err != nil || number < 1 {
		badRequest(ctx, dto.ErrCodeInvalidRequest, "Invalid installment number")
		return project.InstallmentPaymentInput{}, false
	}
	return project.InstallmentPaymentInput{
		ProjectID:         projectID,
		InstallmentNumber: number,
		User:              middleware.GetActorFromContext(ctx),
	}, true
}

// Summary handles GET /projects/:id/summary requests.
func (c *ProjectController) Summary(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	asOf, ok := parseDateQuery(ctx, "as_of")
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), ledger.GetProjectSummaryInput{
		ProjectID: projectID,
		AsOf:      asOf,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectSummaryResponse(output))
}

// CashFlow handles GET /projects/:id/cash-flow requests.
func (c *ProjectController) CashFlow(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	asOf, ok := parseDateQuery(ctx, "as_of")
	if !ok {
		return
	}

	output, err := c.cashFlowUseCase.Execute(ctx.Request.Context(), ledger.GetCashFlowInput{
		ProjectID:   projectID,
		AsOf:        asOf,
		Granularity: ledger.Granularity(ctx.Query("granularity")),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCashFlowResponse(output))
}
