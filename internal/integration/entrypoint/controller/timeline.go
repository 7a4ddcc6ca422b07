package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arquitetura-app/backend/internal/application/usecase/audit"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/integration/entrypoint/dto"
	"github.com/arquitetura-app/backend/internal/integration/entrypoint/middleware"
)

// TimelineController handles the audit trail endpoints.
type TimelineController struct {
	listUseCase   *audit.ListTimelineUseCase
	recordUseCase *audit.RecordMutationUseCase
}

// NewTimelineController creates a new timeline controller instance.
func NewTimelineController(
	listUseCase *audit.ListTimelineUseCase,
	recordUseCase *audit.RecordMutationUseCase,
) *TimelineController {
	return &TimelineController{
		listUseCase:   listUseCase,
		recordUseCase: recordUseCase,
	}
}

// List handles GET /timeline requests.
func (c *TimelineController) List(ctx *gin.Context) {
	limit, ok := parseIntQuery(ctx, "limit")
	if !ok {
		return
	}

	input := audit.ListTimelineInput{EntityID: ctx.Query("entity_id")}
	if limit != nil {
		input.Limit = *limit
	}
	if kind := ctx.Query("entity_kind"); kind != "" {
		entityKind := entity.EntityKind(kind)
		input.EntityKind = &entityKind
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTimelineListResponse(output.Events))
}

// Record handles POST /timeline requests from CRUD surfaces that report
// their own mutations.
func (c *TimelineController) Record(ctx *gin.Context) {
	var req dto.RecordMutationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, dto.ErrCodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), audit.RecordMutationInput{
		EntityKind: entity.EntityKind(req.EntityKind),
		EntityID:   req.EntityID,
		Action:     entity.AuditAction(req.Action),
		Old:        req.Old,
		New:        req.New,
		User:       middleware.GetActorFromContext(ctx),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Event != nil {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.ToRecordMutationResponse(output.Event))
}
