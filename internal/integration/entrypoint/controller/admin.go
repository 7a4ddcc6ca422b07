package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arquitetura-app/backend/internal/application/usecase/ledger"
	"github.com/arquitetura-app/backend/internal/integration/entrypoint/dto"
)

// AdminController handles operator endpoints.
type AdminController struct {
	resyncUseCase *ledger.ResyncLedgerUseCase
}

// NewAdminController creates a new admin controller instance.
func NewAdminController(resyncUseCase *ledger.ResyncLedgerUseCase) *AdminController {
	return &AdminController{
		resyncUseCase: resyncUseCase,
	}
}

// ResyncLedger handles POST /admin/ledger/resync requests.
func (c *AdminController) ResyncLedger(ctx *gin.Context) {
	output, err := c.resyncUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToResyncLedgerResponse(output))
}
