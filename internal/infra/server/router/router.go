// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/arquitetura-app/backend/internal/integration/entrypoint/controller"
	"github.com/arquitetura-app/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	projectController     *controller.ProjectController
	transactionController *controller.TransactionController
	financeController     *controller.FinanceController
	timelineController    *controller.TimelineController
	adminController       *controller.AdminController
	resyncRateLimiter     *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	projectController *controller.ProjectController,
	transactionController *controller.TransactionController,
	financeController *controller.FinanceController,
	timelineController *controller.TimelineController,
	adminController *controller.AdminController,
	resyncRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		projectController:     projectController,
		transactionController: transactionController,
		financeController:     financeController,
		timelineController:    timelineController,
		adminController:       adminController,
		resyncRateLimiter:     resyncRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	v1.Use(middleware.Actor())
	{
		if r.projectController != nil {
			projects := v1.Group("/projects")
			{
				projects.GET("", r.projectController.List)
				projects.POST("", r.projectController.Create)
				projects.GET("/:id", r.projectController.Get)
				projects.PATCH("/:id", r.projectController.Edit)
				projects.DELETE("/:id", r.projectController.Delete)
				projects.GET("/:id/summary", r.projectController.Summary)
				projects.GET("/:id/cash-flow", r.projectController.CashFlow)
				projects.POST("/:id/installments/:number/pay", r.projectController.MarkInstallmentPaid)
				projects.POST("/:id/installments/:number/revert", r.projectController.RevertInstallment)
			}
		}

		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PATCH("/:id", r.transactionController.Update)
			}
		}

		if r.financeController != nil {
			finance := v1.Group("/finance")
			{
				finance.GET("/summary", r.financeController.Summary)
				finance.GET("/upcoming", r.financeController.Upcoming)
				finance.GET("/overdue", r.financeController.Overdue)
			}
		}

		if r.timelineController != nil {
			timeline := v1.Group("/timeline")
			{
				timeline.GET("", r.timelineController.List)
				timeline.POST("", r.timelineController.Record)
			}
		}

		if r.adminController != nil {
			admin := v1.Group("/admin")
			if r.resyncRateLimiter != nil {
				admin.POST("/ledger/resync", r.resyncRateLimiter.Middleware(), r.adminController.ResyncLedger)
			} else {
				admin.POST("/ledger/resync", r.adminController.ResyncLedger)
			}
		}
	}
}
