// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/arquitetura-app/backend/config"
	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/application/usecase/audit"
	"github.com/arquitetura-app/backend/internal/application/usecase/ledger"
	"github.com/arquitetura-app/backend/internal/application/usecase/project"
	"github.com/arquitetura-app/backend/internal/application/usecase/transaction"
	"github.com/arquitetura-app/backend/internal/infra/server/router"
	"github.com/arquitetura-app/backend/internal/integration/alert"
	"github.com/arquitetura-app/backend/internal/integration/alert/templates"
	"github.com/arquitetura-app/backend/internal/integration/entrypoint/controller"
	"github.com/arquitetura-app/backend/internal/integration/entrypoint/middleware"
	"github.com/arquitetura-app/backend/internal/integration/persistence"
)

// alertRetentionDays is how long sent alerts are kept before purging.
const alertRetentionDays = 30

// Infrastructure holds the external collaborators the application is wired onto.
type Infrastructure struct {
	DB          *gorm.DB
	Locker      adapter.ProjectLocker
	Publisher   adapter.EventPublisher // Optional
	AlertSender adapter.AlertSender
	Clock       adapter.Clock
	// HealthChecks probe services beyond the database, such as the lock backend.
	HealthChecks []controller.HealthCheck
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	Recorder    *audit.Recorder
	AlertWorker *alert.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, infra Infrastructure) (*Injector, error) {
	db := infra.DB
	clock := infra.Clock
	if clock == nil {
		clock = adapter.SystemClock{}
	}

	// Create repositories
	projectRepo := persistence.NewProjectRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	timelineRepo := persistence.NewTimelineRepository(db)
	alertQueueRepo := persistence.NewAlertQueueRepository(db)

	// Operator alerts are only queued when someone can receive them.
	var notifier adapter.OperatorNotifier
	if cfg.Alert.OperatorEmail != "" {
		notifier = alert.NewService(alertQueueRepo, cfg.Alert.OperatorEmail)
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	alertWorker := alert.NewWorker(alertQueueRepo, infra.AlertSender, renderer, alert.WorkerConfig{
		PollInterval:  cfg.Alert.PollInterval,
		BatchSize:     cfg.Alert.BatchSize,
		RetentionDays: alertRetentionDays,
	})

	recorder := audit.NewRecorder(timelineRepo, infra.Publisher, notifier, clock)

	ledgerCfg := cfg.Ledger

	// Create project use cases
	listProjectsUseCase := project.NewListProjectsUseCase(projectRepo)
	getProjectUseCase := project.NewGetProjectUseCase(projectRepo, clock)
	createProjectUseCase := project.NewCreateProjectUseCase(projectRepo, recorder, clock, ledgerCfg.MaxInstallments)
	editProjectUseCase := project.NewEditProjectUseCase(
		projectRepo, transactionRepo, infra.Locker, notifier, recorder, clock,
		ledgerCfg.MaxInstallments, ledgerCfg.SaveRetries,
	)
	deleteProjectUseCase := project.NewDeleteProjectUseCase(projectRepo, infra.Locker, recorder)
	markPaidUseCase := project.NewMarkInstallmentPaidUseCase(projectRepo, transactionRepo, infra.Locker, recorder, clock, ledgerCfg.SaveRetries)
	revertUseCase := project.NewRevertInstallmentUseCase(projectRepo, transactionRepo, infra.Locker, recorder, clock, ledgerCfg.SaveRetries)

	// Create ledger use cases
	projectSummaryUseCase := ledger.NewGetProjectSummaryUseCase(projectRepo, transactionRepo, clock)
	cashFlowUseCase := ledger.NewGetCashFlowUseCase(projectRepo, transactionRepo, clock)
	portfolioUseCase := ledger.NewGetPortfolioSummaryUseCase(transactionRepo, clock)
	upcomingUseCase := ledger.NewListUpcomingUseCase(transactionRepo, clock, ledgerCfg.UpcomingHorizonDays)
	overdueUseCase := ledger.NewListOverdueUseCase(transactionRepo, clock)
	resyncUseCase := ledger.NewResyncLedgerUseCase(
		projectRepo, transactionRepo, infra.Locker, notifier, clock,
		ledgerCfg.ResyncConcurrency, ledgerCfg.SaveRetries,
	)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, clock)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, projectRepo, recorder, clock)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(
		transactionRepo, projectRepo, infra.Locker, recorder, clock, ledgerCfg.SaveRetries,
	)

	// Create audit use cases
	listTimelineUseCase := audit.NewListTimelineUseCase(timelineRepo)
	recordMutationUseCase := audit.NewRecordMutationUseCase(recorder)

	// Create controllers
	healthChecks := append([]controller.HealthCheck{{
		Name: "database",
		Probe: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}, infra.HealthChecks...)
	healthController := controller.NewHealthController(healthChecks, recorder.Failures)

	projectController := controller.NewProjectController(
		listProjectsUseCase,
		getProjectUseCase,
		createProjectUseCase,
		editProjectUseCase,
		deleteProjectUseCase,
		markPaidUseCase,
		revertUseCase,
		projectSummaryUseCase,
		cashFlowUseCase,
		clock,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		clock,
	)

	financeController := controller.NewFinanceController(
		portfolioUseCase,
		upcomingUseCase,
		overdueUseCase,
	)

	timelineController := controller.NewTimelineController(
		listTimelineUseCase,
		recordMutationUseCase,
	)

	adminController := controller.NewAdminController(resyncUseCase)

	// Create middleware
	// Disable rate limits for E2E/test environments to prevent flaky tests
	var resyncRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		resyncRateLimiter = middleware.NewRateLimiterWithConfig(0, 1*time.Minute)
	} else {
		resyncRateLimiter = middleware.NewRateLimiter()
	}

	// Create router
	r := router.NewRouter(
		healthController,
		projectController,
		transactionController,
		financeController,
		timelineController,
		adminController,
		resyncRateLimiter,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		Recorder:    recorder,
		AlertWorker: alertWorker,
	}, nil
}
