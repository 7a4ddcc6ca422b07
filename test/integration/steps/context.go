// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/arquitetura-app/backend/config"
	"github.com/arquitetura-app/backend/internal/infra/dependency"
	"github.com/arquitetura-app/backend/internal/infra/lock"
	"github.com/arquitetura-app/backend/internal/integration/alert"
	"github.com/arquitetura-app/backend/internal/integration/entrypoint/controller"
	"github.com/arquitetura-app/backend/internal/integration/persistence/model"
	"github.com/arquitetura-app/backend/test/integration/mock"
)

const (
	operatorEmail = "ops@arquitetura.test"
	emailPath     = "/emails"
)

// suite holds the resources shared by every scenario.
type suite struct {
	cfg       *config.Config
	db        *mock.Db
	emailAPI  *mock.ApiMock
	publisher *mock.Publisher
	clock     *mock.Time
	injector  *dependency.Injector
	server    *httptest.Server
}

var shared *suite

// TestContext holds the test state for each scenario.
type TestContext struct {
	*suite

	// HTTP
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Values captured from earlier responses, substituted into paths and bodies as {{name}}
	remembered map[string]string
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Lock.Backend = "redis"
	cfg.Lock.TTL = 10 * time.Second
	cfg.Lock.WaitLimit = 300 * time.Millisecond
	cfg.Lock.KeyPrefix = "test:project-lock:"
	cfg.Ledger.MaxInstallments = 12
	cfg.Ledger.UpcomingHorizonDays = 30
	cfg.Ledger.SaveRetries = 3
	cfg.Ledger.ResyncConcurrency = 2
	cfg.Alert.OperatorEmail = operatorEmail
	cfg.Alert.FromName = "Arquitetura Finance"
	cfg.Alert.FromEmail = "alerts@arquitetura.test"
	cfg.Alert.WorkerEnabled = false
	cfg.Alert.BatchSize = 10
	return cfg
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		cfg := testConfig()
		s := &suite{
			cfg:       cfg,
			db:        mock.NewDb(model.AllModels()),
			emailAPI:  mock.NewApiServer(),
			publisher: mock.NewPublisher(),
			clock:     mock.NewTime(),
		}
		s.emailAPI.Start()

		sender, err := alert.NewResendClientWithBaseURL("re_test", cfg.Alert.FromName, cfg.Alert.FromEmail, s.emailAPI.GetUrl())
		if err != nil {
			panic(err)
		}

		redisClient := mock.NewRedis()
		injector, err := dependency.NewInjector(cfg, dependency.Infrastructure{
			DB:          s.db.DbConn,
			Locker:      lock.NewRedisLocker(redisClient, cfg.Lock.KeyPrefix, cfg.Lock.TTL, cfg.Lock.WaitLimit),
			Publisher:   s.publisher,
			AlertSender: sender,
			Clock:       s.clock,
			HealthChecks: []controller.HealthCheck{{
				Name: "redis",
				Probe: func(ctx context.Context) error {
					return redisClient.Ping(ctx).Err()
				},
			}},
		})
		if err != nil {
			panic(fmt.Sprintf("failed to wire application: %s", err))
		}
		s.injector = injector
		s.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))

		shared = s
	})

	ctx.AfterSuite(func() {
		if shared == nil {
			return
		}
		shared.server.Close()
		shared.emailAPI.Close()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if shared == nil {
			return ctx, fmt.Errorf("test suite was not initialized")
		}

		if err := shared.db.ClearDB(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(mock.NewRedis()); err != nil {
			return ctx, err
		}
		shared.publisher.Reset()
		shared.clock.Reset()
		shared.emailAPI.ClearResponses()
		shared.emailAPI.SetResponse(http.MethodPost, emailPath, http.StatusOK, map[string]any{"id": "email-1"})

		tc := &TestContext{
			suite:          shared,
			requestHeaders: make(map[string]string),
			remembered:     make(map[string]string),
		}
		return SetTestContext(ctx, tc), nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerLedgerSteps(ctx)
	registerStateSteps(ctx)
}
