//go:build integration

// Package integration runs the BDD feature suite against the full HTTP stack.
package integration

import (
	"os"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/arquitetura-app/backend/test/integration/steps"
)

// TestFeatures runs every feature file. GODOG_TAGS filters scenarios,
// GODOG_FORMAT picks the formatter and GODOG_PATHS (comma separated) narrows the files.
func TestFeatures(t *testing.T) {
	opts := godog.Options{
		Format:      envOr("GODOG_FORMAT", "pretty"),
		Paths:       strings.Split(envOr("GODOG_PATHS", "features"), ","),
		Output:      colors.Colored(os.Stdout),
		Tags:        os.Getenv("GODOG_TAGS"),
		Concurrency: 1, // scenarios share one database and one Redis
		Strict:      true,
		TestingT:    t,
	}

	suite := godog.TestSuite{
		Name:                 "arquitetura-finance-api",
		ScenarioInitializer:  steps.InitializeScenario,
		TestSuiteInitializer: steps.InitializeTestSuite,
		Options:              &opts,
	}

	if status := suite.Run(); status != 0 {
		t.Fatalf("feature suite failed with status %d", status)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
