package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// SaveWithRetry persists a project together with its ledger changes, retrying a
// failed write up to attempts times with the same inputs. Retrying is safe
// because the write is a full replacement of state computed before the first try.
func SaveWithRetry(
	ctx context.Context,
	repo adapter.ProjectRepository,
	project *entity.Project,
	transactions []*entity.Transaction,
	detached []uuid.UUID,
	attempts int,
) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = repo.SaveWithTransactions(ctx, project, transactions, detached); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("failed to save project ledger: %w", ctx.Err())
		}
		slog.Warn("Failed to save project ledger, retrying",
			"project_id", project.ID,
			"attempt", attempt,
			"max_attempts", attempts,
			"error", err,
		)
	}

	return fmt.Errorf("failed to save project ledger after %d attempts: %w", attempts, err)
}
