package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// ResyncLedgerOutput reports what an operator resync changed.
type ResyncLedgerOutput struct {
	ProjectsScanned     int
	ProjectsChanged     int
	TransactionsCreated int
	TransactionsUpdated int
	TransactionsRemoved int
	Warnings            int
}

// ResyncLedgerUseCase re-runs the ledger sync for every project. Re-running it
// with nothing to fix changes nothing.
type ResyncLedgerUseCase struct {
	projectRepo     adapter.ProjectRepository
	transactionRepo adapter.TransactionRepository
	locker          adapter.ProjectLocker
	notifier        adapter.OperatorNotifier
	clock           adapter.Clock
	concurrency     int
	saveRetries     int
}

// NewResyncLedgerUseCase creates a new ResyncLedgerUseCase instance.
func NewResyncLedgerUseCase(
	projectRepo adapter.ProjectRepository,
	transactionRepo adapter.TransactionRepository,
	locker adapter.ProjectLocker,
	notifier adapter.OperatorNotifier,
	clock adapter.Clock,
	concurrency int,
	saveRetries int,
) *ResyncLedgerUseCase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ResyncLedgerUseCase{
		projectRepo:     projectRepo,
		transactionRepo: transactionRepo,
		locker:          locker,
		notifier:        notifier,
		clock:           clock,
		concurrency:     concurrency,
		saveRetries:     saveRetries,
	}
}

// Execute syncs all projects, a bounded number at a time.
func (uc *ResyncLedgerUseCase) Execute(ctx context.Context) (*ResyncLedgerOutput, error) {
	projects, err := uc.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var (
		mu     sync.Mutex
		output = &ResyncLedgerOutput{ProjectsScanned: len(projects)}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for _, project := range projects {
		g.Go(func() error {
			result, err := uc.resyncProject(gctx, project)
			if err != nil {
				return err
			}
			if result == nil {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			output.ProjectsChanged++
			output.TransactionsCreated += len(result.Created)
			output.TransactionsUpdated += len(result.Updated)
			output.TransactionsRemoved += len(result.Detached)
			output.Warnings += len(result.Warnings)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("Ledger resync completed",
		"projects_scanned", output.ProjectsScanned,
		"projects_changed", output.ProjectsChanged,
		"transactions_created", output.TransactionsCreated,
		"transactions_updated", output.TransactionsUpdated,
		"transactions_removed", output.TransactionsRemoved,
	)

	return output, nil
}

// resyncProject returns nil when the project needed no change.
func (uc *ResyncLedgerUseCase) resyncProject(ctx context.Context, listed *entity.Project) (*SyncResult, error) {
	unlock, err := uc.locker.Lock(ctx, listed.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock project %s: %w", listed.ID, err)
	}
	defer unlock()

	// Reload under the lock; the listed copy may be stale.
	project, err := uc.projectRepo.FindByID(ctx, listed.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project %s: %w", listed.ID, err)
	}

	transactions, err := uc.transactionRepo.FindByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions of project %s: %w", project.ID, err)
	}

	result := Sync(project, transactions, uc.clock.Now())
	ReportWarnings(ctx, uc.notifier, result.Project, nil, result.Warnings)

	if len(result.Created) == 0 && len(result.Updated) == 0 && len(result.Detached) == 0 && !result.HasDesync() {
		return nil, nil
	}

	if err := SaveWithRetry(ctx, uc.projectRepo, result.Project, result.Changed(), result.DetachedIDs(), uc.saveRetries); err != nil {
		return nil, err
	}

	return &result, nil
}
