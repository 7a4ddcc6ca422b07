package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// GetProjectSummaryInput represents the input for a project financial summary.
type GetProjectSummaryInput struct {
	ProjectID uuid.UUID
	AsOf      *time.Time // Optional, defaults to the clock
}

// GetProjectSummaryOutput represents the output of a project financial summary.
type GetProjectSummaryOutput struct {
	Project *entity.Project
	Summary valueobject.FinancialSummary
	// Drift is the project budget minus the scheduled total.
	Drift decimal.Decimal
}

// GetProjectSummaryUseCase summarizes the ledger of one project.
type GetProjectSummaryUseCase struct {
	projectRepo     adapter.ProjectRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetProjectSummaryUseCase creates a new GetProjectSummaryUseCase instance.
func NewGetProjectSummaryUseCase(
	projectRepo adapter.ProjectRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *GetProjectSummaryUseCase {
	return &GetProjectSummaryUseCase{
		projectRepo:     projectRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute computes the summary.
func (uc *GetProjectSummaryUseCase) Execute(ctx context.Context, input GetProjectSummaryInput) (*GetProjectSummaryOutput, error) {
	project, err := findProject(ctx, uc.projectRepo, input.ProjectID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project transactions: %w", err)
	}

	asOf := resolveAsOf(uc.clock, input.AsOf)
	return &GetProjectSummaryOutput{
		Project: project,
		Summary: Summarize(transactions, asOf),
		Drift:   valueobject.RoundMoney(project.Budget.Sub(project.ScheduleTotal())),
	}, nil
}

func findProject(ctx context.Context, repo adapter.ProjectRepository, id uuid.UUID) (*entity.Project, error) {
	project, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeProjectNotFound,
				"project not found",
				domainerror.ErrProjectNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func resolveAsOf(clock adapter.Clock, asOf *time.Time) time.Time {
	if asOf != nil {
		return *asOf
	}
	return clock.Now()
}
