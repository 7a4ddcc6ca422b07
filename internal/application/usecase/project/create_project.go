package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/application/usecase/audit"
	"github.com/arquitetura-app/backend/internal/application/usecase/installment"
	"github.com/arquitetura-app/backend/internal/application/usecase/ledger"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

// CreateProjectInput represents the input for project creation.
type CreateProjectInput struct {
	Name             string
	ClientName       string
	Budget           decimal.Decimal
	PaymentMethod    entity.PaymentMethod
	InstallmentCount int
	AnchorDate       time.Time
	User             string
}

// CreateProjectOutput represents the output of project creation.
type CreateProjectOutput struct {
	Project      *entity.Project
	Transactions []*entity.Transaction
}

// CreateProjectUseCase handles project creation.
type CreateProjectUseCase struct {
	projectRepo     adapter.ProjectRepository
	recorder        *audit.Recorder
	clock           adapter.Clock
	maxInstallments int
}

// NewCreateProjectUseCase creates a new CreateProjectUseCase instance.
func NewCreateProjectUseCase(
	projectRepo adapter.ProjectRepository,
	recorder *audit.Recorder,
	clock adapter.Clock,
	maxInstallments int,
) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		projectRepo:     projectRepo,
		recorder:        recorder,
		clock:           clock,
		maxInstallments: maxInstallments,
	}
}

// Execute creates the project with its schedule and one pending income
// transaction per installment.
func (uc *CreateProjectUseCase) Execute(ctx context.Context, input CreateProjectInput) (*CreateProjectOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeMissingProjectFields,
			"project name is required",
			domainerror.ErrProjectMissingFields,
		)
	}
	if input.AnchorDate.IsZero() {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeInvalidAnchorDate,
			"first due date is required",
			domainerror.ErrProjectMissingFields,
		)
	}

	count := input.InstallmentCount
	if input.PaymentMethod == entity.PaymentMethodSingle {
		count = 1
	}

	project := entity.NewProject(
		name,
		strings.TrimSpace(input.ClientName),
		input.Budget,
		input.PaymentMethod,
		count,
		input.AnchorDate,
	)

	schedule, err := installment.GenerateForProject(project, uc.maxInstallments)
	if err != nil {
		return nil, err
	}
	project.Installments = schedule

	now := uc.clock.Now()
	project.CreatedAt, project.UpdatedAt = now, now

	synced := ledger.Sync(project, nil, now)
	if err := uc.projectRepo.Create(ctx, synced.Project, synced.Transactions); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	uc.recorder.RecordCreate(ctx, entity.EntityKindProject, synced.Project.ID.String(), synced.Project.AuditRecord(), input.User)

	return &CreateProjectOutput{
		Project:      synced.Project,
		Transactions: synced.Transactions,
	}, nil
}
