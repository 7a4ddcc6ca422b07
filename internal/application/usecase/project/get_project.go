package project

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// GetProjectInput represents the input for fetching a project.
type GetProjectInput struct {
	ProjectID uuid.UUID
	AsOf      *time.Time // Optional, defaults to the clock
}

// InstallmentView pairs an installment with its effective status.
type InstallmentView struct {
	Installment     *entity.Installment
	EffectiveStatus valueobject.EffectiveStatus
}

// GetProjectOutput represents a project with effective installment statuses.
type GetProjectOutput struct {
	Project      *entity.Project
	Installments []InstallmentView
	AsOf         time.Time
}

// GetProjectUseCase handles fetching a single project.
type GetProjectUseCase struct {
	projectRepo adapter.ProjectRepository
	clock       adapter.Clock
}

// NewGetProjectUseCase creates a new GetProjectUseCase instance.
func NewGetProjectUseCase(projectRepo adapter.ProjectRepository, clock adapter.Clock) *GetProjectUseCase {
	return &GetProjectUseCase{
		projectRepo: projectRepo,
		clock:       clock,
	}
}

// Execute loads the project and derives each installment's status as of AsOf.
func (uc *GetProjectUseCase) Execute(ctx context.Context, input GetProjectInput) (*GetProjectOutput, error) {
	project, err := findProject(ctx, uc.projectRepo, input.ProjectID)
	if err != nil {
		return nil, err
	}

	asOf := uc.clock.Now()
	if input.AsOf != nil {
		asOf = *input.AsOf
	}

	return &GetProjectOutput{
		Project:      project,
		Installments: InstallmentViews(project, asOf),
		AsOf:         asOf,
	}, nil
}

// InstallmentViews derives the effective status of every installment as of asOf.
func InstallmentViews(project *entity.Project, asOf time.Time) []InstallmentView {
	views := make([]InstallmentView, len(project.Installments))
	for i, inst := range project.Installments {
		views[i] = InstallmentView{
			Installment:     inst,
			EffectiveStatus: valueobject.InstallmentStatusAt(inst, asOf),
		}
	}
	return views
}
