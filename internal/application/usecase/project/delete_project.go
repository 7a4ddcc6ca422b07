package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/application/usecase/audit"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

// DeleteProjectInput represents the input for project deletion.
type DeleteProjectInput struct {
	ProjectID uuid.UUID
	User      string
}

// DeleteProjectUseCase handles soft-deleting a project. Its transactions stay
// in the ledger so past income remains visible.
type DeleteProjectUseCase struct {
	projectRepo adapter.ProjectRepository
	locker      adapter.ProjectLocker
	recorder    *audit.Recorder
}

// NewDeleteProjectUseCase creates a new DeleteProjectUseCase instance.
func NewDeleteProjectUseCase(
	projectRepo adapter.ProjectRepository,
	locker adapter.ProjectLocker,
	recorder *audit.Recorder,
) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{
		projectRepo: projectRepo,
		locker:      locker,
		recorder:    recorder,
	}
}

// Execute deletes the project and records its last known state.
func (uc *DeleteProjectUseCase) Execute(ctx context.Context, input DeleteProjectInput) error {
	unlock, err := lockProject(ctx, uc.locker, input.ProjectID)
	if err != nil {
		return err
	}
	defer unlock()

	project, err := findProject(ctx, uc.projectRepo, input.ProjectID)
	if err != nil {
		return err
	}

	if err := uc.projectRepo.Delete(ctx, project.ID); err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return domainerror.NewProjectError(
				domainerror.ErrCodeProjectNotFound,
				"project not found",
				domainerror.ErrProjectNotFound,
			)
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	uc.recorder.RecordDelete(ctx, entity.EntityKindProject, project.ID.String(), project.AuditRecord(), input.User)
	return nil
}
