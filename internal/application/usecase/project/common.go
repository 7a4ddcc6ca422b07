// Package project holds the project use cases: payment terms, schedule edits
// and installment payments.
package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

// lockProject acquires the per-project lock, reporting contention as a ProjectError.
func lockProject(ctx context.Context, locker adapter.ProjectLocker, id uuid.UUID) (func(), error) {
	unlock, err := locker.Lock(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrLockUnavailable) {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeProjectBusy,
				"project is being modified by another request, try again",
				err,
			)
		}
		return nil, fmt.Errorf("failed to lock project: %w", err)
	}
	return unlock, nil
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

func installmentAudit(inst *entity.Installment) map[string]any {
	if inst == nil {
		return nil
	}
	return inst.AuditRecord()
}

func installmentEntityID(projectID uuid.UUID, number int) string {
	return fmt.Sprintf("%s#%d", projectID, number)
}
