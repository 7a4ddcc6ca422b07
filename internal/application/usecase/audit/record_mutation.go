package audit

import (
	"context"
	"strings"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

// RecordMutationInput represents a mutation reported by the surrounding CRUD layer.
type RecordMutationInput struct {
	EntityKind entity.EntityKind
	EntityID   string
	Action     entity.AuditAction
	Old        Record // Ignored for creations
	New        Record // Ignored for deletions
	User       string
}

// RecordMutationOutput represents the output of recording a mutation.
type RecordMutationOutput struct {
	// Event is nil when the mutation touched no tracked field or the event could not be stored.
	Event *entity.TimelineEvent
}

// RecordMutationUseCase turns an entity mutation of any kind into a timeline event.
type RecordMutationUseCase struct {
	recorder *Recorder
}

// NewRecordMutationUseCase creates a new RecordMutationUseCase instance.
func NewRecordMutationUseCase(recorder *Recorder) *RecordMutationUseCase {
	return &RecordMutationUseCase{
		recorder: recorder,
	}
}

// Execute validates the request and records the mutation.
// Only malformed requests return an error; storage failures are absorbed by the recorder.
func (uc *RecordMutationUseCase) Execute(ctx context.Context, input RecordMutationInput) (*RecordMutationOutput, error) {
	if !input.EntityKind.IsValid() {
		return nil, domainerror.NewAuditError(
			domainerror.ErrCodeInvalidEntityKind,
			"entity kind must be one of project, client, stage, task, member, transaction, installment",
			domainerror.ErrInvalidEntityKind,
		)
	}
	if !input.Action.IsValid() {
		return nil, domainerror.NewAuditError(
			domainerror.ErrCodeInvalidAuditAction,
			"action must be one of created, updated, deleted",
			domainerror.ErrInvalidAuditAction,
		)
	}
	if strings.TrimSpace(input.EntityID) == "" {
		return nil, domainerror.NewAuditError(
			domainerror.ErrCodeMissingAuditFields,
			"entity id is required",
			nil,
		)
	}

	user := strings.TrimSpace(input.User)
	if user == "" {
		user = SystemUser
	}

	var event *entity.TimelineEvent
	switch input.Action {
	case entity.AuditActionCreated:
		event = uc.recorder.RecordCreate(ctx, input.EntityKind, input.EntityID, input.New, user)
	case entity.AuditActionDeleted:
		event = uc.recorder.RecordDelete(ctx, input.EntityKind, input.EntityID, input.Old, user)
	default:
		event = uc.recorder.RecordUpdate(ctx, input.EntityKind, input.EntityID, input.Old, input.New, user)
	}

	return &RecordMutationOutput{Event: event}, nil
}

// SystemUser is recorded when a mutation carries no acting user.
const SystemUser = "system"
