package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

// Recorder appends timeline events for entity mutations. It never returns an
// error: a failure to build or store an event is logged, counted and sent to
// the operator, and the mutation that triggered it goes ahead regardless.
type Recorder struct {
	timelineRepo adapter.TimelineRepository
	publisher    adapter.EventPublisher
	notifier     adapter.OperatorNotifier
	clock        adapter.Clock
	fields       map[entity.EntityKind][]TrackedField
	failures     atomic.Int64
}

// NewRecorder creates a new Recorder using DefaultFieldLabels.
// publisher and notifier may be nil.
func NewRecorder(
	timelineRepo adapter.TimelineRepository,
	publisher adapter.EventPublisher,
	notifier adapter.OperatorNotifier,
	clock adapter.Clock,
) *Recorder {
	return &Recorder{
		timelineRepo: timelineRepo,
		publisher:    publisher,
		notifier:     notifier,
		clock:        clock,
		fields:       DefaultFieldLabels,
	}
}

// Failures returns how many events were lost since start.
func (r *Recorder) Failures() int64 {
	return r.failures.Load()
}

// RecordCreate records the creation of an entity with a snapshot of every tracked field.
func (r *Recorder) RecordCreate(ctx context.Context, kind entity.EntityKind, entityID string, newRecord Record, user string) *entity.TimelineEvent {
	return r.record(ctx, kind, entityID, entity.AuditActionCreated, nil, newRecord, user)
}

// RecordUpdate records the tracked fields that changed. It returns nil and
// stores nothing when no tracked field changed.
func (r *Recorder) RecordUpdate(ctx context.Context, kind entity.EntityKind, entityID string, oldRecord, newRecord Record, user string) *entity.TimelineEvent {
	return r.record(ctx, kind, entityID, entity.AuditActionUpdated, oldRecord, newRecord, user)
}

// RecordDelete records the last known state of a deleted entity.
func (r *Recorder) RecordDelete(ctx context.Context, kind entity.EntityKind, entityID string, oldRecord Record, user string) *entity.TimelineEvent {
	return r.record(ctx, kind, entityID, entity.AuditActionDeleted, oldRecord, nil, user)
}

func (r *Recorder) record(
	ctx context.Context,
	kind entity.EntityKind,
	entityID string,
	action entity.AuditAction,
	oldRecord, newRecord Record,
	user string,
) (event *entity.TimelineEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			event = nil
			r.reportFailure(ctx, kind, entityID, action, user, fmt.Errorf("panic: %v", rec))
		}
	}()

	fields, ok := r.fields[kind]
	if !ok {
		r.reportFailure(ctx, kind, entityID, action, user, domainerror.ErrInvalidEntityKind)
		return nil
	}

	var changes []entity.FieldChange
	switch action {
	case entity.AuditActionCreated:
		changes = Snapshot(newRecord, fields, action)
	case entity.AuditActionDeleted:
		changes = Snapshot(oldRecord, fields, action)
	default:
		changes = Diff(oldRecord, newRecord, fields)
		if len(changes) == 0 {
			return nil
		}
	}

	event = entity.NewTimelineEvent(
		kind,
		entityID,
		action,
		Describe(kind, action, changes),
		r.clock.Now(),
		user,
		changes,
	)

	if err := r.timelineRepo.Append(ctx, event); err != nil {
		r.reportFailure(ctx, kind, entityID, action, user, err)
		return nil
	}

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, event); err != nil {
			slog.Warn("Failed to publish timeline event",
				"event_id", event.ID,
				"event_type", event.Type,
				"error", err,
			)
		}
	}

	return event
}

func (r *Recorder) reportFailure(
	ctx context.Context,
	kind entity.EntityKind,
	entityID string,
	action entity.AuditAction,
	user string,
	cause error,
) {
	r.failures.Add(1)

	err := domainerror.NewAuditError(
		domainerror.ErrCodeAuditWriteFailure,
		"failed to record timeline event",
		fmt.Errorf("%w: %w", domainerror.ErrAuditWriteFailure, cause),
	)
	slog.Error("Audit write failure",
		"code", err.Code,
		"entity_kind", kind,
		"entity_id", entityID,
		"action", action,
		"user", user,
		"error", err,
	)

	if r.notifier == nil {
		return
	}
	notifyErr := r.notifier.NotifyAuditFailure(ctx, adapter.AuditFailureAlert{
		EntityKind: kind,
		EntityID:   entityID,
		Action:     action,
		User:       user,
		Reason:     cause.Error(),
	})
	if notifyErr != nil {
		slog.Error("Failed to queue audit failure alert", "error", notifyErr)
	}
}
