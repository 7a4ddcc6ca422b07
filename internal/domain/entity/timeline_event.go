package entity

import (
	"time"

	"github.com/google/uuid"
)

// EntityKind identifies which kind of entity a timeline event refers to.
type EntityKind string

const (
	EntityKindProject     EntityKind = "project"
	EntityKindClient      EntityKind = "client"
	EntityKindStage       EntityKind = "stage"
	EntityKindTask        EntityKind = "task"
	EntityKindMember      EntityKind = "member"
	EntityKindTransaction EntityKind = "transaction"
	EntityKindInstallment EntityKind = "installment"
)

// IsValid reports whether the entity kind is known.
func (k EntityKind) IsValid() bool {
	switch k {
	case EntityKindProject, EntityKindClient, EntityKindStage, EntityKindTask,
		EntityKindMember, EntityKindTransaction, EntityKindInstallment:
		return true
	}
	return false
}

// AuditAction represents what happened to the entity.
type AuditAction string

const (
	AuditActionCreated AuditAction = "created"
	AuditActionUpdated AuditAction = "updated"
	AuditActionDeleted AuditAction = "deleted"
)

// IsValid reports whether the action is known.
func (a AuditAction) IsValid() bool {
	return a == AuditActionCreated || a == AuditActionUpdated || a == AuditActionDeleted
}

// FieldChange is a single field-level difference between two versions of an entity.
type FieldChange struct {
	Field    string
	OldValue string
	NewValue string
}

// TimelineEvent is an immutable audit record of a single entity mutation.
type TimelineEvent struct {
	ID          uuid.UUID
	EntityKind  EntityKind
	EntityID    string
	Action      AuditAction
	Type        string // "<kind>_<action>", e.g. "task_updated"
	Description string
	Date        time.Time
	User        string
	Changes     []FieldChange
}

// NewTimelineEvent creates a new TimelineEvent entity.
func NewTimelineEvent(
	kind EntityKind,
	entityID string,
	action AuditAction,
	description string,
	date time.Time,
	user string,
	changes []FieldChange,
) *TimelineEvent {
	return &TimelineEvent{
		ID:          uuid.New(),
		EntityKind:  kind,
		EntityID:    entityID,
		Action:      action,
		Type:        string(kind) + "_" + string(action),
		Description: description,
		Date:        date,
		User:        user,
		Changes:     changes,
	}
}

// ChangedFields returns the labels of every changed field, in order.
func (e *TimelineEvent) ChangedFields() []string {
	fields := make([]string, len(e.Changes))
	for i, c := range e.Changes {
		fields[i] = c.Field
	}
	return fields
}
