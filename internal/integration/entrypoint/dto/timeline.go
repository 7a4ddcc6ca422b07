package dto

import (
	"time"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// RecordMutationRequest represents a mutation reported by a CRUD surface that
// lives outside this service.
type RecordMutationRequest struct {
	EntityKind string         `json:"entity_kind" binding:"required"`
	EntityID   string         `json:"entity_id" binding:"required"`
	Action     string         `json:"action" binding:"required,oneof=created updated deleted"`
	Old        map[string]any `json:"old,omitempty"`
	New        map[string]any `json:"new,omitempty"`
}

// FieldChangeResponse represents one changed field.
type FieldChangeResponse struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// TimelineEventResponse represents a timeline event in API responses.
type TimelineEventResponse struct {
	ID          string                `json:"id"`
	EntityKind  string                `json:"entity_kind"`
	EntityID    string                `json:"entity_id"`
	Action      string                `json:"action"`
	Type        string                `json:"type"`
	Description string                `json:"description"`
	Date        time.Time             `json:"date"`
	User        string                `json:"user"`
	Changes     []FieldChangeResponse `json:"changes"`
}

// TimelineListResponse represents the response for listing timeline events.
type TimelineListResponse struct {
	Events []TimelineEventResponse `json:"events"`
}

// RecordMutationResponse represents the result of recording a mutation.
// Recorded is false when nothing tracked changed.
type RecordMutationResponse struct {
	Recorded bool                   `json:"recorded"`
	Event    *TimelineEventResponse `json:"event,omitempty"`
}

// ToTimelineEventResponse converts a timeline event to its DTO.
func ToTimelineEventResponse(event *entity.TimelineEvent) TimelineEventResponse {
	changes := make([]FieldChangeResponse, len(event.Changes))
	for i, c := range event.Changes {
		changes[i] = FieldChangeResponse{
			Field:    c.Field,
			OldValue: c.OldValue,
			NewValue: c.NewValue,
		}
	}
	return TimelineEventResponse{
		ID:          event.ID.String(),
		EntityKind:  string(event.EntityKind),
		EntityID:    event.EntityID,
		Action:      string(event.Action),
		Type:        event.Type,
		Description: event.Description,
		Date:        event.Date,
		User:        event.User,
		Changes:     changes,
	}
}

// ToTimelineListResponse converts timeline events to their DTO.
func ToTimelineListResponse(events []*entity.TimelineEvent) TimelineListResponse {
	response := TimelineListResponse{Events: make([]TimelineEventResponse, len(events))}
	for i, e := range events {
		response.Events[i] = ToTimelineEventResponse(e)
	}
	return response
}

// ToRecordMutationResponse converts a recorded event, which may be nil.
func ToRecordMutationResponse(event *entity.TimelineEvent) RecordMutationResponse {
	if event == nil {
		return RecordMutationResponse{}
	}
	e := ToTimelineEventResponse(event)
	return RecordMutationResponse{Recorded: true, Event: &e}
}
