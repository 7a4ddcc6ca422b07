// Package events fans timeline events out over AMQP.
package events

import (
	"encoding/json"
	"time"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// FieldChangeMessage is one changed field of a published event.
type FieldChangeMessage struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// TimelineEventMessage is the body of a published timeline event.
type TimelineEventMessage struct {
	ID          string               `json:"id"`
	Type        string               `json:"type"`
	EntityKind  string               `json:"entity_kind"`
	EntityID    string               `json:"entity_id"`
	Action      string               `json:"action"`
	Description string               `json:"description"`
	Date        time.Time            `json:"date"`
	User        string               `json:"user"`
	Changes     []FieldChangeMessage `json:"changes"`
}

// NewTimelineEventMessage builds the message for a stored event.
func NewTimelineEventMessage(event *entity.TimelineEvent) *TimelineEventMessage {
	changes := make([]FieldChangeMessage, len(event.Changes))
	for i, c := range event.Changes {
		changes[i] = FieldChangeMessage{
			Field:    c.Field,
			OldValue: c.OldValue,
			NewValue: c.NewValue,
		}
	}

	return &TimelineEventMessage{
		ID:          event.ID.String(),
		Type:        event.Type,
		EntityKind:  string(event.EntityKind),
		EntityID:    event.EntityID,
		Action:      string(event.Action),
		Description: event.Description,
		Date:        event.Date,
		User:        event.User,
		Changes:     changes,
	}
}

// ToJSON converts the message to JSON bytes
func (m *TimelineEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TimelineEventMessageFromJSON decodes a published message.
func TimelineEventMessageFromJSON(data []byte) (*TimelineEventMessage, error) {
	var msg TimelineEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
