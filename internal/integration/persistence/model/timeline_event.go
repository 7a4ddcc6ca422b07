package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// FieldChangeJSON is one element of the changes column.
type FieldChangeJSON struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// FieldChangesJSON represents the JSONB list of field changes of an event.
type FieldChangesJSON []FieldChangeJSON

// Value implements the driver.Valuer interface.
func (c FieldChangesJSON) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface.
func (c *FieldChangesJSON) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(data, c)
}

// StringList stores a list of strings as a Postgres text array, and as the
// same array literal in a text column elsewhere.
type StringList pq.StringArray

// Value implements the driver.Valuer interface.
func (l StringList) Value() (driver.Value, error) {
	return pq.StringArray(l).Value()
}

// Scan implements the sql.Scanner interface.
func (l *StringList) Scan(value interface{}) error {
	return (*pq.StringArray)(l).Scan(value)
}

// GormDBDataType picks the column type for the connected dialect.
func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// TimelineEventModel represents the timeline_events table in the database.
// Rows are only ever inserted.
type TimelineEventModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	EntityKind    string           `gorm:"type:varchar(20);not null;index:idx_timeline_entity"`
	EntityID      string           `gorm:"type:varchar(100);not null;index:idx_timeline_entity"`
	Action        string           `gorm:"type:varchar(10);not null"`
	Type          string           `gorm:"type:varchar(40);not null;index"`
	Description   string           `gorm:"type:text;not null"`
	Date          time.Time        `gorm:"not null;index"`
	User          string           `gorm:"column:user_name;type:varchar(255);not null"`
	ChangedFields StringList
	Changes       FieldChangesJSON `gorm:"type:jsonb;not null"`
}

// TableName returns the table name for the TimelineEventModel.
func (TimelineEventModel) TableName() string {
	return "timeline_events"
}

// ToEntity converts a TimelineEventModel to a domain TimelineEvent entity.
func (m *TimelineEventModel) ToEntity() *entity.TimelineEvent {
	changes := make([]entity.FieldChange, len(m.Changes))
	for i, c := range m.Changes {
		changes[i] = entity.FieldChange{
			Field:    c.Field,
			OldValue: c.OldValue,
			NewValue: c.NewValue,
		}
	}

	return &entity.TimelineEvent{
		ID:          m.ID,
		EntityKind:  entity.EntityKind(m.EntityKind),
		EntityID:    m.EntityID,
		Action:      entity.AuditAction(m.Action),
		Type:        m.Type,
		Description: m.Description,
		Date:        m.Date,
		User:        m.User,
		Changes:     changes,
	}
}

// TimelineEventFromEntity creates a TimelineEventModel from a domain TimelineEvent entity.
func TimelineEventFromEntity(event *entity.TimelineEvent) *TimelineEventModel {
	changes := make(FieldChangesJSON, len(event.Changes))
	for i, c := range event.Changes {
		changes[i] = FieldChangeJSON{
			Field:    c.Field,
			OldValue: c.OldValue,
			NewValue: c.NewValue,
		}
	}

	return &TimelineEventModel{
		ID:            event.ID,
		EntityKind:    string(event.EntityKind),
		EntityID:      event.EntityID,
		Action:        string(event.Action),
		Type:          event.Type,
		Description:   event.Description,
		Date:          event.Date,
		User:          event.User,
		ChangedFields: StringList(event.ChangedFields()),
		Changes:       changes,
	}
}
