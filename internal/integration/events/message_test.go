package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

func TestTimelineEventMessage(t *testing.T) {
	event := entity.NewTimelineEvent(
		entity.EntityKindProject,
		"p-1",
		entity.AuditActionUpdated,
		"Project updated: Budget",
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		"ana",
		[]entity.FieldChange{{Field: "Budget", OldValue: "90000.00", NewValue: "120000.00"}},
	)

	body, err := NewTimelineEventMessage(event).ToJSON()
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, "project_updated", raw["type"])
	assert.Equal(t, "p-1", raw["entity_id"])
	assert.Equal(t, "2024-03-01T10:00:00Z", raw["date"])

	decoded, err := TimelineEventMessageFromJSON(body)
	require.NoError(t, err)
	require.Len(t, decoded.Changes, 1)
	assert.Equal(t, "120000.00", decoded.Changes[0].NewValue)
	assert.Equal(t, event.ID.String(), decoded.ID)
}

func TestRoutingKey(t *testing.T) {
	event := entity.NewTimelineEvent(entity.EntityKindTask, "t-1", entity.AuditActionDeleted, "Task deleted", time.Now(), "ana", nil)

	assert.Equal(t, "timeline.event.task_deleted", RoutingKey("timeline.event", event))
	assert.Equal(t, "task_deleted", RoutingKey("", event))
}

func TestTimelineEventMessageFromJSON_Invalid(t *testing.T) {
	_, err := TimelineEventMessageFromJSON([]byte("{not json"))
	assert.Error(t, err)
}
