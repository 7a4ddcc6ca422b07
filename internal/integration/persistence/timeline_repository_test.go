package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/integration/persistence/model"
)

func TestTimelineRepository(t *testing.T) {
	repo := NewTimelineRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	events := []*entity.TimelineEvent{
		entity.NewTimelineEvent(entity.EntityKindProject, "p-1", entity.AuditActionCreated,
			"Project created", base, "ana", []entity.FieldChange{{Field: "Name", NewValue: "Casa Jardim"}}),
		entity.NewTimelineEvent(entity.EntityKindProject, "p-1", entity.AuditActionUpdated,
			"Project updated: Budget", base.Add(time.Hour), "ana",
			[]entity.FieldChange{{Field: "Budget", OldValue: "90000.00", NewValue: "120000.00"}}),
		entity.NewTimelineEvent(entity.EntityKindTask, "t-9", entity.AuditActionDeleted,
			"Task deleted", base.Add(2*time.Hour), "bruno", nil),
	}
	for _, e := range events {
		require.NoError(t, repo.Append(ctx, e))
	}

	all, err := repo.List(ctx, adapter.TimelineFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "task_deleted", all[0].Type, "newest first")
	assert.Empty(t, all[0].Changes)

	kind := entity.EntityKindProject
	project, err := repo.List(ctx, adapter.TimelineFilter{EntityKind: &kind, EntityID: "p-1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, project, 1)
	assert.Equal(t, "project_updated", project[0].Type)
	assert.Equal(t, "ana", project[0].User)
	assert.Equal(t, []entity.FieldChange{{Field: "Budget", OldValue: "90000.00", NewValue: "120000.00"}}, project[0].Changes)
}

func TestTimelineRepository_StoresChangedFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewTimelineRepository(db)
	ctx := context.Background()

	event := entity.NewTimelineEvent(entity.EntityKindProject, "p-1", entity.AuditActionUpdated,
		"Project updated: Budget, Installments", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), "ana",
		[]entity.FieldChange{
			{Field: "Budget", OldValue: "90000.00", NewValue: "120000.00"},
			{Field: "Installments", OldValue: "3", NewValue: "4"},
		})
	require.NoError(t, repo.Append(ctx, event))

	var stored model.TimelineEventModel
	require.NoError(t, db.First(&stored, "id = ?", event.ID).Error)
	assert.Equal(t, model.StringList{"Budget", "Installments"}, stored.ChangedFields)
}
