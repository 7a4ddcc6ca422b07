package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

func TestAlertQueueRepository(t *testing.T) {
	repo := NewAlertQueueRepository(newTestDB(t))
	ctx := context.Background()

	due := entity.NewAlertJob(entity.AlertLedgerDesync, "ops@example.com", "Ledger desync",
		map[string]interface{}{"ProjectName": "Casa Jardim"})
	due.ScheduledAt = time.Now().UTC().Add(-time.Minute)
	later := entity.NewAlertJob(entity.AlertAuditWriteFailure, "ops@example.com", "Audit failure", nil)
	later.ScheduledAt = time.Now().UTC().Add(time.Hour)

	require.NoError(t, repo.Create(ctx, due))
	require.NoError(t, repo.Create(ctx, later))

	pending, err := repo.GetPendingJobs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, due.ID, pending[0].ID)
	assert.Equal(t, "Casa Jardim", pending[0].TemplateData["ProjectName"])

	job := pending[0]
	job.MarkSent("re_123")
	processed := time.Now().UTC().AddDate(0, 0, -40)
	job.ProcessedAt = &processed
	require.NoError(t, repo.Update(ctx, job))

	found, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AlertStatusSent, found.Status)
	assert.Equal(t, "re_123", found.ProviderID)

	removed, err := repo.DeleteOldSentJobs(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.GetByID(ctx, job.ID)
	assert.True(t, errors.Is(err, domainerror.ErrAlertJobNotFound))

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrAlertJobNotFound)
}
