package alert

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
	"github.com/arquitetura-app/backend/internal/integration/alert/templates"
)

type memoryQueue struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*entity.AlertJob
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{jobs: make(map[uuid.UUID]*entity.AlertJob)}
}

func (q *memoryQueue) Create(_ context.Context, job *entity.AlertJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.AlertJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []*entity.AlertJob
	for _, job := range q.jobs {
		if job.Status == entity.AlertStatusPending && !job.ScheduledAt.After(time.Now().UTC()) && len(out) < limit {
			out = append(out, job)
		}
	}
	return out, nil
}

func (q *memoryQueue) Update(_ context.Context, job *entity.AlertJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.AlertJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	job, ok := q.jobs[id]
	if !ok {
		return nil, domainerror.ErrAlertJobNotFound
	}
	return job, nil
}

func (q *memoryQueue) DeleteOldSentJobs(context.Context, int) (int64, error) {
	return 0, nil
}

func (q *memoryQueue) only(t *testing.T) *entity.AlertJob {
	t.Helper()
	q.mu.Lock()
	defer q.mu.Unlock()
	require.Len(t, q.jobs, 1)
	for _, job := range q.jobs {
		return job
	}
	return nil
}

func newWorker(t *testing.T, queue adapter.AlertQueueRepository, sender adapter.AlertSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func TestService_QueuesAndWorkerSends(t *testing.T) {
	ctx := context.Background()
	paidAt := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		notify   func(s *Service) error
		kind     entity.AlertKind
		contains []string
	}{
		{
			name: "orphaned paid installments",
			notify: func(s *Service) error {
				return s.NotifyOrphanedInstallments(ctx, adapter.OrphanedInstallmentsAlert{
					ProjectID:        uuid.New(),
					ProjectName:      "Casa Jardim",
					InstallmentCount: 2,
					Orphaned: []*entity.Installment{{
						Number:      3,
						DueDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
						Value:       decimal.NewFromInt(30000),
						Status:      entity.InstallmentStatusPaid,
						PaymentDate: &paidAt,
					}},
				})
			},
			kind:     entity.AlertOrphanedPaidInstallment,
			contains: []string{"Casa Jardim", "#3  30000.00  due 2024-03-01  paid 2024-03-02"},
		},
		{
			name: "ledger desync",
			notify: func(s *Service) error {
				return s.NotifyLedgerDesync(ctx, adapter.LedgerDesyncAlert{
					ProjectID:   uuid.New(),
					ProjectName: "Casa Jardim",
					Messages:    []string{"installment 2 is pending but its transaction is completed"},
				})
			},
			kind:     entity.AlertLedgerDesync,
			contains: []string{"installment 2 is pending but its transaction is completed"},
		},
		{
			name: "audit failure",
			notify: func(s *Service) error {
				return s.NotifyAuditFailure(ctx, adapter.AuditFailureAlert{
					EntityKind: entity.EntityKindTask,
					EntityID:   "t-1",
					Action:     entity.AuditActionUpdated,
					User:       "ana",
					Reason:     "database is locked",
				})
			},
			kind:     entity.AlertAuditWriteFailure,
			contains: []string{"t-1", "database is locked"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := newMemoryQueue()
			sender := NewMockAlertSender()
			service := NewService(queue, "ops@example.com")

			require.NoError(t, tt.notify(service))
			job := queue.only(t)
			assert.Equal(t, tt.kind, job.Kind)

			newWorker(t, queue, sender).ProcessNow(ctx)

			sent := sender.Sent()
			require.Len(t, sent, 1)
			assert.Equal(t, "ops@example.com", sent[0].To)
			for _, fragment := range tt.contains {
				assert.True(t, strings.Contains(sent[0].Text, fragment), "text should contain %q:\n%s", fragment, sent[0].Text)
				assert.Contains(t, sent[0].HTML, strings.Split(fragment, "  ")[0])
			}
			assert.Equal(t, entity.AlertStatusSent, job.Status)
		})
	}
}

func TestService_NoRecipient(t *testing.T) {
	queue := newMemoryQueue()
	service := NewService(queue, "")

	err := service.NotifyLedgerDesync(context.Background(), adapter.LedgerDesyncAlert{ProjectName: "Casa Jardim"})
	assert.ErrorIs(t, err, domainerror.ErrNoOperatorRecipient)
	assert.Empty(t, queue.jobs)
}

func TestWorker_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("temporary failure is retried later", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockAlertSender()
		sender.SetFailure(errors.New("429 too many requests"), false)
		require.NoError(t, NewService(queue, "ops@example.com").NotifyAuditFailure(ctx, adapter.AuditFailureAlert{}))

		newWorker(t, queue, sender).ProcessNow(ctx)

		job := queue.only(t)
		assert.Equal(t, entity.AlertStatusPending, job.Status)
		assert.Equal(t, 1, job.Attempts)
		assert.True(t, job.ScheduledAt.After(time.Now().UTC()))
	})

	t.Run("permanent failure stops", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockAlertSender()
		sender.SetFailure(errors.New("401 unauthorized"), true)
		require.NoError(t, NewService(queue, "ops@example.com").NotifyAuditFailure(ctx, adapter.AuditFailureAlert{}))

		newWorker(t, queue, sender).ProcessNow(ctx)

		assert.Equal(t, entity.AlertStatusFailed, queue.only(t).Status)
	})

	t.Run("unknown kind is a permanent failure", func(t *testing.T) {
		queue := newMemoryQueue()
		require.NoError(t, queue.Create(ctx, entity.NewAlertJob("unknown", "ops@example.com", "?", nil)))

		newWorker(t, queue, NewMockAlertSender()).ProcessNow(ctx)

		job := queue.only(t)
		assert.Equal(t, entity.AlertStatusFailed, job.Status)
		assert.Contains(t, job.LastError, "unknown alert kind")
	})
}

func TestIsPermanentError(t *testing.T) {
	assert.True(t, isPermanentError(errors.New("[ERROR]: 422 validation_error")))
	assert.True(t, isPermanentError(errors.New("403 Forbidden")))
	assert.False(t, isPermanentError(errors.New("500 internal server error")))
	assert.False(t, isPermanentError(nil))
}
