package alert

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
	"github.com/arquitetura-app/backend/internal/integration/alert/templates"
)

// Worker processes the alert queue and sends alerts.
type Worker struct {
	queue         adapter.AlertQueueRepository
	sender        adapter.AlertSender
	renderer      *templates.Renderer
	pollInterval  time.Duration
	batchSize     int
	retentionDays int
}

// WorkerConfig holds configuration for the alert worker.
type WorkerConfig struct {
	PollInterval  time.Duration
	BatchSize     int
	RetentionDays int // Sent alerts older than this are purged daily
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval:  5 * time.Second,
		BatchSize:     10,
		RetentionDays: 30,
	}
}

// NewWorker creates a new alert worker.
func NewWorker(queue adapter.AlertQueueRepository, sender adapter.AlertSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	return &Worker{
		queue:         queue,
		sender:        sender,
		renderer:      renderer,
		pollInterval:  config.PollInterval,
		batchSize:     config.BatchSize,
		retentionDays: config.RetentionDays,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Alert worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	cleanup := time.NewTicker(24 * time.Hour)
	defer cleanup.Stop()

	// Process immediately on start, then on ticker
	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Alert worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		case <-cleanup.C:
			w.purgeSent(ctx)
		}
	}
}

// ProcessNow processes all pending alerts immediately.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}

func (w *Worker) processBatch(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending alert jobs", "error", err)
		return
	}

	if len(jobs) == 0 {
		return
	}

	slog.Debug("Processing alert batch", "count", len(jobs))

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
			w.processJob(ctx, job)
		}
	}
}

func (w *Worker) processJob(ctx context.Context, job *entity.AlertJob) {
	logger := slog.With(
		"job_id", job.ID,
		"kind", job.Kind,
		"recipient", job.RecipientEmail,
	)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as processing", "error", err)
		return
	}

	html, text, err := w.renderTemplate(job)
	if err != nil {
		logger.Error("Failed to render alert template", "error", err)
		w.handleFailure(ctx, job, err, true) // Template errors are permanent
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendAlertInput{
		To:      job.RecipientEmail,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("Failed to send alert", "error", err)

		var alertErr *domainerror.AlertError
		isPermanent := errors.As(err, &alertErr) && alertErr.Code == domainerror.ErrCodePermanentAlertFailure

		w.handleFailure(ctx, job, err, isPermanent)
		return
	}

	job.MarkSent(result.ProviderID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return
	}

	logger.Info("Alert sent successfully", "provider_id", result.ProviderID)
}

func (w *Worker) renderTemplate(job *entity.AlertJob) (html string, text string, err error) {
	var data interface{}
	switch job.Kind {
	case entity.AlertOrphanedPaidInstallment:
		data = templates.OrphanedInstallmentsData{
			ProjectID:        getString(job.TemplateData, "project_id"),
			ProjectName:      getString(job.TemplateData, "project_name"),
			InstallmentCount: getString(job.TemplateData, "installment_count"),
			Installments:     getStrings(job.TemplateData, "installments"),
		}
	case entity.AlertLedgerDesync:
		data = templates.LedgerDesyncData{
			ProjectID:   getString(job.TemplateData, "project_id"),
			ProjectName: getString(job.TemplateData, "project_name"),
			Messages:    getStrings(job.TemplateData, "messages"),
		}
	case entity.AlertAuditWriteFailure:
		data = templates.AuditFailureData{
			EntityKind: getString(job.TemplateData, "entity_kind"),
			EntityID:   getString(job.TemplateData, "entity_id"),
			Action:     getString(job.TemplateData, "action"),
			User:       getString(job.TemplateData, "user"),
			Reason:     getString(job.TemplateData, "reason"),
		}
	default:
		return "", "", domainerror.NewAlertError(
			domainerror.ErrCodeInvalidAlertTemplate,
			"unknown alert kind",
			domainerror.ErrInvalidAlertTemplate,
		)
	}

	html, text, err = w.renderer.Render(string(job.Kind), data)
	if err != nil {
		return "", "", domainerror.NewAlertError(domainerror.ErrCodeAlertRenderFailed, "failed to render alert", err)
	}
	return html, text, nil
}

func (w *Worker) handleFailure(ctx context.Context, job *entity.AlertJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		slog.Error("Failed to update job after failure",
			"job_id", job.ID,
			"error", updateErr,
		)
	}

	if job.Status == entity.AlertStatusFailed {
		slog.Warn("Alert job permanently failed",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
	} else {
		slog.Info("Alert job scheduled for retry",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"scheduled_at", job.ScheduledAt,
		)
	}
}

func (w *Worker) purgeSent(ctx context.Context) {
	removed, err := w.queue.DeleteOldSentJobs(ctx, w.retentionDays)
	if err != nil {
		slog.Error("Failed to purge sent alerts", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("Purged sent alerts", "count", removed)
	}
}

// getString safely extracts a string from a map.
func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// getStrings extracts a list of strings, as stored or as decoded from JSON.
func getStrings(data map[string]interface{}, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
