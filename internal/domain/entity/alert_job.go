package entity

import (
	"time"

	"github.com/google/uuid"
)

// AlertStatus represents the status of an alert job in the queue.
type AlertStatus string

const (
	AlertStatusPending    AlertStatus = "pending"
	AlertStatusProcessing AlertStatus = "processing"
	AlertStatusSent       AlertStatus = "sent"
	AlertStatusFailed     AlertStatus = "failed"
)

// AlertKind selects the template an alert is rendered with.
type AlertKind string

const (
	AlertOrphanedPaidInstallment AlertKind = "orphaned_paid_installment"
	AlertLedgerDesync            AlertKind = "ledger_desync"
	AlertAuditWriteFailure       AlertKind = "audit_write_failure"
)

// AlertJob represents an operator alert waiting to be delivered.
type AlertJob struct {
	ID             uuid.UUID
	Kind           AlertKind
	RecipientEmail string
	Subject        string
	TemplateData   map[string]interface{}
	Status         AlertStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ProviderID     string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewAlertJob creates a new AlertJob with default values.
func NewAlertJob(kind AlertKind, recipientEmail, subject string, data map[string]interface{}) *AlertJob {
	now := time.Now().UTC()
	return &AlertJob{
		ID:             uuid.New(),
		Kind:           kind,
		RecipientEmail: recipientEmail,
		Subject:        subject,
		TemplateData:   data,
		Status:         AlertStatusPending,
		MaxAttempts:    3,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing marks the alert job as currently being processed.
func (a *AlertJob) MarkProcessing() {
	a.Status = AlertStatusProcessing
}

// MarkSent marks the alert job as delivered.
func (a *AlertJob) MarkSent(providerID string) {
	a.Status = AlertStatusSent
	a.ProviderID = providerID
	now := time.Now().UTC()
	a.ProcessedAt = &now
}

// MarkFailed records a delivery failure and schedules a retry if attempts remain.
func (a *AlertJob) MarkFailed(err error, permanent bool) {
	a.Attempts++
	a.LastError = err.Error()

	if permanent || a.Attempts >= a.MaxAttempts {
		a.Status = AlertStatusFailed
		now := time.Now().UTC()
		a.ProcessedAt = &now
		return
	}

	a.Status = AlertStatusPending
	a.ScheduledAt = a.nextRetry()
}

// nextRetry backs off 0s, 1min, then 5min between attempts.
func (a *AlertJob) nextRetry() time.Time {
	delays := []time.Duration{0, 1 * time.Minute, 5 * time.Minute}
	if a.Attempts < len(delays) {
		return time.Now().UTC().Add(delays[a.Attempts])
	}
	return time.Now().UTC().Add(5 * time.Minute)
}

// CanRetry returns true if the alert job can be retried.
func (a *AlertJob) CanRetry() bool {
	return a.Attempts < a.MaxAttempts
}
