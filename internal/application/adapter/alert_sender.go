// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// SendAlertInput represents a rendered alert ready to be delivered.
type SendAlertInput struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// SendAlertResult represents the result of delivering an alert.
type SendAlertResult struct {
	ProviderID string
}

// AlertSender defines the interface for delivering operator alerts via an external provider.
type AlertSender interface {
	// Send delivers an alert via the provider (e.g., Resend).
	Send(ctx context.Context, input SendAlertInput) (*SendAlertResult, error)
}

// OperatorNotifier queues operator alerts. Implementations never block the caller
// on delivery and failures are logged rather than returned to the mutation.
type OperatorNotifier interface {
	// NotifyOrphanedInstallments reports paid installments kept beyond the installment count.
	NotifyOrphanedInstallments(ctx context.Context, input OrphanedInstallmentsAlert) error

	// NotifyLedgerDesync reports installments whose status was overridden by their transaction.
	NotifyLedgerDesync(ctx context.Context, input LedgerDesyncAlert) error

	// NotifyAuditFailure reports a timeline event that could not be recorded.
	NotifyAuditFailure(ctx context.Context, input AuditFailureAlert) error
}

// OrphanedInstallmentsAlert describes orphaned paid installments of one project.
type OrphanedInstallmentsAlert struct {
	ProjectID        uuid.UUID
	ProjectName      string
	InstallmentCount int
	Orphaned         []*entity.Installment
}

// LedgerDesyncAlert describes the status conflicts found while syncing one project.
type LedgerDesyncAlert struct {
	ProjectID   uuid.UUID
	ProjectName string
	Messages    []string
}

// AuditFailureAlert describes a mutation whose timeline event was lost.
type AuditFailureAlert struct {
	EntityKind entity.EntityKind
	EntityID   string
	Action     entity.AuditAction
	User       string
	Reason     string
}
