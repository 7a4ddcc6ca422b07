package alert

import (
	"context"
	"fmt"
	"strconv"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// Service queues operator alerts for the worker to deliver.
type Service struct {
	queue     adapter.AlertQueueRepository
	recipient string
}

// NewService creates a new alert service sending to the operator address.
func NewService(queue adapter.AlertQueueRepository, recipient string) *Service {
	return &Service{
		queue:     queue,
		recipient: recipient,
	}
}

// NotifyOrphanedInstallments queues an alert listing paid installments kept beyond the installment count.
func (s *Service) NotifyOrphanedInstallments(ctx context.Context, input adapter.OrphanedInstallmentsAlert) error {
	lines := make([]interface{}, len(input.Orphaned))
	for i, inst := range input.Orphaned {
		line := fmt.Sprintf("#%d  %s  due %s", inst.Number, valueobject.FormatMoney(inst.Value), inst.DueDate.Format("2006-01-02"))
		if inst.PaymentDate != nil {
			line += "  paid " + inst.PaymentDate.Format("2006-01-02")
		}
		lines[i] = line
	}

	return s.enqueue(ctx, entity.AlertOrphanedPaidInstallment,
		fmt.Sprintf("Paid installments beyond the plan of %s", input.ProjectName),
		map[string]interface{}{
			"project_id":        input.ProjectID.String(),
			"project_name":      input.ProjectName,
			"installment_count": strconv.Itoa(input.InstallmentCount),
			"installments":      lines,
		},
	)
}

// NotifyLedgerDesync queues an alert for installments whose status was overridden by their transaction.
func (s *Service) NotifyLedgerDesync(ctx context.Context, input adapter.LedgerDesyncAlert) error {
	messages := make([]interface{}, len(input.Messages))
	for i, m := range input.Messages {
		messages[i] = m
	}

	return s.enqueue(ctx, entity.AlertLedgerDesync,
		fmt.Sprintf("Ledger out of sync for %s", input.ProjectName),
		map[string]interface{}{
			"project_id":   input.ProjectID.String(),
			"project_name": input.ProjectName,
			"messages":     messages,
		},
	)
}

// NotifyAuditFailure queues an alert for a lost timeline event.
func (s *Service) NotifyAuditFailure(ctx context.Context, input adapter.AuditFailureAlert) error {
	return s.enqueue(ctx, entity.AlertAuditWriteFailure,
		fmt.Sprintf("Timeline event lost for %s %s", input.EntityKind, input.EntityID),
		map[string]interface{}{
			"entity_kind": string(input.EntityKind),
			"entity_id":   input.EntityID,
			"action":      string(input.Action),
			"user":        input.User,
			"reason":      input.Reason,
		},
	)
}

func (s *Service) enqueue(ctx context.Context, kind entity.AlertKind, subject string, data map[string]interface{}) error {
	if s.recipient == "" {
		return domainerror.NewAlertError(
			domainerror.ErrCodeAlertQueueFailed,
			"failed to queue "+string(kind)+" alert",
			domainerror.ErrNoOperatorRecipient,
		)
	}

	job := entity.NewAlertJob(kind, s.recipient, subject, data)
	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewAlertError(
			domainerror.ErrCodeAlertQueueFailed,
			"failed to queue "+string(kind)+" alert",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.OperatorNotifier.
var _ adapter.OperatorNotifier = (*Service)(nil)
