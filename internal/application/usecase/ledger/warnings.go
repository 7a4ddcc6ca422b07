package ledger

import (
	"context"
	"log/slog"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

// ReportWarnings logs reconciliation and ledger warnings for a project and
// forwards the ones that need operator review. Nothing here can fail the caller.
func ReportWarnings(
	ctx context.Context,
	notifier adapter.OperatorNotifier,
	project *entity.Project,
	orphaned []*entity.Installment,
	warnings []*domainerror.LedgerError,
) {
	logger := slog.With("project_id", project.ID)

	var desync []string
	for _, w := range warnings {
		logger.Warn("Ledger warning", "code", w.Code, "message", w.Message)
		if w.Code == domainerror.ErrCodeLedgerDesync {
			desync = append(desync, w.Message)
		}
	}
	for _, inst := range orphaned {
		logger.Warn("Paid installment kept beyond installment count",
			"code", domainerror.ErrCodeOrphanedPaidInstallment,
			"installment_number", inst.Number,
			"installment_count", project.ScheduleSize(),
		)
	}

	if notifier == nil {
		return
	}

	if len(orphaned) > 0 {
		err := notifier.NotifyOrphanedInstallments(ctx, adapter.OrphanedInstallmentsAlert{
			ProjectID:        project.ID,
			ProjectName:      project.Name,
			InstallmentCount: project.ScheduleSize(),
			Orphaned:         orphaned,
		})
		if err != nil {
			logger.Error("Failed to queue orphaned installment alert", "error", err)
		}
	}

	if len(desync) > 0 {
		err := notifier.NotifyLedgerDesync(ctx, adapter.LedgerDesyncAlert{
			ProjectID:   project.ID,
			ProjectName: project.Name,
			Messages:    desync,
		})
		if err != nil {
			logger.Error("Failed to queue ledger desync alert", "error", err)
		}
	}
}

// WarningMessages flattens warnings into their messages.
func WarningMessages(warnings []*domainerror.LedgerError) []string {
	messages := make([]string, len(warnings))
	for i, w := range warnings {
		messages[i] = w.Message
	}
	return messages
}
