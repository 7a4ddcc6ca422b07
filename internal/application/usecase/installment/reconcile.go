package installment

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// ReconcileInput holds the stored schedule and the freshly generated one.
type ReconcileInput struct {
	Existing  []*entity.Installment
	Generated []*entity.Installment
	// PreviousCount is the schedule size before the edit. Paid installments only
	// take the regenerated due date when the size did not change.
	PreviousCount int
}

// ReconcileResult is the merged schedule.
type ReconcileResult struct {
	Installments []*entity.Installment
	// Orphaned lists paid installments kept beyond the new installment count.
	Orphaned []*entity.Installment
	// Drift is the generated total minus the merged total. It is non-zero when
	// preserved paid values differ from what the new terms would have produced.
	Drift decimal.Decimal
}

// HasOrphans reports whether any paid installment was kept beyond the schedule.
func (r ReconcileResult) HasOrphans() bool {
	return len(r.Orphaned) > 0
}

// Reconcile merges a regenerated schedule into the stored one, matching by
// installment number. Paid installments are never lost or rewritten: their
// value and payment date are kept, and a paid installment beyond the new count
// stays in the schedule flagged as orphaned. Pending installments take the
// generated values but keep their id, so reconciling twice with the same
// inputs yields the same schedule. Inputs are not modified.
func Reconcile(input ReconcileInput) ReconcileResult {
	existingByNumber := make(map[int]*entity.Installment, len(input.Existing))
	for _, inst := range input.Existing {
		existingByNumber[inst.Number] = inst
	}

	countUnchanged := input.PreviousCount == len(input.Generated)
	merged := make([]*entity.Installment, 0, len(input.Generated))
	generatedTotal := decimal.Zero

	for _, gen := range input.Generated {
		generatedTotal = generatedTotal.Add(gen.Value)

		existing, found := existingByNumber[gen.Number]
		switch {
		case !found:
			merged = append(merged, gen.Clone())
		case existing.IsPaid():
			kept := existing.Clone()
			kept.Orphaned = false
			if countUnchanged {
				kept.DueDate = gen.DueDate
			}
			merged = append(merged, kept)
		default:
			regenerated := gen.Clone()
			regenerated.ID = existing.ID
			merged = append(merged, regenerated)
		}
	}

	var orphaned []*entity.Installment
	for _, inst := range input.Existing {
		if inst.Number <= len(input.Generated) || !inst.IsPaid() {
			continue
		}
		kept := inst.Clone()
		kept.Orphaned = true
		merged = append(merged, kept)
		orphaned = append(orphaned, kept)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Number < merged[j].Number
	})
	sort.SliceStable(orphaned, func(i, j int) bool {
		return orphaned[i].Number < orphaned[j].Number
	})

	mergedTotal := decimal.Zero
	for _, inst := range merged {
		mergedTotal = mergedTotal.Add(inst.Value)
	}

	return ReconcileResult{
		Installments: merged,
		Orphaned:     orphaned,
		Drift:        valueobject.RoundMoney(generatedTotal.Sub(mergedTotal)),
	}
}
