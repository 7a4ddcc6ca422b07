// Package audit builds the field-level audit trail shared by every entity kind.
package audit

import "github.com/arquitetura-app/backend/internal/domain/entity"

// Record is a flat view of an entity keyed by field name.
type Record map[string]any

// TrackedField is a field whose changes are written to the timeline.
type TrackedField struct {
	Key   string
	Label string
}

// DefaultFieldLabels lists the tracked fields of every entity kind, in the
// order changes are reported.
var DefaultFieldLabels = map[entity.EntityKind][]TrackedField{
	entity.EntityKindProject: {
		{Key: "name", Label: "Name"},
		{Key: "client_name", Label: "Client"},
		{Key: "budget", Label: "Budget"},
		{Key: "payment_method", Label: "Payment method"},
		{Key: "installment_count", Label: "Installments"},
		{Key: "anchor_date", Label: "First due date"},
	},
	entity.EntityKindClient: {
		{Key: "name", Label: "Name"},
		{Key: "email", Label: "Email"},
		{Key: "phone", Label: "Phone"},
		{Key: "company", Label: "Company"},
		{Key: "address", Label: "Address"},
	},
	entity.EntityKindStage: {
		{Key: "name", Label: "Name"},
		{Key: "status", Label: "Status"},
		{Key: "start_date", Label: "Start date"},
		{Key: "end_date", Label: "End date"},
		{Key: "position", Label: "Position"},
	},
	entity.EntityKindTask: {
		{Key: "title", Label: "Title"},
		{Key: "description", Label: "Description"},
		{Key: "status", Label: "Status"},
		{Key: "priority", Label: "Priority"},
		{Key: "assignee", Label: "Assignee"},
		{Key: "stage", Label: "Stage"},
		{Key: "due_date", Label: "Due date"},
	},
	entity.EntityKindMember: {
		{Key: "name", Label: "Name"},
		{Key: "email", Label: "Email"},
		{Key: "role", Label: "Role"},
		{Key: "phone", Label: "Phone"},
	},
	entity.EntityKindTransaction: {
		{Key: "description", Label: "Description"},
		{Key: "type", Label: "Type"},
		{Key: "amount", Label: "Amount"},
		{Key: "status", Label: "Status"},
		{Key: "date", Label: "Date"},
		{Key: "due_date", Label: "Due date"},
		{Key: "installment_number", Label: "Installment"},
		{Key: "paid_at", Label: "Paid at"},
	},
	entity.EntityKindInstallment: {
		{Key: "number", Label: "Number"},
		{Key: "due_date", Label: "Due date"},
		{Key: "value", Label: "Value"},
		{Key: "status", Label: "Status"},
		{Key: "payment_date", Label: "Payment date"},
		{Key: "orphaned", Label: "Orphaned"},
	},
}
