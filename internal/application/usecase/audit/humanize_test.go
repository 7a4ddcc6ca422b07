package audit

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

func TestHumanize(t *testing.T) {
	day := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	instant := time.Date(2024, 2, 29, 14, 30, 0, 0, time.UTC)
	number := 3
	id := uuid.MustParse("5f1d3c1e-8d7e-4c4a-9a51-2f1f0a6d7c11")

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "Anteprojeto", "Anteprojeto"},
		{"decimal", decimal.RequireFromString("33333.3"), "33333.30"},
		{"calendar date", day, "2024-02-29"},
		{"instant", instant, "2024-02-29T14:30:00Z"},
		{"nil time pointer", (*time.Time)(nil), ""},
		{"time pointer", &day, "2024-02-29"},
		{"int pointer", &number, "3"},
		{"bool", true, "Yes"},
		{"uuid", id, "5f1d3c1e-8d7e-4c4a-9a51-2f1f0a6d7c11"},
		{"strings", []string{"a", "b"}, "a, b"},
		{"float", float64(1500), "1500"},
		{"large float", float64(2500000), "2500000"},
		{"fractional float", 1234567.5, "1234567.5"},
		{"float32", float32(0.25), "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Humanize(tt.value); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	changes := []entity.FieldChange{{Field: "Budget"}, {Field: "Installments"}}

	if got := Describe(entity.EntityKindProject, entity.AuditActionUpdated, changes); got != "Project updated: Budget, Installments" {
		t.Errorf("unexpected description %q", got)
	}
	if got := Describe(entity.EntityKindTask, entity.AuditActionCreated, changes); got != "Task created" {
		t.Errorf("unexpected description %q", got)
	}
}

func TestDiff_JSONNumbersAreNotInExponentForm(t *testing.T) {
	var oldRecord, newRecord Record
	if err := json.Unmarshal([]byte(`{"budget":1000000}`), &oldRecord); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"budget":2500000}`), &newRecord); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	changes := Diff(oldRecord, newRecord, []TrackedField{{Key: "budget", Label: "Budget"}})
	expected := []entity.FieldChange{{Field: "Budget", OldValue: "1000000", NewValue: "2500000"}}
	if len(changes) != 1 || changes[0] != expected[0] {
		t.Errorf("expected %v, got %v", expected, changes)
	}
}
