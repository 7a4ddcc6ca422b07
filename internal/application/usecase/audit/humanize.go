package audit

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/domain/entity"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
)

// Humanize renders a field value for display in the timeline.
// Missing values render as the empty string.
func Humanize(value any) string {
	if value == nil || isNilPointer(value) {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case decimal.Decimal:
		return valueobject.FormatMoney(v)
	case *decimal.Decimal:
		return valueobject.FormatMoney(*v)
	case time.Time:
		return formatTime(v)
	case *time.Time:
		return formatTime(*v)
	case uuid.UUID:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case []string:
		return strings.Join(v, ", ")
	}

	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer {
		return Humanize(rv.Elem().Interface())
	}
	return fmt.Sprint(value)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Equal(valueobject.StartOfDay(t)) {
		return t.Format(valueobject.DateLayout)
	}
	return t.UTC().Format(time.RFC3339)
}

func isNilPointer(value any) bool {
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Describe builds the one-line summary of a timeline event, e.g.
// "Project updated: Budget, Installments".
func Describe(kind entity.EntityKind, action entity.AuditAction, changes []entity.FieldChange) string {
	subject := strings.ReplaceAll(string(kind), "_", " ")
	if subject != "" {
		subject = strings.ToUpper(subject[:1]) + subject[1:]
	}

	description := subject + " " + string(action)
	if action != entity.AuditActionUpdated || len(changes) == 0 {
		return description
	}

	labels := make([]string, len(changes))
	for i, c := range changes {
		labels[i] = c.Field
	}
	return description + ": " + strings.Join(labels, ", ")
}
