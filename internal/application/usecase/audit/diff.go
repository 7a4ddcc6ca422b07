package audit

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// Diff compares two versions of an entity over the tracked fields and returns
// one change per differing field, in field order. Scalars, decimals, uuids and
// times compare by value (through pointers too); slices, maps, funcs and
// pointers to structs compare by reference.
func Diff(oldRecord, newRecord Record, fields []TrackedField) []entity.FieldChange {
	var changes []entity.FieldChange
	for _, f := range fields {
		oldValue, newValue := oldRecord[f.Key], newRecord[f.Key]
		if sameValue(oldValue, newValue) {
			continue
		}
		changes = append(changes, entity.FieldChange{
			Field:    f.Label,
			OldValue: Humanize(oldValue),
			NewValue: Humanize(newValue),
		})
	}
	return changes
}

// Snapshot lists every tracked field of a record, on the new side for creations
// and on the old side for deletions.
func Snapshot(record Record, fields []TrackedField, action entity.AuditAction) []entity.FieldChange {
	changes := make([]entity.FieldChange, 0, len(fields))
	for _, f := range fields {
		change := entity.FieldChange{Field: f.Label}
		if action == entity.AuditActionDeleted {
			change.OldValue = Humanize(record[f.Key])
		} else {
			change.NewValue = Humanize(record[f.Key])
		}
		changes = append(changes, change)
	}
	return changes
}

func sameValue(a, b any) bool {
	a, b = deref(a), deref(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case decimal.Decimal:
		bv, ok := b.(decimal.Decimal)
		return ok && av.Equal(bv)
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case uuid.UUID:
		bv, ok := b.(uuid.UUID)
		return ok && av == bv
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ra.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		if ra.Kind() != rb.Kind() || ra.Type() != rb.Type() {
			return false
		}
		if ra.Kind() == reflect.Slice && ra.Len() != rb.Len() {
			return false
		}
		return ra.Pointer() == rb.Pointer()
	}

	if isNumber(ra.Kind()) && isNumber(rb.Kind()) {
		return toFloat(ra) == toFloat(rb)
	}
	if ra.Type() != rb.Type() || !ra.Comparable() {
		return false
	}
	return a == b
}

// deref follows pointers to scalars, decimals and times so they compare by value.
// Pointers to other structs are left alone.
func deref(value any) any {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		elem := rv.Elem()
		if elem.Kind() == reflect.Struct && !isValueStruct(elem.Type()) {
			return rv.Interface()
		}
		rv = elem
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	timeType    = reflect.TypeOf(time.Time{})
)

func isValueStruct(t reflect.Type) bool {
	return t == decimalType || t == timeType
}

func isNumber(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch {
	case v.CanInt():
		return float64(v.Int())
	case v.CanUint():
		return float64(v.Uint())
	default:
		return v.Float()
	}
}
