// Package display holds the rules the UI uses to render care data: dose
// unit labels and automatic/manual tag groups.
package display

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

// The legacy "unité" token is always shown as a fertilizer stick.
const (
	legacyUnit      = "unité"
	fertilizerStick = "bâton d'engrais"
)

// plurals is read-only. Units missing from it are invariant (ml, g, ...).
var plurals = map[string]string{
	"bâton d'engrais": "bâtons d'engrais",
	"bâton":           "bâtons",
	"pastille":        "pastilles",
	"cuillère":        "cuillères",
	"dose":            "doses",
	"unité":           "unités",
}

// ResolveLabel returns the French label of unit for the given amount.
//
// amount is whatever the care record carried: nil, a number, a pointer to a
// number or a raw string. Falsy amounts (nil, 0, NaN, "", false) and the
// number 1 keep the singular; any other value pluralizes, strings included,
// without being parsed.
func ResolveLabel(unit string, amount any) string {
	if unit == legacyUnit {
		unit = fertilizerStick
	}
	if isFalsy(amount) || isOne(amount) {
		return unit
	}
	if p, ok := plurals[unit]; ok {
		return p
	}
	return unit
}

// DoseLabel renders an amount followed by its unit label, e.g. "2 bâtons".
// A nil amount yields the unit label alone.
func DoseLabel(amount *float64, unit string) string {
	if amount == nil {
		return ResolveLabel(unit, nil)
	}
	label := ResolveLabel(unit, *amount)
	n := strconv.FormatFloat(*amount, 'g', -1, 64)
	if label == "" {
		return n
	}
	return n + " " + label
}

func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	if n, ok := v.(json.Number); ok {
		if n == "" {
			return true
		}
		f, err := n.Float64()
		return err == nil && (f == 0 || math.IsNaN(f))
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	}
	return false
}

// isOne matches the number 1 only; the string "1" is not a number.
func isOne(v any) bool {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return err == nil && f == 1
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 1
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 1
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 1
	}
	return false
}
