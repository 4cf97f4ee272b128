// Package evaluator implements the Chirp runtime evaluator.
package evaluator

import (
	"strconv"
	"strings"
)

// Value is the interface for all Chirp runtime values. The variant is
// closed: a value is either a Number or a List.
// Use the sealed marker method to restrict implementations to this package.
type Value interface {
	value() // sealed marker
}

// Number represents a numeric value (IEEE754 double).
type Number struct {
	Value float64
}

func (Number) value() {}

// List represents an ordered sequence of values. Lists arise only from
// array literals used as values, never from call sugar.
type List struct {
	Items []Value
}

func (List) value() {}

// NewNumber creates a numeric value.
func NewNumber(n float64) Value {
	return Number{Value: n}
}

// NewList creates a list value.
func NewList(items []Value) Value {
	return List{Items: items}
}

// Truthy returns the boolean interpretation of a number: non-zero is true.
func Truthy(n Number) bool {
	return n.Value != 0
}

// TypeName returns the Chirp type name for error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case Number:
		return "number"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// FormatValue renders a value for diagnostics and stack traces.
func FormatValue(v Value) string {
	switch val := v.(type) {
	case Number:
		return strconv.FormatFloat(val.Value, 'g', -1, 64)
	case List:
		parts := make([]string, len(val.Items))
		for i, item := range val.Items {
			parts[i] = FormatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "?"
	}
}
