package overview

import (
	"fmt"
	"strings"
)

// FilterKind distinguishes plain event-property filters from computed
// expression filters used for set-once properties.
type FilterKind string

const (
	FilterKindEvent    FilterKind = "event"
	FilterKindComputed FilterKind = "computed"
)

// FilterOperator is the comparison applied by an event filter. Only exact
// matching is used by the overview screen.
type FilterOperator string

// OperatorExact matches an event property against one or more values.
const OperatorExact FilterOperator = "exact"

// PropertyFilter narrows every query embedded in the derived tiles.
//
// For event filters Key is the raw property name and Values holds the ordered
// match set. For computed filters Key is a generated expression string that
// encodes exactly one (property, value) pair; Values is unused. Set-once
// properties are only ever represented as computed filters.
type PropertyFilter struct {
	Kind     FilterKind     `json:"kind" yaml:"kind"`
	Key      string         `json:"key" yaml:"key"`
	Operator FilterOperator `json:"operator,omitempty" yaml:"operator,omitempty"`
	Values   []any          `json:"values,omitempty" yaml:"values,omitempty"`
}

var setOnceProperties = map[string]struct{}{
	"$initial_pathname":     {},
	"$initial_referrer":     {},
	"$initial_utm_source":   {},
	"$initial_utm_campaign": {},
}

// IsSetOnceProperty reports whether the property is only set at a person's
// first event and therefore filtered via a computed expression.
func IsSetOnceProperty(key string) bool {
	_, ok := setOnceProperties[key]
	return ok
}

// EncodeSetOnceExpression generates the expression stored as the Key of a
// computed filter. Values are single-quoted with embedded quotes escaped so
// the prefix test in expressionEncodesProperty stays unambiguous.
func EncodeSetOnceExpression(property string, value any) string {
	return setOncePrefix(property) + quoteExpressionValue(value)
}

// NewEventFilter builds an exact-match event filter for a single value.
func NewEventFilter(key string, value any) PropertyFilter {
	return PropertyFilter{
		Kind:     FilterKindEvent,
		Key:      key,
		Operator: OperatorExact,
		Values:   []any{value},
	}
}

// NewSetOnceFilter builds a computed filter encoding one set-once value.
func NewSetOnceFilter(property string, value any) PropertyFilter {
	return PropertyFilter{
		Kind: FilterKindComputed,
		Key:  EncodeSetOnceExpression(property, value),
	}
}

func setOncePrefix(property string) string {
	return fmt.Sprintf("properties.%s = ", property)
}

func quoteExpressionValue(value any) string {
	text := fmt.Sprintf("%v", value)
	return "'" + strings.ReplaceAll(text, "'", "\\'") + "'"
}

// expressionEncodesProperty re-derives whether a stored expression belongs to
// the given set-once property by comparing against a freshly generated prefix.
// Identity matching by regeneration keeps the store free of an expression
// parser at the cost of supporting a single value per set-once property.
func expressionEncodesProperty(expression, property string) bool {
	return strings.HasPrefix(expression, setOncePrefix(property))
}

// toggleFilter is the reducer behind Store.ToggleFilter. It returns a new
// slice; the input is never mutated and relative order of untouched entries is
// preserved.
func toggleFilter(filters []PropertyFilter, key string, value any) []PropertyFilter {
	if IsSetOnceProperty(key) {
		return toggleSetOnceFilter(filters, key, value)
	}
	return toggleEventFilter(filters, key, value)
}

func toggleEventFilter(filters []PropertyFilter, key string, value any) []PropertyFilter {
	next := make([]PropertyFilter, 0, len(filters)+1)
	found := false
	for _, f := range filters {
		if f.Kind != FilterKindEvent || f.Key != key {
			next = append(next, f)
			continue
		}
		found = true
		switch {
		case containsValue(f.Values, value) && len(f.Values) > 1:
			// Clicking a value inside a multi-select collapses to it alone.
			next = append(next, NewEventFilter(key, value))
		case containsValue(f.Values, value):
			// Sole value toggles the filter off entirely.
		default:
			merged := append(append([]any{}, f.Values...), value)
			f.Values = merged
			next = append(next, f)
		}
	}
	if !found {
		next = append(next, NewEventFilter(key, value))
	}
	return next
}

func toggleSetOnceFilter(filters []PropertyFilter, property string, value any) []PropertyFilter {
	expr := EncodeSetOnceExpression(property, value)
	next := make([]PropertyFilter, 0, len(filters)+1)
	found := false
	for _, f := range filters {
		if f.Kind != FilterKindComputed || !expressionEncodesProperty(f.Key, property) {
			next = append(next, f)
			continue
		}
		found = true
		if f.Key == expr {
			// Same encoded value toggles the filter off.
			continue
		}
		// Set-once properties are single-select: replace in place.
		next = append(next, PropertyFilter{Kind: FilterKindComputed, Key: expr})
	}
	if !found {
		next = append(next, PropertyFilter{Kind: FilterKindComputed, Key: expr})
	}
	return next
}

func containsValue(values []any, value any) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// cloneFilters copies the list plus each event filter's value slice so state
// snapshots cannot be mutated by callers.
func cloneFilters(filters []PropertyFilter) []PropertyFilter {
	if filters == nil {
		return nil
	}
	out := make([]PropertyFilter, len(filters))
	for i, f := range filters {
		if f.Values != nil {
			f.Values = append([]any{}, f.Values...)
		}
		out[i] = f
	}
	return out
}
