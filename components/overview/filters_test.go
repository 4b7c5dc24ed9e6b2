package overview

import (
	"reflect"
	"testing"
)

func TestToggleFilterAddsEventFilter(t *testing.T) {
	filters := toggleFilter(nil, "$pathname", "/home")
	want := []PropertyFilter{{
		Kind:     FilterKindEvent,
		Key:      "$pathname",
		Operator: OperatorExact,
		Values:   []any{"/home"},
	}}
	if !reflect.DeepEqual(filters, want) {
		t.Fatalf("expected single event filter, got %#v", filters)
	}
}

func TestToggleFilterDoubleToggleRestoresState(t *testing.T) {
	filters := toggleFilter(nil, "$browser", "Chrome")
	filters = toggleFilter(filters, "$browser", "Chrome")
	if len(filters) != 0 {
		t.Fatalf("expected empty filter list after double toggle, got %#v", filters)
	}

	filters = toggleFilter(nil, "$initial_utm_source", "newsletter")
	filters = toggleFilter(filters, "$initial_utm_source", "newsletter")
	if len(filters) != 0 {
		t.Fatalf("expected empty list after set-once double toggle, got %#v", filters)
	}
}

func TestToggleFilterUnionsEventValues(t *testing.T) {
	filters := toggleFilter(nil, "$browser", "Chrome")
	filters = toggleFilter(filters, "$browser", "Firefox")
	if len(filters) != 1 {
		t.Fatalf("expected one filter, got %d", len(filters))
	}
	if !reflect.DeepEqual(filters[0].Values, []any{"Chrome", "Firefox"}) {
		t.Fatalf("expected value union, got %#v", filters[0].Values)
	}
}

func TestToggleFilterCollapsesMultiSelect(t *testing.T) {
	filters := toggleFilter(nil, "$browser", "Chrome")
	filters = toggleFilter(filters, "$browser", "Firefox")
	filters = toggleFilter(filters, "$browser", "Chrome")
	if len(filters) != 1 {
		t.Fatalf("expected one filter, got %#v", filters)
	}
	if !reflect.DeepEqual(filters[0].Values, []any{"Chrome"}) {
		t.Fatalf("expected collapse to clicked value, got %#v", filters[0].Values)
	}
}

func TestToggleFilterReplacesSetOnceValue(t *testing.T) {
	filters := toggleFilter(nil, "$initial_referrer", "google.com")
	filters = toggleFilter(filters, "$initial_referrer", "news.ycombinator.com")
	if len(filters) != 1 {
		t.Fatalf("expected one filter, got %#v", filters)
	}
	want := EncodeSetOnceExpression("$initial_referrer", "news.ycombinator.com")
	if filters[0].Key != want {
		t.Fatalf("expected expression %q, got %q", want, filters[0].Key)
	}
	if filters[0].Kind != FilterKindComputed {
		t.Fatalf("expected computed filter, got %s", filters[0].Kind)
	}
}

func TestToggleFilterKeepsOneEntryPerKey(t *testing.T) {
	var filters []PropertyFilter
	sequence := []struct {
		key   string
		value any
	}{
		{"$pathname", "/home"},
		{"$browser", "Chrome"},
		{"$pathname", "/blog"},
		{"$initial_utm_campaign", "spring"},
		{"$browser", "Firefox"},
		{"$initial_utm_campaign", "summer"},
		{"$pathname", "/home"},
	}
	for _, step := range sequence {
		filters = toggleFilter(filters, step.key, step.value)
	}
	seen := map[string]int{}
	for _, f := range filters {
		key := f.Key
		if f.Kind == FilterKindComputed {
			key = "computed:" + f.Key[:len("properties.$initial_")]
		}
		seen[key]++
	}
	for key, count := range seen {
		if count > 1 {
			t.Fatalf("key %s appears %d times: %#v", key, count, filters)
		}
	}
}

func TestToggleFilterPreservesOrderOfUntouchedEntries(t *testing.T) {
	var filters []PropertyFilter
	filters = toggleFilter(filters, "$pathname", "/home")
	filters = toggleFilter(filters, "$browser", "Chrome")
	filters = toggleFilter(filters, "$os", "Linux")
	filters = toggleFilter(filters, "$browser", "Firefox")
	keys := make([]string, len(filters))
	for i, f := range filters {
		keys[i] = f.Key
	}
	want := []string{"$pathname", "$browser", "$os"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("expected order %v, got %v", want, keys)
	}
}

func TestToggleFilterDoesNotMutateInput(t *testing.T) {
	original := []PropertyFilter{NewEventFilter("$browser", "Chrome")}
	_ = toggleFilter(original, "$browser", "Firefox")
	if !reflect.DeepEqual(original[0].Values, []any{"Chrome"}) {
		t.Fatalf("input slice mutated: %#v", original[0].Values)
	}
}

func TestSetOncePropertiesUseComputedFilters(t *testing.T) {
	for _, key := range []string{"$initial_pathname", "$initial_referrer", "$initial_utm_source", "$initial_utm_campaign"} {
		filters := toggleFilter(nil, key, "x")
		if filters[0].Kind != FilterKindComputed {
			t.Fatalf("expected computed filter for %s, got %s", key, filters[0].Kind)
		}
		if !expressionEncodesProperty(filters[0].Key, key) {
			t.Fatalf("expression %q does not encode %s", filters[0].Key, key)
		}
	}
	if IsSetOnceProperty("$pathname") {
		t.Fatalf("$pathname must not be set-once")
	}
}

func TestEncodeSetOnceExpressionEscapesQuotes(t *testing.T) {
	expr := EncodeSetOnceExpression("$initial_referrer", "bob's blog")
	want := `properties.$initial_referrer = 'bob\'s blog'`
	if expr != want {
		t.Fatalf("expected %q, got %q", want, expr)
	}
}
