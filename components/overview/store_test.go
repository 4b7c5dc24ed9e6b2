package overview

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type recordingHook struct {
	events []StateEvent
	err    error
}

func (h *recordingHook) StateChanged(_ context.Context, event StateEvent) error {
	h.events = append(h.events, event)
	return h.err
}

type recordingTelemetry struct {
	events []string
	meta   []map[string]any
}

func (t *recordingTelemetry) Record(_ context.Context, event string, meta map[string]any) {
	t.events = append(t.events, event)
	t.meta = append(t.meta, meta)
}

type rejectingValidator struct{ err error }

func (v rejectingValidator) ValidateFilters([]PropertyFilter) error { return v.err }

func TestNewStoreDefaults(t *testing.T) {
	store := NewStore(Options{})
	state := store.State()
	if state.PathTab != PathTabPath {
		t.Fatalf("expected default path tab PATH, got %s", state.PathTab)
	}
	if state.SourceTab != SourceTabReferringDomain {
		t.Fatalf("expected default source tab REFERRING_DOMAIN, got %s", state.SourceTab)
	}
	if state.DeviceTab != DeviceTabBrowser {
		t.Fatalf("expected default device tab BROWSER, got %s", state.DeviceTab)
	}
	if len(state.Filters) != 0 {
		t.Fatalf("expected empty filters, got %#v", state.Filters)
	}
}

func TestNewStoreBackfillsInitialTabs(t *testing.T) {
	store := NewStore(Options{Initial: &State{
		Filters: []PropertyFilter{NewEventFilter("$browser", "Chrome")},
	}})
	state := store.State()
	if state.PathTab != PathTabPath || state.SourceTab != SourceTabReferringDomain || state.DeviceTab != DeviceTabBrowser {
		t.Fatalf("expected default tabs backfilled, got %+v", state)
	}
	if len(state.Filters) != 1 {
		t.Fatalf("expected initial filters retained, got %#v", state.Filters)
	}
}

func TestStoreToggleFilterNotifiesHook(t *testing.T) {
	hook := &recordingHook{}
	telemetry := &recordingTelemetry{}
	store := NewStore(Options{ChangeHook: hook, Telemetry: telemetry})

	if err := store.ToggleFilter(context.Background(), "$pathname", "/home"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hook.events) != 1 {
		t.Fatalf("expected one change event, got %d", len(hook.events))
	}
	event := hook.events[0]
	if event.Reason != "toggle_filter" || event.Key != "$pathname" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.ID == "" {
		t.Fatalf("expected event id to be assigned")
	}
	if len(event.State.Filters) != 1 {
		t.Fatalf("expected event to carry new state, got %#v", event.State.Filters)
	}
	if len(telemetry.events) != 1 || telemetry.events[0] != "overview.filters.toggle" {
		t.Fatalf("expected toggle telemetry, got %v", telemetry.events)
	}
}

func TestStoreReplaceFiltersOverwrites(t *testing.T) {
	store := NewStore(Options{})
	ctx := context.Background()
	if err := store.ToggleFilter(ctx, "$browser", "Chrome"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	replacement := []PropertyFilter{NewEventFilter("$os", "Linux")}
	if err := store.ReplaceFilters(ctx, replacement); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := store.State()
	if !reflect.DeepEqual(state.Filters, replacement) {
		t.Fatalf("expected wholesale replacement, got %#v", state.Filters)
	}
}

func TestStoreReplaceFiltersConsultsValidator(t *testing.T) {
	wantErr := errors.New("overview: invalid filters")
	hook := &recordingHook{}
	store := NewStore(Options{
		ChangeHook: hook,
		Validator:  rejectingValidator{err: wantErr},
	})
	err := store.ReplaceFilters(context.Background(), []PropertyFilter{{Key: "$browser"}})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected validator error, got %v", err)
	}
	if len(hook.events) != 0 {
		t.Fatalf("rejected replace must not notify hooks, got %d events", len(hook.events))
	}
	if len(store.State().Filters) != 0 {
		t.Fatalf("rejected replace must not mutate state")
	}
}

func TestStoreSetTabDoesNotTouchFilters(t *testing.T) {
	store := NewStore(Options{})
	ctx := context.Background()
	if err := store.ToggleFilter(ctx, "$pathname", "/home"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.SetPathTab(ctx, PathTabInitialPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := store.State()
	if state.PathTab != PathTabInitialPath {
		t.Fatalf("expected INITIAL_PATH, got %s", state.PathTab)
	}
	if len(state.Filters) != 1 || state.Filters[0].Key != "$pathname" {
		t.Fatalf("tab switch must not alter filters, got %#v", state.Filters)
	}
}

func TestStoreSetTabRoutesByGroup(t *testing.T) {
	store := NewStore(Options{})
	ctx := context.Background()
	if err := store.SetTab(ctx, TabGroupSources, SourceTabUTMSource); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.SetTab(ctx, TabGroupDevices, DeviceTabOS); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := store.State()
	if state.SourceTab != SourceTabUTMSource || state.DeviceTab != DeviceTabOS {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestStoreSetTabIgnoresUnknownGroup(t *testing.T) {
	hook := &recordingHook{}
	store := NewStore(Options{ChangeHook: hook})
	if err := store.SetTab(context.Background(), TabGroupID("bogus"), PathTabPath); err != nil {
		t.Fatalf("unknown group must be a no-op, got %v", err)
	}
	if len(hook.events) != 0 {
		t.Fatalf("unknown group must not notify hooks")
	}
}

func TestStoreStateSnapshotIsACopy(t *testing.T) {
	store := NewStore(Options{})
	ctx := context.Background()
	if err := store.ToggleFilter(ctx, "$browser", "Chrome"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snapshot := store.State()
	snapshot.Filters[0].Values = append(snapshot.Filters[0].Values, "Firefox")
	fresh := store.State()
	if len(fresh.Filters[0].Values) != 1 {
		t.Fatalf("snapshot mutation leaked into the store: %#v", fresh.Filters[0].Values)
	}
}

func TestStorePropagatesHookError(t *testing.T) {
	wantErr := errors.New("broadcast down")
	store := NewStore(Options{ChangeHook: &recordingHook{err: wantErr}})
	err := store.ToggleFilter(context.Background(), "$os", "Linux")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected hook error, got %v", err)
	}
}
