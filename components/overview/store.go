package overview

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// ChangeHook notifies transports (HTML refresh, WebSocket) about state changes.
type ChangeHook interface {
	StateChanged(ctx context.Context, event StateEvent) error
}

type noopChangeHook struct{}

func (noopChangeHook) StateChanged(context.Context, StateEvent) error { return nil }

// Options configures the overview Store. Every collaborator is provided via
// interface so applications can swap implementations without importing
// internal go-webstats packages.
type Options struct {
	ChangeHook ChangeHook
	Telemetry  Telemetry
	Validator  FilterValidator
	Initial    *State
}

// Store owns the screen state for one overview screen: the filter list plus
// the three tab selections. Actions are thin wrappers over pure reducers; the
// mutex only guards the snapshot swap so a store can back an HTTP transport.
type Store struct {
	mu    sync.Mutex
	state State
	opts  Options
}

// NewStore builds a Store with safe defaults. State starts empty with default
// tabs unless Options.Initial overrides it.
func NewStore(opts Options) *Store {
	if opts.ChangeHook == nil {
		opts.ChangeHook = noopChangeHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	state := DefaultState()
	if opts.Initial != nil {
		state = opts.Initial.clone()
		if state.SourceTab == "" {
			state.SourceTab = SourceTabReferringDomain
		}
		if state.DeviceTab == "" {
			state.DeviceTab = DeviceTabBrowser
		}
		if state.PathTab == "" {
			state.PathTab = PathTabPath
		}
	}
	return &Store{state: state, opts: opts}
}

// State returns a snapshot copy of the current screen state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// ReplaceFilters unconditionally overwrites the filter list. The caller (the
// external filter-picker widget) is trusted to supply well-formed filters
// deduplicated by key; when a Validator is configured it is consulted first.
func (s *Store) ReplaceFilters(ctx context.Context, filters []PropertyFilter) error {
	if s.opts.Validator != nil {
		if err := s.opts.Validator.ValidateFilters(filters); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.state.Filters = cloneFilters(filters)
	state := s.state.clone()
	s.mu.Unlock()

	s.opts.Telemetry.Record(ctx, "overview.filters.replace", map[string]any{
		"count": len(filters),
	})
	return s.notify(ctx, StateEvent{Reason: "replace_filters", State: state})
}

// ToggleFilter merges or removes a single property value. Event properties
// are multi-select; set-once properties replace their sole encoded value.
// Unknown keys behave as "no existing match" and simply append.
func (s *Store) ToggleFilter(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	s.state.Filters = toggleFilter(s.state.Filters, key, value)
	state := s.state.clone()
	s.mu.Unlock()

	s.opts.Telemetry.Record(ctx, "overview.filters.toggle", map[string]any{
		"key":      key,
		"set_once": IsSetOnceProperty(key),
	})
	return s.notify(ctx, StateEvent{Reason: "toggle_filter", Key: key, State: state})
}

// SetSourceTab selects the active tab of the sources tile. Tags are not
// validated: an unknown tag fails the deriver's active-tab lookup and the tile
// renders without content.
func (s *Store) SetSourceTab(ctx context.Context, tab TabID) error {
	return s.setTab(ctx, TabGroupSources, tab)
}

// SetDeviceTab selects the active tab of the devices tile.
func (s *Store) SetDeviceTab(ctx context.Context, tab TabID) error {
	return s.setTab(ctx, TabGroupDevices, tab)
}

// SetPathTab selects the active tab of the paths tile.
func (s *Store) SetPathTab(ctx context.Context, tab TabID) error {
	return s.setTab(ctx, TabGroupPaths, tab)
}

// SetTab routes a tab assignment by group id; unknown groups are ignored so
// stale links degrade silently.
func (s *Store) SetTab(ctx context.Context, group TabGroupID, tab TabID) error {
	switch group {
	case TabGroupPaths, TabGroupSources, TabGroupDevices:
		return s.setTab(ctx, group, tab)
	}
	return nil
}

func (s *Store) setTab(ctx context.Context, group TabGroupID, tab TabID) error {
	s.mu.Lock()
	switch group {
	case TabGroupPaths:
		s.state.PathTab = tab
	case TabGroupSources:
		s.state.SourceTab = tab
	case TabGroupDevices:
		s.state.DeviceTab = tab
	}
	state := s.state.clone()
	s.mu.Unlock()

	s.opts.Telemetry.Record(ctx, "overview.tab.set", map[string]any{
		"group": string(group),
		"tab":   string(tab),
	})
	return s.notify(ctx, StateEvent{Reason: "set_tab", Tab: tab, State: state})
}

func (s *Store) notify(ctx context.Context, event StateEvent) error {
	event.ID = uuid.NewString()
	return s.opts.ChangeHook.StateChanged(ctx, event)
}
