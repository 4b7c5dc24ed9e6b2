package overview

// TabID tags one selectable tab inside a tabbed tile group.
type TabID string

const (
	PathTabPath        TabID = "PATH"
	PathTabInitialPath TabID = "INITIAL_PATH"

	SourceTabReferringDomain TabID = "REFERRING_DOMAIN"
	SourceTabUTMSource       TabID = "UTM_SOURCE"
	SourceTabUTMCampaign     TabID = "UTM_CAMPAIGN"

	DeviceTabBrowser    TabID = "BROWSER"
	DeviceTabOS         TabID = "OS"
	DeviceTabDeviceType TabID = "DEVICE_TYPE"
)

// TabGroupID names a tabbed tile so transports can route tab-switch actions
// back to the matching store setter.
type TabGroupID string

const (
	TabGroupPaths   TabGroupID = "paths"
	TabGroupSources TabGroupID = "sources"
	TabGroupDevices TabGroupID = "devices"
)

// State is the full screen state the deriver consumes. Snapshots returned by
// the store are copies; mutate state only through store actions.
type State struct {
	Filters   []PropertyFilter `json:"filters"`
	SourceTab TabID            `json:"source_tab"`
	DeviceTab TabID            `json:"device_tab"`
	PathTab   TabID            `json:"path_tab"`
}

// DefaultState returns the mount-time state: no filters, default tabs.
func DefaultState() State {
	return State{
		SourceTab: SourceTabReferringDomain,
		DeviceTab: DeviceTabBrowser,
		PathTab:   PathTabPath,
	}
}

func (s State) clone() State {
	s.Filters = cloneFilters(s.Filters)
	return s
}

// TileKind discriminates the two tile descriptor shapes.
type TileKind string

const (
	TileKindQuery  TileKind = "query"
	TileKindTabbed TileKind = "tabbed"
)

// TileLayout carries advisory grid hints out of a 12-unit grid.
type TileLayout struct {
	ColSpan int `json:"col_span" yaml:"col_span"`
	RowSpan int `json:"row_span" yaml:"row_span"`
}

// DefaultTileLayout is the half-width single-row placement.
func DefaultTileLayout() TileLayout {
	return TileLayout{ColSpan: 6, RowSpan: 1}
}

// TileTab is one selectable query inside a tabbed tile.
type TileTab struct {
	ID       TabID  `json:"id"`
	Title    string `json:"title"`
	LinkText string `json:"link_text"`
	Query    Query  `json:"query"`
}

// Tile describes one renderable slot of the overview screen. Query tiles set
// Query; tabbed tiles set Group, Tabs and ActiveTabID. Descriptors are
// derived, never mutated: every state change rebuilds the whole list.
type Tile struct {
	Kind        TileKind   `json:"kind"`
	Layout      TileLayout `json:"layout"`
	Title       string     `json:"title,omitempty"`
	Query       Query      `json:"query,omitempty"`
	Group       TabGroupID `json:"group,omitempty"`
	ActiveTabID TabID      `json:"active_tab_id,omitempty"`
	Tabs        []TileTab  `json:"tabs,omitempty"`
}

// ActiveTab resolves the currently selected tab. The second return is false
// when the stored tab id matches nothing, in which case the tile's content is
// omitted rather than failing.
func (t Tile) ActiveTab() (TileTab, bool) {
	for _, tab := range t.Tabs {
		if tab.ID == t.ActiveTabID {
			return tab, true
		}
	}
	return TileTab{}, false
}

// StateEvent describes a store mutation delivered to change hooks.
type StateEvent struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
	Key    string `json:"key,omitempty"`
	Tab    TabID  `json:"tab,omitempty"`
	State  State  `json:"state"`
}

// ViewerContext captures the active user/locale for telemetry, localization
// and theming. The store itself is viewer-agnostic.
type ViewerContext struct {
	UserID string
	Locale string
}
