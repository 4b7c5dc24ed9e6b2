package overview

import "fmt"

// Deriver maps screen state to the ordered tile list. Derivation is pure:
// identical states produce structurally identical descriptors, and every call
// rebuilds the full sequence.
type Deriver struct {
	groups []TabGroupManifest
}

// DeriverOption customizes tile derivation.
type DeriverOption func(*Deriver)

// WithTabGroups overrides the built-in tab tables with manifest entries.
// Groups absent from the manifest keep their defaults.
func WithTabGroups(groups []TabGroupManifest) DeriverOption {
	return func(d *Deriver) {
		for _, override := range groups {
			for i, group := range d.groups {
				if group.Group == override.Group {
					d.groups[i] = override
				}
			}
		}
	}
}

// NewDeriver builds a deriver seeded with the default tab tables.
func NewDeriver(opts ...DeriverOption) *Deriver {
	d := &Deriver{groups: DefaultTabGroups()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DeriveTiles derives the tile sequence with the default tab tables.
func DeriveTiles(state State) []Tile {
	return NewDeriver().Derive(state)
}

// Derive produces the fixed seven-tile sequence: overview stats, the three
// tabbed breakdown groups, the unique-visitor trend, the world map and the
// retention grid. Each embedded query carries the filter list verbatim and
// always excludes test accounts.
func (d *Deriver) Derive(state State) []Tile {
	tiles := make([]Tile, 0, 7)
	tiles = append(tiles, Tile{
		Kind:   TileKindQuery,
		Layout: TileLayout{ColSpan: 12, RowSpan: 1},
		Title:  "Overview",
		Query:  d.baseQuery(state, QueryKindOverviewStats),
	})
	tiles = append(tiles,
		d.tabbedTile(state, TabGroupPaths),
		d.tabbedTile(state, TabGroupSources),
		d.tabbedTile(state, TabGroupDevices),
	)
	trend := d.baseQuery(state, QueryKindTrendSeries)
	trend.Interval = IntervalDay
	trend.Compare = true
	tiles = append(tiles, Tile{
		Kind:   TileKindQuery,
		Layout: DefaultTileLayout(),
		Title:  "Unique visitors",
		Query:  trend,
	})
	tiles = append(tiles, Tile{
		Kind:   TileKindQuery,
		Layout: DefaultTileLayout(),
		Title:  "World Map",
		Query:  d.baseQuery(state, QueryKindWorldMap),
	})
	retention := d.baseQuery(state, QueryKindRetention)
	retention.Interval = IntervalWeek
	tiles = append(tiles, Tile{
		Kind:   TileKindQuery,
		Layout: TileLayout{ColSpan: 12, RowSpan: 1},
		Title:  "Retention",
		Query:  retention,
	})
	return tiles
}

func (d *Deriver) baseQuery(state State, kind QueryKind) Query {
	return Query{
		Kind:               kind,
		DateRange:          DefaultDateRange(),
		Properties:         cloneFilters(state.Filters),
		FilterTestAccounts: true,
	}
}

func (d *Deriver) tabbedTile(state State, id TabGroupID) Tile {
	group := d.group(id)
	tabs := make([]TileTab, 0, len(group.Tabs))
	for _, tab := range group.Tabs {
		query := d.baseQuery(state, QueryKindBreakdownTable)
		query.Breakdown = tab.Breakdown
		tabs = append(tabs, TileTab{
			ID:       tab.ID,
			Title:    tab.titleOrDefault(),
			LinkText: tab.LinkTextForLocale(""),
			Query:    query,
		})
	}
	return Tile{
		Kind:        TileKindTabbed,
		Layout:      DefaultTileLayout(),
		Title:       group.Title,
		Group:       id,
		ActiveTabID: activeTabFor(state, id),
		Tabs:        tabs,
	}
}

func (d *Deriver) group(id TabGroupID) TabGroupManifest {
	for _, group := range d.groups {
		if group.Group == id {
			return group
		}
	}
	// The deriver is always seeded with all three groups; reaching this is a
	// programming error.
	panic(fmt.Sprintf("overview: tab group %s not configured", id))
}

func activeTabFor(state State, id TabGroupID) TabID {
	switch id {
	case TabGroupPaths:
		return state.PathTab
	case TabGroupSources:
		return state.SourceTab
	case TabGroupDevices:
		return state.DeviceTab
	}
	return ""
}
