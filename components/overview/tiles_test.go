package overview

import (
	"reflect"
	"testing"
)

func TestDeriveTilesFixedSequence(t *testing.T) {
	tiles := DeriveTiles(DefaultState())
	if len(tiles) != 7 {
		t.Fatalf("expected 7 tiles, got %d", len(tiles))
	}
	titles := make([]string, len(tiles))
	for i, tile := range tiles {
		titles[i] = tile.Title
	}
	want := []string{"Overview", "Paths", "Traffic Sources", "Devices", "Unique visitors", "World Map", "Retention"}
	if !reflect.DeepEqual(titles, want) {
		t.Fatalf("unexpected tile order: %v", titles)
	}
}

func TestDeriveTilesLayouts(t *testing.T) {
	tiles := DeriveTiles(DefaultState())
	if tiles[0].Layout.ColSpan != 12 {
		t.Fatalf("overview tile must span the full grid, got %d", tiles[0].Layout.ColSpan)
	}
	if tiles[6].Layout.ColSpan != 12 {
		t.Fatalf("retention tile must span the full grid, got %d", tiles[6].Layout.ColSpan)
	}
	for _, i := range []int{1, 2, 3, 4, 5} {
		if tiles[i].Layout != DefaultTileLayout() {
			t.Fatalf("tile %d expected default layout, got %+v", i, tiles[i].Layout)
		}
	}
}

func TestDeriveTilesEmbedsFilters(t *testing.T) {
	state := DefaultState()
	state.Filters = toggleFilter(nil, "$browser", "Chrome")
	tiles := NewDeriver().Derive(state)
	for i, tile := range tiles {
		queries := []Query{tile.Query}
		if tile.Kind == TileKindTabbed {
			queries = queries[:0]
			for _, tab := range tile.Tabs {
				queries = append(queries, tab.Query)
			}
		}
		for _, query := range queries {
			if !reflect.DeepEqual(query.Properties, state.Filters) {
				t.Fatalf("tile %d query missing filters: %#v", i, query.Properties)
			}
			if !query.FilterTestAccounts {
				t.Fatalf("tile %d query must exclude test accounts", i)
			}
			if query.DateRange != DefaultDateRange() {
				t.Fatalf("tile %d query has unexpected date range %+v", i, query.DateRange)
			}
		}
	}
}

func TestDeriveTilesIsDeterministic(t *testing.T) {
	state := DefaultState()
	state.Filters = toggleFilter(nil, "$pathname", "/pricing")
	state.DeviceTab = DeviceTabOS
	d := NewDeriver()
	first := d.Derive(state)
	second := d.Derive(state)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("derivation must be deterministic for equal states")
	}
}

func TestDeriveTilesActiveTabs(t *testing.T) {
	state := DefaultState()
	state.SourceTab = SourceTabUTMCampaign
	tiles := DeriveTiles(state)
	sources := tiles[2]
	if sources.Group != TabGroupSources {
		t.Fatalf("expected sources group, got %s", sources.Group)
	}
	active, ok := sources.ActiveTab()
	if !ok {
		t.Fatalf("expected active tab to resolve")
	}
	if active.ID != SourceTabUTMCampaign {
		t.Fatalf("expected UTM_CAMPAIGN active, got %s", active.ID)
	}
	if active.Query.Breakdown != BreakdownInitialUTMCampaign {
		t.Fatalf("active tab query has wrong breakdown %s", active.Query.Breakdown)
	}
}

func TestDeriveTilesUnknownTabOmitsContent(t *testing.T) {
	state := DefaultState()
	state.DeviceTab = TabID("HOLOGRAM")
	tiles := DeriveTiles(state)
	devices := tiles[3]
	if _, ok := devices.ActiveTab(); ok {
		t.Fatalf("unknown tab id must not resolve to a tab")
	}
	if len(devices.Tabs) != 3 {
		t.Fatalf("tab bar must still carry all tabs, got %d", len(devices.Tabs))
	}
}

func TestDeriveTilesTrendAndRetentionIntervals(t *testing.T) {
	tiles := DeriveTiles(DefaultState())
	trend := tiles[4]
	if trend.Query.Kind != QueryKindTrendSeries || trend.Query.Interval != IntervalDay || !trend.Query.Compare {
		t.Fatalf("unexpected trend query: %+v", trend.Query)
	}
	retention := tiles[6]
	if retention.Query.Kind != QueryKindRetention || retention.Query.Interval != IntervalWeek {
		t.Fatalf("unexpected retention query: %+v", retention.Query)
	}
}

func TestWithTabGroupsOverridesLabels(t *testing.T) {
	d := NewDeriver(WithTabGroups([]TabGroupManifest{{
		Group: TabGroupPaths,
		Title: "Pages",
		Tabs: []ManifestTab{
			{ID: PathTabPath, LinkText: "All pages", Breakdown: BreakdownPage},
		},
	}}))
	tiles := d.Derive(DefaultState())
	paths := tiles[1]
	if paths.Title != "Pages" {
		t.Fatalf("expected overridden title, got %s", paths.Title)
	}
	if len(paths.Tabs) != 1 || paths.Tabs[0].LinkText != "All pages" {
		t.Fatalf("expected overridden tabs, got %#v", paths.Tabs)
	}
	sources := tiles[2]
	if len(sources.Tabs) != 3 {
		t.Fatalf("untouched groups must keep defaults, got %#v", sources.Tabs)
	}
}
