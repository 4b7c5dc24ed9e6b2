package overview

import (
	"testing"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trendTile() Tile {
	return Tile{
		Kind:   TileKindQuery,
		Title:  "Unique visitors",
		Query:  Query{Kind: QueryKindTrendSeries, Interval: IntervalDay, Compare: true, DateRange: DefaultDateRange()},
		Layout: DefaultTileLayout(),
	}
}

func TestChartProviderRendersTrend(t *testing.T) {
	provider := NewChartProvider(WithChartCache(nil))
	result := QueryResult{Series: []QueryResultPoint{
		{Label: "2026-08-17", Value: 120, Previous: 95},
		{Label: "2026-08-18", Value: 160, Previous: 130},
	}}

	html, err := provider.RenderTile(trendTile(), result, ViewerContext{})
	require.NoError(t, err)
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Unique visitors")
	assert.Contains(t, html, "Previous")
}

func TestChartProviderRendersWorldMap(t *testing.T) {
	provider := NewChartProvider(WithChartCache(nil))
	tile := Tile{
		Kind:  TileKindQuery,
		Title: "World Map",
		Query: Query{Kind: QueryKindWorldMap, DateRange: DefaultDateRange()},
	}
	result := QueryResult{Rows: []QueryResultRow{
		{Value: "United States", Visitors: 420},
		{Value: "Germany", Visitors: 180},
		{Value: "  ", Visitors: 3},
	}}

	html, err := provider.RenderTile(tile, result, ViewerContext{})
	require.NoError(t, err)
	assert.Contains(t, html, "United States")
	assert.NotContains(t, html, `"name":"  "`)
}

func TestChartProviderRejectsNonChartKinds(t *testing.T) {
	provider := NewChartProvider(WithChartCache(nil))
	tile := Tile{Kind: TileKindQuery, Query: Query{Kind: QueryKindOverviewStats}}
	_, err := provider.RenderTile(tile, QueryResult{}, ViewerContext{})
	require.Error(t, err)
}

func TestChartProviderCachesByQueryAndTheme(t *testing.T) {
	counting := &countingCache{}
	provider := NewChartProvider(WithChartCache(counting))

	result := QueryResult{Series: []QueryResultPoint{{Label: "d1", Value: 1}}}
	_, err := provider.RenderTile(trendTile(), result, ViewerContext{})
	require.NoError(t, err)
	require.Len(t, counting.keys, 1)
	assert.Contains(t, counting.keys[0], string(QueryKindTrendSeries))
	assert.Contains(t, counting.keys[0], types.ThemeWesteros)
}

func TestChartProviderThemeResolver(t *testing.T) {
	provider := NewChartProvider(
		WithChartCache(nil),
		WithChartThemeResolver(func(viewer ViewerContext) string {
			if viewer.UserID == "night-owl" {
				return types.ThemeChalk
			}
			return ""
		}),
	)
	assert.Equal(t, types.ThemeChalk, provider.resolveTheme(ViewerContext{UserID: "night-owl"}))
	assert.Equal(t, types.ThemeWesteros, provider.resolveTheme(ViewerContext{UserID: "other"}))
}

type countingCache struct {
	keys []string
}

func (c *countingCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	c.keys = append(c.keys, key)
	return render()
}
