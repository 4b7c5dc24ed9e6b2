package overview

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ThemeResolver selects a chart theme per viewer.
type ThemeResolver func(ViewerContext) string

// ChartProvider renders server-side chart HTML for the trend and world-map
// tiles. Breakdown tables and the overview grid are plain templates and do
// not pass through here.
type ChartProvider struct {
	cache         RenderCache
	theme         string
	themeResolver ThemeResolver
	assetsHost    string
}

// ChartProviderOption customizes provider behavior.
type ChartProviderOption func(*ChartProvider)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) ChartProviderOption {
	return func(p *ChartProvider) {
		p.cache = cache
	}
}

// WithChartTheme sets a static theme (defaults to Westeros).
func WithChartTheme(theme string) ChartProviderOption {
	return func(p *ChartProvider) {
		p.theme = theme
	}
}

// WithChartThemeResolver resolves themes dynamically per viewer.
func WithChartThemeResolver(resolver ThemeResolver) ChartProviderOption {
	return func(p *ChartProvider) {
		p.themeResolver = resolver
	}
}

// WithChartAssetsHost rewrites the assets host so the ECharts runtime loads
// from a CDN or self-hosted bucket.
func WithChartAssetsHost(host string) ChartProviderOption {
	return func(p *ChartProvider) {
		p.assetsHost = host
	}
}

// NewChartProvider builds a chart provider.
func NewChartProvider(options ...ChartProviderOption) *ChartProvider {
	p := &ChartProvider{
		cache: sharedChartCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// RenderTile converts a query tile plus its runner result into chart HTML.
func (p *ChartProvider) RenderTile(tile Tile, result QueryResult, viewer ViewerContext) (string, error) {
	theme := p.resolveTheme(viewer)
	renderFn := func() (string, error) {
		switch tile.Query.Kind {
		case QueryKindTrendSeries:
			return p.renderTrendChart(tile.Title, result, theme)
		case QueryKindWorldMap:
			return p.renderWorldMap(tile.Title, result, theme)
		default:
			return "", fmt.Errorf("overview: no chart renderer for query kind %s", tile.Query.Kind)
		}
	}
	if p.cache == nil {
		return renderFn()
	}
	key := fmt.Sprintf("%s:%s:%s", tile.Query.Kind, theme, queryHash(tile.Query))
	return p.cache.GetOrRender(key, renderFn)
}

func (p *ChartProvider) renderTrendChart(title string, result QueryResult, theme string) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(p.globalChartOptions(title, theme)...)
	line.SetXAxis(trendAxisLabels(result.Series))
	line.AddSeries("Current", toTrendData(result.Series, false))
	if hasComparison(result.Series) {
		line.AddSeries("Previous", toTrendData(result.Series, true))
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (p *ChartProvider) renderWorldMap(title string, result QueryResult, theme string) (string, error) {
	geo := charts.NewMap()
	geo.RegisterMapType("world")
	mapOpts := append(p.globalChartOptions(title, theme),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Max:        float32(maxRowVisitors(result.Rows)),
		}),
	)
	geo.SetGlobalOptions(mapOpts...)
	geo.AddSeries("Unique visitors", toMapData(result.Rows))
	return renderChart(geo)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *ChartProvider) globalChartOptions(title, theme string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if p.assetsHost != "" {
		initOpts.AssetsHost = p.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func (p *ChartProvider) resolveTheme(viewer ViewerContext) string {
	if p.themeResolver != nil {
		if theme := p.themeResolver(viewer); theme != "" {
			return theme
		}
	}
	if p.theme != "" {
		return p.theme
	}
	return types.ThemeWesteros
}

func trendAxisLabels(series []QueryResultPoint) []string {
	labels := make([]string, len(series))
	for i, point := range series {
		labels[i] = point.Label
	}
	return labels
}

func toTrendData(series []QueryResultPoint, previous bool) []opts.LineData {
	data := make([]opts.LineData, len(series))
	for i, point := range series {
		value := point.Value
		if previous {
			value = point.Previous
		}
		data[i] = opts.LineData{Name: point.Label, Value: value}
	}
	return data
}

func hasComparison(series []QueryResultPoint) bool {
	for _, point := range series {
		if point.Previous != 0 {
			return true
		}
	}
	return false
}

func toMapData(rows []QueryResultRow) []opts.MapData {
	data := make([]opts.MapData, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.Value)
		if name == "" {
			continue
		}
		data = append(data, opts.MapData{Name: name, Value: float64(row.Visitors)})
	}
	return data
}

func maxRowVisitors(rows []QueryResultRow) int {
	max := 0
	for _, row := range rows {
		if row.Visitors > max {
			max = row.Visitors
		}
	}
	if max == 0 {
		max = 1
	}
	return max
}
