package overview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
)

// QueryRunner executes query descriptors against the analytics backend. The
// overview component never runs queries itself; it only describes them.
type QueryRunner interface {
	RunQuery(ctx context.Context, query Query) (QueryResult, error)
}

// ControllerOptions wires the collaborators needed to serve the screen.
type ControllerOptions struct {
	Store         *Store
	Deriver       *Deriver
	Runner        QueryRunner
	Renderer      Renderer
	Charts        *ChartProvider
	Telemetry     Telemetry
	Theme         ThemeProvider
	ThemeSelector ThemeSelectorFunc
	Translator    TranslationService
}

// Controller turns store state into rendered markup: it derives the tile
// list, executes each tile's query through the runner, and feeds the results
// to the template renderer. Failed or degraded tiles render without content
// rather than failing the screen.
type Controller struct {
	opts ControllerOptions
}

var errMissingStore = errors.New("overview: store is required")

// NewController builds a Controller with safe defaults.
func NewController(opts ControllerOptions) *Controller {
	if opts.Deriver == nil {
		opts.Deriver = NewDeriver()
	}
	if opts.Charts == nil {
		opts.Charts = NewChartProvider()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Controller{opts: opts}
}

// Tiles derives the current tile list from the store state.
func (c *Controller) Tiles(ctx context.Context) ([]Tile, error) {
	if c.opts.Store == nil {
		return nil, errMissingStore
	}
	tiles := c.opts.Deriver.Derive(c.opts.Store.State())
	c.opts.Telemetry.Record(ctx, "overview.tiles.derive", map[string]any{
		"count": len(tiles),
	})
	return tiles, nil
}

// RenderTemplate resolves tiles and writes the rendered screen to out.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errors.New("overview: renderer is required")
	}
	tiles, err := c.Tiles(ctx)
	if err != nil {
		return err
	}
	views := make([]map[string]any, 0, len(tiles))
	for _, tile := range tiles {
		views = append(views, c.tileView(ctx, viewer, tile))
	}
	data := map[string]any{
		"tiles":       views,
		"theme_style": c.themeStyle(ctx, viewer),
	}
	_, err = c.opts.Renderer.Render("overview", data, out)
	if err != nil {
		return fmt.Errorf("overview: render screen: %w", err)
	}
	return nil
}

func (c *Controller) tileView(ctx context.Context, viewer ViewerContext, tile Tile) map[string]any {
	view := map[string]any{
		"kind":     string(tile.Kind),
		"title":    tile.Title,
		"col_span": tile.Layout.ColSpan,
		"row_span": tile.Layout.RowSpan,
	}
	if tile.Kind == TileKindTabbed {
		view["tabs"] = tabLinks(tile)
		active, ok := tile.ActiveTab()
		if !ok {
			// Unknown active tab: keep the tab bar, omit the content.
			return view
		}
		if table := c.breakdownTable(ctx, active); table != nil {
			view["table"] = table
		}
		return view
	}
	switch tile.Query.Kind {
	case QueryKindOverviewStats:
		if stats := c.overviewStats(ctx, viewer, tile); stats != nil {
			view["stats"] = stats
		}
	case QueryKindTrendSeries, QueryKindWorldMap:
		if html := c.chartHTML(ctx, viewer, tile); html != "" {
			view["chart_html"] = html
		}
	case QueryKindRetention:
		if table := c.retentionTable(ctx, tile); table != nil {
			view["table"] = table
		}
	}
	return view
}

func tabLinks(tile Tile) []map[string]any {
	links := make([]map[string]any, 0, len(tile.Tabs))
	for _, tab := range tile.Tabs {
		links = append(links, map[string]any{
			"label":  tab.LinkText,
			"active": tab.ID == tile.ActiveTabID,
			"href": fmt.Sprintf("?group=%s&tab=%s",
				url.QueryEscape(string(tile.Group)), url.QueryEscape(string(tab.ID))),
		})
	}
	return links
}

func (c *Controller) breakdownTable(ctx context.Context, tab TileTab) map[string]any {
	result, ok := c.run(ctx, tab.Query)
	if !ok {
		return nil
	}
	property := tab.Query.Breakdown.PropertyName()
	rows := make([]map[string]any, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, map[string]any{
			"value":    row.Value,
			"visitors": formatCount(row.Visitors),
			"views":    formatCount(row.Views),
			"share":    formatShare(row.Share),
			"toggle_href": fmt.Sprintf("?toggle=%s&value=%s",
				url.QueryEscape(property), url.QueryEscape(row.Value)),
		})
	}
	return map[string]any{
		"column_title": tab.Query.Breakdown.ColumnTitle(),
		"rows":         rows,
	}
}

func (c *Controller) retentionTable(ctx context.Context, tile Tile) map[string]any {
	result, ok := c.run(ctx, tile.Query)
	if !ok {
		return nil
	}
	rows := make([]map[string]any, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, map[string]any{
			"value":    row.Value,
			"visitors": formatCount(row.Visitors),
			"views":    formatCount(row.Views),
			"share":    formatShare(row.Share),
		})
	}
	return map[string]any{
		"column_title": "Cohort",
		"rows":         rows,
	}
}

func (c *Controller) overviewStats(ctx context.Context, viewer ViewerContext, tile Tile) []map[string]any {
	result, ok := c.run(ctx, tile.Query)
	if !ok {
		return nil
	}
	labels := []struct {
		key      string
		fallback string
	}{
		{"visitors", "Visitors"},
		{"views", "Views"},
		{"sessions", "Sessions"},
		{"bounce_rate", "Bounce rate"},
	}
	stats := make([]map[string]any, 0, len(labels))
	for _, label := range labels {
		value, found := result.Totals[label.key]
		if !found {
			continue
		}
		display := translateOrFallback(ctx, c.opts.Translator,
			"overview.stat."+label.key, viewer.Locale, label.fallback, nil)
		stats = append(stats, map[string]any{
			"label": display,
			"value": formatTotal(label.key, value),
		})
	}
	return stats
}

func (c *Controller) chartHTML(ctx context.Context, viewer ViewerContext, tile Tile) string {
	result, ok := c.run(ctx, tile.Query)
	if !ok {
		return ""
	}
	html, err := c.opts.Charts.RenderTile(tile, result, viewer)
	if err != nil {
		c.opts.Telemetry.Record(ctx, "overview.tile.chart_error", map[string]any{
			"kind":  string(tile.Query.Kind),
			"error": err.Error(),
		})
		return ""
	}
	return html
}

func (c *Controller) run(ctx context.Context, query Query) (QueryResult, bool) {
	if c.opts.Runner == nil {
		return QueryResult{}, false
	}
	result, err := c.opts.Runner.RunQuery(ctx, query)
	if err != nil {
		c.opts.Telemetry.Record(ctx, "overview.tile.query_error", map[string]any{
			"kind":  string(query.Kind),
			"error": err.Error(),
		})
		return QueryResult{}, false
	}
	return result, true
}

func (c *Controller) themeStyle(ctx context.Context, viewer ViewerContext) string {
	if c.opts.Theme == nil {
		return ""
	}
	selector := ThemeSelector{}
	if c.opts.ThemeSelector != nil {
		selector = c.opts.ThemeSelector(ctx, viewer)
	}
	selection, err := c.opts.Theme.SelectTheme(ctx, selector)
	if err != nil || selection == nil {
		return ""
	}
	return selection.CSSVariablesInline()
}

func formatCount(value int) string {
	if value >= 1000000 {
		return fmt.Sprintf("%.1fM", float64(value)/1000000)
	}
	if value >= 10000 {
		return fmt.Sprintf("%.1fK", float64(value)/1000)
	}
	return fmt.Sprintf("%d", value)
}

func formatShare(share float64) string {
	return fmt.Sprintf("%.1f%%", share*100)
}

func formatTotal(key string, value float64) string {
	if key == "bounce_rate" {
		return fmt.Sprintf("%.1f%%", value*100)
	}
	return formatCount(int(value))
}
