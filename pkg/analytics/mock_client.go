package analytics

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	overview "github.com/goliatone/go-webstats/components/overview"
)

// MockData seeds deterministic analytics responses for tests or local demos.
// When a kind has no fixture the mock synthesizes plausible data from the
// query so demo screens never render empty.
type MockData struct {
	Results map[overview.QueryKind]overview.QueryResult
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

var _ Client = (*MockClient)(nil)
var _ overview.QueryRunner = (*MockClient)(nil)

// NewMockClient builds a mock analytics client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// RunQuery returns the fixture for the query kind, or synthesized data.
func (c *MockClient) RunQuery(_ context.Context, query overview.Query) (overview.QueryResult, error) {
	c.mu.RLock()
	fixture, ok := c.data.Results[query.Kind]
	c.mu.RUnlock()
	if ok {
		return cloneResult(fixture), nil
	}
	return synthesize(query), nil
}

func synthesize(query overview.Query) overview.QueryResult {
	switch query.Kind {
	case overview.QueryKindOverviewStats:
		return overview.QueryResult{Totals: map[string]float64{
			"visitors":    1284,
			"views":       5120,
			"sessions":    1502,
			"bounce_rate": 0.42,
		}}
	case overview.QueryKindBreakdownTable:
		return overview.QueryResult{Rows: breakdownRows(query.Breakdown)}
	case overview.QueryKindTrendSeries:
		series := make([]overview.QueryResultPoint, 7)
		for i := range series {
			series[i] = overview.QueryResultPoint{
				Label:    fmt.Sprintf("day-%d", i+1),
				Value:    float64(100 + seededInt(string(query.Kind), i)%80),
				Previous: float64(80 + seededInt("previous", i)%60),
			}
		}
		return overview.QueryResult{Series: series}
	case overview.QueryKindWorldMap:
		return overview.QueryResult{Rows: []overview.QueryResultRow{
			{Value: "United States", Visitors: 412, Views: 1633, Share: 0.32},
			{Value: "Germany", Visitors: 188, Views: 702, Share: 0.15},
			{Value: "Brazil", Visitors: 121, Views: 455, Share: 0.09},
		}}
	case overview.QueryKindRetention:
		rows := make([]overview.QueryResultRow, 4)
		for i := range rows {
			rows[i] = overview.QueryResultRow{
				Value:    fmt.Sprintf("Week %d", i),
				Visitors: 300 - 60*i,
				Share:    1 - 0.2*float64(i),
			}
		}
		return overview.QueryResult{Rows: rows}
	}
	return overview.QueryResult{}
}

func breakdownRows(breakdown overview.Breakdown) []overview.QueryResultRow {
	values := map[overview.Breakdown][]string{
		overview.BreakdownPage:                   {"/home", "/pricing", "/blog"},
		overview.BreakdownInitialPage:            {"/home", "/landing/spring", "/docs"},
		overview.BreakdownInitialReferringDomain: {"google.com", "news.ycombinator.com", "duckduckgo.com"},
		overview.BreakdownInitialUTMSource:       {"newsletter", "twitter", "partner"},
		overview.BreakdownInitialUTMCampaign:     {"spring-launch", "retargeting", "brand"},
		overview.BreakdownBrowser:                {"Chrome", "Firefox", "Safari"},
		overview.BreakdownOS:                     {"Linux", "macOS", "Windows"},
		overview.BreakdownDeviceType:             {"Desktop", "Mobile", "Tablet"},
	}[breakdown]
	rows := make([]overview.QueryResultRow, len(values))
	for i, value := range values {
		visitors := 900 - 250*i
		rows[i] = overview.QueryResultRow{
			Value:    value,
			Visitors: visitors,
			Views:    visitors * 3 / 2,
			Share:    float64(visitors) / 1600,
		}
	}
	return rows
}

func seededInt(seed string, i int) int {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s:%d", seed, i)
	return int(h.Sum32())
}

func cloneResult(result overview.QueryResult) overview.QueryResult {
	out := overview.QueryResult{}
	if result.Totals != nil {
		out.Totals = make(map[string]float64, len(result.Totals))
		for k, v := range result.Totals {
			out.Totals[k] = v
		}
	}
	if result.Rows != nil {
		out.Rows = append([]overview.QueryResultRow(nil), result.Rows...)
	}
	if result.Series != nil {
		out.Series = append([]overview.QueryResultPoint(nil), result.Series...)
	}
	return out
}
