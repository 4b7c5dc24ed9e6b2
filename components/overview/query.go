package overview

// QueryKind selects the shape of an embedded query.
type QueryKind string

const (
	QueryKindOverviewStats  QueryKind = "overview_stats"
	QueryKindBreakdownTable QueryKind = "breakdown_table"
	QueryKindTrendSeries    QueryKind = "trend_series"
	QueryKindWorldMap       QueryKind = "world_map"
	QueryKindRetention      QueryKind = "retention"
)

// Interval is the bucketing granularity for trend queries.
type Interval string

const (
	IntervalDay  Interval = "day"
	IntervalWeek Interval = "week"
)

// DateRange is a relative window expressed the way the upstream analytics API
// accepts it (e.g. "-7d" .. now).
type DateRange struct {
	From string `json:"date_from" yaml:"date_from"`
	To   string `json:"date_to,omitempty" yaml:"date_to,omitempty"`
}

// DefaultDateRange is the fixed 7-day window every overview tile queries.
func DefaultDateRange() DateRange {
	return DateRange{From: "-7d"}
}

// Query is a declarative description of the data a tile renders. It carries
// the screen's filter list verbatim; execution belongs to an external runner.
type Query struct {
	Kind               QueryKind        `json:"kind" yaml:"kind"`
	Breakdown          Breakdown        `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
	DateRange          DateRange        `json:"date_range" yaml:"date_range"`
	Interval           Interval         `json:"interval,omitempty" yaml:"interval,omitempty"`
	Compare            bool             `json:"compare,omitempty" yaml:"compare,omitempty"`
	Properties         []PropertyFilter `json:"properties" yaml:"properties"`
	FilterTestAccounts bool             `json:"filter_test_accounts" yaml:"filter_test_accounts"`
}

// QueryResultRow is one breakdown bucket returned by a runner.
type QueryResultRow struct {
	Value    string  `json:"value"`
	Visitors int     `json:"visitors"`
	Views    int     `json:"views"`
	Share    float64 `json:"share"`
}

// QueryResultPoint is one time bucket of a trend series.
type QueryResultPoint struct {
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Previous float64 `json:"previous,omitempty"`
}

// QueryResult is the runner payload consumed by the renderer. Fields are
// populated according to the query kind; unused sections stay empty.
type QueryResult struct {
	Totals map[string]float64 `json:"totals,omitempty"`
	Rows   []QueryResultRow   `json:"rows,omitempty"`
	Series []QueryResultPoint `json:"series,omitempty"`
}
