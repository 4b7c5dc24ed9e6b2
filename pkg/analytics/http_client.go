package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	overview "github.com/goliatone/go-webstats/components/overview"
)

// HTTPConfig configures the HTTP analytics client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	ProjectID  string
	HTTPClient *http.Client
}

// HTTPClient talks to a remote analytics service via its query REST endpoint.
type HTTPClient struct {
	baseURL   string
	apiKey    string
	projectID string
	client    *http.Client
}

var _ Client = (*HTTPClient)(nil)
var _ overview.QueryRunner = (*HTTPClient)(nil)

// NewHTTPClient builds a client capable of hitting a live analytics API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("analytics: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		projectID: cfg.ProjectID,
		client:    httpClient,
	}, nil
}

// RunQuery implements overview.QueryRunner by posting the descriptor to the
// remote query endpoint.
func (c *HTTPClient) RunQuery(ctx context.Context, query overview.Query) (overview.QueryResult, error) {
	req := queryRequest{
		ProjectID: c.projectID,
		Query:     query,
	}
	var resp queryResponse
	if err := c.do(ctx, http.MethodPost, "/query", req, &resp); err != nil {
		return overview.QueryResult{}, err
	}
	return resp.toResult(), nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("analytics: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("analytics: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analytics: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("analytics: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("analytics: decode response: %w", err)
	}
	return nil
}

type queryRequest struct {
	ProjectID string         `json:"project_id,omitempty"`
	Query     overview.Query `json:"query"`
}

type resultRow struct {
	Value    string  `json:"value"`
	Visitors int     `json:"visitors"`
	Views    int     `json:"views"`
	Share    float64 `json:"share"`
}

type resultPoint struct {
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Previous float64 `json:"previous,omitempty"`
}

type queryResponse struct {
	Totals map[string]float64 `json:"totals,omitempty"`
	Rows   []resultRow        `json:"rows,omitempty"`
	Series []resultPoint      `json:"series,omitempty"`
}

func (r queryResponse) toResult() overview.QueryResult {
	result := overview.QueryResult{}
	if len(r.Totals) > 0 {
		result.Totals = make(map[string]float64, len(r.Totals))
		for k, v := range r.Totals {
			result.Totals[k] = v
		}
	}
	if len(r.Rows) > 0 {
		result.Rows = make([]overview.QueryResultRow, len(r.Rows))
		for i, row := range r.Rows {
			result.Rows[i] = overview.QueryResultRow{
				Value:    row.Value,
				Visitors: row.Visitors,
				Views:    row.Views,
				Share:    row.Share,
			}
		}
	}
	if len(r.Series) > 0 {
		result.Series = make([]overview.QueryResultPoint, len(r.Series))
		for i, point := range r.Series {
			result.Series[i] = overview.QueryResultPoint{
				Label:    point.Label,
				Value:    point.Value,
				Previous: point.Previous,
			}
		}
	}
	return result
}
