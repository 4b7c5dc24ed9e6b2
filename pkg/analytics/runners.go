package analytics

import (
	"context"

	overview "github.com/goliatone/go-webstats/components/overview"
)

// NewFallbackRunner returns a runner that consults primary first and falls
// back to secondary when primary errors. Pairing the HTTP client with the mock
// keeps demo and staging screens populated while the backend is unreachable.
func NewFallbackRunner(primary, secondary Client) overview.QueryRunner {
	return &fallbackRunner{primary: primary, secondary: secondary}
}

type fallbackRunner struct {
	primary   Client
	secondary Client
}

func (r *fallbackRunner) RunQuery(ctx context.Context, query overview.Query) (overview.QueryResult, error) {
	result, err := r.primary.RunQuery(ctx, query)
	if err == nil {
		return result, nil
	}
	if r.secondary == nil {
		return overview.QueryResult{}, err
	}
	return r.secondary.RunQuery(ctx, query)
}
