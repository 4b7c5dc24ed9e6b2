package analytics

import (
	"context"

	overview "github.com/goliatone/go-webstats/components/overview"
)

// Client executes tile query descriptors against an analytics backend. It is
// the overview.QueryRunner contract re-exported so applications can depend on
// this package alone.
type Client interface {
	RunQuery(ctx context.Context, query overview.Query) (overview.QueryResult, error)
}
