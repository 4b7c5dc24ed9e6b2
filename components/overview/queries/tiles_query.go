package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	overview "github.com/goliatone/go-webstats/components/overview"
)

type tilesSource interface {
	Tiles(ctx context.Context) ([]overview.Tile, error)
}

// TilesRequest asks for the tile list derived from the current state.
type TilesRequest struct {
	Viewer overview.ViewerContext `json:"viewer"`
}

// TilesQuery executes read-only tile derivation.
type TilesQuery struct {
	source tilesSource
}

// NewTilesQuery builds the query.
func NewTilesQuery(source tilesSource) *TilesQuery {
	return &TilesQuery{source: source}
}

var _ gocommand.Querier[TilesRequest, []overview.Tile] = (*TilesQuery)(nil)

// Query resolves the ordered tile descriptors.
func (q *TilesQuery) Query(ctx context.Context, _ TilesRequest) ([]overview.Tile, error) {
	return q.source.Tiles(ctx)
}
