package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	overview "github.com/goliatone/go-webstats/components/overview"
)

type stateSource interface {
	State() overview.State
}

// StateRequest asks for the current screen state snapshot.
type StateRequest struct{}

// StateQuery exposes the store snapshot to transports.
type StateQuery struct {
	source stateSource
}

// NewStateQuery builds the query.
func NewStateQuery(source stateSource) *StateQuery {
	return &StateQuery{source: source}
}

var _ gocommand.Querier[StateRequest, overview.State] = (*StateQuery)(nil)

// Query returns a copy of the current state.
func (q *StateQuery) Query(_ context.Context, _ StateRequest) (overview.State, error) {
	return q.source.State(), nil
}
