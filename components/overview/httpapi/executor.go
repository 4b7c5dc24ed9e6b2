package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	overview "github.com/goliatone/go-webstats/components/overview"
	"github.com/goliatone/go-webstats/components/overview/commands"
	"github.com/goliatone/go-webstats/components/overview/queries"
)

// Executor abstracts the overview command/query surface for router adapters
// that don't speak net/http directly.
type Executor interface {
	Toggle(ctx context.Context, req commands.ToggleFilterRequest) error
	Replace(ctx context.Context, req commands.ReplaceFiltersRequest) error
	SetTab(ctx context.Context, req commands.SetTabRequest) error
	Tiles(ctx context.Context) ([]overview.Tile, error)
	State(ctx context.Context) (overview.State, error)
}

// CommandExecutor adapts the shared commands and queries to Executor.
type CommandExecutor struct {
	toggle  gocommand.Commander[commands.ToggleFilterRequest]
	replace gocommand.Commander[commands.ReplaceFiltersRequest]
	setTab  gocommand.Commander[commands.SetTabRequest]
	tiles   gocommand.Querier[queries.TilesRequest, []overview.Tile]
	state   gocommand.Querier[queries.StateRequest, overview.State]
}

var _ Executor = (*CommandExecutor)(nil)

// NewCommandExecutor wires the standard command set against a store and
// controller.
func NewCommandExecutor(store *overview.Store, controller *overview.Controller, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		toggle:  commands.NewToggleFilterCommand(store, telemetry),
		replace: commands.NewReplaceFiltersCommand(store, telemetry),
		setTab:  commands.NewSetTabCommand(store, telemetry),
		tiles:   queries.NewTilesQuery(controller),
		state:   queries.NewStateQuery(store),
	}
}

func (e *CommandExecutor) Toggle(ctx context.Context, req commands.ToggleFilterRequest) error {
	if e.toggle == nil {
		return errors.New("httpapi: toggle command not configured")
	}
	return e.toggle.Execute(ctx, req)
}

func (e *CommandExecutor) Replace(ctx context.Context, req commands.ReplaceFiltersRequest) error {
	if e.replace == nil {
		return errors.New("httpapi: replace command not configured")
	}
	return e.replace.Execute(ctx, req)
}

func (e *CommandExecutor) SetTab(ctx context.Context, req commands.SetTabRequest) error {
	if e.setTab == nil {
		return errors.New("httpapi: set-tab command not configured")
	}
	return e.setTab.Execute(ctx, req)
}

func (e *CommandExecutor) Tiles(ctx context.Context) ([]overview.Tile, error) {
	if e.tiles == nil {
		return nil, errors.New("httpapi: tiles query not configured")
	}
	return e.tiles.Query(ctx, queries.TilesRequest{})
}

func (e *CommandExecutor) State(ctx context.Context) (overview.State, error) {
	if e.state == nil {
		return overview.State{}, errors.New("httpapi: state query not configured")
	}
	return e.state.Query(ctx, queries.StateRequest{})
}
