package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	overview "github.com/goliatone/go-webstats/components/overview"
)

// ReplaceFiltersRequest is the wholesale filter-list swap issued by the
// filter-picker widget.
type ReplaceFiltersRequest struct {
	Filters []overview.PropertyFilter `json:"filters"`
}

type replaceStore interface {
	ReplaceFilters(ctx context.Context, filters []overview.PropertyFilter) error
}

// ReplaceFiltersCommand overwrites the active filter list.
type ReplaceFiltersCommand struct {
	store     replaceStore
	telemetry Telemetry
}

// NewReplaceFiltersCommand creates a command instance.
func NewReplaceFiltersCommand(store replaceStore, telemetry Telemetry) *ReplaceFiltersCommand {
	return &ReplaceFiltersCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReplaceFiltersRequest] = (*ReplaceFiltersCommand)(nil)

// Execute delegates to the overview store.
func (c *ReplaceFiltersCommand) Execute(ctx context.Context, msg ReplaceFiltersRequest) error {
	if c.store == nil {
		return errors.New("replace command requires store")
	}
	if err := c.store.ReplaceFilters(ctx, msg.Filters); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "overview.command.replace_filters", map[string]any{
		"count": len(msg.Filters),
	})
	return nil
}
