package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	overview "github.com/goliatone/go-webstats/components/overview"
)

// SetTabRequest selects the active tab of one tabbed tile group.
type SetTabRequest struct {
	Group overview.TabGroupID `json:"group"`
	Tab   overview.TabID      `json:"tab"`
}

type tabStore interface {
	SetTab(ctx context.Context, group overview.TabGroupID, tab overview.TabID) error
}

// SetTabCommand routes tab switches to the store by group id.
type SetTabCommand struct {
	store     tabStore
	telemetry Telemetry
}

// NewSetTabCommand creates a command instance.
func NewSetTabCommand(store tabStore, telemetry Telemetry) *SetTabCommand {
	return &SetTabCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetTabRequest] = (*SetTabCommand)(nil)

// Execute delegates to the overview store.
func (c *SetTabCommand) Execute(ctx context.Context, msg SetTabRequest) error {
	if c.store == nil {
		return errors.New("set-tab command requires store")
	}
	if msg.Group == "" || msg.Tab == "" {
		return errors.New("set-tab command requires group and tab")
	}
	if err := c.store.SetTab(ctx, msg.Group, msg.Tab); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "overview.command.set_tab", map[string]any{
		"group": string(msg.Group),
		"tab":   string(msg.Tab),
	})
	return nil
}
