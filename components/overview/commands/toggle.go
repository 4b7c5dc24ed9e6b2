package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ToggleFilterRequest carries one breakdown-value click.
type ToggleFilterRequest struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type toggleStore interface {
	ToggleFilter(ctx context.Context, key string, value any) error
}

// ToggleFilterCommand wraps Store.ToggleFilter so transports can invoke
// filter toggles without linking directly against the store.
type ToggleFilterCommand struct {
	store     toggleStore
	telemetry Telemetry
}

// NewToggleFilterCommand creates a command instance.
func NewToggleFilterCommand(store toggleStore, telemetry Telemetry) *ToggleFilterCommand {
	return &ToggleFilterCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleFilterRequest] = (*ToggleFilterCommand)(nil)

// Execute delegates to the overview store.
func (c *ToggleFilterCommand) Execute(ctx context.Context, msg ToggleFilterRequest) error {
	if c.store == nil {
		return errors.New("toggle command requires store")
	}
	if msg.Key == "" {
		return errors.New("toggle command requires a property key")
	}
	if err := c.store.ToggleFilter(ctx, msg.Key, msg.Value); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "overview.command.toggle_filter", map[string]any{
		"key": msg.Key,
	})
	return nil
}
