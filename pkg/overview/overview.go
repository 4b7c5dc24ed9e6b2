package overview

import (
	core "github.com/goliatone/go-webstats/components/overview"
)

// Store exposes the underlying components/overview.Store type.
type Store = core.Store

// Options re-export for convenience.
type Options = core.Options

// Controller re-exports the screen controller.
type Controller = core.Controller

// ControllerOptions re-export for convenience.
type ControllerOptions = core.ControllerOptions

// State and filter types commonly needed by embedding applications.
type (
	State          = core.State
	PropertyFilter = core.PropertyFilter
	Tile           = core.Tile
	TabID          = core.TabID
	TabGroupID     = core.TabGroupID
	ViewerContext  = core.ViewerContext
)

// NewStore proxies to the internal constructor.
func NewStore(opts Options) *Store {
	return core.NewStore(opts)
}

// NewController proxies to the internal constructor.
func NewController(opts ControllerOptions) *Controller {
	return core.NewController(opts)
}

// DefaultState returns the mount-time state.
func DefaultState() State {
	return core.DefaultState()
}

// DeriveTiles derives the tile sequence with the default tab tables.
func DeriveTiles(state State) []Tile {
	return core.DeriveTiles(state)
}
