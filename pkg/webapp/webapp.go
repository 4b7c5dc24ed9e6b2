package webapp

import (
	"context"
	"errors"

	overviewpkg "github.com/goliatone/go-webstats/pkg/overview"
)

// MenuBuilder ensures the analytics entry exists within the host navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures the analytics link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the overview controller + feature flags into a host web app.
type Config struct {
	EnableOverview  bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Controller      *overviewpkg.Controller
	DefaultMenuItem MenuItem
}

// App exposes helpers for applications embedding the web-analytics screen.
type App struct {
	cfg Config
}

// New creates an App helper that can seed navigation entries.
func New(cfg Config) (*App, error) {
	if cfg.EnableOverview && cfg.Controller == nil {
		return nil, errors.New("webapp: overview controller is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "app.main"
	}
	if cfg.DefaultMenuItem.Label == "" {
		cfg.DefaultMenuItem.Label = "Web Analytics"
	}
	if cfg.DefaultMenuItem.Route == "" {
		cfg.DefaultMenuItem.Route = "stats.overview"
	}
	if cfg.DefaultMenuItem.Icon == "" {
		cfg.DefaultMenuItem.Icon = "chart-bar"
	}
	return &App{cfg: cfg}, nil
}

// Overview exposes the configured controller when enabled.
func (a *App) Overview() *overviewpkg.Controller {
	if !a.cfg.EnableOverview {
		return nil
	}
	return a.cfg.Controller
}

// Bootstrap seeds menu entries when the overview screen is enabled.
func (a *App) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableOverview || a.cfg.MenuBuilder == nil {
		return nil
	}
	return a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, a.cfg.DefaultMenuItem)
}
