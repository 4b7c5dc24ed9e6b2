package webapp

import (
	"context"
	"testing"

	overviewpkg "github.com/goliatone/go-webstats/pkg/overview"
)

type stubMenuBuilder struct {
	calls int
	code  string
	item  MenuItem
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, code string, item MenuItem) error {
	s.calls++
	s.code = code
	s.item = item
	return nil
}

func TestNewRequiresControllerWhenEnabled(t *testing.T) {
	if _, err := New(Config{EnableOverview: true}); err == nil {
		t.Fatalf("expected error when controller missing")
	}
}

func TestBootstrapSeedsMenu(t *testing.T) {
	menu := &stubMenuBuilder{}
	controller := overviewpkg.NewController(overviewpkg.ControllerOptions{
		Store: overviewpkg.NewStore(overviewpkg.Options{}),
	})
	app, err := New(Config{
		EnableOverview: true,
		Controller:     controller,
		MenuBuilder:    menu,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := app.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if menu.calls != 1 {
		t.Fatalf("expected menu seed")
	}
	if menu.code != "app.main" || menu.item.Label != "Web Analytics" {
		t.Fatalf("unexpected defaults: %s %+v", menu.code, menu.item)
	}
	if app.Overview() == nil {
		t.Fatalf("expected controller exposed when enabled")
	}
}

func TestBootstrapNoopWhenDisabled(t *testing.T) {
	menu := &stubMenuBuilder{}
	app, err := New(Config{MenuBuilder: menu})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := app.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if menu.calls != 0 {
		t.Fatalf("disabled app must not seed menus")
	}
	if app.Overview() != nil {
		t.Fatalf("disabled app must not expose controller")
	}
}
