package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	overview "github.com/goliatone/go-webstats/components/overview"
	"github.com/goliatone/go-webstats/components/overview/commands"
	"github.com/goliatone/go-webstats/components/overview/httpapi"
)

// ViewerResolver converts a router.Context into an overview.ViewerContext.
type ViewerResolver func(router.Context) overview.ViewerContext

// Config wires go-router with the overview controller, API, and hooks.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *overview.Controller
	API            httpapi.Executor
	Broadcast      *overview.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for overview endpoints.
type RouteConfig struct {
	HTML      string
	Tiles     string
	State     string
	Toggle    string
	Filters   string
	Tabs      string
	WebSocket string
}

// Register mounts overview routes (HTML, JSON, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/stats"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		if cfg.API != nil {
			if err := applyQueryActions(ctx, cfg.API); err != nil {
				return respondError(ctx, http.StatusUnprocessableEntity, err)
			}
		}
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), viewer, &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

// applyQueryActions executes the actions encoded by the screen's own links:
// breakdown value clicks (?toggle=&value=) and tab switches (?group=&tab=).
func applyQueryActions(ctx router.Context, api httpapi.Executor) error {
	if key := ctx.Query("toggle"); key != "" {
		if err := api.Toggle(ctx.Context(), commands.ToggleFilterRequest{
			Key:   key,
			Value: ctx.Query("value"),
		}); err != nil {
			return err
		}
	}
	if group := ctx.Query("group"); group != "" {
		if tab := ctx.Query("tab"); tab != "" {
			return api.SetTab(ctx.Context(), commands.SetTabRequest{
				Group: overview.TabGroupID(group),
				Tab:   overview.TabID(tab),
			})
		}
	}
	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Get(routes.Tiles, router.WrapHandler(func(ctx router.Context) error {
		tiles, err := api.Tiles(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]any{"tiles": tiles})
	}))

	r.Get(routes.State, router.WrapHandler(func(ctx router.Context) error {
		state, err := api.State(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, state)
	}))

	r.Post(routes.Toggle, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ToggleFilterRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Toggle(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "toggled"})
	}))

	r.Post(routes.Filters, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ReplaceFiltersRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Replace(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "replaced"})
	}))

	r.Post(routes.Tabs, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SetTabRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.SetTab(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "switched"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *overview.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultViewerResolver(ctx router.Context) overview.ViewerContext {
	var viewer overview.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/overview"
	}
	if routes.Tiles == "" {
		routes.Tiles = "/overview/_tiles"
	}
	if routes.State == "" {
		routes.State = "/overview/_state"
	}
	if routes.Toggle == "" {
		routes.Toggle = "/overview/filters/toggle"
	}
	if routes.Filters == "" {
		routes.Filters = "/overview/filters"
	}
	if routes.Tabs == "" {
		routes.Tabs = "/overview/tabs"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/overview/ws"
	}
	return routes
}
