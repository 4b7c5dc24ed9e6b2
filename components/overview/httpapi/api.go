package httpapi

import (
	"encoding/json"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	overview "github.com/goliatone/go-webstats/components/overview"
	"github.com/goliatone/go-webstats/components/overview/commands"
	"github.com/goliatone/go-webstats/components/overview/queries"
)

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Toggle  gocommand.Commander[commands.ToggleFilterRequest]
	Replace gocommand.Commander[commands.ReplaceFiltersRequest]
	SetTab  gocommand.Commander[commands.SetTabRequest]
	Tiles   gocommand.Querier[queries.TilesRequest, []overview.Tile]
	State   gocommand.Querier[queries.StateRequest, overview.State]
}

func (h *Handlers) HandleToggleFilter(w http.ResponseWriter, r *http.Request) {
	var payload commands.ToggleFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Toggle.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleReplaceFilters(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReplaceFiltersRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Replace.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSetTab(w http.ResponseWriter, r *http.Request) {
	var payload commands.SetTabRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.SetTab.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleTiles(w http.ResponseWriter, r *http.Request) {
	tiles, err := h.Tiles.Query(r.Context(), queries.TilesRequest{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"tiles": tiles})
}

func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	state, err := h.State.Query(r.Context(), queries.StateRequest{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, state)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
