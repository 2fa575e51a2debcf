package api

import (
	"maps"
	"net/http"
	"time"
)

// StatsProvider reports refresh-cycle statistics.
type StatsProvider interface {
	GetStats() map[string]any
}

type snapshotSummary struct {
	Version string    `json:"version"`
	Season  string    `json:"season,omitempty"`
	BuiltAt time.Time `json:"builtAt"`
	Teams   int       `json:"teams"`
	Players int       `json:"players"`
}

// StatsHandler serves refresh statistics alongside a summary of the
// snapshot currently being served.
type StatsHandler struct {
	deps     Dependencies
	provider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps Dependencies, provider StatsProvider) *StatsHandler {
	return &StatsHandler{deps: deps, provider: provider}
}

// HandleStats handles GET /stats. The snapshot key is null until the first publish.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out := map[string]any{}
	if h.provider != nil {
		maps.Copy(out, h.provider.GetStats())
	}
	var summary *snapshotSummary
	if snap, err := h.deps.Current(r.Context()); err == nil {
		summary = &snapshotSummary{
			Version: snap.Version,
			Season:  snap.Season,
			BuiltAt: snap.BuiltAt,
			Teams:   len(snap.Teams),
			Players: len(snap.Players),
		}
	}
	out["snapshot"] = summary
	writeJSON(w, http.StatusOK, out)
}
