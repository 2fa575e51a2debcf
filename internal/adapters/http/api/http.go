// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KrishalDhungana/NBABrain/internal/adapters/repository"
	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/view"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Current(ctx context.Context) (*view.Snapshot, error)
	Entity(ctx context.Context, kind model.Kind, id string) (view.EntityView, error)
}

// Server wires HTTP routes for the read API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	entitiesHandler  *EntitiesHandler
	rankingsHandler  *RankingsHandler
	baselinesHandler *BaselinesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps, statsProvider),
		entitiesHandler:  NewEntitiesHandler(deps),
		rankingsHandler:  NewRankingsHandler(deps, maxLimit),
		baselinesHandler: NewBaselinesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.entitiesHandler.HandleListTeams, "teams"))
	mux.HandleFunc("/teams/", MetricsMiddleware(s.entitiesHandler.HandleGetTeam, "team"))
	mux.HandleFunc("/players", MetricsMiddleware(s.entitiesHandler.HandleListPlayers, "players"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.entitiesHandler.HandleGetPlayer, "player"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/baselines", MetricsMiddleware(s.baselinesHandler.HandleGetBaselines, "baselines"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	tagError(w, code)
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeStoreError translates store sentinels into HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNoSnapshot):
		writeError(w, http.StatusServiceUnavailable, "no_snapshot", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
