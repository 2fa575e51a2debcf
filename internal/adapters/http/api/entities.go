package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/view"
)

// EntitySummary is the list form of an entity view.
type EntitySummary struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Abbreviation     string           `json:"abbreviation,omitempty"`
	Conference       model.Conference `json:"conference,omitempty"`
	Position         string           `json:"position,omitempty"`
	TeamAbbreviation string           `json:"teamAbbreviation,omitempty"`
	Color            string           `json:"color"`
	Record           string           `json:"record,omitempty"`
	CurrentRating    float64          `json:"currentRating"`
	Deltas           map[string]int   `json:"deltas"`
	Overall          int              `json:"overall"`
}

type listResponse struct {
	Version string          `json:"version"`
	Count   int             `json:"count"`
	Items   []EntitySummary `json:"items"`
}

// EntitiesHandler serves team and player lists and detail views.
type EntitiesHandler struct {
	deps Dependencies
}

// NewEntitiesHandler creates a new entities handler.
func NewEntitiesHandler(deps Dependencies) *EntitiesHandler {
	return &EntitiesHandler{deps: deps}
}

// HandleListTeams handles GET /teams?conference=east.
func (h *EntitiesHandler) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	cohort := ranking.League()
	if c := r.URL.Query().Get("conference"); c != "" {
		parsed, err := parseConference(c)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		cohort = parsed
	}
	h.list(w, r, model.KindTeam, cohort)
}

// HandleListPlayers handles GET /players?position=G&team=OKC.
func (h *EntitiesHandler) HandleListPlayers(w http.ResponseWriter, r *http.Request) {
	cohort := ranking.League()
	if p := r.URL.Query().Get("position"); p != "" {
		cohort = ranking.PositionCohort(p)
	}
	if team := strings.ToUpper(r.URL.Query().Get("team")); team != "" {
		inner := cohort
		cohort = ranking.Cohort{
			Name: inner.Name + ",team=" + team,
			Match: func(e model.Entity) bool {
				return inner.Match(e) && strings.EqualFold(e.TeamAbbreviation, team)
			},
		}
	}
	h.list(w, r, model.KindPlayer, cohort)
}

func (h *EntitiesHandler) list(w http.ResponseWriter, r *http.Request, kind model.Kind, cohort ranking.Cohort) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Current(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	items := make([]EntitySummary, 0)
	for _, v := range snap.Views(kind) {
		if !cohort.Match(v.Entity) {
			continue
		}
		items = append(items, summarize(v))
	}
	writeJSON(w, http.StatusOK, listResponse{Version: snap.Version, Count: len(items), Items: items})
}

// HandleGetTeam handles GET /teams/{id}.
func (h *EntitiesHandler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, model.KindTeam, "/teams/")
}

// HandleGetPlayer handles GET /players/{id}.
func (h *EntitiesHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, model.KindPlayer, "/players/")
}

func (h *EntitiesHandler) get(w http.ResponseWriter, r *http.Request, kind model.Kind, prefix string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	v, err := h.deps.Entity(r.Context(), kind, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func summarize(v view.EntityView) EntitySummary {
	s := EntitySummary{
		ID:               v.ID,
		Name:             v.Name,
		Abbreviation:     v.Abbreviation,
		Conference:       v.Conference,
		Position:         v.Position,
		TeamAbbreviation: v.TeamAbbreviation,
		Color:            v.Color,
		CurrentRating:    v.CurrentRating,
		Deltas:           v.Deltas,
		Overall:          v.Ratings.Overall,
	}
	if v.Kind == model.KindTeam {
		s.Record = v.Record.String()
	}
	return s
}

func parseConference(raw string) (ranking.Cohort, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "east":
		return ranking.ConferenceCohort(model.East), nil
	case "west":
		return ranking.ConferenceCohort(model.West), nil
	}
	return ranking.Cohort{}, fmt.Errorf("%w: %q", ErrUnknownConference, raw)
}
