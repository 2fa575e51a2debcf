package api

import (
	"net/http"

	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/window"
)

// BaselinesHandler serves cohort mean rating lines.
type BaselinesHandler struct {
	deps Dependencies
}

// NewBaselinesHandler creates a new baselines handler.
func NewBaselinesHandler(deps Dependencies) *BaselinesHandler {
	return &BaselinesHandler{deps: deps}
}

// HandleGetBaselines handles GET /baselines?kind=team&cohort=west&span=30d.
func (h *BaselinesHandler) HandleGetBaselines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()

	kind, err := parseKind(q.Get("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	cohort, err := ranking.ParseCohort(q.Get("cohort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	span := window.Span7d
	if raw := q.Get("span"); raw != "" {
		if span, err = window.ParseSpan(raw); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
	}

	snap, err := h.deps.Current(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Baseline(kind, cohort, span))
}
