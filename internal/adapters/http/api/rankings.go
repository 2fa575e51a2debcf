package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/view"
)

const defaultRankingLimit = 25

type rankingsResponse struct {
	Kind    model.Kind         `json:"kind"`
	Metric  string             `json:"metric"`
	Cohort  string             `json:"cohort"`
	Order   string             `json:"order"`
	Entries []view.RankedEntry `json:"entries"`
}

// RankingsHandler serves ranked tables.
type RankingsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRankingsHandler creates a new rankings handler. Requests asking for more
// than maxLimit rows are rejected.
func NewRankingsHandler(deps Dependencies, maxLimit int) *RankingsHandler {
	if maxLimit < 1 {
		maxLimit = defaultRankingLimit
	}
	return &RankingsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetRankings handles GET /rankings?kind=team&metric=rating&cohort=east&limit=10.
func (h *RankingsHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
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
	limit, err := h.parseLimit(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	metric := strings.TrimSpace(q.Get("metric"))
	if metric == "" {
		metric = ranking.RatingKey
	}

	snap, err := h.deps.Current(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	entries := snap.Ranking(kind, metric, cohort)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	writeJSON(w, http.StatusOK, rankingsResponse{
		Kind:    kind,
		Metric:  metric,
		Cohort:  cohort.Name,
		Order:   snap.Policy(kind).OrderFor(metric).String(),
		Entries: entries,
	})
}

func (h *RankingsHandler) parseLimit(raw string) (int, error) {
	if raw == "" {
		return min(defaultRankingLimit, h.maxLimit), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: limit %q", ErrBadRequest, raw)
	}
	if n > h.maxLimit {
		return 0, fmt.Errorf("%w: %d > %d", ErrLimitExceeded, n, h.maxLimit)
	}
	return n, nil
}

func parseKind(raw string) (model.Kind, error) {
	switch model.Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case "", model.KindTeam:
		return model.KindTeam, nil
	case model.KindPlayer:
		return model.KindPlayer, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}
