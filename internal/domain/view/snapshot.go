package view

import (
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/domain/baseline"
	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/window"
)

// Rank scopes stored on every entity view.
const (
	ScopeLeague     = "league"
	ScopeConference = "conference"
	ScopePosition   = "position"
)

// Standing is an entity's place for one metric within one cohort.
type Standing struct {
	Rank       int          `json:"rank"`
	Of         int          `json:"of"`
	Percentile float64      `json:"percentile"`
	Tier       ranking.Tier `json:"tier"`
}

// EntityView is a normalized entity enriched with every derived field.
type EntityView struct {
	model.Entity
	// Deltas maps a window label ("7", "30", "season") to the trailing delta.
	Deltas        map[string]int `json:"deltas"`
	DeltaStrategy string         `json:"deltaStrategy"`
	// Ranks maps a scope (league, conference or position) to per-metric standings.
	Ranks   map[string]map[string]Standing `json:"ranks"`
	Ratings model.CategoryRatingSet        `json:"ratings"`
}

// Quality summarizes data problems found while building a snapshot.
type Quality struct {
	DuplicateTeams     int `json:"duplicateTeams"`
	DuplicatePlayers   int `json:"duplicatePlayers"`
	InconsistentGames  int `json:"inconsistentGames"`
	SyntheticTeams     int `json:"syntheticTeams"`
	SyntheticPlayers   int `json:"syntheticPlayers"`
	PlaceholderRecords int `json:"placeholderRecords"`
}

// Snapshot is one immutable, fully derived view model. A refresh replaces
// it as a whole.
type Snapshot struct {
	Version       string              `json:"version"`
	Season        string              `json:"season,omitempty"`
	SeasonType    string              `json:"seasonType,omitempty"`
	SourceUpdated string              `json:"sourceUpdated,omitempty"`
	BuiltAt       time.Time           `json:"builtAt"`
	Anchor        time.Time           `json:"anchor"`
	Windows       []string            `json:"windows"`
	Teams         []EntityView        `json:"teams"`
	Players       []EntityView        `json:"players"`
	Baselines     []baseline.Baseline `json:"baselines"`
	Quality       Quality             `json:"quality"`

	teamPolicy   ranking.Policy
	playerPolicy ranking.Policy
	teamIndex    map[string]int
	playerIndex  map[string]int
}

// Team returns the team view with id.
func (s *Snapshot) Team(id string) (EntityView, bool) {
	i, ok := s.teamIndex[id]
	if !ok {
		return EntityView{}, false
	}
	return s.Teams[i], true
}

// Player returns the player view with id.
func (s *Snapshot) Player(id string) (EntityView, bool) {
	i, ok := s.playerIndex[id]
	if !ok {
		return EntityView{}, false
	}
	return s.Players[i], true
}

// Views returns the entity views of kind.
func (s *Snapshot) Views(kind model.Kind) []EntityView {
	if kind == model.KindPlayer {
		return s.Players
	}
	return s.Teams
}

// Policy returns the metric order policy for kind.
func (s *Snapshot) Policy(kind model.Kind) ranking.Policy {
	if kind == model.KindPlayer {
		return s.playerPolicy
	}
	return s.teamPolicy
}

// RankedEntry is one row of a ranking table.
type RankedEntry struct {
	Rank       int          `json:"rank"`
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Team       string       `json:"team,omitempty"`
	Color      string       `json:"color"`
	Value      float64      `json:"value"`
	Percentile float64      `json:"percentile"`
	Tier       ranking.Tier `json:"tier"`
}

// Ranking ranks every entity of kind in cohort by metric, using the snapshot's
// policy for direction. Entities without the metric are left out.
func (s *Snapshot) Ranking(kind model.Kind, metric string, cohort ranking.Cohort) []RankedEntry {
	views := s.Views(kind)
	entities := make([]model.Entity, len(views))
	for i := range views {
		entities[i] = views[i].Entity
	}
	sel := ranking.SelectorFor(metric)
	ranks := ranking.RankWithin(entities, cohort, sel, s.Policy(kind).OrderFor(metric))

	out := make([]RankedEntry, len(ranks))
	for _, v := range views {
		r, ok := ranks[v.ID]
		if !ok {
			continue
		}
		value, _ := sel(v.Entity)
		pct := ranking.Percentile(r, len(ranks))
		out[r-1] = RankedEntry{
			Rank:       r,
			ID:         v.ID,
			Name:       v.Name,
			Team:       v.TeamAbbreviation,
			Color:      v.Color,
			Value:      value,
			Percentile: pct,
			Tier:       ranking.TierFor(pct),
		}
	}
	return out
}

// Baseline computes the cohort's mean rating line over span on demand,
// anchored on the snapshot's latest date.
func (s *Snapshot) Baseline(kind model.Kind, cohort ranking.Cohort, span window.Span) baseline.Baseline {
	views := s.Views(kind)
	entities := make([]model.Entity, len(views))
	for i := range views {
		entities[i] = views[i].Entity
	}
	if s.Anchor.IsZero() {
		return baseline.ForSpan(entities, cohort, baseline.History(), span)
	}
	return baseline.ForSpanAt(entities, cohort, baseline.History(), span, s.Anchor)
}
