// Package model contains the canonical domain types shared by the rating engine.
//
// Values produced by the engine are treated as immutable: every stage returns
// new records instead of patching the ones it was given.
package model

import (
	"fmt"
	"time"
)

// Kind distinguishes team entities from player entities.
type Kind string

// Entity kinds.
const (
	KindTeam   Kind = "team"
	KindPlayer Kind = "player"
)

// Conference is the grouping a team (or a player's team) belongs to.
type Conference string

// Known conferences.
const (
	East Conference = "East"
	West Conference = "West"
)

// Outcome is the result of a single game from the entity's point of view.
type Outcome string

// Game outcomes. OutcomeUnknown is used when neither scores nor a result
// string are available.
const (
	Win            Outcome = "W"
	Loss           Outcome = "L"
	Tie            Outcome = "T"
	OutcomeUnknown Outcome = ""
)

// RatingPoint is a dated rating value. A series of points for one entity is
// sorted ascending by date with at most one point per date.
type RatingPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// GameResult is one entry of an entity's game log.
type GameResult struct {
	GameID               string    `json:"gameId,omitempty"`
	Date                 time.Time `json:"date"`
	OpponentID           string    `json:"opponentId,omitempty"`
	OpponentAbbreviation string    `json:"opponentAbbreviation,omitempty"`
	ScoreSelf            int       `json:"scoreSelf"`
	ScoreOpponent        int       `json:"scoreOpponent"`
	HasScores            bool      `json:"hasScores"`
	Outcome              Outcome   `json:"outcome"`
	RatingDelta          float64   `json:"ratingDelta"`
	IsHome               bool      `json:"isHome"`
	// Inconsistent marks source rows whose rating delta sign disagrees with the outcome.
	Inconsistent bool `json:"inconsistent,omitempty"`
}

// Record is a win-loss record with an optional seed.
type Record struct {
	Wins    int  `json:"wins"`
	Losses  int  `json:"losses"`
	Seed    int  `json:"seed,omitempty"`
	HasSeed bool `json:"hasSeed"`
	// Placeholder is set when no win-loss string was available and the
	// record only carries the seed. Wins and Losses are then both zero.
	Placeholder bool `json:"placeholder,omitempty"`
}

// String renders the record as "W-L".
func (r Record) String() string {
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// Entity is a normalized team or player.
type Entity struct {
	ID               string     `json:"id"`
	Kind             Kind       `json:"kind"`
	Name             string     `json:"name"`
	Abbreviation     string     `json:"abbreviation,omitempty"`
	Conference       Conference `json:"conference,omitempty"`
	Position         string     `json:"position,omitempty"`
	TeamID           string     `json:"teamId,omitempty"`
	TeamAbbreviation string     `json:"teamAbbreviation,omitempty"`
	Color            string     `json:"color"`
	Record           Record     `json:"record"`

	CurrentRating float64       `json:"currentRating"`
	History       []RatingPoint `json:"history"`
	// SyntheticHistory is set when History was synthesized by the normalizer.
	SyntheticHistory bool         `json:"syntheticHistory,omitempty"`
	Games            []GameResult `json:"games,omitempty"`

	// Metrics holds finite raw metric values keyed by name (offRating, pts, ...).
	Metrics map[string]float64 `json:"metrics"`
	// Categories holds precomputed per-category scores from the external pipeline.
	Categories map[string]float64 `json:"categories,omitempty"`
	// Skills holds single skill attributes used as category fallbacks.
	Skills map[string]float64 `json:"skills,omitempty"`
	// Overall is the externally supplied overall rating, if any.
	Overall *float64 `json:"overall,omitempty"`
}

// Metric returns the named metric value.
func (e Entity) Metric(key string) (float64, bool) {
	v, ok := e.Metrics[key]
	return v, ok
}

// LatestDate returns the date of the last history point.
func (e Entity) LatestDate() (time.Time, bool) {
	if len(e.History) == 0 {
		return time.Time{}, false
	}
	return e.History[len(e.History)-1].Date, true
}

// CategoryRatingSet holds bounded 1-99 ratings per category plus an overall composite.
type CategoryRatingSet struct {
	Categories map[string]int `json:"categories"`
	Overall    int            `json:"overall"`
}
