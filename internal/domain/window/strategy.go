// Package window computes trailing rating deltas and the date windows shared
// by every component that filters by recency.
//
// All windowing is relative to the latest date present in the data, never to
// the wall clock, so stale datasets still filter correctly.
package window

import (
	"math"
	"sort"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
)

// DeltaStrategy computes the net rating change over an entity's last n games.
// n <= 0 means the whole season.
type DeltaStrategy interface {
	Name() string
	Delta(e model.Entity, n int) int
}

// GameLogStrategy sums the per-game rating deltas of the n most recent games.
type GameLogStrategy struct{}

// Name implements DeltaStrategy.
func (GameLogStrategy) Name() string { return "game_log" }

// Delta implements DeltaStrategy.
func (GameLogStrategy) Delta(e model.Entity, n int) int {
	games := make([]model.GameResult, len(e.Games))
	copy(games, e.Games)
	sort.SliceStable(games, func(i, j int) bool {
		if !games[i].Date.Equal(games[j].Date) {
			return games[i].Date.After(games[j].Date)
		}
		return games[i].GameID > games[j].GameID
	})
	if n > 0 && n < len(games) {
		games = games[:n]
	}
	var sum float64
	for _, g := range games {
		sum += g.RatingDelta
	}
	return int(math.Round(sum))
}

// HistoryStrategy differences the dated rating series.
type HistoryStrategy struct{}

// Name implements DeltaStrategy.
func (HistoryStrategy) Name() string { return "history" }

// Delta implements DeltaStrategy. With more than n points the delta is
// last - points[len-n-1]; otherwise it is last - first.
func (HistoryStrategy) Delta(e model.Entity, n int) int {
	h := e.History
	if len(h) == 0 {
		return 0
	}
	last := h[len(h)-1].Value
	if n > 0 && len(h) > n {
		return int(math.Round(last - h[len(h)-n-1].Value))
	}
	return int(math.Round(last - h[0].Value))
}

// StrategyFor prefers the game log when the entity has one.
func StrategyFor(e model.Entity) DeltaStrategy {
	if len(e.Games) > 0 {
		return GameLogStrategy{}
	}
	return HistoryStrategy{}
}

// TrailingDelta returns the rating change over the entity's last n games.
func TrailingDelta(e model.Entity, n int) int {
	return StrategyFor(e).Delta(e, n)
}
