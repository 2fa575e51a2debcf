package normalize

import (
	"time"

	"github.com/KrishalDhungana/NBABrain/pkg/logger"
)

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithClock sets the clock used when a history has to be synthesized.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// WithPalette replaces the fallback color palette.
func WithPalette(palette []string) Option {
	return func(n *Normalizer) {
		if len(palette) > 0 {
			n.palette = append([]string(nil), palette...)
		}
	}
}

// WithDefaultRatings sets the ratings used when an entity has neither an
// explicit current rating nor any history.
func WithDefaultRatings(team, player float64) Option {
	return func(n *Normalizer) {
		if team > 0 {
			n.defaultTeamRating = team
		}
		if player > 0 {
			n.defaultPlayerRating = player
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}
