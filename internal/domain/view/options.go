package view

import (
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/domain/composite"
	"github.com/KrishalDhungana/NBABrain/internal/domain/normalize"
	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/window"
	"github.com/KrishalDhungana/NBABrain/pkg/logger"
	"github.com/KrishalDhungana/NBABrain/pkg/worker"
)

// Option configures a Builder.
type Option func(*Builder)

// WithNormalizer replaces the record normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(b *Builder) {
		if n != nil {
			b.normalizer = n
		}
	}
}

// WithComposite replaces the category rating engine.
func WithComposite(e *composite.Engine) Option {
	return func(b *Builder) {
		if e != nil {
			b.composite = e
		}
	}
}

// WithPool sets the worker pool used for per-entity derivation.
func WithPool(p *worker.Pool) Option {
	return func(b *Builder) {
		if p != nil {
			b.pool = p
		}
	}
}

// WithWindows sets the trailing game windows.
func WithWindows(windows ...window.Window) Option {
	return func(b *Builder) {
		if len(windows) > 0 {
			b.windows = windows
		}
	}
}

// WithSpans sets the baseline date spans.
func WithSpans(spans ...window.Span) Option {
	return func(b *Builder) {
		if len(spans) > 0 {
			b.spans = spans
		}
	}
}

// WithMetricOrder overrides the rank direction of metrics for both kinds.
func WithMetricOrder(overrides map[string]ranking.Order) Option {
	return func(b *Builder) {
		b.teamPolicy = b.teamPolicy.With(overrides)
		b.playerPolicy = b.playerPolicy.With(overrides)
	}
}

// WithClock sets the time source for BuiltAt and history synthesis.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithVersioner sets the snapshot version generator.
func WithVersioner(next func() string) Option {
	return func(b *Builder) {
		if next != nil {
			b.version = next
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}
