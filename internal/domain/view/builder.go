// Package view assembles the immutable view model from a raw snapshot:
// normalized entities enriched with trailing deltas, cohort standings,
// category ratings and baselines.
package view

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/KrishalDhungana/NBABrain/internal/domain/baseline"
	"github.com/KrishalDhungana/NBABrain/internal/domain/composite"
	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/normalize"
	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/window"
	"github.com/KrishalDhungana/NBABrain/pkg/logger"
	"github.com/KrishalDhungana/NBABrain/pkg/worker"
)

// Builder turns raw snapshots into view-model snapshots. It keeps no state
// between builds.
type Builder struct {
	normalizer   *normalize.Normalizer
	composite    *composite.Engine
	pool         *worker.Pool
	windows      []window.Window
	spans        []window.Span
	teamPolicy   ranking.Policy
	playerPolicy ranking.Policy
	now          func() time.Time
	version      func() string
	logger       logger.Logger
}

// NewBuilder creates a Builder with configuration options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		composite:    composite.New(),
		windows:      []window.Window{window.Last7, window.Last30, window.Season},
		spans:        []window.Span{window.Span7d, window.Span30d, window.SpanSeason},
		teamPolicy:   ranking.TeamPolicy(),
		playerPolicy: ranking.PlayerPolicy(),
		now:          time.Now,
		version:      func() string { return uuid.NewString() },
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.normalizer == nil {
		b.normalizer = normalize.New(normalize.WithClock(b.now), normalize.WithLogger(b.logger))
	}
	if b.pool == nil {
		b.pool = worker.NewPool(0, worker.WithLogger(b.logger))
	}
	return b
}

// Build derives a complete snapshot. It only fails when ctx is canceled;
// data problems are absorbed by the normalizer's fallbacks.
func (b *Builder) Build(ctx context.Context, raw model.RawSnapshot) (*Snapshot, error) {
	teams := b.normalizer.NormalizeAll(ctx, raw.Teams)
	players := b.normalizer.NormalizeAll(ctx, raw.Players)
	players = normalize.AttachConferences(players, teams)

	all := make([]model.Entity, 0, len(teams)+len(players))
	all = append(all, teams...)
	all = append(all, players...)
	anchor, _ := window.AnchorDate(all)

	teamViews, err := worker.Map(ctx, b.pool, teams, b.derive)
	if err != nil {
		return nil, fmt.Errorf("derive teams: %w", err)
	}
	playerViews, err := worker.Map(ctx, b.pool, players, b.derive)
	if err != nil {
		return nil, fmt.Errorf("derive players: %w", err)
	}

	assignStandings(teamViews, b.teamPolicy, teamScopes())
	assignStandings(playerViews, b.playerPolicy, playerScopes())

	snap := &Snapshot{
		Version:       b.version(),
		Season:        raw.Season,
		SeasonType:    raw.SeasonType,
		SourceUpdated: raw.LastUpdated,
		BuiltAt:       b.now().UTC(),
		Anchor:        anchor,
		Windows:       b.windowLabels(),
		Teams:         teamViews,
		Players:       playerViews,
		Baselines:     b.baselines(teams, anchor),
		Quality:       quality(raw, teams, players),
		teamPolicy:    b.teamPolicy,
		playerPolicy:  b.playerPolicy,
		teamIndex:     index(teamViews),
		playerIndex:   index(playerViews),
	}

	b.logger.Info(ctx, "snapshot built",
		logger.String("version", snap.Version),
		logger.Int("teams", len(teamViews)),
		logger.Int("players", len(playerViews)),
		logger.String("anchor", model.FormatDate(anchor)),
		logger.Int("inconsistent_games", snap.Quality.InconsistentGames),
	)
	return snap, nil
}

func (b *Builder) derive(_ context.Context, e model.Entity) (EntityView, error) {
	v := EntityView{
		Entity:        e,
		Deltas:        make(map[string]int, len(b.windows)),
		DeltaStrategy: window.StrategyFor(e).Name(),
		Ranks:         map[string]map[string]Standing{},
		Ratings:       b.composite.RatingSet(e),
	}
	for _, w := range b.windows {
		v.Deltas[w.Label] = window.TrailingDelta(e, w.Games)
	}
	return v, nil
}

func (b *Builder) windowLabels() []string {
	out := make([]string, len(b.windows))
	for i, w := range b.windows {
		out[i] = w.Label
	}
	return out
}

// baselines computes team rating baselines for the league and both
// conferences over every configured span.
func (b *Builder) baselines(teams []model.Entity, anchor time.Time) []baseline.Baseline {
	cohorts := []ranking.Cohort{
		ranking.League(),
		ranking.ConferenceCohort(model.East),
		ranking.ConferenceCohort(model.West),
	}
	out := make([]baseline.Baseline, 0, len(cohorts)*len(b.spans))
	if anchor.IsZero() {
		return out
	}
	for _, c := range cohorts {
		for _, s := range b.spans {
			out = append(out, baseline.ForSpanAt(teams, c, baseline.History(), s, anchor))
		}
	}
	return out
}

// scoped pairs a rank scope with the cohort an entity belongs to in it.
type scoped struct {
	scope  string
	cohort func(model.Entity) ranking.Cohort
}

func teamScopes() []scoped {
	return []scoped{
		{scope: ScopeLeague, cohort: func(model.Entity) ranking.Cohort { return ranking.League() }},
		{scope: ScopeConference, cohort: func(e model.Entity) ranking.Cohort { return ranking.ConferenceCohort(e.Conference) }},
	}
}

func playerScopes() []scoped {
	return []scoped{
		{scope: ScopeLeague, cohort: func(model.Entity) ranking.Cohort { return ranking.League() }},
		{scope: ScopePosition, cohort: func(e model.Entity) ranking.Cohort { return ranking.PositionCohort(e.Position) }},
	}
}

// assignStandings ranks every metric present on any view, plus the current
// rating, within each scope's cohorts and stores the standings on the views.
func assignStandings(views []EntityView, policy ranking.Policy, scopes []scoped) {
	entities := make([]model.Entity, len(views))
	for i := range views {
		entities[i] = views[i].Entity
	}
	keys := metricKeys(entities)

	for _, sc := range scopes {
		cohorts := map[string]ranking.Cohort{}
		for _, e := range entities {
			c := sc.cohort(e)
			cohorts[c.Name] = c
		}
		for _, key := range keys {
			sel := ranking.SelectorFor(key)
			order := policy.OrderFor(key)
			for _, c := range cohorts {
				ranks := ranking.RankWithin(entities, c, sel, order)
				for i := range views {
					r, ok := ranks[views[i].ID]
					if !ok || sc.cohort(views[i].Entity).Name != c.Name {
						continue
					}
					if views[i].Ranks[sc.scope] == nil {
						views[i].Ranks[sc.scope] = map[string]Standing{}
					}
					pct := ranking.Percentile(r, len(ranks))
					views[i].Ranks[sc.scope][key] = Standing{
						Rank: r, Of: len(ranks), Percentile: pct, Tier: ranking.TierFor(pct),
					}
				}
			}
		}
	}
}

func metricKeys(entities []model.Entity) []string {
	set := ranking.Policy{ranking.RatingKey: ranking.Descending}
	for _, e := range entities {
		for k := range e.Metrics {
			set[k] = ranking.Descending
		}
	}
	return set.Keys()
}

func quality(raw model.RawSnapshot, teams, players []model.Entity) Quality {
	q := Quality{
		DuplicateTeams:   len(raw.Teams) - len(teams),
		DuplicatePlayers: len(raw.Players) - len(players),
	}
	for _, e := range teams {
		if e.SyntheticHistory {
			q.SyntheticTeams++
		}
		if e.Record.Placeholder {
			q.PlaceholderRecords++
		}
	}
	for _, e := range players {
		if e.SyntheticHistory {
			q.SyntheticPlayers++
		}
	}
	for _, group := range [][]model.Entity{teams, players} {
		for _, e := range group {
			for _, g := range e.Games {
				if g.Inconsistent {
					q.InconsistentGames++
				}
			}
		}
	}
	return q
}

func index(views []EntityView) map[string]int {
	out := make(map[string]int, len(views))
	for i, v := range views {
		out[v.ID] = i
	}
	return out
}
