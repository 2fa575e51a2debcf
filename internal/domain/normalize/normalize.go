// Package normalize converts raw, loosely typed team and player records into
// canonical model.Entity values, filling gaps with deterministic fallbacks.
package normalize

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/pkg/logger"
)

const (
	// defaultTeamRating is the Elo every team starts a season with.
	defaultTeamRating = 1500.0
	// defaultPlayerRating is the neutral 1-99 rating.
	defaultPlayerRating = 60.0
	defaultPosition     = "G"
)

var recordPattern = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)

var westTokens = map[string]struct{}{
	"west":               {},
	"western":            {},
	"w":                  {},
	"wc":                 {},
	"west conference":    {},
	"western conference": {},
}

// Normalizer maps raw records to canonical entities. It holds no per-call
// state and is safe for concurrent use.
type Normalizer struct {
	now                 func() time.Time
	palette             []string
	defaultTeamRating   float64
	defaultPlayerRating float64
	logger              logger.Logger
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		now:                 time.Now,
		palette:             append([]string(nil), defaultPalette...),
		defaultTeamRating:   defaultTeamRating,
		defaultPlayerRating: defaultPlayerRating,
		logger:              logger.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NormalizeAll normalizes records in order. The position of a record in raws
// feeds the palette fallback, so stable input order yields stable colors.
// Records whose id was already seen are dropped; the first one wins.
func (n *Normalizer) NormalizeAll(ctx context.Context, raws []model.RawRecord) []model.Entity {
	out := make([]model.Entity, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for i, raw := range raws {
		e := n.Normalize(ctx, raw, i)
		if _, dup := seen[e.ID]; dup {
			n.logger.Warn(ctx, "duplicate entity id dropped",
				logger.String("id", e.ID),
				logger.String("kind", string(e.Kind)),
			)
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Normalize converts one raw record. index is the record's position in its
// source list. The result always has a non-empty history.
func (n *Normalizer) Normalize(ctx context.Context, raw model.RawRecord, index int) model.Entity {
	f := fieldSet(raw.Fields)
	var e model.Entity
	if raw.Kind == model.KindPlayer {
		e = n.player(f, index)
	} else {
		e = n.team(f, index)
	}

	history := parseHistory(f)
	e.Games = n.parseGames(ctx, f, e.ID)

	fallback := n.defaultTeamRating
	if e.Kind == model.KindPlayer {
		fallback = n.defaultPlayerRating
	}
	if v, ok := f.number("elo.current", "currentRating", "rating"); ok {
		e.CurrentRating = v
	} else if len(history) > 0 {
		e.CurrentRating = history[len(history)-1].Value
	} else if e.Kind == model.KindPlayer && e.Overall != nil {
		e.CurrentRating = *e.Overall
	} else {
		e.CurrentRating = fallback
	}

	if len(history) == 0 {
		history = []model.RatingPoint{{Date: model.DateOf(n.now()), Value: e.CurrentRating}}
		e.SyntheticHistory = true
	}
	e.History = history
	return e
}

func (n *Normalizer) team(f fieldSet, index int) model.Entity {
	e := model.Entity{Kind: model.KindTeam}
	e.ID = entityID(f, model.KindTeam, index, "teamId", "id", "TEAM_ID")
	e.Name = f.str("name", "teamName", "TEAM_NAME")
	e.Abbreviation = strings.ToUpper(f.str("abbreviation", "abbr", "teamAbbreviation", "TEAM_ABBREVIATION"))
	if e.Name == "" {
		e.Name = e.Abbreviation
	}
	e.Conference = ParseConference(f.str("conference", "conf"))
	seed, hasSeed := f.integer("seed", "playoffRank", "rank")
	e.Record = ParseRecord(f.str("record"), seed, hasSeed)
	e.Metrics = f.numbers("teamStats", "stats")
	e.Categories = f.numbers("categoryRatings", "ratings.perCategory")
	e.Skills = f.numbers("skills", "attributes")
	if v, ok := f.number("ratings.overall", "overall"); ok {
		e.Overall = &v
	}
	e.Color = n.colorFor(e.Abbreviation, index)
	return e
}

func (n *Normalizer) player(f fieldSet, index int) model.Entity {
	e := model.Entity{Kind: model.KindPlayer}
	e.ID = entityID(f, model.KindPlayer, index, "identity.playerId", "playerId", "id", "PLAYER_ID")
	e.Name = f.str("identity.name", "name")
	if e.Name == "" {
		first := f.str("identity.firstName", "firstName")
		last := f.str("identity.lastName", "lastName")
		e.Name = strings.TrimSpace(first + " " + last)
	}
	if e.Name == "" {
		e.Name = "Unknown"
	}
	e.TeamID = f.str("identity.teamId", "teamId")
	e.TeamAbbreviation = strings.ToUpper(f.str("identity.teamAbbreviation", "teamAbbreviation"))
	e.Position = strings.ToUpper(f.str("identity.position", "position"))
	if e.Position == "" {
		e.Position = defaultPosition
	}
	if conf := f.str("identity.conference", "conference"); conf != "" {
		e.Conference = ParseConference(conf)
	}
	e.Metrics = f.numbers("stats.perGame", "stats.advanced", "stats")
	e.Categories = f.numbers("ratings.perCategory", "categoryRatings")
	e.Skills = f.numbers("skills", "attributes")
	if v, ok := f.number("ratings.overall", "overall"); ok {
		e.Overall = &v
	}
	e.Color = n.colorFor(e.TeamAbbreviation, index)
	return e
}

// AttachConferences returns a copy of players where players without a
// conference inherit the conference of their team.
func AttachConferences(players, teams []model.Entity) []model.Entity {
	byID := make(map[string]model.Conference, len(teams))
	byAbbr := make(map[string]model.Conference, len(teams))
	for _, t := range teams {
		byID[t.ID] = t.Conference
		if t.Abbreviation != "" {
			byAbbr[t.Abbreviation] = t.Conference
		}
	}
	out := make([]model.Entity, len(players))
	for i, p := range players {
		if p.Conference == "" {
			if c, ok := byID[p.TeamID]; ok {
				p.Conference = c
			} else if c, ok := byAbbr[p.TeamAbbreviation]; ok {
				p.Conference = c
			}
		}
		out[i] = p
	}
	return out
}

// ParseConference matches raw case-insensitively against the west vocabulary.
// Anything else, including an empty string, is East.
func ParseConference(raw string) model.Conference {
	if _, ok := westTokens[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return model.West
	}
	return model.East
}

// ParseRecord extracts a win-loss record such as "48-20". When the string does
// not match but a seed is known, a 0-0 placeholder carrying the seed is returned.
func ParseRecord(raw string, seed int, hasSeed bool) model.Record {
	r := model.Record{Seed: seed, HasSeed: hasSeed}
	if !hasSeed {
		r.Seed = 0
	}
	m := recordPattern.FindStringSubmatch(raw)
	if m == nil {
		r.Placeholder = hasSeed
		return r
	}
	// Digit runs too long for an int are treated as unparseable.
	wins, errW := strconv.Atoi(m[1])
	losses, errL := strconv.Atoi(m[2])
	if errW != nil || errL != nil {
		r.Placeholder = hasSeed
		return r
	}
	r.Wins, r.Losses = wins, losses
	return r
}

func entityID(f fieldSet, kind model.Kind, index int, keys ...string) string {
	if id := f.str(keys...); id != "" {
		return id
	}
	return fmt.Sprintf("%s-%d", kind, index)
}

func parseHistory(f fieldSet) []model.RatingPoint {
	items := f.list("elo.history", "history", "ratingHistory")
	byDate := make(map[time.Time]float64, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		pf := fieldSet(m)
		d, ok := model.ParseDate(pf["date"])
		if !ok {
			continue
		}
		v, ok := pf.number("elo", "value", "rating")
		if !ok {
			continue
		}
		// One point per date; the last one listed wins.
		byDate[d] = v
	}
	out := make([]model.RatingPoint, 0, len(byDate))
	for d, v := range byDate {
		out = append(out, model.RatingPoint{Date: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (n *Normalizer) parseGames(ctx context.Context, f fieldSet, entityID string) []model.GameResult {
	items := f.list("games", "gameLog")
	out := make([]model.GameResult, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		g, ok := parseGame(fieldSet(m))
		if !ok {
			continue
		}
		if g.Inconsistent {
			n.logger.Warn(ctx, "rating delta disagrees with game outcome",
				logger.String("entity", entityID),
				logger.String("game", g.GameID),
				logger.String("outcome", string(g.Outcome)),
				logger.Float64("delta", g.RatingDelta),
			)
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// parseGame converts one game-log row. Rows without a date are dropped; a row
// with no derivable rating delta is kept with a zero delta.
func parseGame(f fieldSet) (model.GameResult, bool) {
	d, ok := model.ParseDate(f["date"])
	if !ok {
		return model.GameResult{}, false
	}
	g := model.GameResult{
		GameID:               f.str("gameId", "id"),
		Date:                 d,
		OpponentID:           f.str("opponentTeamId", "opponentId"),
		OpponentAbbreviation: strings.ToUpper(f.str("opponentAbbreviation")),
	}
	if home, ok := f.boolean("home", "isHome"); ok {
		g.IsHome = home
	}

	self, okSelf := f.integer("teamScore", "scoreSelf")
	opp, okOpp := f.integer("opponentScore", "scoreOpponent")
	if okSelf && okOpp {
		g.ScoreSelf, g.ScoreOpponent, g.HasScores = self, opp, true
		switch {
		case self > opp:
			g.Outcome = model.Win
		case self < opp:
			g.Outcome = model.Loss
		default:
			g.Outcome = model.Tie
		}
	} else {
		g.Outcome = parseOutcome(f.str("result", "outcome", "wl"))
	}

	if delta, ok := f.number("eloChange", "ratingDelta", "delta"); ok {
		g.RatingDelta = delta
	} else {
		before, okB := f.number("eloBefore")
		after, okA := f.number("eloAfter")
		if okB && okA {
			g.RatingDelta = after - before
		}
	}
	g.Inconsistent = (g.Outcome == model.Win && g.RatingDelta < 0) ||
		(g.Outcome == model.Loss && g.RatingDelta > 0)
	return g, true
}

func parseOutcome(raw string) model.Outcome {
	switch strings.ToUpper(raw) {
	case "W", "WIN":
		return model.Win
	case "L", "LOSS":
		return model.Loss
	case "T", "TIE":
		return model.Tie
	}
	return model.OutcomeUnknown
}
