package source

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/pkg/logger"
)

const (
	defaultGeneratorSeed  = 2025
	defaultGeneratorDays  = 60
	playersPerTeam        = 5
	generatedSeason       = "2025-26"
	generatedSeasonType   = "Regular Season"
	playProbability       = 0.55
	baseScore             = 100
	scoreSpread           = 30
	withoutOverallEvery   = 7
	withoutCategoryEvery  = 11
	firstGeneratedPlayer  = 1630000
	generatedPlayerStride = 10
)

type franchise struct {
	id         int
	abbr       string
	name       string
	conference string
}

var franchises = []franchise{
	{1610612737, "ATL", "Atlanta Hawks", "East"},
	{1610612738, "BOS", "Boston Celtics", "East"},
	{1610612751, "BKN", "Brooklyn Nets", "East"},
	{1610612766, "CHA", "Charlotte Hornets", "East"},
	{1610612741, "CHI", "Chicago Bulls", "East"},
	{1610612739, "CLE", "Cleveland Cavaliers", "East"},
	{1610612742, "DAL", "Dallas Mavericks", "West"},
	{1610612743, "DEN", "Denver Nuggets", "West"},
	{1610612765, "DET", "Detroit Pistons", "East"},
	{1610612744, "GSW", "Golden State Warriors", "West"},
	{1610612745, "HOU", "Houston Rockets", "West"},
	{1610612754, "IND", "Indiana Pacers", "East"},
	{1610612746, "LAC", "LA Clippers", "West"},
	{1610612747, "LAL", "Los Angeles Lakers", "West"},
	{1610612763, "MEM", "Memphis Grizzlies", "West"},
	{1610612748, "MIA", "Miami Heat", "East"},
	{1610612749, "MIL", "Milwaukee Bucks", "East"},
	{1610612750, "MIN", "Minnesota Timberwolves", "West"},
	{1610612740, "NOP", "New Orleans Pelicans", "West"},
	{1610612752, "NYK", "New York Knicks", "East"},
	{1610612760, "OKC", "Oklahoma City Thunder", "West"},
	{1610612753, "ORL", "Orlando Magic", "East"},
	{1610612755, "PHI", "Philadelphia 76ers", "East"},
	{1610612756, "PHX", "Phoenix Suns", "West"},
	{1610612757, "POR", "Portland Trail Blazers", "West"},
	{1610612758, "SAC", "Sacramento Kings", "West"},
	{1610612759, "SAS", "San Antonio Spurs", "West"},
	{1610612761, "TOR", "Toronto Raptors", "East"},
	{1610612762, "UTA", "Utah Jazz", "West"},
	{1610612764, "WAS", "Washington Wizards", "East"},
}

var (
	firstNames = []string{"Jalen", "Marcus", "Tyrese", "Devin", "Aaron", "Miles", "Jaylen", "Cade", "Evan", "Scottie", "Amen", "Keegan"}
	lastNames  = []string{"Carter", "Brooks", "Mitchell", "Holiday", "Porter", "Walker", "Barnes", "Green", "Johnson", "Murray", "Allen", "Young"}
	positions  = []string{"G", "G", "F", "F", "C"}
)

// GeneratorSource produces a synthetic but internally consistent season:
// games are simulated day by day and every team's rating is replayed with
// the same Elo update the team pipeline uses.
type GeneratorSource struct {
	seed   uint64
	teams  int
	days   int
	start  time.Time
	logger logger.Logger
}

// NewGeneratorSource creates a generator with configuration options.
func NewGeneratorSource(opts ...GeneratorOption) *GeneratorSource {
	s := &GeneratorSource{
		seed:   defaultGeneratorSeed,
		teams:  len(franchises),
		days:   defaultGeneratorDays,
		start:  time.Date(2025, time.October, 21, 0, 0, 0, 0, time.UTC),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Source.
func (s *GeneratorSource) Name() string { return NameGenerator }

type teamState struct {
	franchise
	elo     float64
	wins    int
	losses  int
	history []any
	games   []any
}

// Fetch implements Source. Equal options always produce equal snapshots.
func (s *GeneratorSource) Fetch(ctx context.Context) (model.RawSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.RawSnapshot{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	rng := rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))

	states := make([]*teamState, s.teams)
	for i := range states {
		states[i] = &teamState{franchise: franchises[i], elo: eloBase}
	}

	gameSeq := 0
	for d := 0; d < s.days; d++ {
		if err := ctx.Err(); err != nil {
			return model.RawSnapshot{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		date := model.FormatDate(s.start.AddDate(0, 0, d))
		order := rng.Perm(len(states))
		for i := 0; i+1 < len(order); i += 2 {
			if rng.Float64() > playProbability {
				continue
			}
			gameSeq++
			s.play(rng, states[order[i]], states[order[i+1]], date, gameSeq)
		}
	}

	teams := make([]model.RawRecord, 0, len(states))
	seeds := conferenceSeeds(states)
	for _, st := range states {
		teams = append(teams, model.RawRecord{Kind: model.KindTeam, Fields: s.teamFields(rng, st, seeds[st.id])})
	}
	players := make([]model.RawRecord, 0, len(states)*playersPerTeam)
	for ti, st := range states {
		for k := 0; k < playersPerTeam; k++ {
			n := ti*playersPerTeam + k
			players = append(players, model.RawRecord{Kind: model.KindPlayer, Fields: s.playerFields(rng, st, n, k)})
		}
	}

	s.logger.Debug(ctx, "synthetic season generated",
		logger.Int("teams", len(teams)),
		logger.Int("players", len(players)),
		logger.Int("games", gameSeq),
	)
	return model.RawSnapshot{
		Season:      generatedSeason,
		SeasonType:  generatedSeasonType,
		LastUpdated: s.start.AddDate(0, 0, s.days).Format(time.RFC3339),
		Teams:       teams,
		Players:     players,
	}, nil
}

func (s *GeneratorSource) play(rng *rand.Rand, home, away *teamState, date string, seq int) {
	homePts := baseScore + rng.IntN(scoreSpread)
	awayPts := baseScore + rng.IntN(scoreSpread)
	homeWins := rng.Float64() < homeExpectation(home.elo, away.elo)
	if (homePts > awayPts) != homeWins || homePts == awayPts {
		homePts, awayPts = max(homePts, awayPts), min(homePts, awayPts)
		if homePts == awayPts {
			homePts++
		}
		if !homeWins {
			homePts, awayPts = awayPts, homePts
		}
	}

	delta := eloDelta(home.elo, away.elo, homePts, awayPts)
	gameID := fmt.Sprintf("00225%05d", seq)
	record := func(self, opp *teamState, isHome bool, selfPts, oppPts int, change float64) {
		before := self.elo
		self.elo += change
		result := "L"
		if selfPts > oppPts {
			result = "W"
			self.wins++
		} else {
			self.losses++
		}
		self.history = append(self.history, map[string]any{"date": date, "elo": round1(self.elo)})
		self.games = append(self.games, map[string]any{
			"gameId":               gameID,
			"date":                 date,
			"home":                 isHome,
			"opponentTeamId":       opp.id,
			"opponentAbbreviation": opp.abbr,
			"teamScore":            selfPts,
			"opponentScore":        oppPts,
			"margin":               selfPts - oppPts,
			"result":               result,
			"eloBefore":            round1(before),
			"eloAfter":             round1(self.elo),
			"eloChange":            round1(change),
		})
	}
	record(home, away, true, homePts, awayPts, delta)
	record(away, home, false, awayPts, homePts, -delta)
}

// conferenceSeeds ranks teams inside their conference by wins, then rating.
func conferenceSeeds(states []*teamState) map[int]int {
	byConf := map[string][]*teamState{}
	for _, st := range states {
		byConf[st.conference] = append(byConf[st.conference], st)
	}
	seeds := make(map[int]int, len(states))
	for _, group := range byConf {
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].wins != group[j].wins {
				return group[i].wins > group[j].wins
			}
			return group[i].elo > group[j].elo
		})
		for i, st := range group {
			seeds[st.id] = i + 1
		}
	}
	return seeds
}

// strength maps a rating to roughly [-1, 1].
func strength(elo float64) float64 {
	return (elo - eloBase) / 100
}

func jitter(rng *rand.Rand, spread float64) float64 {
	return (rng.Float64()*2 - 1) * spread
}

func (s *GeneratorSource) teamFields(rng *rand.Rand, st *teamState, seed int) map[string]any {
	str := strength(st.elo)
	off := 114 + 3*str + jitter(rng, 2)
	def := 114 - 3*str + jitter(rng, 2)
	return map[string]any{
		"teamId":       st.id,
		"name":         st.name,
		"abbreviation": st.abbr,
		"conference":   st.conference,
		"seed":         seed,
		"record":       strconv.Itoa(st.wins) + "-" + strconv.Itoa(st.losses),
		"categoryRatings": map[string]any{
			"offense":      round1(60 + 12*str + jitter(rng, 8)),
			"defense":      round1(60 + 12*str + jitter(rng, 8)),
			"pacePressure": round1(60 + jitter(rng, 15)),
			"hustle":       round1(60 + 6*str + jitter(rng, 12)),
			"clutch":       round1(60 + 8*str + jitter(rng, 12)),
		},
		"teamStats": map[string]any{
			"offRating":        round1(off),
			"defRating":        round1(def),
			"netRating":        round1(off - def),
			"pace":             round1(99 + jitter(rng, 3)),
			"threesPerGame":    round1(13 + jitter(rng, 3)),
			"turnoversPerGame": round1(14 - str + jitter(rng, 1.5)),
			"fgPct":            round1(46 + 1.5*str + jitter(rng, 1.5)),
			"fg3Pct":           round1(36 + str + jitter(rng, 1.5)),
			"ftPct":            round1(78 + jitter(rng, 3)),
			"plusMinus":        round1(off - def),
		},
		"elo": map[string]any{
			"current": round1(st.elo),
			"history": st.history,
		},
		"games": st.games,
	}
}

func (s *GeneratorSource) playerFields(rng *rand.Rand, st *teamState, n, slot int) map[string]any {
	first := firstNames[rng.IntN(len(firstNames))]
	last := lastNames[rng.IntN(len(lastNames))]
	pos := positions[slot]
	str := strength(st.elo)
	star := 1.0 - float64(slot)*0.12

	cat := func(bias float64) float64 {
		return round1(55 + 25*star*bias + 5*str + jitter(rng, 6))
	}
	perCategory := map[string]any{
		"sco": cat(1),
		"ply": cat(map[string]float64{"G": 1, "F": 0.6, "C": 0.3}[pos]),
		"reb": cat(map[string]float64{"G": 0.3, "F": 0.7, "C": 1}[pos]),
		"def": cat(0.7),
		"hst": cat(0.6),
		"imp": cat(0.8),
	}
	ratings := map[string]any{"perCategory": perCategory}
	if n%withoutCategoryEvery == 0 {
		delete(perCategory, "reb")
	}
	if n%withoutOverallEvery != 0 {
		ratings["overall"] = round1(55 + 28*star + 4*str + jitter(rng, 4))
	}

	pts := 8 + 20*star + jitter(rng, 3)
	return map[string]any{
		"identity": map[string]any{
			"playerId":         firstGeneratedPlayer + n*generatedPlayerStride,
			"firstName":        first,
			"lastName":         last,
			"name":             first + " " + last,
			"teamId":           st.id,
			"teamAbbreviation": st.abbr,
			"position":         pos,
		},
		"ratings": ratings,
		"skills": map[string]any{
			"rebounding": round1(50 + 30*star*map[string]float64{"G": 0.3, "F": 0.7, "C": 1}[pos]),
		},
		"stats": map[string]any{
			"perGame": map[string]any{
				"pts":       round1(pts),
				"reb":       round1(3 + 8*star*map[string]float64{"G": 0.4, "F": 0.8, "C": 1.2}[pos]),
				"ast":       round1(1 + 6*star*map[string]float64{"G": 1.2, "F": 0.6, "C": 0.4}[pos]),
				"stl":       round1(0.5 + rng.Float64()),
				"blk":       round1(0.2 + rng.Float64()*map[string]float64{"G": 0.5, "F": 1, "C": 2}[pos]),
				"tov":       round1(1 + 2*star + jitter(rng, 0.5)),
				"min":       round1(20 + 14*star),
				"fgPct":     round1(44 + jitter(rng, 5)),
				"fg3Pct":    round1(35 + jitter(rng, 5)),
				"ftPct":     round1(78 + jitter(rng, 8)),
				"plusMinus": round1(3*str + jitter(rng, 3)),
			},
			"advanced": map[string]any{
				"offRating": round1(112 + 4*star + 3*str + jitter(rng, 3)),
				"defRating": round1(113 - 3*str + jitter(rng, 3)),
				"netRating": round1(6*str + jitter(rng, 4)),
				"tsPct":     round1(56 + jitter(rng, 5)),
				"usgPct":    round1(14 + 14*star + jitter(rng, 2)),
				"pie":       round1(8 + 8*star + jitter(rng, 2)),
			},
		},
	}
}
