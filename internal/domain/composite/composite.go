// Package composite derives bounded 1-99 category ratings from precomputed
// category scores, skill attributes and overall ratings.
package composite

import (
	"math"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/numeric"
	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
)

// Rating bounds and the neutral value used when no signal is available.
const (
	MinRating     = 1
	MaxRating     = 99
	NeutralRating = 60
)

// Category describes one rated dimension and where its fallback signal lives.
type Category struct {
	Key   string
	Label string
	// Skill is the key in Entity.Skills used when the category score is absent.
	Skill string
	// UseOverall makes the entity's overall rating the fallback signal.
	UseOverall bool
}

// TeamCategories are the categories rated for teams.
var TeamCategories = []Category{
	{Key: "offense", Label: "Offense", Skill: "offense"},
	{Key: "defense", Label: "Defense", Skill: "defense"},
	{Key: "pacePressure", Label: "Pace & Pressure", Skill: "pace"},
	{Key: "hustle", Label: "Hustle", Skill: "hustle"},
	{Key: "clutch", Label: "Clutch", Skill: "clutch"},
}

// PlayerCategories are the categories rated for players.
var PlayerCategories = []Category{
	{Key: "sco", Label: "Scoring", Skill: "scoring"},
	{Key: "ply", Label: "Playmaking", Skill: "playmaking"},
	{Key: "reb", Label: "Rebounding", Skill: "rebounding"},
	{Key: "def", Label: "Defense", Skill: "defense"},
	{Key: "hst", Label: "Hustle", Skill: "hustle"},
	{Key: "imp", Label: "Impact", UseOverall: true},
}

// playerWeights blend player categories into an overall by position group.
var playerWeights = map[string]map[string]float64{
	"G": {"sco": 0.28, "ply": 0.28, "reb": 0.10, "def": 0.18, "hst": 0.10, "imp": 0.06},
	"F": {"sco": 0.28, "ply": 0.18, "reb": 0.18, "def": 0.20, "hst": 0.10, "imp": 0.06},
	"C": {"sco": 0.24, "ply": 0.10, "reb": 0.26, "def": 0.24, "hst": 0.10, "imp": 0.06},
}

// Engine computes category ratings with a configurable neutral default.
type Engine struct {
	neutral int
}

// Option configures an Engine.
type Option func(*Engine)

// WithNeutral overrides the default used when no signal is available.
func WithNeutral(v int) Option {
	return func(e *Engine) {
		e.neutral = numeric.ClampInt(v, MinRating, MaxRating)
	}
}

// New returns an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{neutral: NeutralRating}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Categories returns the category table for kind.
func Categories(kind model.Kind) []Category {
	if kind == model.KindPlayer {
		return PlayerCategories
	}
	return TeamCategories
}

// Sanitize maps a raw signal into [1,99]. Missing or non-finite values
// become the neutral default.
func (e *Engine) Sanitize(raw float64, ok bool) int {
	if !ok || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return e.neutral
	}
	r, ok := numeric.RoundInt(numeric.Clamp(raw, MinRating, MaxRating))
	if !ok {
		return e.neutral
	}
	return numeric.ClampInt(r, MinRating, MaxRating)
}

// CategoryRating returns the rating for key: the precomputed category score
// if present, then the category's fallback signal, then the neutral default.
func (e *Engine) CategoryRating(ent model.Entity, key string) int {
	if v, ok := ent.Categories[key]; ok {
		return e.Sanitize(v, true)
	}
	cat, known := lookup(ent.Kind, key)
	if !known {
		return e.neutral
	}
	return e.Sanitize(fallback(ent, cat))
}

// Overall returns the entity's overall rating: the supplied overall if any,
// otherwise a weighted blend of its category ratings.
func (e *Engine) Overall(ent model.Entity) int {
	if ent.Overall != nil {
		return e.Sanitize(*ent.Overall, true)
	}
	return e.blend(ent)
}

// RatingSet returns every category rating plus the overall.
func (e *Engine) RatingSet(ent model.Entity) model.CategoryRatingSet {
	cats := Categories(ent.Kind)
	set := model.CategoryRatingSet{Categories: make(map[string]int, len(cats))}
	for _, c := range cats {
		set.Categories[c.Key] = e.CategoryRating(ent, c.Key)
	}
	set.Overall = e.Overall(ent)
	return set
}

func (e *Engine) blend(ent model.Entity) int {
	cats := Categories(ent.Kind)
	weights := weightsFor(ent)
	var sum, total float64
	for _, c := range cats {
		if c.UseOverall {
			// impact falls back to overall, which is what is being computed.
			if _, ok := ent.Categories[c.Key]; !ok {
				continue
			}
		}
		w := 1.0
		if weights != nil {
			w = weights[c.Key]
		}
		sum += w * float64(e.CategoryRating(ent, c.Key))
		total += w
	}
	if total == 0 {
		return e.neutral
	}
	return e.Sanitize(sum/total, true)
}

func weightsFor(ent model.Entity) map[string]float64 {
	if ent.Kind != model.KindPlayer {
		return nil
	}
	if w, ok := playerWeights[ranking.PositionGroup(ent.Position)]; ok {
		return w
	}
	return playerWeights["G"]
}

func lookup(kind model.Kind, key string) (Category, bool) {
	for _, c := range Categories(kind) {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

func fallback(ent model.Entity, c Category) (float64, bool) {
	if c.UseOverall {
		if ent.Overall != nil {
			return *ent.Overall, true
		}
		return 0, false
	}
	v, ok := ent.Skills[c.Skill]
	return v, ok
}

// Sanitize uses the default engine.
func Sanitize(raw float64, ok bool) int { return defaultEngine.Sanitize(raw, ok) }

// CategoryRating uses the default engine.
func CategoryRating(ent model.Entity, key string) int { return defaultEngine.CategoryRating(ent, key) }

// Overall uses the default engine.
func Overall(ent model.Entity) int { return defaultEngine.Overall(ent) }

// RatingSet uses the default engine.
func RatingSet(ent model.Entity) model.CategoryRatingSet { return defaultEngine.RatingSet(ent) }
