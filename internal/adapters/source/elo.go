package source

import "math"

// Elo parameters used by the team pipeline.
const (
	eloBase    = 1500.0
	eloK       = 20.0
	eloHomeAdv = 70.0
)

// homeExpectation is the home team's expected score including home advantage.
func homeExpectation(home, away float64) float64 {
	diff := home + eloHomeAdv - away
	return 1 / (1 + math.Pow(10, -diff/400))
}

// eloDelta returns the home team's rating change for one game. The away team
// moves by the negation. The margin multiplier rewards decisive wins and is
// damped when the rating gap is already large.
func eloDelta(home, away float64, homePts, awayPts int) float64 {
	margin := math.Abs(float64(homePts - awayPts))
	mult := math.Log1p(margin) * (2.2 / (math.Abs(home-away)*0.001 + 2.2))
	score := 0.5
	switch {
	case homePts > awayPts:
		score = 1
	case homePts < awayPts:
		score = 0
	}
	return eloK * mult * (score - homeExpectation(home, away))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
