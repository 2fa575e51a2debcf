package normalize_test

import (
	"context"
	"testing"
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/normalize"
	"github.com/KrishalDhungana/NBABrain/internal/domain/window"
	. "github.com/smartystreets/goconvey/convey"
)

var fixedNow = time.Date(2026, time.January, 15, 18, 30, 0, 0, time.UTC)

func newNormalizer() *normalize.Normalizer {
	return normalize.New(normalize.WithClock(func() time.Time { return fixedNow }))
}

func teamRaw(fields map[string]any) model.RawRecord {
	return model.RawRecord{Kind: model.KindTeam, Fields: fields}
}

func TestParseRecord(t *testing.T) {
	Convey("Given win-loss strings", t, func() {
		Convey("A well-formed record without seed parses both integers", func() {
			r := normalize.ParseRecord("48-20", 0, false)
			So(r.Wins, ShouldEqual, 48)
			So(r.Losses, ShouldEqual, 20)
			So(r.HasSeed, ShouldBeFalse)
			So(r.Placeholder, ShouldBeFalse)
		})

		Convey("A dash with a seed yields a 0-0 placeholder carrying the seed", func() {
			r := normalize.ParseRecord("—", 3, true)
			So(r.Wins, ShouldEqual, 0)
			So(r.Losses, ShouldEqual, 0)
			So(r.Seed, ShouldEqual, 3)
			So(r.HasSeed, ShouldBeTrue)
			So(r.Placeholder, ShouldBeTrue)
		})

		Convey("A malformed string without seed is an empty best-effort record", func() {
			r := normalize.ParseRecord("n/a", 0, false)
			So(r, ShouldResemble, model.Record{})
		})

		Convey("Counts that overflow an int are treated like an unparseable record", func() {
			r := normalize.ParseRecord("99999999999999999999999-1", 4, true)
			So(r, ShouldResemble, model.Record{Seed: 4, HasSeed: true, Placeholder: true})
			r = normalize.ParseRecord("1-99999999999999999999999", 0, false)
			So(r, ShouldResemble, model.Record{})
		})

		Convey("Spacing around the dash is tolerated", func() {
			r := normalize.ParseRecord(" 12 - 7 ", 5, true)
			So(r.Wins, ShouldEqual, 12)
			So(r.Losses, ShouldEqual, 7)
			So(r.Seed, ShouldEqual, 5)
			So(r.Placeholder, ShouldBeFalse)
		})
	})
}

func TestParseConference(t *testing.T) {
	Convey("Conference strings match the west vocabulary case-insensitively", t, func() {
		So(normalize.ParseConference("West"), ShouldEqual, model.West)
		So(normalize.ParseConference(" WESTERN "), ShouldEqual, model.West)
		So(normalize.ParseConference("Western Conference"), ShouldEqual, model.West)
		So(normalize.ParseConference("East"), ShouldEqual, model.East)
		So(normalize.ParseConference(""), ShouldEqual, model.East)
		So(normalize.ParseConference("Pacific"), ShouldEqual, model.East)
	})
}

func TestNormalizeTeam(t *testing.T) {
	Convey("Given a pipeline-shaped team record", t, func() {
		n := newNormalizer()
		raw := teamRaw(map[string]any{
			"teamId":       1610612760.0,
			"name":         "Oklahoma City Thunder",
			"abbreviation": "okc",
			"conference":   "West",
			"seed":         1.0,
			"record":       "48-20",
			"categoryRatings": map[string]any{
				"offense": 92.0,
				"defense": nil,
			},
			"teamStats": map[string]any{
				"offRating":     "119.4",
				"defRating":     106.2,
				"offRatingRank": 2.0,
				"label":         "x",
			},
			"elo": map[string]any{
				"current": 1688.4,
				"history": []any{
					map[string]any{"date": "2025-10-24", "elo": 1510.2},
					map[string]any{"date": "2025-10-22", "elo": 1505.0},
					map[string]any{"date": "2025-10-24", "elo": 1512.0},
					map[string]any{"date": "bad", "elo": 1.0},
				},
			},
			"games": []any{
				map[string]any{"gameId": "2", "date": "2025-10-24", "home": false, "teamScore": 120.0, "opponentScore": 101.0, "eloChange": 7.0},
				map[string]any{"gameId": "1", "date": "2025-10-22", "home": true, "teamScore": 125.0, "opponentScore": 124.0, "eloChange": 5.0},
				map[string]any{"gameId": "3", "date": "2025-10-26", "result": "L", "eloBefore": 1512.0, "eloAfter": 1515.0},
				map[string]any{"gameId": "4", "teamScore": 1.0},
				map[string]any{"gameId": "5", "date": "2025-10-28", "result": "W"},
			},
		})

		e := n.Normalize(context.Background(), raw, 0)

		Convey("Identity fields are canonical", func() {
			So(e.ID, ShouldEqual, "1610612760")
			So(e.Kind, ShouldEqual, model.KindTeam)
			So(e.Abbreviation, ShouldEqual, "OKC")
			So(e.Conference, ShouldEqual, model.West)
			So(e.Record, ShouldResemble, model.Record{Wins: 48, Losses: 20, Seed: 1, HasSeed: true})
			So(e.Color, ShouldEqual, "#007AC1")
		})

		Convey("Only finite metrics are kept", func() {
			So(e.Metrics["offRating"], ShouldAlmostEqual, 119.4)
			So(e.Metrics["defRating"], ShouldAlmostEqual, 106.2)
			_, ok := e.Metrics["label"]
			So(ok, ShouldBeFalse)
			_, ok = e.Categories["defense"]
			So(ok, ShouldBeFalse)
			So(e.Categories["offense"], ShouldEqual, 92)
		})

		Convey("History is sorted, deduplicated per date, and invalid points dropped", func() {
			So(len(e.History), ShouldEqual, 2)
			So(e.History[0].Value, ShouldEqual, 1505.0)
			So(e.History[1].Value, ShouldEqual, 1512.0)
			So(e.SyntheticHistory, ShouldBeFalse)
			So(e.CurrentRating, ShouldEqual, 1688.4)
		})

		Convey("Games are sorted ascending, outcomes derived, undated rows dropped", func() {
			So(len(e.Games), ShouldEqual, 4)
			So(e.Games[0].GameID, ShouldEqual, "1")
			So(e.Games[0].Outcome, ShouldEqual, model.Win)
			So(e.Games[0].IsHome, ShouldBeTrue)
			So(e.Games[1].HasScores, ShouldBeTrue)
			So(e.Games[2].Outcome, ShouldEqual, model.Loss)
			So(e.Games[2].RatingDelta, ShouldEqual, 3.0)
			So(e.Games[2].Inconsistent, ShouldBeTrue)
			So(e.Games[0].Inconsistent, ShouldBeFalse)
		})

		Convey("A dated game without any delta is kept with a zero delta", func() {
			last := e.Games[3]
			So(last.GameID, ShouldEqual, "5")
			So(last.Outcome, ShouldEqual, model.Win)
			So(last.RatingDelta, ShouldEqual, 0.0)
			So(last.Inconsistent, ShouldBeFalse)
			So(window.TrailingDelta(e, 1), ShouldEqual, 0)
			So(window.TrailingDelta(e, 2), ShouldEqual, 3)
		})
	})

	Convey("Given a team without history", t, func() {
		n := newNormalizer()

		Convey("A single point is synthesized at today's date and the current rating", func() {
			e := n.Normalize(context.Background(), teamRaw(map[string]any{"teamId": 7.0, "rating": 1532.5}), 0)
			So(len(e.History), ShouldEqual, 1)
			So(e.SyntheticHistory, ShouldBeTrue)
			So(e.History[0].Date.Equal(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(e.History[0].Value, ShouldEqual, 1532.5)
		})

		Convey("Without any rating the base Elo is used", func() {
			e := n.Normalize(context.Background(), teamRaw(map[string]any{}), 4)
			So(e.ID, ShouldEqual, "team-4")
			So(e.CurrentRating, ShouldEqual, 1500.0)
			So(len(e.History), ShouldEqual, 1)
		})

		Convey("Current rating falls back to the last history value", func() {
			e := n.Normalize(context.Background(), teamRaw(map[string]any{
				"history": []any{
					map[string]any{"date": "2025-11-01", "value": 1490.0},
					map[string]any{"date": "2025-11-03", "value": 1530.0},
				},
			}), 0)
			So(e.CurrentRating, ShouldEqual, 1530.0)
		})
	})

	Convey("Given unknown abbreviations", t, func() {
		n := normalize.New(normalize.WithPalette([]string{"#111111", "#222222"}))

		Convey("Colors come from the palette by position and are stable", func() {
			a := n.Normalize(context.Background(), teamRaw(map[string]any{"abbreviation": "XYZ"}), 3)
			b := n.Normalize(context.Background(), teamRaw(map[string]any{"abbreviation": "XYZ"}), 3)
			So(a.Color, ShouldEqual, "#222222")
			So(b.Color, ShouldEqual, a.Color)
		})
	})
}

func TestNormalizePlayer(t *testing.T) {
	Convey("Given a pipeline-shaped player record", t, func() {
		n := newNormalizer()
		raw := model.RawRecord{Kind: model.KindPlayer, Fields: map[string]any{
			"identity": map[string]any{
				"playerId":         1628983.0,
				"firstName":        "Shai",
				"lastName":         "Gilgeous-Alexander",
				"teamId":           1610612760.0,
				"teamAbbreviation": "OKC",
				"position":         "g",
			},
			"ratings": map[string]any{
				"perCategory": map[string]any{"sco": 99.0, "ply": 88.0},
				"overall":     97.0,
			},
			"stats": map[string]any{
				"perGame":  map[string]any{"pts": 32.1, "reb": 5.2},
				"advanced": map[string]any{"offRating": 124.0, "pts": 1.0},
			},
		}}

		e := n.Normalize(context.Background(), raw, 0)

		So(e.ID, ShouldEqual, "1628983")
		So(e.Name, ShouldEqual, "Shai Gilgeous-Alexander")
		So(e.Position, ShouldEqual, "G")
		So(e.TeamID, ShouldEqual, "1610612760")
		So(e.Color, ShouldEqual, "#007AC1")
		So(e.Metrics["pts"], ShouldEqual, 32.1)
		So(e.Metrics["offRating"], ShouldEqual, 124.0)
		So(*e.Overall, ShouldEqual, 97.0)
		So(e.CurrentRating, ShouldEqual, 97.0)
		So(e.Conference, ShouldEqual, model.Conference(""))
		So(len(e.History), ShouldEqual, 1)

		Convey("Players inherit their team's conference", func() {
			teams := []model.Entity{{ID: "1610612760", Abbreviation: "OKC", Conference: model.West}}
			out := normalize.AttachConferences([]model.Entity{e}, teams)
			So(out[0].Conference, ShouldEqual, model.West)
			So(e.Conference, ShouldEqual, model.Conference(""))
		})
	})
}

func TestNormalizeAll(t *testing.T) {
	Convey("Given records with a duplicated id", t, func() {
		n := newNormalizer()
		raws := []model.RawRecord{
			teamRaw(map[string]any{"teamId": 1.0, "name": "First"}),
			teamRaw(map[string]any{"teamId": 1.0, "name": "Second"}),
			teamRaw(map[string]any{"teamId": 2.0, "name": "Third"}),
		}

		out := n.NormalizeAll(context.Background(), raws)

		So(len(out), ShouldEqual, 2)
		So(out[0].Name, ShouldEqual, "First")
		So(out[1].Name, ShouldEqual, "Third")
		for _, e := range out {
			So(len(e.History), ShouldBeGreaterThanOrEqualTo, 1)
		}
	})
}
