package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReportCommands(t *testing.T) {
	convey.Convey("Given the generator source", t, func() {
		gen := []string{"--source", "generate", "--teams", "6", "--days", "20", "--seed", "7"}

		convey.Convey("When ranking teams", func() {
			out, err := execute(append([]string{"teams"}, gen...)...)

			convey.Convey("Then every team is printed with a summary", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "6 teams in league by rating (desc)")
			})
		})

		convey.Convey("When ranking with a limit and cohort", func() {
			out, err := execute(append([]string{"players", "--cohort", "position=C", "--metric", "reb", "--limit", "2"}, gen...)...)

			convey.Convey("Then the table is truncated to the limit", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "2 players in position=C by reb (desc)")
			})
		})

		convey.Convey("When printing a baseline", func() {
			out, err := execute(append([]string{"baselines", "--cohort", "east", "--span", "season"}, gen...)...)

			convey.Convey("Then the cohort line is printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "east baseline over season")
			})
		})

		convey.Convey("When the cohort is unknown", func() {
			_, err := execute(append([]string{"teams", "--cohort", "pacific"}, gen...)...)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When the span is unknown", func() {
			_, err := execute(append([]string{"baselines", "--span", "week"}, gen...)...)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When the limit is not positive", func() {
			_, err := execute(append([]string{"teams", "--limit", "0"}, gen...)...)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given a file source", t, func() {
		dir := t.TempDir()
		teams := `{"season":"2025-26","teams":[
			{"teamId":1,"name":"Oklahoma City Thunder","abbreviation":"OKC","conference":"West",
			 "elo":{"history":[{"date":"2026-01-01","elo":1500},{"date":"2026-01-02","elo":1540}]}},
			{"teamId":2,"name":"Boston Celtics","abbreviation":"BOS","conference":"East",
			 "elo":{"history":[{"date":"2026-01-01","elo":1500},{"date":"2026-01-02","elo":1470}]}}]}`
		convey.So(os.WriteFile(filepath.Join(dir, "teams.json"), []byte(teams), 0o600), convey.ShouldBeNil)
		convey.So(os.WriteFile(filepath.Join(dir, "players.json"), []byte(`{"players":[]}`), 0o600), convey.ShouldBeNil)

		convey.Convey("When ranking teams", func() {
			out, err := execute("teams", "--source", "file", "--data-dir", dir)

			convey.Convey("Then the higher rated team comes first", func() {
				convey.So(err, convey.ShouldBeNil)
				okc := bytes.Index([]byte(out), []byte("Oklahoma City Thunder"))
				bos := bytes.Index([]byte(out), []byte("Boston Celtics"))
				convey.So(okc, convey.ShouldBeGreaterThan, -1)
				convey.So(bos, convey.ShouldBeGreaterThan, okc)
			})
		})

		convey.Convey("When the directory is missing", func() {
			_, err := execute("teams", "--source", "file", "--data-dir", filepath.Join(dir, "missing"))
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
