package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KrishalDhungana/NBABrain/internal/adapters/source"
	"github.com/KrishalDhungana/NBABrain/internal/config"
	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/view"
	"github.com/KrishalDhungana/NBABrain/internal/domain/window"
)

// sourceFlags holds the raw source selection shared by every subcommand.
type sourceFlags struct {
	kind       string
	dataDir    string
	teamsURL   string
	playersURL string
	timeout    time.Duration
	seed       uint64
	teams      int
	days       int
}

func newRootCmd() *cobra.Command {
	defaults := config.New(context.Background())
	flags := &sourceFlags{}

	root := &cobra.Command{
		Use:   "report",
		Short: "Print team and player rating tables.",
		Long: `Fetch one raw snapshot, derive ratings, ranks and baselines, and print
them as tables.

Examples:
  # Top ten teams by current rating
  report teams --limit 10

  # Western conference teams by defensive rating
  report teams --cohort west --metric defRating

  # Centers by rebounds per game from local pipeline output
  report players --source file --data-dir ./data --cohort position=C --metric reb

  # League mean rating over the last 30 days
  report baselines --span 30d`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.kind, "source", defaults.Source, "data source: file, http or generate")
	pf.StringVar(&flags.dataDir, "data-dir", defaults.DataDir, "directory holding teams.json and players.json")
	pf.StringVar(&flags.teamsURL, "teams-url", "", "teams payload URL for the http source")
	pf.StringVar(&flags.playersURL, "players-url", "", "players payload URL for the http source")
	pf.DurationVar(&flags.timeout, "timeout", defaults.FetchTimeout(), "fetch timeout")
	pf.Uint64Var(&flags.seed, "seed", defaults.GeneratorSeed, "generator seed")
	pf.IntVar(&flags.teams, "teams", defaults.GeneratorTeams, "generated team count")
	pf.IntVar(&flags.days, "days", defaults.GeneratorDays, "generated season length in days")

	root.AddCommand(
		newRankCmd(flags, model.KindTeam),
		newRankCmd(flags, model.KindPlayer),
		newBaselinesCmd(flags),
	)
	return root
}

func newRankCmd(flags *sourceFlags, kind model.Kind) *cobra.Command {
	var (
		metric string
		cohort string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   string(kind) + "s",
		Short: fmt.Sprintf("Show %ss ranked by a metric.", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := ranking.ParseCohort(cohort)
			if err != nil {
				return err
			}
			if limit < 1 {
				return fmt.Errorf("limit must be positive, got %d", limit)
			}
			snap, err := loadSnapshot(cmd.Context(), flags)
			if err != nil {
				return err
			}
			rows := snap.Ranking(kind, metric, c)
			if len(rows) > limit {
				rows = rows[:limit]
			}
			order := snap.Policy(kind).OrderFor(metric)
			return writeRankingTable(cmd.OutOrStdout(), rows, kind, metric, c.Name, order)
		},
	}
	cmd.Flags().StringVar(&metric, "metric", ranking.RatingKey, "metric to rank by")
	cmd.Flags().StringVar(&cohort, "cohort", "league", "league, east, west or position=<G|F|C>")
	cmd.Flags().IntVar(&limit, "limit", 15, "rows to print")
	return cmd
}

func newBaselinesCmd(flags *sourceFlags) *cobra.Command {
	var (
		cohort string
		span   string
	)
	cmd := &cobra.Command{
		Use:   "baselines",
		Short: "Show a cohort's mean team rating per date.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := ranking.ParseCohort(cohort)
			if err != nil {
				return err
			}
			s, err := window.ParseSpan(span)
			if err != nil {
				return err
			}
			snap, err := loadSnapshot(cmd.Context(), flags)
			if err != nil {
				return err
			}
			return writeBaselineTable(cmd.OutOrStdout(), snap.Baseline(model.KindTeam, c, s))
		},
	}
	cmd.Flags().StringVar(&cohort, "cohort", "league", "league, east or west")
	cmd.Flags().StringVar(&span, "span", window.Span7d.Label, "7d, 30d, season or any <n>d")
	return cmd
}

// loadSnapshot fetches one raw snapshot and derives its view.
func loadSnapshot(ctx context.Context, flags *sourceFlags) (*view.Snapshot, error) {
	src, err := source.New(source.Settings{
		Kind:       flags.kind,
		DataDir:    flags.dataDir,
		TeamsURL:   flags.teamsURL,
		PlayersURL: flags.playersURL,
		Timeout:    flags.timeout,
		Seed:       flags.seed,
		Teams:      flags.teams,
		Days:       flags.days,
	})
	if err != nil {
		return nil, err
	}
	fetchCtx, cancel := context.WithTimeout(ctx, flags.timeout)
	defer cancel()
	raw, err := src.Fetch(fetchCtx)
	if err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", src.Name(), err)
	}
	return view.NewBuilder().Build(ctx, raw)
}
