package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/KrishalDhungana/NBABrain/internal/domain/baseline"
	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/view"
)

// Console colors per percentile tier.
var tierColors = map[string]*color.Color{
	ranking.TierElite.Name:   color.New(color.FgGreen, color.Bold),
	ranking.TierGood.Name:    color.New(color.FgGreen),
	ranking.TierAverage.Name: color.New(color.FgYellow),
	ranking.TierBelow.Name:   color.New(color.FgMagenta),
	ranking.TierPoor.Name:    color.New(color.FgRed, color.Bold),
}

func tierLabel(t ranking.Tier) string {
	if c, ok := tierColors[t.Name]; ok {
		return c.Sprint(t.Name)
	}
	return t.Name
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func writeRankingTable(w io.Writer, rows []view.RankedEntry, kind model.Kind, metric, cohort string, order ranking.Order) error {
	table := tablewriter.NewWriter(w)
	headers := []string{"Rank", "Name", metric, "Pct", "Tier"}
	if kind == model.KindPlayer {
		headers = []string{"Rank", "Name", "Team", metric, "Pct", "Tier"}
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{strconv.Itoa(r.Rank), r.Name}
		if kind == model.KindPlayer {
			row = append(row, r.Team)
		}
		row = append(row,
			formatValue(r.Value),
			strconv.FormatFloat(r.Percentile*100, 'f', 0, 64),
			tierLabel(r.Tier),
		)
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d %ss in %s by %s (%s)\n", len(rows), kind, cohort, metric, order)
	return err
}

func writeBaselineTable(w io.Writer, b baseline.Baseline) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Mean rating"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(b.Points))
	for _, p := range b.Points {
		data = append(data, []string{model.FormatDate(p.Date), formatValue(p.Value)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s baseline over %s: %d dates\n", b.Cohort, b.Span, len(b.Points))
	return err
}
