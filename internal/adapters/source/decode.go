package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
)

// payload is the envelope written by the data pipelines. A bare JSON array
// of records is accepted as well.
type payload struct {
	Season      string           `json:"season"`
	SeasonType  string           `json:"seasonType"`
	LastUpdated string           `json:"lastUpdated"`
	Teams       []map[string]any `json:"teams"`
	Players     []map[string]any `json:"players"`
}

// Decode reads the teams and players payloads into one snapshot. Numbers are
// kept as json.Number so integer ids survive intact.
func Decode(teams, players io.Reader) (model.RawSnapshot, error) {
	tp, err := decodePayload(teams)
	if err != nil {
		return model.RawSnapshot{}, fmt.Errorf("teams: %w", err)
	}
	pp, err := decodePayload(players)
	if err != nil {
		return model.RawSnapshot{}, fmt.Errorf("players: %w", err)
	}

	snap := model.RawSnapshot{
		Season:      firstNonEmpty(tp.Season, pp.Season),
		SeasonType:  firstNonEmpty(tp.SeasonType, pp.SeasonType),
		LastUpdated: latest(tp.LastUpdated, pp.LastUpdated),
		Teams:       records(model.KindTeam, tp.Teams),
		Players:     records(model.KindPlayer, pp.Players),
	}
	return snap, nil
}

func decodePayload(r io.Reader) (payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return payload{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return payload{}, fmt.Errorf("%w: empty payload", ErrDecode)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var p payload
	if data[0] == '[' {
		var rows []map[string]any
		if err := dec.Decode(&rows); err != nil {
			return payload{}, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		// Bare arrays are typed by the caller's position; stash them in both.
		p.Teams, p.Players = rows, rows
		return p, nil
	}
	if err := dec.Decode(&p); err != nil {
		return payload{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return p, nil
}

func records(kind model.Kind, rows []map[string]any) []model.RawRecord {
	out := make([]model.RawRecord, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		out = append(out, model.RawRecord{Kind: kind, Fields: row})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// latest picks the later of two timestamps, falling back to whichever parses.
func latest(a, b string) string {
	ta, okA := model.ParseTimestamp(a)
	tb, okB := model.ParseTimestamp(b)
	switch {
	case okA && okB && tb.After(ta):
		return b
	case okA:
		return a
	case okB:
		return b
	}
	return firstNonEmpty(a, b)
}
