// Package source provides the collaborators that deliver raw snapshots:
// JSON files on disk, JSON over HTTP, and a deterministic synthetic season.
//
// A fetch either returns a complete snapshot or fails; partial snapshots are
// never returned.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/pkg/logger"
)

// Source names accepted in configuration.
const (
	NameFile      = "file"
	NameHTTP      = "http"
	NameGenerator = "generate"
)

// Source returns a complete raw snapshot or an error.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (model.RawSnapshot, error)
}

// Settings selects and configures one Source.
type Settings struct {
	Kind       string
	DataDir    string
	TeamsURL   string
	PlayersURL string
	Timeout    time.Duration
	Seed       uint64
	Teams      int
	Days       int
	Logger     logger.Logger
}

// New builds the Source named by s.Kind.
func New(s Settings) (Source, error) {
	l := s.Logger
	if l == nil {
		l = logger.Nop()
	}
	switch s.Kind {
	case NameFile:
		return NewFileSource(s.DataDir, WithFileLogger(l)), nil
	case NameHTTP:
		if s.TeamsURL == "" || s.PlayersURL == "" {
			return nil, fmt.Errorf("%w: http source needs teams and players URLs", ErrUnknownSource)
		}
		return NewHTTPSource(s.TeamsURL, s.PlayersURL, WithTimeout(s.Timeout), WithHTTPLogger(l)), nil
	case NameGenerator:
		return NewGeneratorSource(WithSeed(s.Seed), WithTeams(s.Teams), WithDays(s.Days), WithGeneratorLogger(l)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, s.Kind)
}
