package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/pkg/logger"
)

// Default payload file names inside the data directory.
const (
	DefaultTeamsFile   = "teams.json"
	DefaultPlayersFile = "players.json"
)

// FileSource reads teams.json and players.json from a directory.
type FileSource struct {
	dir         string
	teamsFile   string
	playersFile string
	logger      logger.Logger
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string, opts ...FileOption) *FileSource {
	s := &FileSource{
		dir:         dir,
		teamsFile:   DefaultTeamsFile,
		playersFile: DefaultPlayersFile,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Source.
func (s *FileSource) Name() string { return NameFile }

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) (model.RawSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.RawSnapshot{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	teamsPath := filepath.Join(s.dir, s.teamsFile)
	playersPath := filepath.Join(s.dir, s.playersFile)

	teams, err := os.Open(teamsPath)
	if err != nil {
		return model.RawSnapshot{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer teams.Close()

	players, err := os.Open(playersPath)
	if err != nil {
		return model.RawSnapshot{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer players.Close()

	snap, err := Decode(teams, players)
	if err != nil {
		return model.RawSnapshot{}, fmt.Errorf("read %s: %w", s.dir, err)
	}
	s.logger.Debug(ctx, "snapshot read from disk",
		logger.String("dir", s.dir),
		logger.Int("teams", len(snap.Teams)),
		logger.Int("players", len(snap.Players)),
	)
	return snap, nil
}
