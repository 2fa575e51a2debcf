package source

import (
	"net/http"
	"time"

	"github.com/KrishalDhungana/NBABrain/pkg/logger"
)

// FileOption configures a FileSource.
type FileOption func(*FileSource)

// WithFileNames overrides the payload file names.
func WithFileNames(teams, players string) FileOption {
	return func(s *FileSource) {
		if teams != "" {
			s.teamsFile = teams
		}
		if players != "" {
			s.playersFile = players
		}
	}
}

// WithFileLogger sets the logger.
func WithFileLogger(l logger.Logger) FileOption {
	return func(s *FileSource) {
		if l != nil {
			s.logger = l
		}
	}
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if c != nil {
			s.client = c
		}
	}
}

// WithHTTPLogger sets the logger.
func WithHTTPLogger(l logger.Logger) HTTPOption {
	return func(s *HTTPSource) {
		if l != nil {
			s.logger = l
		}
	}
}

// GeneratorOption configures a GeneratorSource.
type GeneratorOption func(*GeneratorSource)

// WithSeed sets the random seed. Equal seeds produce equal snapshots.
func WithSeed(seed uint64) GeneratorOption {
	return func(s *GeneratorSource) {
		s.seed = seed
	}
}

// WithTeams sets how many franchises take part, between 2 and 30.
func WithTeams(n int) GeneratorOption {
	return func(s *GeneratorSource) {
		if n > 1 && n <= len(franchises) {
			s.teams = n
		}
	}
}

// WithDays sets the length of the simulated season in days.
func WithDays(n int) GeneratorOption {
	return func(s *GeneratorSource) {
		if n > 0 {
			s.days = n
		}
	}
}

// WithSeasonStart sets the first day of the simulated season.
func WithSeasonStart(t time.Time) GeneratorOption {
	return func(s *GeneratorSource) {
		if !t.IsZero() {
			s.start = t
		}
	}
}

// WithGeneratorLogger sets the logger.
func WithGeneratorLogger(l logger.Logger) GeneratorOption {
	return func(s *GeneratorSource) {
		if l != nil {
			s.logger = l
		}
	}
}
