package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/pkg/logger"
)

const (
	defaultFetchTimeout = 10 * time.Second
	maxPayloadBytes     = 32 << 20
)

// HTTPSource fetches the teams and players payloads over HTTP GET.
type HTTPSource struct {
	client     *http.Client
	teamsURL   string
	playersURL string
	logger     logger.Logger
}

// NewHTTPSource creates an HTTPSource for the two payload URLs.
func NewHTTPSource(teamsURL, playersURL string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		client:     &http.Client{Timeout: defaultFetchTimeout},
		teamsURL:   teamsURL,
		playersURL: playersURL,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Source.
func (s *HTTPSource) Name() string { return NameHTTP }

// Fetch implements Source. Both payloads must be fetched successfully.
func (s *HTTPSource) Fetch(ctx context.Context) (model.RawSnapshot, error) {
	teams, err := s.get(ctx, s.teamsURL)
	if err != nil {
		return model.RawSnapshot{}, err
	}
	defer teams.Close()

	players, err := s.get(ctx, s.playersURL)
	if err != nil {
		return model.RawSnapshot{}, err
	}
	defer players.Close()

	snap, err := Decode(io.LimitReader(teams, maxPayloadBytes), io.LimitReader(players, maxPayloadBytes))
	if err != nil {
		return model.RawSnapshot{}, err
	}
	s.logger.Debug(ctx, "snapshot fetched",
		logger.String("teams_url", s.teamsURL),
		logger.Int("teams", len(snap.Teams)),
		logger.Int("players", len(snap.Players)),
	)
	return snap, nil
}

func (s *HTTPSource) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrSourceUnavailable, url, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrSourceUnavailable, url, resp.StatusCode)
	}
	return resp.Body, nil
}
