// Package service runs the refresh cycle and implements the dependencies
// required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/adapters/repository"
	"github.com/KrishalDhungana/NBABrain/internal/adapters/source"
	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/view"
	"github.com/KrishalDhungana/NBABrain/pkg/logger"
	"github.com/KrishalDhungana/NBABrain/pkg/metrics"
)

// ErrNotConfigured is returned by Start and Refresh when the service has no
// source.
var ErrNotConfigured = errors.New("service has no source configured")

// Refresh results recorded in metrics.
const (
	resultOK           = "ok"
	resultFetchError   = "fetch_error"
	resultBuildError   = "build_error"
	resultPublishError = "publish_error"
)

// Service fetches raw data, builds snapshots and publishes them to the store.
type Service struct {
	mu        sync.RWMutex
	refreshMu sync.Mutex

	// Core components
	source  source.Source
	builder *view.Builder
	store   repository.Store

	// Configuration
	interval     time.Duration
	fetchTimeout time.Duration

	// State
	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	refreshes    int
	failures     int
	lastVersion  string
	lastRefresh  time.Time
	lastDuration time.Duration
	lastErr      string
	quality      view.Quality

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the raw data source.
func WithSource(src source.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithBuilder sets the snapshot builder.
func WithBuilder(b *view.Builder) Option {
	return func(s *Service) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithStore sets the store snapshots are published to.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithRefreshInterval sets the period between refreshes. Zero disables the
// background loop; Refresh can still be called directly.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.interval = d
		}
	}
}

// WithFetchTimeout bounds a single source fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		interval:     5 * time.Minute,
		fetchTimeout: 10 * time.Second,
		logger:       nil, // replaced when the service starts
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.builder == nil {
		s.builder = view.NewBuilder()
	}
	if s.store == nil {
		s.store = repository.NewSnapshotStore()
	}
	return s
}

// Start runs the first refresh synchronously and then refreshes on every
// interval until Stop is called or ctx is done. A failed first refresh is
// logged; reads report no snapshot until a later refresh succeeds.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.source == nil {
		s.mu.Unlock()
		return ErrNotConfigured
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.started = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	s.logger.Info(ctx, "starting rating service...",
		logger.String("source", s.source.Name()),
		logger.Duration("interval", s.interval),
	)

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn(ctx, "initial refresh failed", logger.Error(err))
	}

	go s.loop(ctx)
	return nil
}

func (s *Service) loop(ctx context.Context) {
	defer close(s.doneCh)
	if s.interval <= 0 {
		select {
		case <-ctx.Done():
		case <-s.stopCh:
		}
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn(ctx, "refresh failed, keeping previous snapshot", logger.Error(err))
			}
		}
	}
}

// Stop halts the refresh loop and waits for it to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	close(s.stopCh)
	done := s.doneCh
	s.mu.Unlock()

	<-done
	s.logger.Info(context.Background(), "rating service stopped")
}

// Refresh fetches, builds and publishes one snapshot. On any failure the
// previously published snapshot stays in place.
func (s *Service) Refresh(ctx context.Context) error {
	if s.source == nil {
		return ErrNotConfigured
	}
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	log := s.log()
	name := s.source.Name()
	start := time.Now()

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	raw, err := s.source.Fetch(fetchCtx)
	cancel()
	metrics.RecordSourceFetchDuration(name, float64(time.Since(start).Milliseconds()))
	if err != nil {
		return s.fail(name, resultFetchError, fmt.Errorf("fetch from %s: %w", name, err))
	}

	buildStart := time.Now()
	snap, err := s.builder.Build(ctx, raw)
	if err != nil {
		return s.fail(name, resultBuildError, fmt.Errorf("build snapshot: %w", err))
	}
	metrics.RecordSnapshotBuild(float64(time.Since(buildStart).Milliseconds()))

	if err := s.store.Replace(ctx, snap); err != nil {
		return s.fail(name, resultPublishError, fmt.Errorf("publish snapshot: %w", err))
	}

	q := snap.Quality
	metrics.RecordInconsistentGames(q.InconsistentGames)
	for range q.DuplicateTeams {
		metrics.RecordDuplicateRecord(string(model.KindTeam))
	}
	for range q.DuplicatePlayers {
		metrics.RecordDuplicateRecord(string(model.KindPlayer))
	}
	metrics.RecordRefresh(name, resultOK)

	s.mu.Lock()
	s.refreshes++
	s.lastVersion = snap.Version
	s.lastRefresh = snap.BuiltAt
	s.lastDuration = time.Since(start)
	s.lastErr = ""
	s.quality = q
	s.mu.Unlock()

	log.Info(ctx, "snapshot published",
		logger.String("version", snap.Version),
		logger.Int("teams", len(snap.Teams)),
		logger.Int("players", len(snap.Players)),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}

func (s *Service) fail(name, result string, err error) error {
	metrics.RecordRefresh(name, result)
	metrics.RecordErrorByComponent("service", result)
	s.mu.Lock()
	s.failures++
	s.lastErr = err.Error()
	s.mu.Unlock()
	return err
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Nop()
	}
	return s.logger
}

// Current returns the published snapshot.
func (s *Service) Current(ctx context.Context) (*view.Snapshot, error) {
	return s.store.Current(ctx)
}

// Entity returns one team or player view.
func (s *Service) Entity(ctx context.Context, kind model.Kind, id string) (view.EntityView, error) {
	return s.store.Entity(ctx, kind, id)
}

// Ranking returns up to limit ranked rows.
func (s *Service) Ranking(ctx context.Context, kind model.Kind, metric string, cohort ranking.Cohort, limit int) ([]view.RankedEntry, error) {
	return s.store.Ranking(ctx, kind, metric, cohort, limit)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":   s.started,
		"interval":  s.interval.String(),
		"refreshes": s.refreshes,
		"failures":  s.failures,
		"teams":     s.store.Count(ctx, model.KindTeam),
		"players":   s.store.Count(ctx, model.KindPlayer),
		"quality":   s.quality,
	}
	if s.source != nil {
		stats["source"] = s.source.Name()
	}
	if s.lastVersion != "" {
		stats["version"] = s.lastVersion
		stats["lastRefresh"] = s.lastRefresh.Format(time.RFC3339)
		stats["lastRefreshMs"] = s.lastDuration.Milliseconds()
	}
	if s.lastErr != "" {
		stats["lastError"] = s.lastErr
	}
	return stats
}
