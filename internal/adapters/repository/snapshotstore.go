package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/view"
	"github.com/KrishalDhungana/NBABrain/pkg/metrics"
)

const defaultMaxLimit = 500

// SnapshotStore is an in-memory Store. Reads load an atomic pointer and take
// no locks; Replace swaps the pointer.
type SnapshotStore struct {
	snapshot    atomic.Pointer[view.Snapshot]
	publishedAt atomic.Int64
	now         func() time.Time
	maxLimit    int
}

// NewSnapshotStore constructs an empty store with configuration options.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{
		now:      time.Now,
		maxLimit: defaultMaxLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replace implements Store.Replace.
func (s *SnapshotStore) Replace(_ context.Context, snap *view.Snapshot) error {
	if snap == nil {
		return ErrNilSnapshot
	}
	now := s.now()
	s.publishedAt.Store(now.Unix())
	s.snapshot.Store(snap)

	metrics.RecordSnapshotPublished(now.Unix())
	metrics.UpdateEntityCount(string(model.KindTeam), len(snap.Teams))
	metrics.UpdateEntityCount(string(model.KindPlayer), len(snap.Players))
	metrics.UpdateSyntheticHistoryCount(string(model.KindTeam), snap.Quality.SyntheticTeams)
	metrics.UpdateSyntheticHistoryCount(string(model.KindPlayer), snap.Quality.SyntheticPlayers)
	return nil
}

// Current implements Store.Current.
func (s *SnapshotStore) Current(_ context.Context) (*view.Snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// PublishedAt returns when the current snapshot was published.
func (s *SnapshotStore) PublishedAt() (time.Time, bool) {
	if s.snapshot.Load() == nil {
		return time.Time{}, false
	}
	return time.Unix(s.publishedAt.Load(), 0).UTC(), true
}

// Entity implements Store.Entity.
func (s *SnapshotStore) Entity(ctx context.Context, kind model.Kind, id string) (view.EntityView, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return view.EntityView{}, err
	}
	var (
		v  view.EntityView
		ok bool
	)
	if kind == model.KindPlayer {
		v, ok = snap.Player(id)
	} else {
		v, ok = snap.Team(id)
	}
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return view.EntityView{}, ErrNotFound
	}
	return v, nil
}

// Ranking implements Store.Ranking.
func (s *SnapshotStore) Ranking(ctx context.Context, kind model.Kind, metric string, cohort ranking.Cohort, limit int) ([]view.RankedEntry, error) {
	if limit < 1 || limit > s.maxLimit {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}
	snap, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	rows := snap.Ranking(kind, metric, cohort)
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// Count implements Store.Count.
func (s *SnapshotStore) Count(_ context.Context, kind model.Kind) int {
	snap := s.snapshot.Load()
	if snap == nil {
		return 0
	}
	return len(snap.Views(kind))
}
