// Package repository holds the current view-model snapshot and serves reads from it.
package repository

import (
	"context"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/view"
)

// Store provides access to the current snapshot. Snapshots are replaced as a
// whole; readers never observe a partially updated one.
type Store interface {
	// Replace publishes snap as the current snapshot.
	Replace(ctx context.Context, snap *view.Snapshot) error

	// Current returns the current snapshot or ErrNoSnapshot.
	Current(ctx context.Context) (*view.Snapshot, error)

	// Entity returns one team or player view.
	// Returns ErrNotFound if the id is unknown.
	Entity(ctx context.Context, kind model.Kind, id string) (view.EntityView, error)

	// Ranking returns the first limit rows of a metric ranking within cohort.
	Ranking(ctx context.Context, kind model.Kind, metric string, cohort ranking.Cohort, limit int) ([]view.RankedEntry, error)

	// Count returns the number of entities of kind in the current snapshot.
	Count(ctx context.Context, kind model.Kind) int
}
