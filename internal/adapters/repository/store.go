// Package repository defines the ordered event store interface and errors.
package repository

import (
	"context"

	"github.com/okian/steady/internal/domain/model"
)

// Store provides read/write access to the chronological event history.
// Implementations serialize mutations and present consistent snapshots;
// the scoring engine only ever consumes a snapshot.
type Store interface {
	// Append assigns the next monotonic id to the event and stores it.
	// Returns the stored event, id filled in.
	Append(ctx context.Context, ev model.ActivityEvent) (model.ActivityEvent, error)

	// Update replaces the stored event with the same id.
	// Returns ErrNotFound if the id is unknown.
	Update(ctx context.Context, ev model.ActivityEvent) error

	// Delete removes the event with the given id.
	// Returns ErrNotFound if the id is unknown.
	Delete(ctx context.Context, id int64) error

	// Get returns the event with the given id.
	Get(ctx context.Context, id int64) (model.ActivityEvent, error)

	// All returns every stored event in processing order
	// (timestamp asc, id asc).
	All(ctx context.Context) []model.ActivityEvent

	// Recent returns up to n of the newest events, oldest first.
	Recent(ctx context.Context, n int) ([]model.ActivityEvent, error)

	// ReplaceAll swaps the entire history in one step, so readers never
	// observe a mix of stale and fresh score deltas mid-recompute.
	ReplaceAll(ctx context.Context, events []model.ActivityEvent) error

	// Count returns the number of stored events.
	Count(ctx context.Context) int
}
