package store

import (
	"context"
	"errors"

	"cardroom.io/holdem/game"
)

// ErrTableNotFound is returned by Load and Remove for unknown table codes.
var ErrTableNotFound = errors.New("table not found")

// ErrRevisionConflict is returned by Save when the persisted revision no
// longer matches the one the snapshot was loaded at. The caller must reload
// and retry; at most one writer per revision ever succeeds.
var ErrRevisionConflict = errors.New("table revision conflict")

// Store persists table snapshots with optimistic concurrency. Revisions
// start at 0 for a table that does not exist yet, so creating a table is
// Save(..., 0).
type Store interface {
	Load(ctx context.Context, code string) (*game.Table, uint64, error)
	Save(ctx context.Context, code string, table *game.Table, rev uint64) error
	Remove(ctx context.Context, code string) error
}
