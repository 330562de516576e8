// Package store persists per-player placement records: the last-known pose
// and style of every placeable element, keyed by (player, view).
//
// A player's placements are read and written as a single blob mapping view
// names to records, not per-view granular storage. Writes are last-write-
// wins; no history is retained. Records are never deleted on player removal:
// stale entries are harmless and only ever matched by key.
//
// Persistence is best-effort by contract: backends return errors, but the
// composer logs and continues. Losing placement memory degrades to default
// placement, it never crashes composition.
//
// Backends: memory (tests, single session), file (JSON files, hash-sharded),
// Redis, and MongoDB for shared deployments.
package store

import "context"

// Backend is the raw blob storage interface shared by all placement-store
// implementations.
type Backend interface {
	// Get retrieves a blob. The second return is false on a clean miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a blob, overwriting any previous value. The write is
	// durable when Set returns.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes a blob. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
