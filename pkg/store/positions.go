package store

import (
	"context"
	"encoding/json"

	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/observability"
)

// Positions is the typed placement store: it marshals a player's ViewRecords
// to and from the backend blob and applies field defaults on read.
type Positions struct {
	backend Backend
}

// NewPositions wraps a backend with the typed placement layer.
func NewPositions(b Backend) *Positions {
	return &Positions{backend: b}
}

// Load reads a player's placement records. A clean miss returns an empty,
// usable map. Corrupt blobs are treated as a miss: placement memory is
// reproducible and must never block composition.
func (p *Positions) Load(ctx context.Context, playerKey string) (ViewRecords, error) {
	key := StorageKey(playerKey)
	data, ok, err := p.backend.Get(ctx, key)
	if err != nil {
		observability.Store().OnReadError(ctx, key, err)
		return ViewRecords{}, errors.Wrap(errors.ErrCodePersistence, err, "load placements for %s", playerKey)
	}
	if !ok {
		observability.Store().OnMiss(ctx, key)
		return ViewRecords{}, nil
	}

	var recs ViewRecords
	if err := json.Unmarshal(data, &recs); err != nil {
		observability.Store().OnReadError(ctx, key, err)
		return ViewRecords{}, nil
	}
	for _, rec := range recs {
		rec.Normalize()
	}
	observability.Store().OnHit(ctx, key)
	return recs, nil
}

// Save overwrites a player's placement blob. The write is durable when Save
// returns; callers treat failures as best-effort and log them.
func (p *Positions) Save(ctx context.Context, playerKey string, recs ViewRecords) error {
	key := StorageKey(playerKey)
	data, err := json.Marshal(recs)
	if err != nil {
		return errors.Wrap(errors.ErrCodePersistence, err, "marshal placements for %s", playerKey)
	}
	if err := p.backend.Set(ctx, key, data); err != nil {
		observability.Store().OnWriteError(ctx, key, err)
		return errors.Wrap(errors.ErrCodePersistence, err, "save placements for %s", playerKey)
	}
	return nil
}

// Delete removes a player's placement blob. Used by the store CLI command;
// the engine itself never deletes records.
func (p *Positions) Delete(ctx context.Context, playerKey string) error {
	return p.backend.Delete(ctx, StorageKey(playerKey))
}

// Close releases the underlying backend.
func (p *Positions) Close() error {
	return p.backend.Close()
}
