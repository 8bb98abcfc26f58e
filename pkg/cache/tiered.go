package cache

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Tiered layers a fast cache in front of a durable one. Reads try Fast
// first and fill it from Durable on a hit; writes go to both.
type Tiered struct {
	Fast    Cache
	Durable Cache

	// FillTTL is the Fast expiry used when filling from Durable.
	FillTTL time.Duration

	// Logger reports Fast failures that reads recover from.
	Logger *log.Logger
}

// NewTiered returns a Tiered cache. FillTTL defaults to [TTLArtifact] and
// failures are logged to logger, or discarded if it is nil.
func NewTiered(fast, durable Cache, logger *log.Logger) *Tiered {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tiered{Fast: fast, Durable: durable, FillTTL: TTLArtifact, Logger: logger}
}

// Get reads from Fast, then Durable. A Fast error is treated as a miss so a
// degraded fast tier does not fail reads.
func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := t.Fast.Get(ctx, key)
	switch {
	case err != nil:
		t.Logger.Warn("fast tier read failed", "key", key, "error", err)
	case ok:
		return data, true, nil
	}
	data, ok, err = t.Durable.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	if err := t.Fast.Set(ctx, key, data, t.FillTTL); err != nil {
		t.Logger.Warn("fast tier fill failed", "key", key, "error", err)
	}
	return data, true, nil
}

// Set writes Durable first, then Fast.
func (t *Tiered) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := t.Durable.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	return t.Fast.Set(ctx, key, data, ttl)
}

// Delete removes key from both tiers.
func (t *Tiered) Delete(ctx context.Context, key string) error {
	return errors.Join(t.Fast.Delete(ctx, key), t.Durable.Delete(ctx, key))
}

// Close closes both tiers.
func (t *Tiered) Close() error {
	return errors.Join(t.Fast.Close(), t.Durable.Close())
}

var _ Cache = (*Tiered)(nil)
