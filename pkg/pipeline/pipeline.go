// Package pipeline runs the generate → place pipeline for hosts.
//
// It wraps a level.Level run in seeded randomness and caching so the CLI and
// the HTTP host share one code path. A batch is fully determined by its
// tile count, tier, seed and configuration, so a cached batch is replayed
// verbatim with the same guarantee as level.Level.Reload.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Count: 12,
//	    Tier:  tile.IntArithmetics,
//	    Seed:  42,
//	})
//	if err != nil {
//	    return err
//	}
//	for _, t := range result.Tiles {
//	    fmt.Println(t.Text, t.Position)
//	}
//
// A zero Seed draws a fresh one. Such batches cannot be reproduced and are
// never cached.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/eskillate/lowpop/pkg/cache"
	"github.com/eskillate/lowpop/pkg/config"
	"github.com/eskillate/lowpop/pkg/errors"
	"github.com/eskillate/lowpop/pkg/level"
	"github.com/eskillate/lowpop/pkg/placement"
	"github.com/eskillate/lowpop/pkg/tile"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and HTTP host
// =============================================================================

const (
	// DefaultCount is the batch size used by hosts when none is given.
	DefaultCount = 12

	// DefaultTier is the tier used by hosts when none is given.
	DefaultTier = tile.IntArithmetics

	// DefaultTTL is how long a cached batch stays valid.
	DefaultTTL = 7 * 24 * time.Hour
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one batch.
// This struct supports JSON serialization for HTTP requests.
type Options struct {
	Count     int            `json:"count"`
	Tier      tile.Tier      `json:"tier"`
	Seed      uint64         `json:"seed,omitempty"`
	FullRange bool           `json:"full_range,omitempty"`
	Config    *config.Config `json:"config,omitempty"`
	Refresh   bool           `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the load that produced the batch.
	ID string `json:"id"`

	// Seed reproduces the batch together with the options.
	Seed uint64 `json:"seed"`

	// Tiles is the placed batch in order.
	Tiles []tile.Tile `json:"tiles"`

	// Grid is the slot grid the batch was placed on.
	Grid *placement.Grid `json:"grid"`

	// Stats summarizes the batch.
	Stats level.Stats `json:"stats"`

	// CacheInfo tracks whether the batch came from the cache.
	CacheInfo CacheInfo `json:"-"`
}

// CacheInfo describes the cache lookup for a run.
type CacheInfo struct {
	Key string // Cache key, empty when the batch is not cacheable
	Hit bool   // Whether the batch was replayed from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in the configuration
// and logger. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateTileCount(o.Count); err != nil {
		return err
	}
	if !o.Tier.Valid() {
		return errors.New(errors.ErrCodeUnsupportedTier, "tier %v is not implemented", o.Tier)
	}

	if o.Config == nil {
		cfg := config.Default()
		o.Config = &cfg
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Cacheable reports whether the batch is reproducible and may be cached.
func (o *Options) Cacheable() bool {
	return o.Seed != 0
}

// BatchKeyOpts returns cache key options for the batch.
func (o *Options) BatchKeyOpts() cache.BatchKeyOpts {
	opts := cache.BatchKeyOpts{
		Count:     o.Count,
		Tier:      o.Tier.String(),
		Seed:      o.Seed,
		FullRange: o.FullRange,
	}
	if o.Config != nil {
		opts.Config = *o.Config
	}
	return opts
}

// levelOptions translates the options to level options.
func (o *Options) levelOptions() []level.Option {
	opts := []level.Option{level.WithLogger(o.Logger)}
	if o.FullRange {
		opts = append(opts, level.WithFullRangeDraw())
	}
	return opts
}
