package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/eskillate/lowpop/pkg/cache"
	"github.com/eskillate/lowpop/pkg/level"
	"github.com/eskillate/lowpop/pkg/observability"
	"github.com/eskillate/lowpop/pkg/random"
)

const batchKeyType = "batch"

// Runner encapsulates pipeline execution with caching.
// Both CLI and HTTP host use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute generates and places one batch, replaying it from the cache when
// an identical batch was produced before.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	var key string
	if opts.Cacheable() {
		key = r.Keyer.BatchKey(opts.BatchKeyOpts())
		if !opts.Refresh {
			if cached, ok := r.lookup(ctx, key); ok {
				return cached, nil
			}
		}
	} else {
		opts.Seed = random.NewSeed()
	}

	start := time.Now()
	lvl := level.New(*opts.Config, random.New(opts.Seed), opts.levelOptions()...)
	tiles, err := lvl.LoadContext(ctx, opts.Count, opts.Tier)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ID:        lvl.ID().String(),
		Seed:      opts.Seed,
		Tiles:     tiles,
		Grid:      lvl.Grid(),
		Stats:     lvl.Stats(),
		CacheInfo: CacheInfo{Key: key},
	}
	r.Logger.Info("generated batch",
		"tiles", len(tiles),
		"tier", opts.Tier,
		"seed", opts.Seed,
		"duration", time.Since(start))

	if key != "" {
		r.store(ctx, key, result)
	}
	return result, nil
}

// lookup returns the cached batch at key. Backend errors are logged and
// treated as misses.
func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	var cached Result
	err := cache.GetJSON(ctx, r.Cache, key, &cached)
	switch {
	case err == nil:
		observability.Cache().OnCacheHit(ctx, batchKeyType)
		cached.CacheInfo = CacheInfo{Key: key, Hit: true}
		r.Logger.Info("replayed cached batch", "tiles", len(cached.Tiles), "seed", cached.Seed)
		return &cached, true
	case errors.Is(err, cache.ErrCacheMiss):
		observability.Cache().OnCacheMiss(ctx, batchKeyType)
	default:
		observability.Cache().OnCacheMiss(ctx, batchKeyType)
		r.Logger.Warn("cache read failed", "error", err)
	}
	return nil, false
}

// store writes the batch to the cache, retrying transient backend errors.
// A failed write only costs a future cache hit, so it is logged, not
// returned.
func (r *Runner) store(ctx context.Context, key string, result *Result) {
	var size int
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		size, err = cache.SetJSON(ctx, r.Cache, key, result, DefaultTTL)
		return err
	})
	if err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, batchKeyType, size)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
