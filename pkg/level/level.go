package level

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/eskillate/lowpop/pkg/config"
	"github.com/eskillate/lowpop/pkg/generate"
	"github.com/eskillate/lowpop/pkg/observability"
	"github.com/eskillate/lowpop/pkg/placement"
	"github.com/eskillate/lowpop/pkg/random"
	"github.com/eskillate/lowpop/pkg/tile"
)

// Level holds at most one loaded batch.
type Level struct {
	mu     sync.Mutex
	cfg    config.Config
	src    random.Source
	logger *log.Logger

	ops       []tile.Operation
	fullRange bool

	loaded bool
	id     uuid.UUID
	tiles  []tile.Tile
	grid   *placement.Grid
	stats  Stats
}

// Option configures a Level.
type Option func(*Level)

// WithLogger sets the logger for lifecycle and pipeline diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(lvl *Level) {
		if l != nil {
			lvl.logger = l
		}
	}
}

// WithOperations restricts the operations drawn for non-normal tiers.
func WithOperations(ops ...tile.Operation) Option {
	return func(lvl *Level) { lvl.ops = ops }
}

// WithFullRangeDraw lets placement select every open slot.
// See placement.WithFullRangeDraw.
func WithFullRangeDraw() Option {
	return func(lvl *Level) { lvl.fullRange = true }
}

// New creates an unloaded level. All draws for every future Load come from
// src.
func New(cfg config.Config, src random.Source, opts ...Option) *Level {
	lvl := &Level{
		cfg:    cfg,
		src:    src,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(lvl)
	}
	return lvl
}

// Load generates and places count tiles of the given tier. A level that is
// already loaded is unloaded first.
func (l *Level) Load(count int, tier tile.Tier) ([]tile.Tile, error) {
	return l.LoadContext(context.Background(), count, tier)
}

// LoadContext is Load with a context for cancellation and hooks.
func (l *Level) LoadContext(ctx context.Context, count int, tier tile.Tier) ([]tile.Tile, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		l.unload(ctx)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	id := uuid.New()
	tiles, grid, stats, err := l.build(ctx, count, tier)
	observability.Level().OnLoad(ctx, id.String(), count, time.Since(start), err)
	if err != nil {
		l.logger.Debug("load failed", "count", count, "tier", tier, "error", err)
		return nil, err
	}

	l.loaded = true
	l.id = id
	l.tiles = tiles
	l.grid = grid
	l.stats = stats
	l.logger.Debug("loaded level", "id", id, "count", count, "tier", tier,
		"columns", grid.Columns, "rows", grid.Rows)
	return tile.Clone(tiles), nil
}

func (l *Level) build(ctx context.Context, count int, tier tile.Tier) ([]tile.Tile, *placement.Grid, Stats, error) {
	hooks := observability.Pipeline()

	genOpts := []generate.Option{generate.WithLogger(l.logger)}
	if l.ops != nil {
		genOpts = append(genOpts, generate.WithOperations(l.ops...))
	}

	start := time.Now()
	hooks.OnGenerateStart(ctx, tier.String(), count)
	tiles, err := generate.New(l.cfg.Generation, l.src, genOpts...).Generate(count, tier)
	genTime := time.Since(start)
	hooks.OnGenerateComplete(ctx, tier.String(), count, genTime, err)
	if err != nil {
		return nil, nil, Stats{}, err
	}
	for i := range tiles {
		tiles[i].Order = i
	}

	grid, err := placement.BuildGrid(count, l.cfg.Surface.Width, l.cfg.Surface.Height)
	if err != nil {
		return nil, nil, Stats{}, err
	}

	placeOpts := []placement.Option{placement.WithLogger(l.logger)}
	if l.fullRange {
		placeOpts = append(placeOpts, placement.WithFullRangeDraw())
	}

	start = time.Now()
	hooks.OnPlaceStart(ctx, count, grid.Slots())
	err = placement.New(l.src, placeOpts...).PlaceAll(tiles, grid, l.cfg.Sprite.Width, l.cfg.Sprite.Height)
	placeTime := time.Since(start)
	hooks.OnPlaceComplete(ctx, count, placeTime, err)
	if err != nil {
		return nil, nil, Stats{}, err
	}
	placement.SortByOrder(tiles)

	stats := newStats(tiles, tier, grid)
	stats.GenerateTime = genTime
	stats.PlaceTime = placeTime
	return tiles, grid, stats, nil
}

// Reload returns a copy of the loaded batch. It makes no random draws and
// returns an empty slice when nothing is loaded.
func (l *Level) Reload() []tile.Tile {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		return []tile.Tile{}
	}
	observability.Level().OnReload(context.Background(), l.id.String(), len(l.tiles))
	return tile.Clone(l.tiles)
}

// Unload releases the batch and its grid. Unloading an unloaded level is a
// no-op.
func (l *Level) Unload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.unload(context.Background())
}

func (l *Level) unload(ctx context.Context) {
	if !l.loaded {
		return
	}
	observability.Level().OnUnload(ctx, l.id.String())
	l.logger.Debug("unloaded level", "id", l.id)

	l.loaded = false
	l.id = uuid.Nil
	l.tiles = nil
	l.grid = nil
	l.stats = Stats{}
}

// ID identifies the current load. It is uuid.Nil when unloaded.
func (l *Level) ID() uuid.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.id
}

// Loaded reports whether a batch is held.
func (l *Level) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Grid returns a snapshot of the grid used by the current load, or nil.
func (l *Level) Grid() *placement.Grid {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.grid == nil {
		return nil
	}
	return l.grid.Clone()
}

// Stats summarizes the current load.
func (l *Level) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats.clone()
}
