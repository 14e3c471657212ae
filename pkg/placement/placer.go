package placement

import (
	"cmp"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/eskillate/lowpop/pkg/errors"
	"github.com/eskillate/lowpop/pkg/random"
	"github.com/eskillate/lowpop/pkg/tile"
)

// Placer assigns grid slots and jittered positions to tiles.
type Placer struct {
	src       random.Source
	fullRange bool
	logger    *log.Logger
}

// Option configures a Placer.
type Option func(*Placer)

// WithFullRangeDraw makes every open slot selectable instead of using the
// classic [0, size-2] draw. Off by default.
func WithFullRangeDraw() Option {
	return func(p *Placer) { p.fullRange = true }
}

// WithLogger sets the logger for placement diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(p *Placer) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a placer drawing from src.
func New(src random.Source, opts ...Option) *Placer {
	p := &Placer{
		src:    src,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PlaceAll claims one slot per tile, in batch order, and writes each tile's
// Slot and Position. Tiles are left untouched when placement fails.
func (p *Placer) PlaceAll(tiles []tile.Tile, g *Grid, spriteWidth, spriteHeight float64) error {
	if len(tiles) == 0 {
		return nil
	}
	if err := errors.ValidateSize("sprite", spriteWidth, spriteHeight); err != nil {
		return err
	}

	extraWidth := g.SlotWidth - spriteWidth
	extraHeight := g.SlotHeight - spriteHeight
	if extraWidth < 0 || extraHeight < 0 {
		return errors.New(errors.ErrCodeInsufficientSlotSpace,
			"%vx%v sprite does not fit a %vx%v slot (%d tiles on %vx%v)",
			spriteWidth, spriteHeight, g.SlotWidth, g.SlotHeight, len(tiles), g.SurfaceWidth, g.SurfaceHeight)
	}
	if len(tiles) > g.Remaining() {
		return errors.New(errors.ErrCodeSlotsExhausted, "%d tiles for %d open slots", len(tiles), g.Remaining())
	}

	slots := make([]int, len(tiles))
	positions := make([]tile.Point, len(tiles))
	for i := range tiles {
		slot, err := p.claim(g)
		if err != nil {
			return err
		}
		center := g.Center(slot)
		offsetX := random.FloatRange(p.src, 0, extraWidth) - extraWidth/2
		offsetY := random.FloatRange(p.src, 0, extraHeight) - extraHeight/2

		slots[i] = slot
		positions[i] = tile.Point{X: center.X + offsetX, Y: center.Y + offsetY}
	}

	for i := range tiles {
		tiles[i].Slot = slots[i]
		tiles[i].Position = positions[i]
	}
	p.logger.Debug("placed tiles",
		"tiles", len(tiles),
		"columns", g.Columns,
		"rows", g.Rows,
		"open", g.Remaining())
	return nil
}

func (p *Placer) claim(g *Grid) (int, error) {
	if p.fullRange {
		return g.ClaimUniform(p.src)
	}
	return g.Claim(p.src)
}

// SortByOrder stable-sorts tiles by their Order field.
func SortByOrder(tiles []tile.Tile) {
	slices.SortStableFunc(tiles, func(a, b tile.Tile) int {
		return cmp.Compare(a.Order, b.Order)
	})
}
