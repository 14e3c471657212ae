package placement

import (
	"math"
	"slices"

	"github.com/eskillate/lowpop/pkg/errors"
	"github.com/eskillate/lowpop/pkg/random"
	"github.com/eskillate/lowpop/pkg/tile"
)

// Grid is the slot partition of a play surface sized for one batch.
type Grid struct {
	Columns       int     `json:"columns"`
	Rows          int     `json:"rows"`
	SlotWidth     float64 `json:"slot_width"`
	SlotHeight    float64 `json:"slot_height"`
	SurfaceWidth  float64 `json:"surface_width"`
	SurfaceHeight float64 `json:"surface_height"`

	open []int
}

// BuildGrid computes the smallest ratio-preserving grid holding count tiles.
func BuildGrid(count int, width, height float64) (*Grid, error) {
	if err := errors.ValidateTileCount(count); err != nil {
		return nil, err
	}
	if err := errors.ValidateSize("surface", width, height); err != nil {
		return nil, err
	}

	g := &Grid{SurfaceWidth: width, SurfaceHeight: height}
	if count == 0 {
		return g, nil
	}

	ratio := height / width
	est := math.Sqrt(float64(count) / ratio)
	g.Columns = dimension(est)
	g.Rows = dimension(ratio * est)
	for g.Columns*g.Rows < count {
		g.Rows++
	}

	g.SlotWidth = width / float64(g.Columns)
	g.SlotHeight = height / float64(g.Rows)

	g.open = make([]int, g.Slots())
	for i := range g.open {
		g.open[i] = i
	}
	return g, nil
}

// dimension rounds a slot-count estimate up, bounded to [1, MaxTileCount].
// Extreme aspect ratios produce estimates that are not finite or overflow int.
func dimension(est float64) int {
	switch {
	case math.IsNaN(est) || est < 1:
		return 1
	case est > errors.MaxTileCount:
		return errors.MaxTileCount
	}
	return int(math.Ceil(est))
}

// Slots returns the total number of slots.
func (g *Grid) Slots() int {
	return g.Columns * g.Rows
}

// Remaining returns the number of unclaimed slots.
func (g *Grid) Remaining() int {
	return len(g.open)
}

// Open returns the unclaimed slot indices in pool order.
func (g *Grid) Open() []int {
	return slices.Clone(g.open)
}

// Clone returns an independent copy of the grid and its pool.
func (g *Grid) Clone() *Grid {
	cp := *g
	cp.open = slices.Clone(g.open)
	return &cp
}

// Claim removes a slot from the pool using the classic draw: a pool index in
// [0, size-2], or 0 when a single slot remains.
func (g *Grid) Claim(src random.Source) (int, error) {
	if len(g.open) == 0 {
		return 0, errors.New(errors.ErrCodeSlotsExhausted, "no open slot left in %dx%d grid", g.Columns, g.Rows)
	}
	return g.take(random.IntRange(src, 0, len(g.open)-1)), nil
}

// ClaimUniform removes a slot drawn uniformly from the whole pool.
func (g *Grid) ClaimUniform(src random.Source) (int, error) {
	if len(g.open) == 0 {
		return 0, errors.New(errors.ErrCodeSlotsExhausted, "no open slot left in %dx%d grid", g.Columns, g.Rows)
	}
	return g.take(src.IntN(len(g.open))), nil
}

func (g *Grid) take(i int) int {
	slot := g.open[i]
	g.open = slices.Delete(g.open, i, i+1)
	return slot
}

// Cell converts a slot index to its row and column.
func (g *Grid) Cell(slot int) (row, col int) {
	row = slot / g.Columns
	col = slot - row*g.Columns
	return row, col
}

// Center returns the center of a slot in surface-centered coordinates.
func (g *Grid) Center(slot int) tile.Point {
	row, col := g.Cell(slot)
	return tile.Point{
		X: g.SlotWidth/2 + float64(col)*g.SlotWidth - g.SurfaceWidth/2,
		Y: g.SlotHeight/2 + float64(row)*g.SlotHeight - g.SurfaceHeight/2,
	}
}
