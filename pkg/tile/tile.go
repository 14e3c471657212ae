package tile

import "slices"

// NoSlot marks a tile that has not been placed yet.
const NoSlot = -1

// Point is a position in surface coordinates with the origin at the surface
// center.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tile is one generated puzzle element.
//
// Text, Value and Expr are fixed at generation time. Slot and Position are
// written once by the placer. Order is the stable sort key assigned at load.
type Tile struct {
	Text     string     `json:"text"`
	Value    float64    `json:"value"`
	Expr     Expression `json:"expr"`
	Position Point      `json:"position"`
	Slot     int        `json:"slot"`
	Order    int        `json:"order"`
}

// New builds an unplaced tile from an expression.
func New(expr Expression) Tile {
	return Tile{
		Text:  expr.String(),
		Value: expr.Eval(),
		Expr:  expr,
		Slot:  NoSlot,
	}
}

// Placed reports whether the tile has been assigned a slot.
func (t Tile) Placed() bool {
	return t.Slot != NoSlot
}

// Clone returns a deep copy of tiles. The operand slices are not shared.
func Clone(tiles []Tile) []Tile {
	if tiles == nil {
		return nil
	}
	out := make([]Tile, len(tiles))
	for i, t := range tiles {
		t.Expr.Operands = slices.Clone(t.Expr.Operands)
		out[i] = t
	}
	return out
}

// Values returns the value of every tile, in order.
func Values(tiles []Tile) []float64 {
	out := make([]float64, len(tiles))
	for i, t := range tiles {
		out[i] = t.Value
	}
	return out
}
