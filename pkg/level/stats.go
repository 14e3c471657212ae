package level

import (
	"maps"
	"time"

	"github.com/eskillate/lowpop/pkg/placement"
	"github.com/eskillate/lowpop/pkg/tile"
)

// Stats summarizes a loaded batch.
type Stats struct {
	Tiles      int            `json:"tiles"`
	Tier       tile.Tier      `json:"tier"`
	Columns    int            `json:"columns"`
	Rows       int            `json:"rows"`
	OpenSlots  int            `json:"open_slots"`
	Operations map[string]int `json:"operations,omitempty"`
	MinValue   float64        `json:"min_value"`
	MaxValue   float64        `json:"max_value"`

	GenerateTime time.Duration `json:"-"`
	PlaceTime    time.Duration `json:"-"`
}

func newStats(tiles []tile.Tile, tier tile.Tier, g *placement.Grid) Stats {
	s := Stats{
		Tiles:     len(tiles),
		Tier:      tier,
		Columns:   g.Columns,
		Rows:      g.Rows,
		OpenSlots: g.Remaining(),
	}
	if len(tiles) == 0 {
		return s
	}

	s.Operations = make(map[string]int)
	s.MinValue, s.MaxValue = tiles[0].Value, tiles[0].Value
	for _, t := range tiles {
		s.Operations[t.Expr.Op.String()]++
		s.MinValue = min(s.MinValue, t.Value)
		s.MaxValue = max(s.MaxValue, t.Value)
	}
	return s
}

func (s Stats) clone() Stats {
	s.Operations = maps.Clone(s.Operations)
	return s
}
