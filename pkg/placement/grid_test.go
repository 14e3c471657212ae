package placement

import (
	"testing"

	"github.com/eskillate/lowpop/pkg/errors"
	"github.com/eskillate/lowpop/pkg/random"
)

func TestBuildGrid(t *testing.T) {
	tests := []struct {
		name         string
		count        int
		w, h         float64
		cols, rows   int
		slotW, slotH float64
	}{
		{"hd five tiles", 5, 1920, 1080, 3, 2, 640, 540},
		{"hd twelve tiles", 12, 1920, 1080, 5, 3, 384, 360},
		// rows come from the unrounded estimate: ceil(0.5625*1.33) = 1, not ceil(0.5625*2) = 2
		{"hd single tile", 1, 1920, 1080, 2, 1, 960, 1080},
		{"square four tiles", 4, 100, 100, 2, 2, 50, 50},
		{"square five tiles", 5, 100, 100, 3, 3, 100.0 / 3, 100.0 / 3},
		{"portrait", 5, 1080, 1920, 2, 3, 540, 640},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildGrid(tt.count, tt.w, tt.h)
			if err != nil {
				t.Fatal(err)
			}
			if g.Columns != tt.cols || g.Rows != tt.rows {
				t.Errorf("grid = %dx%d, want %dx%d", g.Columns, g.Rows, tt.cols, tt.rows)
			}
			if g.SlotWidth != tt.slotW || g.SlotHeight != tt.slotH {
				t.Errorf("slot = %vx%v, want %vx%v", g.SlotWidth, g.SlotHeight, tt.slotW, tt.slotH)
			}
			if g.Remaining() != g.Slots() {
				t.Errorf("fresh grid has %d open of %d slots", g.Remaining(), g.Slots())
			}
			for i, slot := range g.Open() {
				if slot != i {
					t.Fatalf("open pool not initialized in order: %v", g.Open())
				}
			}
		})
	}
}

func TestBuildGridAlwaysFits(t *testing.T) {
	surfaces := [][2]float64{{1920, 1080}, {1080, 1920}, {100, 100}, {1000, 10}, {7, 3}, {1366, 768}}
	for _, s := range surfaces {
		for count := 1; count <= 300; count++ {
			g, err := BuildGrid(count, s[0], s[1])
			if err != nil {
				t.Fatalf("BuildGrid(%d, %v, %v): %v", count, s[0], s[1], err)
			}
			if g.Slots() < count {
				t.Errorf("BuildGrid(%d, %v, %v) = %dx%d, too small", count, s[0], s[1], g.Columns, g.Rows)
			}
		}
	}
}

func TestBuildGridEdgeCases(t *testing.T) {
	g, err := BuildGrid(0, 1920, 1080)
	if err != nil {
		t.Fatalf("empty grid: %v", err)
	}
	if g.Slots() != 0 || g.Remaining() != 0 {
		t.Errorf("empty grid = %dx%d with %d open", g.Columns, g.Rows, g.Remaining())
	}

	if _, err := BuildGrid(-1, 1920, 1080); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative count: %v", err)
	}
	if _, err := BuildGrid(5, 0, 1080); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zero width: %v", err)
	}
}

func TestBuildGridExtremeAspect(t *testing.T) {
	tests := []struct {
		name  string
		count int
		w, h  float64
	}{
		{"tall strip", 5, 1, 1e300},
		{"wide strip", 5, 1e300, 1},
		{"infinite ratio", 5, 1e-300, 1e300},
		{"zero ratio", 5, 1e300, 1e-300},
		{"single tile tall", 1, 1, 1e300},
		{"many tiles tall", 500, 1, 1e12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildGrid(tt.count, tt.w, tt.h)
			if err != nil {
				t.Fatal(err)
			}
			if g.Columns < 1 || g.Rows < 1 {
				t.Fatalf("grid = %dx%d, want positive dimensions", g.Columns, g.Rows)
			}
			if g.Columns > errors.MaxTileCount || g.Rows > errors.MaxTileCount {
				t.Errorf("grid = %dx%d, dimension above %d", g.Columns, g.Rows, errors.MaxTileCount)
			}
			if g.Slots() < tt.count {
				t.Errorf("grid = %dx%d, too small for %d tiles", g.Columns, g.Rows, tt.count)
			}
			if g.Remaining() != g.Slots() {
				t.Errorf("fresh grid has %d open of %d slots", g.Remaining(), g.Slots())
			}
		})
	}
}

func TestCellAndCenter(t *testing.T) {
	g, err := BuildGrid(5, 1920, 1080)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		slot     int
		row, col int
		x, y     float64
	}{
		{0, 0, 0, -640, -270},
		{2, 0, 2, 640, -270},
		{3, 1, 0, -640, 270},
		{5, 1, 2, 640, 270},
	}
	for _, tt := range tests {
		row, col := g.Cell(tt.slot)
		if row != tt.row || col != tt.col {
			t.Errorf("Cell(%d) = (%d, %d), want (%d, %d)", tt.slot, row, col, tt.row, tt.col)
		}
		c := g.Center(tt.slot)
		if c.X != tt.x || c.Y != tt.y {
			t.Errorf("Center(%d) = (%v, %v), want (%v, %v)", tt.slot, c.X, c.Y, tt.x, tt.y)
		}
	}
}

func TestClaimNeverPicksLastPoolEntryEarly(t *testing.T) {
	for seed := uint64(1); seed <= 200; seed++ {
		g, err := BuildGrid(5, 1920, 1080) // 6 slots
		if err != nil {
			t.Fatal(err)
		}
		src := random.New(seed)
		var order []int
		for g.Remaining() > 0 {
			slot, err := g.Claim(src)
			if err != nil {
				t.Fatal(err)
			}
			order = append(order, slot)
		}
		// The last pool entry is skipped until it is alone, so the highest
		// slot is always claimed last.
		if order[len(order)-1] != 5 {
			t.Fatalf("seed %d: claim order %v, want slot 5 last", seed, order)
		}
	}
}

func TestClaimSingleSlotDoesNotDraw(t *testing.T) {
	g, err := BuildGrid(1, 100, 100) // 1x1
	if err != nil {
		t.Fatal(err)
	}
	src := &random.Counting{Source: random.New(1)}
	slot, err := g.Claim(src)
	if err != nil {
		t.Fatal(err)
	}
	if slot != 0 {
		t.Errorf("Claim() = %d, want 0", slot)
	}
	if src.Draws != 0 {
		t.Errorf("degenerate claim drew %d times", src.Draws)
	}

	if _, err := g.Claim(src); !errors.Is(err, errors.ErrCodeSlotsExhausted) {
		t.Errorf("claim on empty pool: %v", err)
	}
	if _, err := g.ClaimUniform(src); !errors.Is(err, errors.ErrCodeSlotsExhausted) {
		t.Errorf("uniform claim on empty pool: %v", err)
	}
}

func TestClaimUniformReachesLastEntry(t *testing.T) {
	hit := false
	for seed := uint64(1); seed <= 200 && !hit; seed++ {
		g, _ := BuildGrid(5, 1920, 1080)
		slot, err := g.ClaimUniform(random.New(seed))
		if err != nil {
			t.Fatal(err)
		}
		hit = slot == 5
	}
	if !hit {
		t.Error("uniform draw never selected the last pool entry")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g, _ := BuildGrid(5, 1920, 1080)
	cp := g.Clone()
	if _, err := cp.Claim(random.New(1)); err != nil {
		t.Fatal(err)
	}
	if g.Remaining() != 6 || cp.Remaining() != 5 {
		t.Errorf("remaining = %d/%d, want 6/5", g.Remaining(), cp.Remaining())
	}
}
