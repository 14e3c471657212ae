package generate

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/eskillate/lowpop/pkg/config"
	"github.com/eskillate/lowpop/pkg/errors"
	"github.com/eskillate/lowpop/pkg/random"
	"github.com/eskillate/lowpop/pkg/tile"
)

// Generator draws tile batches from an injected random source.
// It holds no batch state between calls.
type Generator struct {
	cfg    config.Generation
	src    random.Source
	ops    []tile.Operation
	logger *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for retry and alias diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithOperations restricts the operation set used by the int, float and
// composed tiers. The normal tier always uses identity.
func WithOperations(ops ...tile.Operation) Option {
	return func(g *Generator) {
		g.ops = slices.Clone(ops)
	}
}

// New creates a generator bounded by cfg that draws from src.
func New(cfg config.Generation, src random.Source, opts ...Option) *Generator {
	g := &Generator{
		cfg:    cfg,
		src:    src,
		ops:    tile.Operations(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Policy returns the operations available at tier.
func Policy(tier tile.Tier) ([]tile.Operation, error) {
	switch tier {
	case tile.NormalOnly:
		return []tile.Operation{tile.Identity}, nil
	case tile.IntArithmetics, tile.FloatArithmetics, tile.ComposedExpressions:
		return tile.Operations(), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedTier, "tier %v is not implemented", tier)
	}
}

// Generate returns exactly count tiles whose values are pairwise distinct.
func (g *Generator) Generate(count int, tier tile.Tier) ([]tile.Tile, error) {
	if err := errors.ValidateTileCount(count); err != nil {
		return nil, err
	}
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	ops, err := g.operations(tier)
	if err != nil {
		return nil, err
	}
	if tier == tile.ComposedExpressions {
		g.logger.Debug("composed tier aliases float arithmetics", "count", count)
	}

	draw := g.drawer(tier)
	seen := make(map[float64]struct{}, count)
	tiles := make([]tile.Tile, 0, count)

	for i := range count {
		op := tile.Identity
		if tier != tile.NormalOnly {
			op = ops[g.src.IntN(len(ops))]
		}

		t, err := g.unique(i, op, draw, seen)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeGenerationExhausted, err,
				"%s tier, %d tiles requested in [%d, %d]", tier, count, g.cfg.MinValue, g.cfg.MaxValue)
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

// operations returns the tier's policy restricted to the configured set, in
// configured order. The normal tier ignores the restriction.
func (g *Generator) operations(tier tile.Tier) ([]tile.Operation, error) {
	policy, err := Policy(tier)
	if err != nil {
		return nil, err
	}
	if tier == tile.NormalOnly {
		return policy, nil
	}

	ops := make([]tile.Operation, 0, len(g.ops))
	for _, op := range g.ops {
		if slices.Contains(policy, op) {
			ops = append(ops, op)
		}
	}
	if len(ops) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no %s tier operation in set %v", tier, g.ops)
	}
	return ops, nil
}

// unique draws expressions with op until one has an unseen value.
func (g *Generator) unique(index int, op tile.Operation, draw drawFunc, seen map[float64]struct{}) (tile.Tile, error) {
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		expr := draw(op)
		value := expr.Eval()
		if _, dup := seen[value]; !dup {
			seen[value] = struct{}{}
			return tile.New(expr), nil
		}
		g.logger.Debug("duplicate value", "tile", index, "op", op, "value", value, "attempt", attempt)
	}
	return tile.Tile{}, &errors.ExhaustedError{Attempts: g.cfg.MaxAttempts, Index: index}
}

// drawFunc synthesizes one expression for an operation.
type drawFunc func(op tile.Operation) tile.Expression

func (g *Generator) drawer(tier tile.Tier) drawFunc {
	if tier.Integral() {
		return g.drawInt
	}
	return g.drawFloat
}
