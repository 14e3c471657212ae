package generate

import (
	"math"

	"github.com/eskillate/lowpop/pkg/random"
	"github.com/eskillate/lowpop/pkg/tile"
)

// drawInt synthesizes integer operands for op. Results stay within
// [-MaxValue, MaxValue] and division is always exact.
func (g *Generator) drawInt(op tile.Operation) tile.Expression {
	lo, hi := g.cfg.MinValue, g.cfg.MaxValue

	switch op {
	case tile.Add:
		a := random.IntBetween(g.src, lo, hi/2)
		b := random.IntBetween(g.src, lo, hi/2)
		return binary(op, a, b)

	case tile.Subtract:
		a := random.IntRange(g.src, lo, hi)
		b := random.IntRange(g.src, lo, a)
		return binary(op, a, b)

	case tile.Multiply:
		a := random.IntRange(g.src, lo, hi)
		b := random.IntBetween(g.src, lo, max(lo, hi/a))
		return binary(op, a, b)

	case tile.Divide:
		d := random.IntRange(g.src, lo, g.cfg.DenominatorMaxValue)
		n := random.IntRange(g.src, lo, hi)
		q := int(math.RoundToEven(float64(n) / float64(d)))
		return binary(op, q*d, d)

	case tile.Negate:
		return unary(op, float64(random.IntRange(g.src, lo, hi)))

	default:
		return unary(tile.Identity, float64(random.IntRange(g.src, lo, hi)))
	}
}

// drawFloat synthesizes real operands for op, quantized to FloatPrecision
// decimals so the display text matches the value. Division keeps integer
// operands and an unrounded quotient.
func (g *Generator) drawFloat(op tile.Operation) tile.Expression {
	lo, hi := float64(g.cfg.MinValue), float64(g.cfg.MaxValue)

	switch op {
	case tile.Add:
		a := g.real(lo, hi/2)
		b := g.real(lo, hi/2)
		return tile.Expression{Op: op, Operands: []float64{a, b}}

	case tile.Subtract:
		a := g.real(lo, hi)
		b := g.real(lo, a)
		return tile.Expression{Op: op, Operands: []float64{a, b}}

	case tile.Multiply:
		a := g.real(lo, hi)
		b := g.realBelow(lo, max(lo, hi/a))
		// a*b can still land an ulp above hi when b sits exactly on hi/a
		step := math.Pow(10, -float64(g.cfg.FloatPrecision))
		for b > lo && a*b > hi {
			b = max(lo, random.QuantizeDown(b-step, g.cfg.FloatPrecision))
		}
		return tile.Expression{Op: op, Operands: []float64{a, b}}

	case tile.Divide:
		d := random.IntRange(g.src, g.cfg.MinValue, g.cfg.DenominatorMaxValue)
		n := random.IntRange(g.src, g.cfg.MinValue, g.cfg.MaxValue)
		return binary(op, n, d)

	case tile.Negate:
		return unary(op, g.real(lo, hi))

	default:
		return unary(tile.Identity, g.real(lo, hi))
	}
}

func (g *Generator) real(lo, hi float64) float64 {
	return random.Quantize(random.FloatRange(g.src, lo, hi), g.cfg.FloatPrecision)
}

// realBelow is real with the draw truncated instead of rounded, so the
// result never exceeds hi.
func (g *Generator) realBelow(lo, hi float64) float64 {
	return max(lo, random.QuantizeDown(random.FloatRange(g.src, lo, hi), g.cfg.FloatPrecision))
}

func unary(op tile.Operation, a float64) tile.Expression {
	return tile.Expression{Op: op, Operands: []float64{a}}
}

func binary(op tile.Operation, a, b int) tile.Expression {
	return tile.Expression{Op: op, Operands: []float64{float64(a), float64(b)}}
}
