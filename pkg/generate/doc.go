// Package generate produces batches of arithmetic tiles with pairwise
// distinct values.
//
// # Tiers
//
// The tier picks the operation set and numeric domain:
//
//	normal    identity only                      integers
//	int       identity + - * / negate            integers, exact division
//	float     identity + - * / negate            reals
//	composed  same as float (alias, see below)   reals
//
// The composed tier has no nested-expression semantics of its own; it draws
// exactly like the float tier and logs the aliasing at debug level.
//
// # Algorithm
//
// For each tile the generator picks one operation (identity for the normal
// tier), then draws operands until the expression's value differs from every
// value already accepted into the batch. All retries for one tile keep the
// operation chosen for it. After MaxAttempts draws without a fresh value the
// whole batch fails with GENERATION_EXHAUSTED; no partial batch is returned.
//
// Integer division never shows a remainder: the quotient is rounded half to
// even and the numerator is rebuilt as quotient*denominator.
//
// # Usage
//
//	g := generate.New(config.DefaultGeneration(), random.New(seed))
//	tiles, err := g.Generate(12, tile.IntArithmetics)
package generate
