// Package pkg provides the core libraries for LowPop, a generator of
// arithmetic puzzle tiles.
//
// # Overview
//
// A LowPop round shows a batch of tiles, each labelled with a number or a
// short arithmetic expression such as "7 * 6" or "-12". Every tile in a batch
// has a distinct value, so players can always order them unambiguously. The
// pkg directory is organized into three areas:
//
//  1. Domain - [tile], [generate], [placement] and [level]
//  2. Infrastructure - [config], [cache], [random], [errors], [observability]
//  3. Orchestration - [pipeline], shared by the CLI and the HTTP host
//
// # Architecture
//
// The data flow for one batch:
//
//	count, tier
//	     ↓
//	[generate] expressions with pairwise distinct values
//	     ↓
//	[placement] ratio-preserving grid, one jittered slot per tile
//	     ↓
//	[level] cached batch, replayed by Reload
//	     ↓
//	[pipeline] seeded runs, cached across processes
//
// # Quick Start
//
//	lvl := level.New(config.Default(), random.New(42))
//	tiles, err := lvl.Load(12, tile.IntArithmetics)
//	if err != nil {
//	    return err
//	}
//	for _, t := range tiles {
//	    fmt.Printf("%-10s %6.1f %6.1f\n", t.Text, t.Position.X, t.Position.Y)
//	}
//
// # Error Handling
//
// Operations fail as a whole and return coded errors from [errors]:
// GENERATION_EXHAUSTED when no unique value can be found, and
// INSUFFICIENT_SLOT_SPACE when sprites do not fit the grid cells.
package pkg
