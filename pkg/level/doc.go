// Package level owns the lifecycle of one tile batch.
//
// A Level runs the generate → place pipeline on Load, keeps the placed batch,
// replays it verbatim on Reload and forgets it on Unload:
//
//	lvl := level.New(config.Default(), random.New(seed))
//	tiles, err := lvl.Load(12, tile.IntArithmetics)
//	if err != nil {
//	    return err
//	}
//	again := lvl.Reload() // same texts, values and positions; no new draws
//	lvl.Unload()
//
// Load is all-or-nothing. When generation or placement fails the level is
// left unloaded and nothing is cached. Tiles are returned as copies, so
// callers may mutate them without affecting later reloads.
//
// A Level is safe for concurrent use; its methods serialize on an internal
// mutex. The random source it was built with is only drawn from under that
// mutex.
package level
