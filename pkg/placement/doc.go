// Package placement divides a play surface into a slot grid and assigns each
// tile a distinct slot with a random offset inside it.
//
// # Grid sizing
//
// For n tiles on a w×h surface with ratio r = h/w:
//
//	est     = sqrt(n / r)
//	columns = ceil(est)
//	rows    = ceil(r * est)   // from the unrounded estimate
//
// so columns*rows >= n, usually with a few spare slots. A 1920×1080 surface
// with 5 tiles gives a 3×2 grid of 640×540 slots.
//
// # Slot draw
//
// Each tile draws an index into the pool of open slots in [0, size-2], so the
// last entry of the pool is only picked once it is the single slot left. [WithFullRangeDraw] opts into the uniform
// [0, size-1] draw instead. Claimed slots leave the pool for good.
//
// # Coordinates
//
// Positions use surface coordinates with the origin at the surface center.
// A tile lands on its slot center shifted by a uniform offset in
// [-extra/2, extra/2] on each axis, where extra is the slot size minus the
// sprite size, so sprites never leave their slot and never overlap.
package placement
