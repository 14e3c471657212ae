// Package tile defines the data model shared by generation, placement and
// the hosts that consume LowPop batches.
//
// # Core Types
//
//   - [Tile]: one generated puzzle element (display text, value, position)
//   - [Expression]: the operation and operands a tile was generated from
//   - [Tier]: difficulty level selecting operations and numeric domain
//   - [Operation]: one entry of the six-entry operation set
//   - [Point]: a position in surface-centered coordinates
//
// A tile's identity for uniqueness purposes is its Value: two tiles in one
// batch never share a value, even when their display texts differ.
//
// # Serialization
//
// Tiles carry JSON tags and are the wire format for cached batches and the
// HTTP host:
//
//	{"text": "12 / 3", "value": 4, "expr": {"op": "divide", "operands": [12, 3]},
//	 "position": {"x": -320.5, "y": 12}, "slot": 3, "order": 0}
package tile
