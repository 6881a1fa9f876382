package core

import "math"

// Tile is a single cell of a generated surface. An ID of zero marks an
// unassigned tile.
type Tile struct {
	ID    uint16
	Flags uint8
}

// Unknown is returned for tiles whose grid cell is not materialized.
var Unknown = Tile{ID: math.MaxUint16, Flags: math.MaxUint8}

// Empty reports whether the tile has not been assigned by any generation step.
func (t Tile) Empty() bool { return t.ID == 0 }

// IsUnknown reports whether the tile is the out-of-window sentinel.
func (t Tile) IsUnknown() bool { return t == Unknown }

// GridCoord addresses one cell of the streamed world grid.
type GridCoord struct {
	Row    int
	Column int
}
