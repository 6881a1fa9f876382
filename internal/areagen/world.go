package areagen

import (
	"math"

	"tilestream/internal/core"
)

// World holds the dimensions of a generated world. The grid wraps in both
// directions.
type World struct {
	TilesPerSide int
	TileRows     int
	TileColumns  int
	GridRows     int
	GridColumns  int
}

// CellOf returns the wrapped grid cell containing the world tile (row, col).
// Coordinates may lie outside the world; they wrap.
func (w World) CellOf(row, col int) core.GridCoord {
	return core.GridCoord{
		Row:    core.FixIndex(core.FloorDiv(row, w.TilesPerSide), w.GridRows),
		Column: core.FixIndex(core.FloorDiv(col, w.TilesPerSide), w.GridColumns),
	}
}

// CellID returns the row-major id of a grid cell.
func (w World) CellID(c core.GridCoord) int {
	return core.GridCellID(0, 0, c.Row, c.Column, w.GridRows, w.GridColumns)
}

// measureWorld samples the world size from a stream seeded by the global seed,
// so the same seed and settings always describe the same world.
func measureWorld(seed int64, s Settings) World {
	rng := core.NewRNG(seed)
	var rows, cols int
	if s.Cylindrical {
		radius := rng.IntRange(s.MinSpanMeters, s.MaxSpanMeters)
		circumference := 2 * math.Pi * float64(radius)
		rows = int(math.Round(circumference / s.MetersPerTile))
		cols = rows
	} else {
		height := rng.IntRange(s.MinSpanMeters, s.MaxSpanMeters)
		width := rng.IntRange(s.MinSpanMeters, s.MaxSpanMeters)
		rows = int(math.Round(float64(height) / s.MetersPerTile))
		cols = int(math.Round(float64(width) / s.MetersPerTile))
	}
	side := s.TilesPerSide()
	w := World{
		TilesPerSide: side,
		TileRows:     max(rows, 1),
		TileColumns:  max(cols, 1),
	}
	w.GridRows = max(int(math.Ceil(float64(w.TileRows)/float64(side))), 1)
	w.GridColumns = max(int(math.Ceil(float64(w.TileColumns)/float64(side))), 1)
	return w
}
