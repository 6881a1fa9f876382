package core

import "math"

// FixIndex wraps a row or column index into [0, count). Negative indices wrap
// from the far end, so FixIndex(-1, n) == n-1.
func FixIndex(index, count int) int {
	m := index % count
	if m < 0 {
		m += count
	}
	return m
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ToFlatIndex converts a row/column pair into a row-major slice index.
func ToFlatIndex(row, col, cols int) int { return row*cols + col }

// FromFlatIndex is the inverse of ToFlatIndex.
func FromFlatIndex(index, cols int) (row, col int) { return index / cols, index % cols }

// IsOutOfRange reports whether (row, col) falls outside a rows×cols surface.
func IsOutOfRange(row, col, rows, cols int) bool {
	return row < 0 || row >= rows || col < 0 || col >= cols
}

// NeighborCellIndex resolves which cell of a row-major 3×3 block owns the
// tile (row, col), given in the local coordinates of cell current. The result
// is -1 when the coordinate lies outside the block.
func NeighborCellIndex(row, col, rows, cols, current int) int {
	dr := 0
	if row < 0 || row >= rows {
		dr = FloorDiv(row, rows)
	}
	dc := 0
	if col < 0 || col >= cols {
		dc = FloorDiv(col, cols)
	}
	x := current%3 + dc
	y := current/3 + dr
	if x < 0 || x >= 3 || y < 0 || y >= 3 {
		return -1
	}
	return y*3 + x
}

// BlockIndex returns the 3×3 block index for a row/column offset from the
// center cell, each in {-1, 0, 1}.
func BlockIndex(dRow, dCol int) int { return (dRow+1)*3 + (dCol + 1) }

// BlockOffset is the inverse of BlockIndex.
func BlockOffset(index int) (dRow, dCol int) { return index/3 - 1, index%3 - 1 }

// GridCellID returns the world-wrapped id of the grid cell found dRow/dCol
// cells away from (srcRow, srcCol).
func GridCellID(dRow, dCol, srcRow, srcCol, gridRows, gridCols int) int {
	row := FixIndex(srcRow+dRow, gridRows)
	col := FixIndex(srcCol+dCol, gridCols)
	return ToFlatIndex(row, col, gridCols)
}

// Distance returns the rounded euclidean distance between two points.
func Distance(x1, y1, x2, y2 int) int {
	dx := float64(x1 - x2)
	dy := float64(y1 - y2)
	return int(math.Round(math.Sqrt(dx*dx + dy*dy)))
}

// MergeTiles returns a copy of base where every non-empty override replaces
// the base tile.
func MergeTiles(base, overrides []Tile) []Tile {
	out := make([]Tile, len(base))
	for i := range base {
		if i < len(overrides) && overrides[i].ID != 0 {
			out[i] = overrides[i]
			continue
		}
		out[i] = base[i]
	}
	return out
}
