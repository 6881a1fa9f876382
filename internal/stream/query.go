package stream

import "tilestream/internal/core"

// View is a rectangular snapshot of tiles around the focal tile.
type View struct {
	OriginRow int
	OriginCol int
	Rows      int
	Cols      int
	Tiles     []core.Tile
	// Missing counts tiles outside the live block, returned as core.Unknown.
	Missing int
}

// At returns the tile at a position relative to the view origin.
func (v View) At(row, col int) core.Tile {
	return v.Tiles[core.ToFlatIndex(row, col, v.Cols)]
}

// locate resolves a world tile to a cell of the live block and an index into
// its surface. World coordinates wrap, so a tile just across the world seam
// resolves like any other neighbor.
func (w *Window) locate(row, col int) (cell, index int, ok bool) {
	side := w.world.TilesPerSide
	center := w.live.Meta.Center
	r := ringOffset(row-center.Row*side, w.world.GridRows*side, side)
	c := ringOffset(col-center.Column*side, w.world.GridColumns*side, side)
	cell = core.NeighborCellIndex(r, c, side, side, 4)
	if cell < 0 {
		return -1, 0, false
	}
	return cell, core.ToFlatIndex(core.FixIndex(r, side), core.FixIndex(c, side), side), true
}

// ringOffset maps an offset from the center cell's origin into [-side, ring-side).
func ringOffset(off, ring, side int) int {
	return core.FixIndex(off+side, ring) - side
}

// TileAt returns the tile at a world position, or core.Unknown when its cell
// is not loaded.
func (w *Window) TileAt(row, col int) core.Tile {
	cell, idx, ok := w.locate(row, col)
	if !ok {
		w.emit(GenerationSlow, w.live.Meta.Center, w.cell, false)
		return core.Unknown
	}
	return w.live.Cells[cell].Surface[idx]
}

// Viewport returns the tiles visible in a width×height pixel rectangle
// centered on the focal tile.
func (w *Window) Viewport(width, height int) (View, error) {
	if width <= 0 || height <= 0 {
		return View{}, ErrInvalidViewport
	}
	ts := w.settings.TileSize
	cols := max(width/ts, 1)
	rows := max(height/ts, 1)
	v := View{
		OriginRow: w.focalRow - rows/2,
		OriginCol: w.focalCol - cols/2,
		Rows:      rows,
		Cols:      cols,
		Tiles:     make([]core.Tile, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell, idx, ok := w.locate(v.OriginRow+r, v.OriginCol+c)
			if !ok {
				v.Tiles[core.ToFlatIndex(r, c, cols)] = core.Unknown
				v.Missing++
				continue
			}
			v.Tiles[core.ToFlatIndex(r, c, cols)] = w.live.Cells[cell].Surface[idx]
		}
	}
	if v.Missing > 0 {
		w.emit(GenerationSlow, w.live.Meta.Center, w.cell, false)
	}
	return v, nil
}

// SetValue overwrites a tile of the live block. It reports false when the
// tile's cell is not loaded.
func (w *Window) SetValue(row, col int, t core.Tile) bool {
	cell, idx, ok := w.locate(row, col)
	if !ok {
		return false
	}
	w.live.Cells[cell].Surface[idx] = t
	return true
}
