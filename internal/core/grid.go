package core

// TileGrid stores a 2D grid of tiles in row-major order.
type TileGrid struct {
	W, H int
	data []Tile
}

// NewTileGrid allocates a grid with the given dimensions.
func NewTileGrid(w, h int) *TileGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &TileGrid{W: w, H: h, data: make([]Tile, w*h)}
}

// WrapTiles adopts an existing row-major slice. It panics when the length does
// not match the dimensions.
func WrapTiles(w, h int, tiles []Tile) *TileGrid {
	if len(tiles) != w*h {
		panic("core: tile slice does not match grid size")
	}
	return &TileGrid{W: w, H: h, data: tiles}
}

// Tiles exposes the backing slice so callers can read/write values directly.
func (g *TileGrid) Tiles() []Tile { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *TileGrid) Index(x, y int) int { return ToFlatIndex(y, x, g.W) }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *TileGrid) Wrap(x, y int) (int, int) {
	return FixIndex(x, g.W), FixIndex(y, g.H)
}

// In reports whether (x, y) lies inside the grid without wrapping.
func (g *TileGrid) In(x, y int) bool {
	return !IsOutOfRange(y, x, g.H, g.W)
}

// At returns the tile at (x, y). Coordinates must be in range.
func (g *TileGrid) At(x, y int) Tile { return g.data[g.Index(x, y)] }

// Set stores t at (x, y). Coordinates must be in range.
func (g *TileGrid) Set(x, y int, t Tile) { g.data[g.Index(x, y)] = t }

// Count returns the number of tiles carrying the given id.
func (g *TileGrid) Count(id uint16) int {
	n := 0
	for _, t := range g.data {
		if t.ID == id {
			n++
		}
	}
	return n
}

// Clear resets every tile to empty.
func (g *TileGrid) Clear() {
	clear(g.data)
}
