package areagen

import (
	"context"
	"math"

	"tilestream/internal/core"
)

const (
	edgeNoiseStart = 0.3
	edgeNoiseDecay = 0.01
)

var fourNeighbors = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// surfaceBuild paints one surface. In streamed mode stamps that leave the
// surface are staged per neighbor in spill; in wrapped mode they wrap back
// onto the same surface.
type surfaceBuild struct {
	index  int
	cellID int

	surface    []core.Tile
	rows, cols int
	empty      int
	wrap       bool

	tileSize      int
	metersPerTile float64
	stallLimit    int

	spill      [9]map[int]core.Tile
	shortfalls []Shortfall
}

func newSurfaceBuild(surface []core.Tile, rows, cols int, s Settings, stallLimit int) *surfaceBuild {
	empty := 0
	for _, t := range surface {
		if t.Empty() {
			empty++
		}
	}
	return &surfaceBuild{
		index:         4,
		surface:       surface,
		rows:          rows,
		cols:          cols,
		empty:         empty,
		tileSize:      s.TileSize,
		metersPerTile: s.MetersPerTile,
		stallLimit:    stallLimit,
	}
}

// place runs the placement pass of one area until its coverage target is met
// or the surface can take no more of it.
func (b *surfaceBuild) place(ctx context.Context, rng *core.RNG, a AreaSpread) error {
	if a.Shape != ShapeCircle || a.Coverage <= 0 {
		return nil
	}
	total := float64(b.rows * b.cols)
	stamped, stall := 0, 0
	for attempt := 0; float64(stamped)/total < a.Coverage; attempt++ {
		if b.empty == 0 || stall >= b.stallLimit {
			b.shortfalls = append(b.shortfalls, Shortfall{
				CellIndex: b.index,
				CellID:    b.cellID,
				AreaID:    a.ID,
				Target:    a.Coverage,
				Reached:   float64(stamped) / total,
			})
			return nil
		}
		if attempt&63 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		row := rng.IntN(b.rows)
		col := rng.IntN(b.cols)
		radius := rng.IntRange(a.MinRadius, a.MaxRadius)
		if t := b.surface[core.ToFlatIndex(row, col, b.cols)]; !t.Empty() && t.ID != a.ID {
			stall++
			continue
		}
		n := b.stampCircle(rng, row, col, radius, a)
		if n == 0 {
			stall++
			continue
		}
		stall = 0
		stamped += n
	}
	return nil
}

// stampCircle fills the empty tiles of a disk centered on (row, col) and
// returns how many tiles of this surface it stamped.
func (b *surfaceBuild) stampCircle(rng *core.RNG, row, col, radius int, a AreaSpread) int {
	rTiles := int(math.Ceil(float64(radius) / b.metersPerTile))
	rPx := rTiles * b.tileSize
	cx, cy := col*b.tileSize, row*b.tileSize
	tile := a.Tile()

	n := 0
	for r := row - rTiles; r <= row+rTiles; r++ {
		for c := col - rTiles; c <= col+rTiles; c++ {
			if core.Distance(cx, cy, c*b.tileSize, r*b.tileSize) > rPx {
				continue
			}
			rr, cc := r, c
			if core.IsOutOfRange(r, c, b.rows, b.cols) {
				if !b.wrap {
					b.spillAt(r, c, tile)
					continue
				}
				rr, cc = core.FixIndex(r, b.rows), core.FixIndex(c, b.cols)
			}
			idx := core.ToFlatIndex(rr, cc, b.cols)
			if !b.surface[idx].Empty() {
				continue
			}
			b.surface[idx] = tile
			b.empty--
			n++
			if a.EdgeNoise {
				n += b.edgeNoise(rng, rr, cc, tile)
			}
		}
	}
	return n
}

// spillAt stages a stamp that landed in a neighboring cell. The first stamp a
// source cell makes on a tile wins within that source.
func (b *surfaceBuild) spillAt(r, c int, tile core.Tile) {
	target := core.NeighborCellIndex(r, c, b.rows, b.cols, b.index)
	if target < 0 || target == b.index {
		return
	}
	key := core.ToFlatIndex(core.FixIndex(r, b.rows), core.FixIndex(c, b.cols), b.cols)
	m := b.spill[target]
	if m == nil {
		m = make(map[int]core.Tile)
		b.spill[target] = m
	}
	if _, ok := m[key]; !ok {
		m[key] = tile
	}
}

// edgeNoise walks away from a freshly stamped tile, stamping empty
// 4-neighbors with a continuation chance that decays every hop.
func (b *surfaceBuild) edgeNoise(rng *core.RNG, row, col int, tile core.Tile) int {
	n := 0
	var open [4]int
	for p := edgeNoiseStart; rng.Float64() < p; p -= edgeNoiseDecay {
		k := 0
		for d, off := range fourNeighbors {
			nr, nc := row+off[0], col+off[1]
			if core.IsOutOfRange(nr, nc, b.rows, b.cols) {
				continue
			}
			if b.surface[core.ToFlatIndex(nr, nc, b.cols)].Empty() {
				open[k] = d
				k++
			}
		}
		if k == 0 {
			break
		}
		off := fourNeighbors[open[rng.IntN(k)]]
		row += off[0]
		col += off[1]
		b.surface[core.ToFlatIndex(row, col, b.cols)] = tile
		b.empty--
		n++
	}
	return n
}
