package areagen

import "tilestream/internal/core"

// defragment bridges near-miss blobs: for every tile of an area listed in
// bridges, it looks for the farthest same-id tile within the area's connect
// distance along each axis direction and fills the empty tiles in between.
func defragment(surface []core.Tile, rows, cols int, bridges map[uint16]int) {
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			t := surface[core.ToFlatIndex(r, c, cols)]
			if t.Empty() {
				continue
			}
			dist, ok := bridges[t.ID]
			if !ok {
				continue
			}
			for _, off := range fourNeighbors {
				bridge(surface, rows, cols, r, c, off[0], off[1], dist, t)
			}
		}
	}
}

func bridge(surface []core.Tile, rows, cols, r, c, dr, dc, dist int, t core.Tile) {
	far := 0
	for d := dist; d > 0; d-- {
		nr, nc := r+dr*d, c+dc*d
		if core.IsOutOfRange(nr, nc, rows, cols) {
			continue
		}
		if surface[core.ToFlatIndex(nr, nc, cols)].ID == t.ID {
			far = d
			break
		}
	}
	for d := 1; d < far; d++ {
		idx := core.ToFlatIndex(r+dr*d, c+dc*d, cols)
		if surface[idx].Empty() {
			surface[idx] = t
		}
	}
}
