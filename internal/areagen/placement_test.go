package areagen

import (
	"testing"

	"tilestream/internal/core"
)

func testBuild(side, index int) *surfaceBuild {
	s := Settings{TileSize: 10, MetersPerTile: 1}
	b := newSurfaceBuild(make([]core.Tile, side*side), side, side, s, DefaultStallLimit)
	b.index = index
	return b
}

func TestStampCircleCountsOwnTiles(t *testing.T) {
	b := testBuild(20, 4)
	rng := core.NewRNG(3)
	a := AreaSpread{ID: 9, Flag: 1, Shape: ShapeCircle, Layer: LayerHeight, EdgeNoise: true}

	n := b.stampCircle(rng, 10, 10, 4, a)
	if n == 0 {
		t.Fatal("expected tiles to be stamped")
	}
	grid := core.WrapTiles(20, 20, b.surface)
	if got := grid.Count(9); got != n {
		t.Fatalf("surface holds %d stamped tiles, stampCircle reported %d", got, n)
	}
	if b.empty != 400-n {
		t.Fatalf("empty counter %d, want %d", b.empty, 400-n)
	}
	if grid.At(10, 10) != a.Tile() {
		t.Fatal("disk center not stamped")
	}
	for i := range b.spill {
		if len(b.spill[i]) != 0 {
			t.Fatalf("interior disk spilled into cell %d", i)
		}
	}
}

func TestStampCircleNeverOverwrites(t *testing.T) {
	b := testBuild(10, 4)
	other := core.Tile{ID: 3}
	for i := range b.surface {
		if i%2 == 0 {
			b.surface[i] = other
		}
	}
	b.empty = 50
	b.stampCircle(core.NewRNG(1), 5, 5, 3, AreaSpread{ID: 4, Shape: ShapeCircle})
	for i, tile := range b.surface {
		if i%2 == 0 && tile != other {
			t.Fatalf("tile %d overwritten with %+v", i, tile)
		}
	}
}

func TestStampCircleSpillsIntoNeighbors(t *testing.T) {
	b := testBuild(10, 4)
	b.stampCircle(core.NewRNG(1), 0, 0, 3, AreaSpread{ID: 2, Shape: ShapeCircle})
	for _, idx := range []int{0, 1, 3} {
		if len(b.spill[idx]) == 0 {
			t.Fatalf("expected spill into cell %d", idx)
		}
	}
	for _, idx := range []int{2, 4, 5, 6, 7, 8} {
		if len(b.spill[idx]) != 0 {
			t.Fatalf("unexpected spill into cell %d", idx)
		}
	}
	// Tile directly above the origin lands on the bottom row of cell 1.
	if got := b.spill[1][core.ToFlatIndex(9, 0, 10)]; got.ID != 2 {
		t.Fatalf("spill[1] bottom-left = %+v", got)
	}
}

func TestCornerCellDropsStampsOutsideBlock(t *testing.T) {
	b := testBuild(10, 0)
	b.stampCircle(core.NewRNG(1), 0, 0, 3, AreaSpread{ID: 2, Shape: ShapeCircle})
	for i := range b.spill {
		if i == 0 {
			continue
		}
		if len(b.spill[i]) != 0 {
			t.Fatalf("cell 0 has no neighbor above or left, but spilled into %d", i)
		}
	}
}

func TestWrappedStampStaysOnSurface(t *testing.T) {
	b := testBuild(10, 4)
	b.wrap = true
	n := b.stampCircle(core.NewRNG(1), 0, 0, 2, AreaSpread{ID: 6, Shape: ShapeCircle})
	if got := core.WrapTiles(10, 10, b.surface).Count(6); got != n {
		t.Fatalf("wrapped stamp counted %d, surface holds %d", n, got)
	}
	if b.surface[core.ToFlatIndex(9, 9, 10)].ID != 6 {
		t.Fatal("stamp should wrap onto the opposite corner")
	}
}

func TestEdgeNoiseOnlyFillsEmptyInCellTiles(t *testing.T) {
	b := testBuild(3, 4)
	tile := core.Tile{ID: 8}
	for i := range b.surface {
		b.surface[i] = tile
	}
	b.empty = 0
	if got := b.edgeNoise(core.NewRNG(1), 1, 1, tile); got != 0 {
		t.Fatalf("edge noise stamped %d tiles on a full surface", got)
	}
}

func TestMergeSpillsFillsOnlyEmptyTiles(t *testing.T) {
	var cells [9]GridCell
	var builds [9]*surfaceBuild
	for i := range cells {
		cells[i] = GridCell{Side: 2, Surface: make([]core.Tile, 4)}
		builds[i] = testBuild(2, i)
	}
	cells[1].Surface[0] = core.Tile{ID: 7}

	builds[0].spill[1] = map[int]core.Tile{0: {ID: 1}, 1: {ID: 1}}
	builds[2].spill[1] = map[int]core.Tile{1: {ID: 2}, 2: {ID: 2}}

	mergeSpills(&cells, &builds)
	got := cells[1].Surface
	want := []core.Tile{{ID: 7}, {ID: 1}, {ID: 2}, {}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tile %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDefragmentBridgesGaps(t *testing.T) {
	row := func(ids ...uint16) []core.Tile {
		out := make([]core.Tile, len(ids))
		for i, id := range ids {
			out[i] = core.Tile{ID: id}
		}
		return out
	}
	surface := row(5, 0, 0, 0, 5, 0, 0, 0, 0, 0, 0, 4)
	defragment(surface, 1, len(surface), map[uint16]int{5: 5})
	want := row(5, 5, 5, 5, 5, 0, 0, 0, 0, 0, 0, 4)
	for i := range want {
		if surface[i] != want[i] {
			t.Fatalf("tile %d = %+v, want %+v", i, surface[i], want[i])
		}
	}

	far := row(5, 0, 0, 0, 0, 0, 5)
	defragment(far, 1, len(far), map[uint16]int{5: 5})
	if far[3].ID != 0 {
		t.Fatal("gap wider than connect distance must stay open")
	}

	blocked := row(5, 0, 3, 0, 5)
	defragment(blocked, 1, len(blocked), map[uint16]int{5: 5})
	if blocked[2].ID != 3 || blocked[1].ID != 5 || blocked[3].ID != 5 {
		t.Fatalf("bridging must only fill empty tiles: %+v", blocked)
	}
}

func TestDefragmentColumns(t *testing.T) {
	// 4 rows x 1 column.
	surface := []core.Tile{{ID: 5}, {}, {}, {ID: 5}}
	defragment(surface, 4, 1, map[uint16]int{5: 3})
	for i, tile := range surface {
		if tile.ID != 5 {
			t.Fatalf("row %d not bridged", i)
		}
	}
}
