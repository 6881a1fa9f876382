package areagen

import (
	"context"
	"fmt"

	"tilestream/internal/core"
)

// MaxWholeMapTiles caps the surface GenerateMap is willing to allocate.
const MaxWholeMapTiles = 1 << 24

// TileMap is a complete, non-streamed world surface.
type TileMap struct {
	Seed       int64
	World      World
	Grid       *core.TileGrid
	Shortfalls []Shortfall
}

// GenerateMap paints an entire world onto one surface. Stamps that cross an
// edge wrap to the opposite side. It is intended for small worlds; use
// GenerateWindow to stream large ones.
func (g *Generator) GenerateMap(ctx context.Context, s Settings, areas []AreaSpread) (*TileMap, error) {
	if err := validate(s, areas, false); err != nil {
		return nil, err
	}
	seed, err := g.resolveSeed(s.Seed)
	if err != nil {
		return nil, err
	}
	world := measureWorld(seed, s)
	if world.TileRows*world.TileColumns > MaxWholeMapTiles {
		return nil, fmt.Errorf("%w: %dx%d tiles", ErrMapTooLarge, world.TileColumns, world.TileRows)
	}

	grid := core.NewTileGrid(world.TileColumns, world.TileRows)
	b := newSurfaceBuild(grid.Tiles(), world.TileRows, world.TileColumns, s, g.stallLimit)
	b.wrap = true
	b.cellID = -1

	rng := core.NewRNG(seed)
	for _, layer := range Layers {
		for _, a := range areasOn(areas, layer) {
			if err := b.place(ctx, rng, a); err != nil {
				return nil, fmt.Errorf("generate map layer %s: %w", layer, err)
			}
		}
	}
	if bridges := connectDistances(areas); len(bridges) > 0 {
		defragment(b.surface, b.rows, b.cols, bridges)
	}

	g.log.Debug("generated map", "rows", world.TileRows, "cols", world.TileColumns, "seed", seed)
	return &TileMap{Seed: seed, World: world, Grid: grid, Shortfalls: b.shortfalls}, nil
}
