package areagen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tilestream/internal/core"
)

// DefaultStallLimit is the number of consecutive samples that stamp nothing
// before an area gives up on its coverage target.
const DefaultStallLimit = 4096

// GridCell is one streamed cell of the world.
type GridCell struct {
	ID         int
	GridRow    int
	GridColumn int
	Side       int
	Surface    []core.Tile
}

// Coord returns the cell's grid coordinate.
func (c GridCell) Coord() core.GridCoord {
	return core.GridCoord{Row: c.GridRow, Column: c.GridColumn}
}

// Coverage returns the fraction of the surface carrying id.
func (c GridCell) Coverage(id uint16) float64 {
	if len(c.Surface) == 0 {
		return 0
	}
	n := 0
	for _, t := range c.Surface {
		if t.ID == id {
			n++
		}
	}
	return float64(n) / float64(len(c.Surface))
}

// Shortfall records an area that stopped before reaching its coverage target
// because its cell saturated or sampling stalled.
type Shortfall struct {
	CellIndex int
	CellID    int
	AreaID    uint16
	Target    float64
	Reached   float64
}

// BlockMeta describes how a Block was generated.
type BlockMeta struct {
	Seed       int64
	World      World
	Center     core.GridCoord
	Shortfalls []Shortfall
	Elapsed    time.Duration
}

// Block is a 3×3 neighborhood of cells in row-major order; index 4 is the center.
type Block struct {
	Cells [9]GridCell
	Meta  BlockMeta
}

// Center returns the center cell.
func (b *Block) Center() *GridCell { return &b.Cells[4] }

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for generation diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithStallLimit overrides DefaultStallLimit.
func WithStallLimit(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.stallLimit = n
		}
	}
}

// Generator paints areas onto grid cells. It remembers the last configured
// seed and is safe for concurrent use.
type Generator struct {
	log        *slog.Logger
	stallLimit int

	mu     sync.Mutex
	seed   int64
	seeded bool
}

// New returns a Generator without a configured seed.
func New(opts ...Option) *Generator {
	g := &Generator{
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		stallLimit: DefaultStallLimit,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Seed returns the configured seed and whether one was set.
func (g *Generator) Seed() (int64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seed, g.seeded
}

// World resolves the seed in s and returns the dimensions of its world.
func (g *Generator) World(s Settings) (World, error) {
	if err := s.validate(); err != nil {
		return World{}, err
	}
	seed, err := g.resolveSeed(s.Seed)
	if err != nil {
		return World{}, err
	}
	return measureWorld(seed, s), nil
}

func (g *Generator) resolveSeed(seed int64) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if seed >= 0 {
		g.seed = seed
		g.seeded = true
		return seed, nil
	}
	if !g.seeded {
		return 0, ErrSeedUnset
	}
	return g.seed, nil
}

func validate(s Settings, areas []AreaSpread, streamed bool) error {
	if err := s.validate(); err != nil {
		return err
	}
	for _, a := range areas {
		if err := a.validate(s, streamed); err != nil {
			return err
		}
	}
	return nil
}

// GenerateWindow builds the 3×3 block of cells centered on the cell that
// contains the world tile (centerCol, centerRow). Identical inputs always
// produce identical surfaces.
func (g *Generator) GenerateWindow(ctx context.Context, s Settings, areas []AreaSpread, centerCol, centerRow int) (*Block, error) {
	start := time.Now()
	if err := validate(s, areas, true); err != nil {
		return nil, err
	}
	seed, err := g.resolveSeed(s.Seed)
	if err != nil {
		return nil, err
	}
	world := measureWorld(seed, s)
	if world.GridRows < 3 || world.GridColumns < 3 {
		return nil, fmt.Errorf("%w: %dx%d cells, use GenerateMap", ErrWorldTooSmall, world.GridRows, world.GridColumns)
	}
	center := world.CellOf(centerRow, centerCol)
	side := world.TilesPerSide

	block := &Block{Meta: BlockMeta{Seed: seed, World: world, Center: center}}
	var builds [9]*surfaceBuild
	for i := range block.Cells {
		dr, dc := core.BlockOffset(i)
		id := core.GridCellID(dr, dc, center.Row, center.Column, world.GridRows, world.GridColumns)
		row, col := core.FromFlatIndex(id, world.GridColumns)
		block.Cells[i] = GridCell{
			ID:         id,
			GridRow:    row,
			GridColumn: col,
			Side:       side,
			Surface:    make([]core.Tile, side*side),
		}
		builds[i] = newSurfaceBuild(block.Cells[i].Surface, side, side, s, g.stallLimit)
		builds[i].index = i
		builds[i].cellID = id
	}

	for _, layer := range Layers {
		layerAreas := areasOn(areas, layer)
		if len(layerAreas) == 0 {
			continue
		}
		eg, egctx := errgroup.WithContext(ctx)
		for i := range builds {
			b := builds[i]
			eg.Go(func() error {
				rng := core.NewStreamRNG(cellSeed(b.cellID, seed), cellStream(b.cellID, layer))
				for _, a := range layerAreas {
					if err := b.place(egctx, rng, a); err != nil {
						return err
					}
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, fmt.Errorf("generate cell %v layer %s: %w", center, layer, err)
		}
	}

	bridges := connectDistances(areas)
	if len(bridges) > 0 {
		var wg sync.WaitGroup
		for _, b := range builds {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defragment(b.surface, b.rows, b.cols, bridges)
			}()
		}
		wg.Wait()
	}

	mergeSpills(&block.Cells, &builds)

	for _, b := range builds {
		block.Meta.Shortfalls = append(block.Meta.Shortfalls, b.shortfalls...)
	}
	for _, sf := range block.Meta.Shortfalls {
		g.log.Warn("area coverage not reached",
			"cell", sf.CellID, "area", sf.AreaID, "target", sf.Target, "reached", sf.Reached)
	}
	block.Meta.Elapsed = time.Since(start)
	g.log.Debug("generated window",
		"center_row", center.Row, "center_col", center.Column,
		"tiles_per_side", side, "elapsed", block.Meta.Elapsed)
	return block, nil
}

// cellSeed derives the stream seed of a cell. Ids are offset by one so the
// cell at the world origin still depends on the global seed.
func cellSeed(cellID int, seed int64) int64 {
	return int64(cellID+1) * seed
}

// cellStream selects the PCG stream of one layer of a cell. Carrying the id
// keeps cells apart when the seed is zero.
func cellStream(cellID int, layer Layer) uint64 {
	return uint64(cellID)<<8 | uint64(layer)
}

func areasOn(areas []AreaSpread, layer Layer) []AreaSpread {
	var out []AreaSpread
	for _, a := range areas {
		if a.Layer == layer {
			out = append(out, a)
		}
	}
	return out
}

func connectDistances(areas []AreaSpread) map[uint16]int {
	out := make(map[uint16]int)
	for _, a := range areas {
		if !a.ConnectEqualFlags || a.ConnectDistance <= 0 {
			continue
		}
		if a.ConnectDistance > out[a.ID] {
			out[a.ID] = a.ConnectDistance
		}
	}
	return out
}
