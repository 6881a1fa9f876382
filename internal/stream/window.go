// Package stream keeps a 3×3 block of generated cells around a moving focal
// tile and rebuilds it in the background when the focal tile changes cell.
//
// A Window is owned by one goroutine: Update, Poll, queries and Subscribe must
// not be called concurrently. Background builds never touch the live block;
// they hand their result back through a one-slot channel that the owning
// goroutine drains.
package stream

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"tilestream/internal/areagen"
	"tilestream/internal/core"
)

// ErrInvalidViewport is returned for non-positive viewport dimensions.
var ErrInvalidViewport = fmt.Errorf("%w: viewport dimensions must be positive", areagen.ErrConfig)

// Generator builds blocks. *areagen.Generator implements it.
type Generator interface {
	World(s areagen.Settings) (areagen.World, error)
	GenerateWindow(ctx context.Context, s areagen.Settings, areas []areagen.AreaSpread, centerCol, centerRow int) (*areagen.Block, error)
}

// State reports whether a rebuild is in flight.
type State uint8

const (
	Stable State = iota
	Regenerating
)

func (s State) String() string {
	if s == Regenerating {
		return "regenerating"
	}
	return "stable"
}

// Option configures a Window.
type Option func(*Window)

// WithLogger sets the logger used for window diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(w *Window) {
		if l != nil {
			w.log = l
		}
	}
}

// WithID overrides the random window id carried on events.
func WithID(id uuid.UUID) Option {
	return func(w *Window) { w.id = id }
}

type flight struct {
	seq    uint64
	target core.GridCoord
	cancel context.CancelFunc
}

type result struct {
	seq   uint64
	block *areagen.Block
	err   error
}

// Window tracks the live block and the focal tile.
type Window struct {
	id       uuid.UUID
	gen      Generator
	settings areagen.Settings
	areas    []areagen.AreaSpread
	world    areagen.World
	log      *slog.Logger

	ctx  context.Context
	stop context.CancelFunc

	live     *areagen.Block
	focalRow int
	focalCol int
	cell     core.GridCoord

	flight  *flight
	seq     uint64
	results chan result

	listeners    []listener
	nextListener int
}

// NewWindow builds the block around (focalRow, focalCol) synchronously.
// Configuration errors surface here. ctx bounds the initial build and every
// background build of the window.
func NewWindow(ctx context.Context, gen Generator, s areagen.Settings, areas []areagen.AreaSpread, focalRow, focalCol int, opts ...Option) (*Window, error) {
	world, err := gen.World(s)
	if err != nil {
		return nil, err
	}
	block, err := gen.GenerateWindow(ctx, s, areas, focalCol, focalRow)
	if err != nil {
		return nil, err
	}
	// Pin the resolved seed so later builds do not depend on generator state.
	s.Seed = block.Meta.Seed

	w := &Window{
		id:       uuid.New(),
		gen:      gen,
		settings: s,
		areas:    append([]areagen.AreaSpread(nil), areas...),
		world:    world,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		live:     block,
		focalRow: focalRow,
		focalCol: focalCol,
		cell:     world.CellOf(focalRow, focalCol),
		results:  make(chan result, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.ctx, w.stop = context.WithCancel(ctx)
	return w, nil
}

// ID identifies the window on its events.
func (w *Window) ID() uuid.UUID { return w.id }

// World returns the dimensions of the streamed world.
func (w *Window) World() areagen.World { return w.world }

// Settings returns the settings the window generates with.
func (w *Window) Settings() areagen.Settings { return w.settings }

// Block returns the live block. Callers must not retain it across Update.
func (w *Window) Block() *areagen.Block { return w.live }

// Cell returns the grid cell containing the focal tile.
func (w *Window) Cell() core.GridCoord { return w.cell }

// Focal returns the focal tile.
func (w *Window) Focal() (row, col int) { return w.focalRow, w.focalCol }

// State reports whether a rebuild is in flight.
func (w *Window) State() State {
	if w.flight != nil {
		return Regenerating
	}
	return Stable
}

// Pending returns the target cell of the in-flight rebuild.
func (w *Window) Pending() (core.GridCoord, bool) {
	if w.flight == nil {
		return core.GridCoord{}, false
	}
	return w.flight.target, true
}

// Update moves the focal tile. Crossing into another cell starts a rebuild
// centered on it; a rebuild for a cell the focal tile already left is
// cancelled.
func (w *Window) Update(row, col int) {
	w.Poll()
	w.focalRow, w.focalCol = row, col

	next := w.world.CellOf(row, col)
	if next == w.cell {
		return
	}
	old := w.cell
	w.cell = next

	if next == w.live.Meta.Center {
		w.cancelFlight()
		w.log.Debug("returned to live cell", "row", next.Row, "col", next.Column)
		w.emit(GridChanged, old, next, true)
		return
	}

	w.emit(GridChangeRequested, old, next, false)
	if w.flight != nil && w.flight.target == next {
		return
	}
	w.cancelFlight()
	w.startFlight(next)
}

func (w *Window) startFlight(target core.GridCoord) {
	w.seq++
	ctx, cancel := context.WithCancel(w.ctx)
	f := &flight{seq: w.seq, target: target, cancel: cancel}
	w.flight = f

	side := w.world.TilesPerSide
	row, col := target.Row*side, target.Column*side
	gen, s, areas, results := w.gen, w.settings, w.areas, w.results
	w.log.Debug("rebuild started", "seq", f.seq, "row", target.Row, "col", target.Column)
	go func() {
		block, err := gen.GenerateWindow(ctx, s, areas, col, row)
		if ctx.Err() != nil {
			return
		}
		select {
		case results <- result{seq: f.seq, block: block, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (w *Window) cancelFlight() {
	if w.flight == nil {
		return
	}
	w.log.Debug("rebuild cancelled", "seq", w.flight.seq)
	w.flight.cancel()
	w.flight = nil
}

// Poll commits a finished rebuild if one is waiting. It never blocks and
// reports whether the live block changed.
func (w *Window) Poll() bool {
	select {
	case res := <-w.results:
		return w.tryMapUpdate(res)
	default:
		return false
	}
}

// Await blocks until the in-flight rebuild has been handed off. It exists for
// harnesses and tests; the query path never waits.
func (w *Window) Await(ctx context.Context) error {
	for w.flight != nil {
		select {
		case res := <-w.results:
			w.tryMapUpdate(res)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (w *Window) tryMapUpdate(res result) bool {
	f := w.flight
	if f == nil || res.seq != f.seq {
		w.log.Debug("discarding superseded rebuild", "seq", res.seq)
		return false
	}
	w.flight = nil
	f.cancel()

	if res.err != nil {
		w.log.Warn("rebuild failed", "seq", res.seq, "err", res.err)
		return false
	}
	if res.block.Meta.Center != w.cell {
		w.log.Debug("discarding stale rebuild", "seq", res.seq,
			"built_row", res.block.Meta.Center.Row, "built_col", res.block.Meta.Center.Column)
		return false
	}
	old := w.live.Meta.Center
	w.live = res.block
	w.log.Debug("block swapped", "seq", res.seq, "row", w.cell.Row, "col", w.cell.Column,
		"elapsed", res.block.Meta.Elapsed)
	w.emit(GridChanged, old, w.cell, false)
	return true
}

// Close cancels any rebuild and drops all subscribers.
func (w *Window) Close() {
	w.cancelFlight()
	w.stop()
	w.listeners = nil
}
