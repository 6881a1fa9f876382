package ui

import (
	"fmt"

	"tilestream/internal/core"
	"tilestream/internal/stream"
)

// Status is the window summary shown by the viewers.
type Status struct {
	Level      string
	Seed       int64
	FocalRow   int
	FocalCol   int
	Cell       core.GridCoord
	State      stream.State
	Pending    core.GridCoord
	HasPending bool
	GridRows   int
	GridCols   int
	Shortfalls int
	Missing    int
	// Rebuilds counts block swaps seen by the viewer since it started.
	Rebuilds int
}

// StatusOf snapshots w. missing is the Unknown tile count of the last viewport.
func StatusOf(w *stream.Window, level string, missing int) Status {
	row, col := w.Focal()
	world := w.World()
	pending, ok := w.Pending()
	return Status{
		Level:      level,
		Seed:       w.Block().Meta.Seed,
		FocalRow:   row,
		FocalCol:   col,
		Cell:       w.Cell(),
		State:      w.State(),
		Pending:    pending,
		HasPending: ok,
		GridRows:   world.GridRows,
		GridCols:   world.GridColumns,
		Shortfalls: len(w.Block().Meta.Shortfalls),
		Missing:    missing,
	}
}

const stateLine = 3

// Lines formats the status for display, one fact per line.
func (s Status) Lines() []string {
	lines := []string{
		fmt.Sprintf("%s  seed %d", s.Level, s.Seed),
		fmt.Sprintf("tile %d,%d", s.FocalRow, s.FocalCol),
		fmt.Sprintf("cell %d,%d of %dx%d", s.Cell.Row, s.Cell.Column, s.GridRows, s.GridCols),
		s.State.String(),
	}
	if s.HasPending {
		lines[stateLine] = fmt.Sprintf("%s -> %d,%d", s.State, s.Pending.Row, s.Pending.Column)
	}
	if s.Shortfalls > 0 {
		lines = append(lines, fmt.Sprintf("shortfalls %d", s.Shortfalls))
	}
	if s.Missing > 0 {
		lines = append(lines, fmt.Sprintf("missing %d", s.Missing))
	}
	if s.Rebuilds > 0 {
		lines = append(lines, fmt.Sprintf("rebuilds %d", s.Rebuilds))
	}
	return lines
}

// CountRebuilds returns how many of events report a new live block.
func CountRebuilds(events []stream.Event) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == stream.GridChanged {
			n++
		}
	}
	return n
}

// CellBorders returns the view rows and columns at which a new grid cell
// starts.
func CellBorders(v stream.View, side int) (rows, cols []int) {
	if side <= 0 {
		return nil, nil
	}
	for r := 0; r < v.Rows; r++ {
		if core.FixIndex(v.OriginRow+r, side) == 0 {
			rows = append(rows, r)
		}
	}
	for c := 0; c < v.Cols; c++ {
		if core.FixIndex(v.OriginCol+c, side) == 0 {
			cols = append(cols, c)
		}
	}
	return rows, cols
}
