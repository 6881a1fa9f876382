package ui

import (
	"context"
	"slices"
	"strings"
	"testing"

	"tilestream/internal/areagen"
	"tilestream/internal/core"
	"tilestream/internal/stream"
)

func TestStatusLines(t *testing.T) {
	s := Status{
		Level:    "islands",
		Seed:     4,
		FocalRow: 12,
		FocalCol: 30,
		Cell:     core.GridCoord{Row: 0, Column: 1},
		GridRows: 5,
		GridCols: 6,
	}
	want := []string{"islands  seed 4", "tile 12,30", "cell 0,1 of 5x6", "stable"}
	if got := s.Lines(); !slices.Equal(got, want) {
		t.Fatalf("Lines = %q, want %q", got, want)
	}

	s.State = stream.Regenerating
	s.HasPending = true
	s.Pending = core.GridCoord{Row: 1, Column: 1}
	s.Missing = 7
	got := s.Lines()
	if got[3] != "regenerating -> 1,1" || got[len(got)-1] != "missing 7" {
		t.Fatalf("Lines = %q", got)
	}
}

func TestCountRebuilds(t *testing.T) {
	events := []stream.Event{
		{Kind: stream.GridChangeRequested},
		{Kind: stream.GenerationSlow},
		{Kind: stream.GridChanged},
		{Kind: stream.GridChanged, Recycled: true},
	}
	if got := CountRebuilds(events); got != 2 {
		t.Fatalf("CountRebuilds = %d, want 2", got)
	}
	s := Status{Level: "x", Rebuilds: 2}
	if got := s.Lines(); got[len(got)-1] != "rebuilds 2" {
		t.Fatalf("Lines = %q", got)
	}
	if got := (Status{Level: "x"}).Lines(); len(got) != 4 {
		t.Fatalf("Lines without rebuilds = %q", got)
	}
}

func TestStatusOf(t *testing.T) {
	settings := areagen.Settings{
		Seed: 2, TileSize: 4, MetersPerTile: 1,
		MinSpanMeters: 100, MaxSpanMeters: 100, MetersPerGrid: 20,
	}
	w, err := stream.NewWindow(context.Background(), areagen.New(), settings, nil, 25, 45)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	defer w.Close()
	s := StatusOf(w, "test", 0)
	if s.Cell != (core.GridCoord{Row: 1, Column: 2}) || s.GridRows != 5 || s.Seed != 2 {
		t.Fatalf("status = %+v", s)
	}
	if !strings.HasPrefix(s.Lines()[0], "test") {
		t.Fatalf("first line = %q", s.Lines()[0])
	}
}

func TestCellBorders(t *testing.T) {
	v := stream.View{OriginRow: -3, OriginCol: 8, Rows: 10, Cols: 25}
	rows, cols := CellBorders(v, 10)
	if !slices.Equal(rows, []int{3}) {
		t.Fatalf("rows = %v, want [3]", rows)
	}
	if !slices.Equal(cols, []int{2, 12, 22}) {
		t.Fatalf("cols = %v, want [2 12 22]", cols)
	}
	if r, c := CellBorders(v, 0); r != nil || c != nil {
		t.Fatalf("zero side returned %v %v", r, c)
	}
}
