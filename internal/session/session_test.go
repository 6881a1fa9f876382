package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"tilestream/internal/areagen"
	"tilestream/internal/stream"
)

func testLevel(name string) Level {
	return Level{
		Name: name,
		Settings: areagen.Settings{
			Seed:          3,
			TileSize:      8,
			MetersPerTile: 1,
			MinSpanMeters: 240,
			MaxSpanMeters: 240,
			MetersPerGrid: 30,
		},
		Areas: []areagen.AreaSpread{
			{ID: 1, Coverage: 0.25, MinRadius: 2, MaxRadius: 6, Shape: areagen.ShapeCircle, Layer: areagen.LayerHeight},
		},
	}
}

func TestOpenReplacesWindow(t *testing.T) {
	s := New(nil, nil)
	defer s.Close()
	ctx := context.Background()

	first, err := s.Open(ctx, testLevel("a"), 10, 10)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	second, err := s.Open(ctx, testLevel("b"), 10, 10)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Window() != second || s.Level().Name != "b" {
		t.Fatalf("session holds %p level %q, want %p level b", s.Window(), s.Level().Name, second)
	}
	if first.ID() == second.ID() {
		t.Fatalf("windows share id %v", first.ID())
	}

	// The first window no longer reports to the session.
	first.TileAt(200, 200)
	if got := s.Events(); len(got) != 0 {
		t.Fatalf("events from closed window: %v", got)
	}
}

func TestEventsRecorded(t *testing.T) {
	s := New(areagen.New(), nil)
	defer s.Close()
	w, err := s.Open(context.Background(), testLevel("a"), 10, 10)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	w.Update(10, 40)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := w.Await(ctx); err != nil {
		t.Fatalf("Await: %v", err)
	}

	got := s.Events()
	if len(got) != 2 || got[0].Kind != stream.GridChangeRequested || got[1].Kind != stream.GridChanged {
		t.Fatalf("events = %+v", got)
	}
	for _, ev := range got {
		if ev.Window != w.ID() {
			t.Fatalf("event for window %v, want %v", ev.Window, w.ID())
		}
	}
	if again := s.Events(); len(again) != 0 {
		t.Fatalf("Events did not drain: %v", again)
	}
}

func TestEventsBounded(t *testing.T) {
	s := New(nil, nil)
	defer s.Close()
	w, err := s.Open(context.Background(), testLevel("a"), 10, 10)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	// Tile (120, 120) sits in cell (4, 4), outside the block around (0, 0).
	misses := 3 * MaxEvents
	for i := 0; i < misses; i++ {
		w.TileAt(120, 120)
	}
	got := s.Events()
	if len(got) != MaxEvents {
		t.Fatalf("kept %d events, want %d", len(got), MaxEvents)
	}
	if s.Dropped() != misses-MaxEvents {
		t.Fatalf("dropped %d events, want %d", s.Dropped(), misses-MaxEvents)
	}
	if again := s.Events(); len(again) != 0 {
		t.Fatalf("Events did not drain: %d left", len(again))
	}
}

func TestOpenError(t *testing.T) {
	s := New(nil, nil)
	lvl := testLevel("bad")
	lvl.Settings.TileSize = 0
	if _, err := s.Open(context.Background(), lvl, 0, 0); !errors.Is(err, areagen.ErrConfig) {
		t.Fatalf("err = %v, want config error", err)
	}
	if s.Window() != nil {
		t.Fatalf("window kept after failed open")
	}
}

func TestLevelFromPreset(t *testing.T) {
	lvl, err := LevelFromPreset("islands", map[string]string{"seed": "9"})
	if err != nil {
		t.Fatalf("LevelFromPreset: %v", err)
	}
	if lvl.Name != "islands" || lvl.Settings.Seed != 9 || len(lvl.Areas) == 0 {
		t.Fatalf("level = %+v", lvl)
	}
	if _, err := LevelFromPreset("nope", nil); !errors.Is(err, areagen.ErrConfig) {
		t.Fatalf("err = %v, want config error", err)
	}
}
