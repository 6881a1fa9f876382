package core

import (
	"testing"
	"time"
)

func TestTileGridWrapAndCount(t *testing.T) {
	g := NewTileGrid(4, 3)
	x, y := g.Wrap(-1, 3)
	if x != 3 || y != 0 {
		t.Fatalf("Wrap(-1,3) = (%d,%d), want (3,0)", x, y)
	}
	g.Set(3, 0, Tile{ID: 2})
	g.Set(1, 2, Tile{ID: 2})
	if got := g.Count(2); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
	if g.In(4, 0) || !g.In(3, 2) {
		t.Fatal("In reported wrong bounds")
	}
	g.Clear()
	if got := g.Count(0); got != 12 {
		t.Fatalf("Clear left %d empty tiles, want 12", got)
	}
}

func TestRNGDeterministicAndBounded(t *testing.T) {
	a := NewStreamRNG(42, 1)
	b := NewStreamRNG(42, 1)
	c := NewStreamRNG(42, 2)
	same := true
	for i := 0; i < 64; i++ {
		va, vb, vc := a.IntRange(20, 250), b.IntRange(20, 250), c.IntRange(20, 250)
		if va != vb {
			t.Fatalf("step %d: same seed diverged (%d vs %d)", i, va, vb)
		}
		if va < 20 || va > 250 {
			t.Fatalf("IntRange out of bounds: %d", va)
		}
		if va != vc {
			same = false
		}
	}
	if same {
		t.Fatal("different streams produced identical sequences")
	}
	if got := a.IntRange(5, 5); got != 5 {
		t.Fatalf("IntRange(5,5) = %d", got)
	}
	if got := a.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d", got)
	}
}

func TestFixedStepInterval(t *testing.T) {
	fs := NewFixedStep(10)
	if got := fs.Interval(); got != 100*time.Millisecond {
		t.Fatalf("10 TPS interval = %v, want 100ms", got)
	}
	fs.SetTPS(0)
	if got := fs.Interval(); got != time.Second/60 {
		t.Fatalf("fallback interval = %v, want %v", got, time.Second/60)
	}
	if got := NewFixedStep(-3).Interval(); got != time.Second/60 {
		t.Fatalf("negative TPS interval = %v, want %v", got, time.Second/60)
	}
}
