package areagen

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func mapSettings() Settings {
	return Settings{
		Seed:          3,
		TileSize:      10,
		MetersPerTile: 1,
		MinSpanMeters: 60,
		MaxSpanMeters: 80,
		MetersPerGrid: 20,
	}
}

func TestGenerateMapCoverageAndDeterminism(t *testing.T) {
	areas := smallAreas()
	first, err := New().GenerateMap(context.Background(), mapSettings(), areas)
	if err != nil {
		t.Fatalf("GenerateMap: %v", err)
	}
	g := first.Grid
	if g.W < 60 || g.W > 80 || g.H < 60 || g.H > 80 {
		t.Fatalf("map size %dx%d outside span", g.W, g.H)
	}
	total := float64(g.W * g.H)
	for _, a := range areas {
		if got := float64(g.Count(a.ID)) / total; got < a.Coverage {
			t.Fatalf("area %d coverage %.3f below %.3f", a.ID, got, a.Coverage)
		}
	}

	second, err := New().GenerateMap(context.Background(), mapSettings(), areas)
	if err != nil {
		t.Fatalf("GenerateMap: %v", err)
	}
	if !slices.Equal(first.Grid.Tiles(), second.Grid.Tiles()) {
		t.Fatal("GenerateMap is not deterministic")
	}
}

func TestGenerateMapCylinder(t *testing.T) {
	s := mapSettings()
	s.Cylindrical = true
	s.MinSpanMeters, s.MaxSpanMeters = 10, 10
	m, err := New().GenerateMap(context.Background(), s, smallAreas())
	if err != nil {
		t.Fatalf("GenerateMap: %v", err)
	}
	// 2π·10m at 1m per tile.
	if m.Grid.W != 63 || m.Grid.H != 63 {
		t.Fatalf("cylinder map %dx%d, want 63x63", m.Grid.W, m.Grid.H)
	}
}

func TestGenerateMapTooLarge(t *testing.T) {
	_, err := New().GenerateMap(context.Background(), DefaultSettings(), smallAreas())
	if !errors.Is(err, ErrMapTooLarge) || !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrMapTooLarge, got %v", err)
	}
}
