package areagen

import (
	"strings"
	"testing"
)

func TestSettingsFromMapOverrides(t *testing.T) {
	s := SettingsFromMap(map[string]string{
		"seed":            "99",
		"tile_size":       "16",
		"meters_per_tile": "2",
		"min_span":        "5000",
		"max_span":        "100",
		"cylindrical":     "false",
		"meters_per_grid": "250",
	})
	if s.Seed != 99 || s.TileSize != 16 || s.MetersPerTile != 2 || s.Cylindrical || s.MetersPerGrid != 250 {
		t.Fatalf("overrides not applied: %+v", s)
	}
	if s.MaxSpanMeters != s.MinSpanMeters {
		t.Fatalf("max span should clamp to min span, got [%d,%d]", s.MinSpanMeters, s.MaxSpanMeters)
	}
	if got := s.TilesPerSide(); got != 125 {
		t.Fatalf("TilesPerSide = %d, want 125", got)
	}
}

func TestSettingsFromMapKeepsDefaultsOnBadInput(t *testing.T) {
	def := DefaultSettings()
	s := SettingsFromMap(map[string]string{"tile_size": "-3", "meters_per_tile": "abc", "seed": "x"})
	if s != def {
		t.Fatalf("bad input should keep defaults, got %+v", s)
	}
}

func TestParseArea(t *testing.T) {
	a, err := ParseArea("id=3, flag=2, coverage=0.25, min=5, max=40, noise=true, layer=biome, connect=true, distance=4")
	if err != nil {
		t.Fatalf("ParseArea: %v", err)
	}
	want := AreaSpread{ID: 3, Flag: 2, Coverage: 0.25, MinRadius: 5, MaxRadius: 40, EdgeNoise: true,
		Shape: ShapeCircle, Layer: LayerBiome, ConnectEqualFlags: true, ConnectDistance: 4}
	if a != want {
		t.Fatalf("ParseArea = %+v, want %+v", a, want)
	}

	for _, bad := range []string{"coverage=0.3", "id=1,bogus=2", "id=1,layer=sky", "id=1,min", "id=70000"} {
		if _, err := ParseArea(bad); err == nil {
			t.Fatalf("ParseArea(%q) should fail", bad)
		}
	}
}

func TestParametersSnapshot(t *testing.T) {
	snap := DefaultSettings().Parameters()
	p, ok := snap.Lookup("tiles_per_side")
	if !ok || p.Value != "667" {
		t.Fatalf("tiles_per_side = %+v (found %v)", p, ok)
	}
	if p, ok := snap.Lookup("cylindrical"); !ok || p.Value != "true" {
		t.Fatalf("cylindrical = %+v", p)
	}
}

func TestPresetsRegistered(t *testing.T) {
	names := strings.Join(PresetNames(), ",")
	if !strings.Contains(names, "islands") || !strings.Contains(names, "wetlands") {
		t.Fatalf("missing built-in presets: %s", names)
	}
	p, ok := LookupPreset("wetlands", map[string]string{"seed": "4"})
	if !ok {
		t.Fatal("wetlands preset not found")
	}
	if p.Settings.Seed != 4 || p.Settings.MetersPerGrid != 300 {
		t.Fatalf("unexpected wetlands settings %+v", p.Settings)
	}
	for _, a := range p.Areas {
		if err := a.validate(p.Settings, true); err != nil {
			t.Fatalf("preset area %d invalid: %v", a.ID, err)
		}
	}
	if _, ok := LookupPreset("nope", nil); ok {
		t.Fatal("unknown preset should not resolve")
	}
}
