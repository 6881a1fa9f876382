package areagen

import (
	"fmt"
	"math"
	"strconv"

	"tilestream/internal/core"
)

// Settings controls world sizing and the per-cell generation scale.
type Settings struct {
	// Seed reseeds the generator when zero or positive. A negative seed reuses
	// the seed configured by an earlier call.
	Seed int64

	TileSize      int
	MetersPerTile float64

	// MinSpanMeters and MaxSpanMeters bound the sampled world size: a cylinder
	// radius when Cylindrical is set, otherwise the side lengths.
	MinSpanMeters int
	MaxSpanMeters int
	Cylindrical   bool

	// MetersPerGrid is the physical side length of one streamed cell.
	MetersPerGrid float64
}

// DefaultSettings returns the standard configuration.
func DefaultSettings() Settings {
	return Settings{
		Seed:          1,
		TileSize:      10,
		MetersPerTile: 1.5,
		MinSpanMeters: 1_000_000,
		MaxSpanMeters: 10_000_000,
		Cylindrical:   true,
		MetersPerGrid: 1000,
	}
}

// SettingsFromMap populates settings from a string map (flag-style key/value pairs).
func SettingsFromMap(cfg map[string]string) Settings {
	s := DefaultSettings()
	if cfg == nil {
		return s
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			s.Seed = parsed
		}
	}
	if v, ok := cfg["tile_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			s.TileSize = parsed
		}
	}
	if v, ok := cfg["meters_per_tile"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			s.MetersPerTile = parsed
		}
	}
	if v, ok := cfg["min_span"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			s.MinSpanMeters = parsed
		}
	}
	if v, ok := cfg["max_span"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			s.MaxSpanMeters = parsed
		}
	}
	if s.MaxSpanMeters < s.MinSpanMeters {
		s.MaxSpanMeters = s.MinSpanMeters
	}
	if v, ok := cfg["cylindrical"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			s.Cylindrical = parsed
		}
	}
	if v, ok := cfg["meters_per_grid"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			s.MetersPerGrid = parsed
		}
	}
	return s
}

// TilesPerSide returns the number of tiles along one side of a streamed cell.
func (s Settings) TilesPerSide() int {
	return int(math.Round(s.MetersPerGrid / s.MetersPerTile))
}

func (s Settings) validate() error {
	switch {
	case s.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d", ErrConfig, s.TileSize)
	case !(s.MetersPerTile > 0):
		return fmt.Errorf("%w: meters per tile %v", ErrConfig, s.MetersPerTile)
	case s.MinSpanMeters < 0 || s.MaxSpanMeters < s.MinSpanMeters:
		return fmt.Errorf("%w: span range [%d,%d]", ErrConfig, s.MinSpanMeters, s.MaxSpanMeters)
	case s.TilesPerSide() < 1:
		return fmt.Errorf("%w: grid of %.2fm holds no %.2fm tile", ErrConfig, s.MetersPerGrid, s.MetersPerTile)
	}
	return nil
}

// Parameters exposes the settings for display.
func (s Settings) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				int64Param("seed", "Seed", s.Seed),
				intParam("min_span", "Min span (m)", s.MinSpanMeters),
				intParam("max_span", "Max span (m)", s.MaxSpanMeters),
				boolParam("cylindrical", "Cylindrical", s.Cylindrical),
			},
		},
		{
			Name: "Streaming",
			Params: []core.Parameter{
				intParam("tile_size", "Tile size (px)", s.TileSize),
				floatParam("meters_per_tile", "Meters per tile", s.MetersPerTile),
				floatParam("meters_per_grid", "Meters per grid", s.MetersPerGrid),
				intParam("tiles_per_side", "Tiles per side", s.TilesPerSide()),
			},
		},
	}}
}

func intParam(key, label string, v int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(v)}
}

func int64Param(key, label string, v int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(v, 10)}
}

func floatParam(key, label string, v float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(v, 'f', 2, 64)}
}

func boolParam(key, label string, v bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(v)}
}
