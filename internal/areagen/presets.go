package areagen

import "sort"

// Preset bundles settings and areas under a name.
type Preset struct {
	Name     string
	Settings Settings
	Areas    []AreaSpread
}

// PresetFactory constructs a Preset using an optional configuration map.
type PresetFactory func(cfg map[string]string) Preset

var presets = map[string]PresetFactory{}

// RegisterPreset adds a preset factory under the provided name.
func RegisterPreset(name string, f PresetFactory) {
	if name == "" || f == nil {
		return
	}
	presets[name] = f
}

// LookupPreset builds the named preset.
func LookupPreset(name string, cfg map[string]string) (Preset, bool) {
	f, ok := presets[name]
	if !ok {
		return Preset{}, false
	}
	return f(cfg), true
}

// PresetNames lists registered presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterPreset("islands", func(cfg map[string]string) Preset {
		return Preset{
			Name:     "islands",
			Settings: SettingsFromMap(cfg),
			Areas: []AreaSpread{
				{ID: 1, Coverage: 0.30, MinRadius: 20, MaxRadius: 250, EdgeNoise: true, Shape: ShapeCircle, Layer: LayerHeight},
				{ID: 2, Coverage: 0.125, MinRadius: 20, MaxRadius: 200, EdgeNoise: true, Shape: ShapeCircle, Layer: LayerHeight},
			},
		}
	})
	RegisterPreset("wetlands", func(cfg map[string]string) Preset {
		s := SettingsFromMap(cfg)
		if _, ok := cfg["meters_per_grid"]; !ok {
			s.MetersPerGrid = 300
		}
		return Preset{
			Name:     "wetlands",
			Settings: s,
			Areas: []AreaSpread{
				{ID: 1, Coverage: 0.25, MinRadius: 10, MaxRadius: 90, EdgeNoise: true, Shape: ShapeCircle, Layer: LayerHeight},
				{ID: 3, Flag: 1, Coverage: 0.15, MinRadius: 4, MaxRadius: 20, Shape: ShapeCircle, Layer: LayerBiome,
					ConnectEqualFlags: true, ConnectDistance: 5},
				{ID: 4, Flag: 2, Coverage: 0.02, MinRadius: 1, MaxRadius: 3, Shape: ShapeCircle, Layer: LayerPointsOfInterest},
			},
		}
	})
}
