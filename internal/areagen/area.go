package areagen

import (
	"fmt"
	"strconv"
	"strings"

	"tilestream/internal/core"
)

// SpreadShape selects the geometry used to grow an area.
type SpreadShape uint8

const (
	ShapeNone SpreadShape = iota
	ShapeLine
	ShapeCircle
	ShapeRectangle
)

func (s SpreadShape) String() string {
	switch s {
	case ShapeLine:
		return "line"
	case ShapeCircle:
		return "circle"
	case ShapeRectangle:
		return "rectangle"
	default:
		return "none"
	}
}

// Layer orders area processing. Lower layers are painted first.
type Layer uint8

const (
	LayerHeight Layer = iota + 1
	LayerBiome
	LayerPointsOfInterest
	LayerPaths
)

// Layers lists every layer in processing order.
var Layers = []Layer{LayerHeight, LayerBiome, LayerPointsOfInterest, LayerPaths}

func (l Layer) String() string {
	switch l {
	case LayerHeight:
		return "height"
	case LayerBiome:
		return "biome"
	case LayerPointsOfInterest:
		return "poi"
	case LayerPaths:
		return "paths"
	default:
		return "layer(" + strconv.Itoa(int(l)) + ")"
	}
}

// AreaSpread describes one region-placement rule.
type AreaSpread struct {
	ID   uint16
	Flag uint8

	// Coverage is the target fraction of a cell's tiles carrying ID.
	Coverage float64
	// MinRadius and MaxRadius bound the stamp radius in meters.
	MinRadius int
	MaxRadius int

	Shape     SpreadShape
	Layer     Layer
	EdgeNoise bool

	// ConnectEqualFlags bridges gaps of up to ConnectDistance tiles between
	// tiles of this area.
	ConnectEqualFlags bool
	ConnectDistance   int
}

// Tile returns the value stamped by this area.
func (a AreaSpread) Tile() core.Tile { return core.Tile{ID: a.ID, Flags: a.Flag} }

func (a AreaSpread) validate(s Settings, streamed bool) error {
	switch {
	case a.ID == 0 || a.ID == core.Unknown.ID:
		return fmt.Errorf("%w: area id %d is reserved", ErrConfig, a.ID)
	case a.Coverage < 0 || a.Coverage > 1:
		return fmt.Errorf("%w: area %d coverage %.3f outside [0,1]", ErrConfig, a.ID, a.Coverage)
	case a.MinRadius < 0 || a.MaxRadius < a.MinRadius:
		return fmt.Errorf("%w: area %d radius range [%d,%d]", ErrConfig, a.ID, a.MinRadius, a.MaxRadius)
	case a.ConnectDistance < 0:
		return fmt.Errorf("%w: area %d connect distance %d", ErrConfig, a.ID, a.ConnectDistance)
	case a.Layer < LayerHeight || a.Layer > LayerPaths:
		return fmt.Errorf("%w: area %d has unknown layer %d", ErrConfig, a.ID, a.Layer)
	}
	if streamed && a.Layer == LayerHeight && float64(a.MaxRadius) > s.MetersPerGrid/2 {
		return fmt.Errorf("%w: area %d max radius %dm, grid %.0fm", ErrRadiusTooLarge, a.ID, a.MaxRadius, s.MetersPerGrid)
	}
	return nil
}

// ParseArea reads an area from a comma separated key=value list, e.g.
// "id=1,coverage=0.3,min=20,max=250,noise=true,layer=height".
// Unspecified fields default to a circular height area.
func ParseArea(spec string) (AreaSpread, error) {
	a := AreaSpread{Shape: ShapeCircle, Layer: LayerHeight}
	for _, kv := range strings.Split(spec, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return a, fmt.Errorf("area %q: expected key=value, got %q", spec, kv)
		}
		if err := a.set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return a, fmt.Errorf("area %q: %w", spec, err)
		}
	}
	if a.ID == 0 {
		return a, fmt.Errorf("area %q: missing id", spec)
	}
	return a, nil
}

func (a *AreaSpread) set(key, value string) error {
	var err error
	switch key {
	case "id":
		var v uint64
		v, err = strconv.ParseUint(value, 10, 16)
		a.ID = uint16(v)
	case "flag":
		var v uint64
		v, err = strconv.ParseUint(value, 10, 8)
		a.Flag = uint8(v)
	case "coverage":
		a.Coverage, err = strconv.ParseFloat(value, 64)
	case "min":
		a.MinRadius, err = strconv.Atoi(value)
	case "max":
		a.MaxRadius, err = strconv.Atoi(value)
	case "noise":
		a.EdgeNoise, err = strconv.ParseBool(value)
	case "connect":
		a.ConnectEqualFlags, err = strconv.ParseBool(value)
	case "distance":
		a.ConnectDistance, err = strconv.Atoi(value)
	case "shape":
		a.Shape, err = parseShape(value)
	case "layer":
		a.Layer, err = parseLayer(value)
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func parseShape(v string) (SpreadShape, error) {
	for _, s := range []SpreadShape{ShapeNone, ShapeLine, ShapeCircle, ShapeRectangle} {
		if strings.EqualFold(v, s.String()) {
			return s, nil
		}
	}
	return ShapeNone, fmt.Errorf("unknown shape %q", v)
}

func parseLayer(v string) (Layer, error) {
	for _, l := range Layers {
		if strings.EqualFold(v, l.String()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown layer %q", v)
}
