// Package render converts tile data into RGBA pixels.
package render

import (
	"image/color"

	"tilestream/internal/core"
)

// UnknownColor marks tiles whose cell is not loaded.
var UnknownColor = color.RGBA{R: 90, G: 0, B: 90, A: 255}

var baseColors = []color.RGBA{
	{R: 22, G: 44, B: 84, A: 255},    // empty
	{R: 196, G: 178, B: 120, A: 255}, // 1
	{R: 70, G: 140, B: 70, A: 255},   // 2
	{R: 120, G: 120, B: 128, A: 255}, // 3
	{R: 200, G: 80, B: 50, A: 255},   // 4
	{R: 230, G: 230, B: 240, A: 255}, // 5
	{R: 60, G: 110, B: 160, A: 255},  // 6
	{R: 150, G: 90, B: 40, A: 255},   // 7
}

// Palette returns n colors. The first entries are fixed; the rest are spread
// around the hue circle so neighbouring ids stay distinguishable.
func Palette(n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.RGBA, n)
	for i := range out {
		if i < len(baseColors) {
			out[i] = baseColors[i]
			continue
		}
		out[i] = hueColor(float64(i) * 0.618033988749895)
	}
	return out
}

func hueColor(h float64) color.RGBA {
	h -= float64(int(h))
	h *= 6
	sector := int(h)
	f := h - float64(sector)
	const lo, hi = 60.0, 220.0
	up := uint8(lo + (hi-lo)*f)
	down := uint8(hi - (hi-lo)*f)
	switch sector {
	case 0:
		return color.RGBA{R: hi, G: up, B: lo, A: 255}
	case 1:
		return color.RGBA{R: down, G: hi, B: lo, A: 255}
	case 2:
		return color.RGBA{R: lo, G: hi, B: up, A: 255}
	case 3:
		return color.RGBA{R: lo, G: down, B: hi, A: 255}
	case 4:
		return color.RGBA{R: up, G: lo, B: hi, A: 255}
	default:
		return color.RGBA{R: hi, G: lo, B: down, A: 255}
	}
}

// ColorFor picks the palette entry for a tile. Ids past the end of the
// palette clamp to the last entry; flagged tiles are lightened.
func ColorFor(t core.Tile, palette []color.RGBA) color.RGBA {
	if t.IsUnknown() {
		return UnknownColor
	}
	if len(palette) == 0 {
		return color.RGBA{}
	}
	idx := int(t.ID)
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	col := palette[idx]
	if t.Flags != 0 && !t.Empty() {
		col.R = lighten(col.R)
		col.G = lighten(col.G)
		col.B = lighten(col.B)
	}
	return col
}

func lighten(v uint8) uint8 {
	return v + (255-v)/4
}

// FillTileRGBA converts tiles into RGBA pixels in buf. When the palette is
// empty the known tiles are cleared to transparent black.
func FillTileRGBA(buf []byte, tiles []core.Tile, palette []color.RGBA) {
	for i, t := range tiles {
		base := i * 4
		col := ColorFor(t, palette)
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
