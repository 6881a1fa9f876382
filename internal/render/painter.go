//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"tilestream/internal/core"
)

// TilePainter keeps one RGBA image per viewport size and redraws tiles into it.
type TilePainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette []color.RGBA
}

// NewTilePainter allocates a painter using palette.
func NewTilePainter(palette []color.RGBA) *TilePainter {
	return &TilePainter{palette: palette}
}

func (tp *TilePainter) ensure(w, h int) {
	if tp.img != nil && tp.w == w && tp.h == h {
		return
	}
	if tp.img != nil {
		tp.img.Dispose()
	}
	tp.w, tp.h = w, h
	tp.img = ebiten.NewImage(w, h)
	tp.buf = make([]byte, 4*w*h)
}

// Blit uploads a w×h block of tiles and draws it scaled onto dst.
func (tp *TilePainter) Blit(dst *ebiten.Image, tiles []core.Tile, w, h, scale int) {
	if w <= 0 || h <= 0 || len(tiles) != w*h {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	tp.ensure(w, h)
	FillTileRGBA(tp.buf, tiles, tp.palette)
	tp.img.WritePixels(tp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(tp.img, op)
}

// Size returns the dimensions of the underlying image.
func (tp *TilePainter) Size() (int, int) { return tp.w, tp.h }
