//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tilestream/internal/stream"
)

// Overlay draws cell boundaries and the focal tile over the tile view.
type Overlay struct {
	side       int
	scale      int
	showBorder bool
	pixel      *ebiten.Image
}

// NewOverlay constructs an overlay for cells of side tiles drawn at scale.
func NewOverlay(side, scale int) *Overlay {
	o := &Overlay{side: side, scale: scale, showBorder: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the cell borders with B.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.showBorder = !o.showBorder
	}
}

// Draw renders the overlay for the viewport v.
func (o *Overlay) Draw(screen *ebiten.Image, v stream.View) {
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	w := float64(v.Cols * scale)
	h := float64(v.Rows * scale)
	if o.showBorder {
		border := color.RGBA{R: 255, G: 255, B: 255, A: 90}
		rows, cols := CellBorders(v, o.side)
		for _, r := range rows {
			o.fillRect(screen, 0, float64(r*scale), w, 1, border)
		}
		for _, c := range cols {
			o.fillRect(screen, float64(c*scale), 0, 1, h, border)
		}
	}
	focus := color.RGBA{R: 255, G: 40, B: 40, A: 255}
	o.fillRect(screen, float64((v.Cols/2)*scale), float64((v.Rows/2)*scale), float64(scale), float64(scale), focus)
}

func (o *Overlay) fillRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if o.pixel == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
