//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the window status panel to the right of the tile view.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int
	status     Status
}

// NewHUD constructs a HUD with the provided panel width.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width}
}

// Update caches the status to draw.
func (h *HUD) Update(s Status) {
	if h == nil {
		return
	}
	h.status = s
}

// Draw paints the HUD panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, "Window", face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for i, line := range h.status.Lines() {
		y += lineHeight
		col := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if i == stateLine && h.status.HasPending {
			col = color.RGBA{R: 240, G: 200, B: 90, A: 255}
		}
		text.Draw(h.panel, line, face, panelPadding, y, col)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

const (
	panelPadding   = 12
	lineHeight     = 18
	headerBaseline = 18
)
