//go:build ebiten

package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tilestream/internal/render"
	"tilestream/internal/session"
	"tilestream/internal/stream"
	"tilestream/internal/ui"
)

const hudWidth = 200

// Game adapts a streamed window to the ebiten.Game interface.
type Game struct {
	sess    *session.Session
	window  *stream.Window
	painter *render.TilePainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale    int
	width    int
	height   int
	view     stream.View
	rebuilds int
	err      error
}

// New constructs a Game around the window currently open in sess.
func New(sess *session.Session, cfg *Config) *Game {
	w := sess.Window()
	scale := max(cfg.Scale, 1)
	return &Game{
		sess:    sess,
		window:  w,
		painter: render.NewTilePainter(render.Palette(16)),
		overlay: ui.NewOverlay(w.World().TilesPerSide, scale),
		hud:     ui.NewHUD(hudWidth),
		scale:   scale,
		width:   cfg.Width,
		height:  cfg.Height,
	}
}

// Update moves the focal tile and refreshes the viewport.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	row, col := g.window.Focal()
	step := 1
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		step = 8
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW):
		row -= step
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS):
		row += step
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA):
		col -= step
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD):
		col += step
	}
	g.window.Update(row, col)
	g.overlay.Update()

	// The viewport is measured in tiles, each drawn scale pixels wide.
	ts := g.window.Settings().TileSize
	view, err := g.window.Viewport(g.width/g.scale*ts, g.height/g.scale*ts)
	if err != nil {
		return err
	}
	g.view = view
	g.rebuilds += ui.CountRebuilds(g.sess.Events())
	status := ui.StatusOf(g.window, g.sess.Level().Name, view.Missing)
	status.Rebuilds = g.rebuilds
	g.hud.Update(status)
	return nil
}

// Draw renders the viewport, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.view.Tiles, g.view.Cols, g.view.Rows, g.scale)
	g.overlay.Draw(screen, g.view)
	g.hud.Draw(screen, g.width, g.height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width + hudWidth, g.height
}
