// Package term draws a streamed window into a terminal, one cell per tile.
package term

import (
	"context"
	"image/color"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"tilestream/internal/core"
	"tilestream/internal/render"
	"tilestream/internal/stream"
	"tilestream/internal/ui"
)

var glyphs = []rune{'.', '#', '"', '^', '*', '@', '~', '%'}

// Glyph returns the rune drawn for a tile.
func Glyph(t core.Tile) rune {
	if t.IsUnknown() {
		return '?'
	}
	if int(t.ID) < len(glyphs) {
		return glyphs[t.ID]
	}
	return 'a' + rune(t.ID%26)
}

// Viewer renders a window into a tcell screen and moves its focal tile from
// key presses.
type Viewer struct {
	screen  tcell.Screen
	window  *stream.Window
	level   string
	palette []color.RGBA
	step    *core.FixedStep
	log     *slog.Logger

	drain    func() []stream.Event
	rebuilds int

	statusRows int
	last       stream.View
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithLogger sets the viewer logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Viewer) {
		if l != nil {
			v.log = l
		}
	}
}

// WithTPS sets the redraw rate.
func WithTPS(tps int) Option {
	return func(v *Viewer) { v.step.SetTPS(tps) }
}

// WithEvents sets the source the viewer drains window notifications from on
// every redraw, typically (*session.Session).Events.
func WithEvents(drain func() []stream.Event) Option {
	return func(v *Viewer) { v.drain = drain }
}

// NewViewer binds an initialised screen to a window.
func NewViewer(screen tcell.Screen, w *stream.Window, level string, opts ...Option) *Viewer {
	v := &Viewer{
		screen:     screen,
		window:     w,
		level:      level,
		palette:    render.Palette(16),
		step:       core.NewFixedStep(20),
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		statusRows: 1,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// View returns the viewport drawn last.
func (v *Viewer) View() stream.View { return v.last }

// Draw paints the viewport and a status line.
func (v *Viewer) Draw() error {
	width, height := v.screen.Size()
	rows := max(height-v.statusRows, 1)
	ts := v.window.Settings().TileSize
	view, err := v.window.Viewport(width*ts, rows*ts)
	if err != nil {
		return err
	}
	v.last = view

	v.screen.Clear()
	for r := 0; r < view.Rows; r++ {
		for c := 0; c < view.Cols; c++ {
			t := view.At(r, c)
			v.screen.SetContent(c, r, Glyph(t), nil, v.styleFor(t))
		}
	}
	focus := tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	fr, fc := view.Rows/2, view.Cols/2
	v.screen.SetContent(fc, fr, Glyph(view.At(fr, fc)), nil, focus)

	if v.drain != nil {
		v.rebuilds += ui.CountRebuilds(v.drain())
	}
	st := ui.StatusOf(v.window, v.level, view.Missing)
	st.Rebuilds = v.rebuilds
	status := strings.Join(st.Lines(), " | ")
	v.drawText(0, height-1, width, status, tcell.StyleDefault.Reverse(true))
	v.screen.Show()
	return nil
}

func (v *Viewer) styleFor(t core.Tile) tcell.Style {
	col := render.ColorFor(t, v.palette)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B)))
}

func (v *Viewer) drawText(x, y, width int, s string, style tcell.Style) {
	if y < 0 {
		return
	}
	col := x
	for _, r := range s {
		if col >= width {
			return
		}
		v.screen.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		v.screen.SetContent(col, y, ' ', nil, style)
	}
}

// HandleEvent applies one terminal event. It reports false when the viewer
// should stop.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		dr, dc := 0, 0
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			dr = -1
		case tcell.KeyDown:
			dr = 1
		case tcell.KeyLeft:
			dc = -1
		case tcell.KeyRight:
			dc = 1
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'w', 'k':
				dr = -1
			case 's', 'j':
				dr = 1
			case 'a', 'h':
				dc = -1
			case 'd', 'l':
				dc = 1
			case 'W', 'K':
				dr = -8
			case 'S', 'J':
				dr = 8
			case 'A', 'H':
				dc = -8
			case 'D', 'L':
				dc = 8
			}
		}
		if dr != 0 || dc != 0 {
			row, col := v.window.Focal()
			v.window.Update(row+dr, col+dc)
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// Run polls the screen for input and redraws on every tick until the user
// quits or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(v.step.Interval())
	defer ticker.Stop()
	if err := v.Draw(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if v.window.Poll() {
				c := v.window.Cell()
				v.log.Debug("block swapped", "row", c.Row, "col", c.Column)
			}
			if err := v.Draw(); err != nil {
				return err
			}
		}
	}
}
