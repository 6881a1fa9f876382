// Package session holds the window of the level currently being played and
// records the notifications it raises.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"tilestream/internal/areagen"
	"tilestream/internal/stream"
)

// MaxEvents bounds the notifications kept between two calls to Events. Older
// notifications are dropped first.
const MaxEvents = 256

// Level names a world configuration.
type Level struct {
	Name     string
	Settings areagen.Settings
	Areas    []areagen.AreaSpread
}

// LevelFromPreset builds a level from a registered preset.
func LevelFromPreset(name string, cfg map[string]string) (Level, error) {
	p, ok := areagen.LookupPreset(name, cfg)
	if !ok {
		return Level{}, fmt.Errorf("%w: unknown preset %q", areagen.ErrConfig, name)
	}
	return Level{Name: p.Name, Settings: p.Settings, Areas: p.Areas}, nil
}

// Session owns at most one window at a time.
type Session struct {
	gen *areagen.Generator
	log *slog.Logger

	level       Level
	window      *stream.Window
	unsubscribe func()
	events      []stream.Event
	dropped     int
}

// New returns a session that builds windows with gen.
func New(gen *areagen.Generator, log *slog.Logger) *Session {
	if gen == nil {
		gen = areagen.New()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{gen: gen, log: log}
}

// Open closes the current window and builds one for lvl around the focal
// tile. On error the previous window stays closed.
func (s *Session) Open(ctx context.Context, lvl Level, row, col int) (*stream.Window, error) {
	s.closeWindow()
	w, err := stream.NewWindow(ctx, s.gen, lvl.Settings, lvl.Areas, row, col,
		stream.WithLogger(s.log.With("level", lvl.Name)))
	if err != nil {
		return nil, fmt.Errorf("open level %q: %w", lvl.Name, err)
	}
	s.level = lvl
	s.window = w
	s.unsubscribe = w.Subscribe(s.record)
	c := w.Cell()
	s.log.Info("level opened", "level", lvl.Name, "window", w.ID(), "row", c.Row, "col", c.Column)
	return w, nil
}

func (s *Session) record(ev stream.Event) {
	switch ev.Kind {
	case stream.GenerationSlow:
		s.log.Debug("query outside live block", "window", ev.Window)
	default:
		s.log.Debug(ev.Kind.String(), "window", ev.Window,
			"old_row", ev.Old.Row, "old_col", ev.Old.Column,
			"new_row", ev.New.Row, "new_col", ev.New.Column, "recycled", ev.Recycled)
	}
	if len(s.events) == MaxEvents {
		copy(s.events, s.events[1:])
		s.events = s.events[:MaxEvents-1]
		s.dropped++
	}
	s.events = append(s.events, ev)
}

// Window returns the open window, or nil.
func (s *Session) Window() *stream.Window { return s.window }

// Level returns the level of the open window.
func (s *Session) Level() Level { return s.level }

// Events returns and clears the recorded notifications.
func (s *Session) Events() []stream.Event {
	out := s.events
	s.events = nil
	return out
}

// Dropped returns how many notifications were discarded because Events was
// not called often enough.
func (s *Session) Dropped() int { return s.dropped }

// Close releases the open window.
func (s *Session) Close() {
	s.closeWindow()
}

func (s *Session) closeWindow() {
	if s.window == nil {
		return
	}
	s.unsubscribe()
	s.window.Close()
	s.log.Info("level closed", "level", s.level.Name, "window", s.window.ID())
	s.window = nil
	s.unsubscribe = nil
	s.level = Level{}
}
