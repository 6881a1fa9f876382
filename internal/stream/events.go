package stream

import (
	"github.com/google/uuid"

	"tilestream/internal/core"
)

// EventKind identifies a window notification.
type EventKind uint8

const (
	// GridChangeRequested fires when the focal tile enters a cell outside the
	// live block's center and a rebuild starts.
	GridChangeRequested EventKind = iota + 1
	// GridChanged fires when a rebuilt block becomes live, or when the focal
	// tile returns to the live center before a rebuild finished (Recycled).
	GridChanged
	// GenerationSlow fires when a query touched tiles outside the live block.
	GenerationSlow
)

func (k EventKind) String() string {
	switch k {
	case GridChangeRequested:
		return "grid-change-requested"
	case GridChanged:
		return "grid-changed"
	case GenerationSlow:
		return "generation-is-slow"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers on the goroutine that drives the window.
type Event struct {
	Kind     EventKind
	Window   uuid.UUID
	Old      core.GridCoord
	New      core.GridCoord
	Recycled bool
}

type listener struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every event of this window. The returned
// function removes the registration.
func (w *Window) Subscribe(fn func(Event)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	w.nextListener++
	id := w.nextListener
	w.listeners = append(w.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range w.listeners {
			if l.id == id {
				w.listeners = append(w.listeners[:i:i], w.listeners[i+1:]...)
				return
			}
		}
	}
}

func (w *Window) emit(kind EventKind, old, next core.GridCoord, recycled bool) {
	ev := Event{Kind: kind, Window: w.id, Old: old, New: next, Recycled: recycled}
	for _, l := range w.listeners {
		l.fn(ev)
	}
}
