// Package host carries raw input from the windowing or terminal layer to the
// adapters. A Host is the stand-in for a browser's event targets and frame
// scheduler: drivers emit on its signals from the game loop goroutine, and
// adapters connect to them.
package host

import (
	"time"

	"actionpad/pkg/engine/signal"
)

// KeyEvent is a key going down or up. Repeat marks auto-repeated key-downs
// generated while a key is held.
type KeyEvent struct {
	Code   string
	Down   bool
	Repeat bool
	Time   time.Time
}

// PointerKind distinguishes pointer start, move and end.
type PointerKind int

const (
	PointerStart PointerKind = iota
	PointerMove
	PointerEnd
)

// String returns the pointer kind name
func (k PointerKind) String() string {
	switch k {
	case PointerStart:
		return "start"
	case PointerMove:
		return "move"
	case PointerEnd:
		return "end"
	default:
		return "unknown"
	}
}

// MouseID is the pointer ID used for the mouse; touches use IDs above it.
const MouseID = 0

// PointerEvent is a unified mouse or touch event in screen coordinates.
type PointerEvent struct {
	Kind PointerKind
	ID   int
	X, Y float64
	Time time.Time
}

// Frame is emitted once per animation frame, after that frame's key and
// pointer events.
type Frame struct {
	Time time.Time
}

// Host fans raw events out to connected listeners.
type Host struct {
	Keys     signal.Signal[KeyEvent]
	Pointers signal.Signal[PointerEvent]
	Frames   signal.Signal[Frame]
}

// New creates a host with no listeners.
func New() *Host {
	return &Host{}
}

// Listeners returns the total number of connected listeners.
func (h *Host) Listeners() int {
	return h.Keys.Len() + h.Pointers.Len() + h.Frames.Len()
}
