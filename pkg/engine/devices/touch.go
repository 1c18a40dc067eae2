package devices

import (
	"math"
	"time"

	"actionpad/pkg/engine/host"
	"actionpad/pkg/engine/input"
	"actionpad/pkg/engine/signal"
)

// Tap detection defaults.
const (
	DefaultTapMaxDuration = 250 * time.Millisecond
	DefaultTapMaxDistance = 10.0 // pixels

	// TapCode is reported for taps outside every zone.
	TapCode = "tap"
)

// Region is an area of the screen.
type Region interface {
	Contains(x, y float64) bool
}

// Rect is an axis-aligned rectangle in screen coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Zone names a screen area; a tap starting in it reports Code instead of TapCode.
type Zone struct {
	Code string
	Area Region
}

// TouchOptions tunes tap detection.
type TouchOptions struct {
	MaxDuration time.Duration
	MaxDistance float64
	// Zones are checked in order; the first containing the tap start wins.
	Zones []Zone
	// Exclude lists regions owned by other controls (e.g. a joystick); pointers
	// starting there are never taps.
	Exclude []Region
}

type tapState struct {
	startX, startY float64
	start          time.Time
	dragged        bool
	code           string
}

// Touch turns short, still pointer presses into taps. A tap is reported as an
// activation immediately followed by a deactivation. Presses that last too
// long or travel too far are drags and report nothing.
type Touch struct {
	pointers *signal.Signal[host.PointerEvent]
	opts     TouchOptions

	handle *signal.Handle
	report input.ReportFunc
	active map[int]*tapState
}

// NewTouch creates a tap adapter listening to h.Pointers once attached.
func NewTouch(h *host.Host, opts TouchOptions) *Touch {
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = DefaultTapMaxDuration
	}
	if opts.MaxDistance <= 0 {
		opts.MaxDistance = DefaultTapMaxDistance
	}
	return &Touch{
		pointers: &h.Pointers,
		opts:     opts,
		active:   make(map[int]*tapState),
	}
}

// Device returns input.DeviceTouch.
func (t *Touch) Device() input.Device {
	return input.DeviceTouch
}

// Exclude adds a region in which pointers never start taps.
func (t *Touch) Exclude(r Region) {
	t.opts.Exclude = append(t.opts.Exclude, r)
}

// Attach starts listening.
func (t *Touch) Attach(report input.ReportFunc) {
	if t.handle.Connected() {
		return
	}
	t.report = report
	t.handle = t.pointers.Connect(t.onPointer)
}

// Detach stops listening and drops pointers in flight.
func (t *Touch) Detach() {
	if !t.handle.Connected() {
		return
	}
	t.handle.Disconnect()
	t.report = nil
	clear(t.active)
}

// Attached reports whether the adapter is listening.
func (t *Touch) Attached() bool {
	return t.handle.Connected()
}

func (t *Touch) excluded(x, y float64) bool {
	for _, r := range t.opts.Exclude {
		if r != nil && r.Contains(x, y) {
			return true
		}
	}
	return false
}

func (t *Touch) zoneCode(x, y float64) string {
	for _, z := range t.opts.Zones {
		if z.Area != nil && z.Area.Contains(x, y) {
			return z.Code
		}
	}
	return TapCode
}

func (t *Touch) onPointer(ev host.PointerEvent) {
	switch ev.Kind {
	case host.PointerStart:
		if t.excluded(ev.X, ev.Y) {
			return
		}
		t.active[ev.ID] = &tapState{
			startX: ev.X,
			startY: ev.Y,
			start:  ev.Time,
			code:   t.zoneCode(ev.X, ev.Y),
		}
	case host.PointerMove:
		st, ok := t.active[ev.ID]
		if !ok {
			return
		}
		if math.Hypot(ev.X-st.startX, ev.Y-st.startY) > t.opts.MaxDistance {
			st.dragged = true
		}
	case host.PointerEnd:
		st, ok := t.active[ev.ID]
		if !ok {
			return
		}
		delete(t.active, ev.ID)
		if st.dragged || ev.Time.Sub(st.start) > t.opts.MaxDuration {
			return
		}
		if math.Hypot(ev.X-st.startX, ev.Y-st.startY) > t.opts.MaxDistance {
			return
		}
		t.emit(st.code, ev.Time)
	}
}

func (t *Touch) emit(code string, at time.Time) {
	if t.report == nil {
		return
	}
	t.report(input.Transition{Device: input.DeviceTouch, Code: code, Active: true, Time: at})
	// The activation callback may have detached this adapter.
	if t.report == nil {
		return
	}
	t.report(input.Transition{Device: input.DeviceTouch, Code: code, Active: false, Time: at})
}
