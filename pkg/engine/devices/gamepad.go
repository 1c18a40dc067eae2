package devices

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"actionpad/pkg/engine/host"
	"actionpad/pkg/engine/input"
	"actionpad/pkg/engine/signal"
)

// DefaultStickThreshold is the axis value past which a stick counts as pushed.
const DefaultStickThreshold = 0.5

// PadState is one gamepad's state for a single poll.
// Buttons holds the codes of pressed buttons ("a", "start", "dpad-up", ...).
// Stick axes are in [-1,1] with negative Y pointing up.
type PadState struct {
	ID      int
	Buttons []string
	LeftX   float64
	LeftY   float64
	RightX  float64
	RightY  float64
}

// GamepadSource is polled once per frame for the connected gamepads.
type GamepadSource interface {
	AppendPads(pads []PadState) []PadState
}

// GamepadOptions tunes stick handling.
type GamepadOptions struct {
	// StickThreshold is the axis deadzone; zero means DefaultStickThreshold.
	StickThreshold float64
}

// Gamepad polls its source on every host frame and synthesizes transitions by
// comparing the set of active codes with the previous frame. All connected
// pads are merged: a code is active while any pad holds it.
type Gamepad struct {
	frames    *signal.Signal[host.Frame]
	source    GamepadSource
	threshold float64

	handle *signal.Handle
	report input.ReportFunc
	prev   mapset.Set[string]
	pads   []PadState
}

// NewGamepad creates a gamepad adapter polling source on h.Frames once attached.
func NewGamepad(h *host.Host, source GamepadSource, opts GamepadOptions) *Gamepad {
	threshold := opts.StickThreshold
	if threshold <= 0 {
		threshold = DefaultStickThreshold
	}
	return &Gamepad{
		frames:    &h.Frames,
		source:    source,
		threshold: threshold,
		prev:      mapset.New[string](),
	}
}

// Device returns input.DeviceGamepad.
func (g *Gamepad) Device() input.Device {
	return input.DeviceGamepad
}

// Attach starts polling on every frame.
func (g *Gamepad) Attach(report input.ReportFunc) {
	if g.handle.Connected() {
		return
	}
	g.report = report
	g.handle = g.frames.Connect(g.poll)
}

// Detach stops polling and forgets the previous frame.
func (g *Gamepad) Detach() {
	if !g.handle.Connected() {
		return
	}
	g.handle.Disconnect()
	g.report = nil
	g.prev = mapset.New[string]()
}

// Attached reports whether the adapter is polling.
func (g *Gamepad) Attached() bool {
	return g.handle.Connected()
}

func (g *Gamepad) stickCodes(set mapset.Set[string], stick string, x, y float64) {
	if x < -g.threshold {
		set.Put(stick + "-left")
	}
	if x > g.threshold {
		set.Put(stick + "-right")
	}
	if y < -g.threshold {
		set.Put(stick + "-up")
	}
	if y > g.threshold {
		set.Put(stick + "-down")
	}
}

func (g *Gamepad) poll(f host.Frame) {
	cur := mapset.New[string]()
	g.pads = g.source.AppendPads(g.pads[:0])
	for _, pad := range g.pads {
		for _, b := range pad.Buttons {
			cur.Put(b)
		}
		g.stickCodes(cur, "left-stick", pad.LeftX, pad.LeftY)
		g.stickCodes(cur, "right-stick", pad.RightX, pad.RightY)
	}

	var released, pressed []string
	g.prev.Each(func(code string) {
		if !cur.Has(code) {
			released = append(released, code)
		}
	})
	cur.Each(func(code string) {
		if !g.prev.Has(code) {
			pressed = append(pressed, code)
		}
	})
	g.prev = cur

	sort.Strings(released)
	sort.Strings(pressed)
	// Releases go first so a code that moved between pads never double-counts.
	for _, code := range released {
		g.emit(code, false, f)
	}
	for _, code := range pressed {
		g.emit(code, true, f)
	}
}

func (g *Gamepad) emit(code string, active bool, f host.Frame) {
	// A callback may have detached us mid-frame.
	if g.report == nil {
		return
	}
	g.report(input.Transition{
		Device: input.DeviceGamepad,
		Code:   code,
		Active: active,
		Time:   f.Time,
	})
}
