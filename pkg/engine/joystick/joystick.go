// Package joystick implements an on-screen virtual joystick. A pointer that
// starts inside the edge ring is captured; while it moves the knob follows it
// and the quantized direction is turned into press/release transitions of the
// joystick's direction codes ("right", "down", ... and the diagonals in
// eight-way mode).
package joystick

import (
	"errors"
	"fmt"
	"math"
	"time"

	"actionpad/pkg/engine/geometry"
	"actionpad/pkg/engine/host"
	"actionpad/pkg/engine/input"
	"actionpad/pkg/engine/signal"
)

// ErrConfiguration is returned when the controller cannot be created or bound.
var ErrConfiguration = errors.New("joystick: configuration error")

// Edge is the outer ring of the joystick. Pointer events are taken from Source;
// (X, Y) is the ring's center and Radius its maximum displacement.
type Edge struct {
	Source *signal.Signal[host.PointerEvent]
	X, Y   float64
	Radius float64
}

// Contains reports whether (x, y) lies inside or on the ring.
func (e *Edge) Contains(x, y float64) bool {
	if e == nil {
		return false
	}
	dx := x - e.X
	dy := y - e.Y
	return dx*dx+dy*dy <= e.Radius*e.Radius
}

// Knob is the inner handle. X and Y are its offset from the edge center and
// are rewritten on every pointer move.
type Knob struct {
	X, Y float64
}

// Controller is a virtual joystick handle.
//
// Used on its own it reference-counts its direction actions and reports them
// to the handlers given to New. Attached to a coordinator as an input.Adapter
// it reports raw direction transitions instead, so they are counted together
// with every other device.
type Controller struct {
	table   *input.Table
	tracker *input.Tracker
	opts    geometry.Options
	report  input.ReportFunc

	edge   *Edge
	knob   *Knob
	handle *signal.Handle

	captured  bool
	pointerID int
	pos       geometry.Position
	dir       geometry.Direction
	hasDir    bool
}

// New creates an unbound controller resolving direction codes through table.
func New(table *input.Table, h input.Handlers, opts geometry.Options) (*Controller, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil mapping table", ErrConfiguration)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return &Controller{
		table:   table,
		tracker: input.NewTracker(h),
		opts:    opts,
	}, nil
}

// Bind starts listening to edge.Source. The controller stays unbound if edge
// or knob is unusable. Binding a bound controller does nothing.
func (c *Controller) Bind(edge *Edge, knob *Knob) error {
	if c.handle.Connected() {
		return nil
	}
	switch {
	case edge == nil:
		return fmt.Errorf("%w: nil edge", ErrConfiguration)
	case knob == nil:
		return fmt.Errorf("%w: nil knob", ErrConfiguration)
	case edge.Source == nil:
		return fmt.Errorf("%w: edge has no pointer source", ErrConfiguration)
	case !(edge.Radius > 0) || math.IsInf(edge.Radius, 0):
		return fmt.Errorf("%w: edge radius %v", ErrConfiguration, edge.Radius)
	}
	c.edge = edge
	c.knob = knob
	c.knob.X, c.knob.Y = 0, 0
	c.handle = edge.Source.Connect(c.onPointer)
	return nil
}

// Unbind stops listening and resets the controller. It is safe to call on a
// controller that was never bound.
func (c *Controller) Unbind() {
	if !c.handle.Connected() {
		return
	}
	c.handle.Disconnect()
	c.Reset()
	c.edge = nil
	c.knob = nil
}

// Bound reports whether Bind succeeded and Unbind has not been called since.
func (c *Controller) Bound() bool {
	return c.handle.Connected()
}

// Position returns the last computed position.
func (c *Controller) Position() geometry.Position {
	return c.pos
}

// Direction returns the direction currently pressed, if any.
func (c *Controller) Direction() (geometry.Direction, bool) {
	return c.dir, c.hasDir
}

// IsActive reports whether a pointer is captured by this controller.
func (c *Controller) IsActive() bool {
	return c.captured
}

// Reset centers the knob, drops the captured pointer and releases the
// pressed direction.
func (c *Controller) Reset() {
	c.captured = false
	c.pos = geometry.Position{}
	if c.knob != nil {
		c.knob.X, c.knob.Y = 0, 0
	}
	c.setDirection(0, false, time.Now())
}

// Device returns input.DeviceJoystick.
func (c *Controller) Device() input.Device {
	return input.DeviceJoystick
}

// Attach routes direction transitions to report. A direction held at that
// moment is released where it was counted; the next pointer move presses
// through report from a clean state.
func (c *Controller) Attach(report input.ReportFunc) {
	if c.report != nil || report == nil {
		return
	}
	c.switchSink(report)
}

// Detach routes direction transitions back to the controller's own handlers.
// A held direction is released through report and is not pressed again.
func (c *Controller) Detach() {
	if c.report == nil {
		return
	}
	c.switchSink(nil)
}

func (c *Controller) switchSink(report input.ReportFunc) {
	c.setDirection(0, false, time.Now())
	c.report = report
}

func (c *Controller) onPointer(ev host.PointerEvent) {
	switch ev.Kind {
	case host.PointerStart:
		if c.captured || !c.edge.Contains(ev.X, ev.Y) {
			return
		}
		c.captured = true
		c.pointerID = ev.ID
		c.move(ev)
	case host.PointerMove:
		if !c.captured || ev.ID != c.pointerID {
			return
		}
		c.move(ev)
	case host.PointerEnd:
		if !c.captured || ev.ID != c.pointerID {
			return
		}
		c.Reset()
	}
}

func (c *Controller) move(ev host.PointerEvent) {
	c.pos = geometry.ComputePosition(
		geometry.Point{X: ev.X, Y: ev.Y},
		geometry.Point{X: c.edge.X, Y: c.edge.Y},
		c.edge.Radius,
	)
	c.knob.X = c.pos.X * c.edge.Radius
	c.knob.Y = c.pos.Y * c.edge.Radius

	d, ok := geometry.QuantizeDirection(c.pos, c.opts)
	c.setDirection(d, ok, ev.Time)
}

// setDirection releases the old direction before pressing the new one, in a
// single call, so no frame observes both or neither.
func (c *Controller) setDirection(d geometry.Direction, ok bool, at time.Time) {
	if ok == c.hasDir && (!ok || d == c.dir) {
		return
	}
	if c.hasDir {
		old := c.dir
		c.hasDir = false
		c.emit(old.String(), false, at)
	}
	if ok {
		c.dir, c.hasDir = d, true
		c.emit(d.String(), true, at)
	}
}

func (c *Controller) emit(code string, active bool, at time.Time) {
	tr := input.Transition{Device: input.DeviceJoystick, Code: code, Active: active, Time: at}
	if c.report != nil {
		c.report(tr)
		return
	}
	if !active {
		c.tracker.Release(tr)
		return
	}
	if action, ok := c.table.Lookup(input.DeviceJoystick, code); ok {
		c.tracker.Press(action, tr)
	}
}

// CurrentActions returns the actions pressed through the controller's own
// handlers. It is empty while the controller is attached to a coordinator.
func (c *Controller) CurrentActions() input.ActionSet {
	return c.tracker.Active()
}
