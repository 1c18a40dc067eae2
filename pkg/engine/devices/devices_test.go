package devices

import (
	"reflect"
	"testing"
	"time"

	"actionpad/pkg/engine/host"
	"actionpad/pkg/engine/input"
)

type sink struct {
	got []input.Transition
}

func (s *sink) report(t input.Transition) {
	t.Time = time.Time{}
	s.got = append(s.got, t)
}

func tr(device input.Device, code string, active bool) input.Transition {
	return input.Transition{Device: device, Code: code, Active: active}
}

func TestKeyboardFiltersRepeats(t *testing.T) {
	h := host.New()
	kb := NewKeyboard(h)
	s := &sink{}
	kb.Attach(s.report)

	h.Keys.Emit(host.KeyEvent{Code: "space", Down: true})
	h.Keys.Emit(host.KeyEvent{Code: "space", Down: true, Repeat: true})
	h.Keys.Emit(host.KeyEvent{Code: "space", Down: true})
	h.Keys.Emit(host.KeyEvent{Code: "space", Down: false})
	h.Keys.Emit(host.KeyEvent{Code: "space", Down: false})
	h.Keys.Emit(host.KeyEvent{Code: "enter", Down: false})

	want := []input.Transition{
		tr(input.DeviceKeyboard, "space", true),
		tr(input.DeviceKeyboard, "space", false),
	}
	if !reflect.DeepEqual(s.got, want) {
		t.Errorf("got %v, want %v", s.got, want)
	}
}

func TestKeyboardAttachDetachIdempotent(t *testing.T) {
	h := host.New()
	kb := NewKeyboard(h)
	s := &sink{}

	kb.Detach()
	kb.Attach(s.report)
	kb.Attach(s.report)
	if h.Keys.Len() != 1 {
		t.Fatalf("listeners = %d after double Attach, want 1", h.Keys.Len())
	}
	h.Keys.Emit(host.KeyEvent{Code: "a", Down: true})
	kb.Detach()
	kb.Detach()
	if h.Keys.Len() != 0 || kb.Attached() {
		t.Fatalf("still listening after Detach")
	}
	h.Keys.Emit(host.KeyEvent{Code: "a", Down: false})
	if len(s.got) != 1 {
		t.Errorf("got %v, want only the first key-down", s.got)
	}

	// Pressed state is dropped on Detach: a new key-down after re-attaching reports.
	kb.Attach(s.report)
	h.Keys.Emit(host.KeyEvent{Code: "a", Down: true})
	if len(s.got) != 2 {
		t.Errorf("got %v, want a second key-down", s.got)
	}
}

type fakePads struct {
	pads []PadState
}

func (f *fakePads) AppendPads(pads []PadState) []PadState {
	return append(pads, f.pads...)
}

func TestGamepadDiffsFrames(t *testing.T) {
	h := host.New()
	src := &fakePads{}
	gp := NewGamepad(h, src, GamepadOptions{})
	s := &sink{}
	gp.Attach(s.report)

	h.Frames.Emit(host.Frame{})
	if len(s.got) != 0 {
		t.Fatalf("idle pad reported %v", s.got)
	}

	src.pads = []PadState{{ID: 0, Buttons: []string{"a"}, LeftX: -0.9}}
	h.Frames.Emit(host.Frame{})
	h.Frames.Emit(host.Frame{})

	src.pads = []PadState{{ID: 0, Buttons: []string{"b"}, LeftX: 0.2}}
	h.Frames.Emit(host.Frame{})

	want := []input.Transition{
		tr(input.DeviceGamepad, "a", true),
		tr(input.DeviceGamepad, "left-stick-left", true),
		tr(input.DeviceGamepad, "a", false),
		tr(input.DeviceGamepad, "left-stick-left", false),
		tr(input.DeviceGamepad, "b", true),
	}
	if !reflect.DeepEqual(s.got, want) {
		t.Errorf("got %v\nwant %v", s.got, want)
	}
}

func TestGamepadMergesPadsAndHandlesDisconnect(t *testing.T) {
	h := host.New()
	src := &fakePads{pads: []PadState{
		{ID: 0, Buttons: []string{"a"}},
		{ID: 1, Buttons: []string{"a"}, RightY: -1},
	}}
	gp := NewGamepad(h, src, GamepadOptions{StickThreshold: 0.3})
	s := &sink{}
	gp.Attach(s.report)
	h.Frames.Emit(host.Frame{})

	src.pads = src.pads[:1]
	h.Frames.Emit(host.Frame{})

	src.pads = nil
	h.Frames.Emit(host.Frame{})

	want := []input.Transition{
		tr(input.DeviceGamepad, "a", true),
		tr(input.DeviceGamepad, "right-stick-up", true),
		tr(input.DeviceGamepad, "right-stick-up", false),
		tr(input.DeviceGamepad, "a", false),
	}
	if !reflect.DeepEqual(s.got, want) {
		t.Errorf("got %v\nwant %v", s.got, want)
	}
}

func TestGamepadDetachStopsPolling(t *testing.T) {
	h := host.New()
	src := &fakePads{pads: []PadState{{Buttons: []string{"start"}}}}
	gp := NewGamepad(h, src, GamepadOptions{})
	s := &sink{}
	gp.Attach(s.report)
	gp.Detach()
	gp.Detach()
	h.Frames.Emit(host.Frame{})
	if len(s.got) != 0 || h.Frames.Len() != 0 {
		t.Errorf("detached gamepad still polling: %v", s.got)
	}
}

func TestGamepadAttachIsNoopWhenAttached(t *testing.T) {
	h := host.New()
	src := &fakePads{pads: []PadState{{Buttons: []string{"a"}}}}
	gp := NewGamepad(h, src, GamepadOptions{})
	s := &sink{}
	gp.Attach(s.report)
	h.Frames.Emit(host.Frame{})
	gp.Attach(s.report)
	h.Frames.Emit(host.Frame{})
	if len(s.got) != 1 {
		t.Errorf("held button reported %d times, want once", len(s.got))
	}
}

func pointer(kind host.PointerKind, id int, x, y float64, at time.Time) host.PointerEvent {
	return host.PointerEvent{Kind: kind, ID: id, X: x, Y: y, Time: at}
}

func TestTouchTap(t *testing.T) {
	t0 := time.Unix(1000, 0)
	tests := []struct {
		name   string
		events []host.PointerEvent
		want   []input.Transition
	}{
		{
			name: "quick still tap",
			events: []host.PointerEvent{
				pointer(host.PointerStart, 1, 100, 100, t0),
				pointer(host.PointerMove, 1, 103, 104, t0.Add(50*time.Millisecond)),
				pointer(host.PointerEnd, 1, 103, 104, t0.Add(100*time.Millisecond)),
			},
			want: []input.Transition{
				tr(input.DeviceTouch, TapCode, true),
				tr(input.DeviceTouch, TapCode, false),
			},
		},
		{
			name: "long press",
			events: []host.PointerEvent{
				pointer(host.PointerStart, 1, 100, 100, t0),
				pointer(host.PointerEnd, 1, 100, 100, t0.Add(time.Second)),
			},
		},
		{
			name: "drag away and back",
			events: []host.PointerEvent{
				pointer(host.PointerStart, 1, 100, 100, t0),
				pointer(host.PointerMove, 1, 140, 100, t0.Add(30*time.Millisecond)),
				pointer(host.PointerEnd, 1, 100, 100, t0.Add(60*time.Millisecond)),
			},
		},
		{
			name: "end without start",
			events: []host.PointerEvent{
				pointer(host.PointerEnd, 2, 0, 0, t0),
			},
		},
		{
			name: "start in excluded joystick area",
			events: []host.PointerEvent{
				pointer(host.PointerStart, 1, 10, 10, t0),
				pointer(host.PointerEnd, 1, 10, 10, t0.Add(10*time.Millisecond)),
			},
		},
		{
			name: "zone tap",
			events: []host.PointerEvent{
				pointer(host.PointerStart, 3, 500, 10, t0),
				pointer(host.PointerEnd, 3, 500, 10, t0.Add(10*time.Millisecond)),
			},
			want: []input.Transition{
				tr(input.DeviceTouch, "tap-right", true),
				tr(input.DeviceTouch, "tap-right", false),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := host.New()
			touch := NewTouch(h, TouchOptions{
				Zones:   []Zone{{Code: "tap-right", Area: Rect{X: 400, Y: 0, Width: 400, Height: 600}}},
				Exclude: []Region{Rect{X: 0, Y: 0, Width: 50, Height: 50}},
			})
			s := &sink{}
			touch.Attach(s.report)
			for _, ev := range tt.events {
				h.Pointers.Emit(ev)
			}
			if !reflect.DeepEqual(s.got, tt.want) {
				t.Errorf("got %v, want %v", s.got, tt.want)
			}
		})
	}
}

func TestTouchExcludeAfterConstruction(t *testing.T) {
	h := host.New()
	touch := NewTouch(h, TouchOptions{})
	touch.Exclude(Rect{Width: 10, Height: 10})
	s := &sink{}
	touch.Attach(s.report)
	h.Pointers.Emit(pointer(host.PointerStart, 1, 5, 5, time.Time{}))
	h.Pointers.Emit(pointer(host.PointerEnd, 1, 5, 5, time.Time{}))
	if len(s.got) != 0 {
		t.Errorf("excluded tap reported %v", s.got)
	}
}
