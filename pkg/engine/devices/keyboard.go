// Package devices contains the device adapters. Each adapter listens to one
// kind of host event (or polls once per frame) and reports raw transitions to
// whoever attached it.
package devices

import (
	"github.com/zyedidia/generic/mapset"

	"actionpad/pkg/engine/host"
	"actionpad/pkg/engine/input"
	"actionpad/pkg/engine/signal"
)

// Keyboard reports key-down and key-up transitions. Auto-repeat key-downs and
// key-downs for keys that are already down are dropped, so a held key reports
// exactly one activation.
type Keyboard struct {
	keys    *signal.Signal[host.KeyEvent]
	handle  *signal.Handle
	report  input.ReportFunc
	pressed mapset.Set[string]
}

// NewKeyboard creates a keyboard adapter listening to h.Keys once attached.
func NewKeyboard(h *host.Host) *Keyboard {
	return &Keyboard{
		keys:    &h.Keys,
		pressed: mapset.New[string](),
	}
}

// Device returns input.DeviceKeyboard.
func (k *Keyboard) Device() input.Device {
	return input.DeviceKeyboard
}

// Attach starts listening.
func (k *Keyboard) Attach(report input.ReportFunc) {
	if k.handle.Connected() {
		return
	}
	k.report = report
	k.handle = k.keys.Connect(k.onKey)
}

// Detach stops listening and forgets which keys are down.
func (k *Keyboard) Detach() {
	if !k.handle.Connected() {
		return
	}
	k.handle.Disconnect()
	k.report = nil
	k.pressed = mapset.New[string]()
}

// Attached reports whether the adapter is listening.
func (k *Keyboard) Attached() bool {
	return k.handle.Connected()
}

func (k *Keyboard) onKey(ev host.KeyEvent) {
	if ev.Down {
		if ev.Repeat || k.pressed.Has(ev.Code) {
			return
		}
		k.pressed.Put(ev.Code)
	} else {
		if !k.pressed.Has(ev.Code) {
			return
		}
		k.pressed.Remove(ev.Code)
	}
	if k.report != nil {
		k.report(input.Transition{
			Device: input.DeviceKeyboard,
			Code:   ev.Code,
			Active: ev.Down,
			Time:   ev.Time,
		})
	}
}
