package input

import (
	"errors"
	"fmt"
	"time"
)

// Device identifies a physical input source.
type Device string

const (
	DeviceKeyboard Device = "keyboard"
	DeviceGamepad  Device = "gamepad"
	DeviceTouch    Device = "touch"
	DeviceJoystick Device = "joystick"
)

// ErrUnknownDevice is returned when a device name is not one of the known devices.
var ErrUnknownDevice = errors.New("unknown device")

// AllDevices returns the known devices in a stable order.
func AllDevices() []Device {
	return []Device{DeviceKeyboard, DeviceGamepad, DeviceTouch, DeviceJoystick}
}

// ParseDevice converts a device name into a Device.
func ParseDevice(name string) (Device, error) {
	for _, d := range AllDevices() {
		if string(d) == name {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDevice, name)
}

// Transition is the 1st-layer event reported by a device adapter: a single raw
// input (a key, a button, a joystick direction) became active or inactive.
// Code is device specific (e.g. "space", "a", "dpad-up", "right").
type Transition struct {
	Device Device
	Code   string
	Active bool
	Time   time.Time
}

// ReportFunc receives raw transitions from an adapter.
type ReportFunc func(Transition)

// Adapter is the capability every device adapter provides. An adapter listens
// to or polls one source and reports transitions through the ReportFunc given
// to Attach. Attach on an attached adapter and Detach on a detached adapter are
// no-ops.
type Adapter interface {
	Device() Device
	Attach(report ReportFunc)
	Detach()
}

// ActionFunc is called when an action is pressed or released. code and device
// identify the raw input that caused the transition.
type ActionFunc func(action, code string, device Device)

// Handlers groups the press and release callbacks. Either may be nil.
type Handlers struct {
	OnAction  ActionFunc
	OnRelease ActionFunc
}

func (h Handlers) action(action, code string, device Device) {
	if h.OnAction != nil {
		h.OnAction(action, code, device)
	}
}

func (h Handlers) release(action, code string, device Device) {
	if h.OnRelease != nil {
		h.OnRelease(action, code, device)
	}
}
