package devices

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// standardButtons maps the W3C standard gamepad layout onto mapping codes.
var standardButtons = []struct {
	button ebiten.StandardGamepadButton
	code   string
}{
	{ebiten.StandardGamepadButtonRightBottom, "a"},
	{ebiten.StandardGamepadButtonRightRight, "b"},
	{ebiten.StandardGamepadButtonRightLeft, "x"},
	{ebiten.StandardGamepadButtonRightTop, "y"},
	{ebiten.StandardGamepadButtonFrontTopLeft, "lb"},
	{ebiten.StandardGamepadButtonFrontTopRight, "rb"},
	{ebiten.StandardGamepadButtonFrontBottomLeft, "lt"},
	{ebiten.StandardGamepadButtonFrontBottomRight, "rt"},
	{ebiten.StandardGamepadButtonCenterLeft, "select"},
	{ebiten.StandardGamepadButtonCenterRight, "start"},
	{ebiten.StandardGamepadButtonCenterCenter, "home"},
	{ebiten.StandardGamepadButtonLeftStick, "l3"},
	{ebiten.StandardGamepadButtonRightStick, "r3"},
	{ebiten.StandardGamepadButtonLeftTop, "dpad-up"},
	{ebiten.StandardGamepadButtonLeftBottom, "dpad-down"},
	{ebiten.StandardGamepadButtonLeftLeft, "dpad-left"},
	{ebiten.StandardGamepadButtonLeftRight, "dpad-right"},
}

// rawButtons is the fallback for pads without a standard layout.
// Indices are tuned for common XInput-style controllers on Linux;
// they may vary between devices/platforms.
var rawButtons = []struct {
	button ebiten.GamepadButton
	code   string
}{
	{ebiten.GamepadButton0, "a"},
	{ebiten.GamepadButton1, "b"},
	{ebiten.GamepadButton2, "x"},
	{ebiten.GamepadButton3, "y"},
	{ebiten.GamepadButton4, "lb"},
	{ebiten.GamepadButton5, "rb"},
	{ebiten.GamepadButton6, "select"},
	{ebiten.GamepadButton7, "start"},
	{ebiten.GamepadButton11, "dpad-up"},
	{ebiten.GamepadButton12, "dpad-right"},
	{ebiten.GamepadButton13, "dpad-down"},
	{ebiten.GamepadButton14, "dpad-left"},
}

// EbitenPads reads connected gamepads through ebiten.
type EbitenPads struct {
	ids []ebiten.GamepadID
}

// AppendPads implements GamepadSource.
func (e *EbitenPads) AppendPads(pads []PadState) []PadState {
	e.ids = ebiten.AppendGamepadIDs(e.ids[:0])
	for _, id := range e.ids {
		pad := PadState{ID: int(id)}
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			for _, b := range standardButtons {
				if ebiten.IsStandardGamepadButtonPressed(id, b.button) {
					pad.Buttons = append(pad.Buttons, b.code)
				}
			}
			pad.LeftX = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
			pad.LeftY = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
			pad.RightX = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
			pad.RightY = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		} else {
			for _, b := range rawButtons {
				if ebiten.IsGamepadButtonPressed(id, b.button) {
					pad.Buttons = append(pad.Buttons, b.code)
				}
			}
			// Axes: 0 = X (left = -1, right = +1), 1 = Y (up = -1, down = +1)
			if ebiten.GamepadAxisCount(id) >= 2 {
				pad.LeftX = ebiten.GamepadAxisValue(id, 0)
				pad.LeftY = ebiten.GamepadAxisValue(id, 1)
			}
			if ebiten.GamepadAxisCount(id) >= 4 {
				pad.RightX = ebiten.GamepadAxisValue(id, 2)
				pad.RightY = ebiten.GamepadAxisValue(id, 3)
			}
		}
		pads = append(pads, pad)
	}
	return pads
}
