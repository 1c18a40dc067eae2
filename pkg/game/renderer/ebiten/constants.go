// Package ebiten runs the demo in an Ebiten window.
package ebiten

import "image/color"

// Color palette
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorMapBackground   = color.RGBA{15, 15, 26, 255}    // Darker for the arena
	colorPlayer          = color.RGBA{0, 255, 0, 255}     // Bright green
	colorPlayerJump      = color.RGBA{150, 255, 150, 255} // Lighter while jump is held
	colorWallBg          = color.RGBA{60, 60, 80, 255}    // Arena border
	colorFloor           = color.RGBA{40, 40, 60, 255}    // Arena cells
	colorSubtle          = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorText            = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorAction          = color.RGBA{180, 150, 250, 255} // Blue-purple
	colorDenied          = color.RGBA{255, 100, 100, 255} // Bright red
	colorPanelBackground = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
)

// Logical screen size; the window scales it.
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

const (
	tileSize     = 20
	fontSize     = 14.0
	lineHeight   = 20.0
	panelPadding = 12.0

	bindingsX = 500.0 // left edge of the bindings panel
	messagesX = 260.0 // right of the joystick

	joystickMargin = 40.0 // gap between the joystick ring and the screen edge
)

// JoystickCenter returns where a joystick of the given radius sits: the
// bottom-left corner of the screen.
func JoystickCenter(radius float64) (x, y float64) {
	return joystickMargin + radius, ScreenHeight - joystickMargin - radius
}
