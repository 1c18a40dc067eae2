package joystick

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	edgeColor       = color.RGBA{R: 200, G: 200, B: 200, A: 96}
	knobColor       = color.RGBA{R: 230, G: 230, B: 230, A: 160}
	knobActiveColor = color.RGBA{R: 120, G: 200, B: 255, A: 220}
)

const (
	edgeStrokeWidth = 3
	knobScale       = 0.4 // knob radius relative to the edge radius
)

// Draw renders the edge ring and the knob. It does nothing while unbound.
func (c *Controller) Draw(screen *ebiten.Image) {
	if c.edge == nil || c.knob == nil {
		return
	}
	cx := float32(c.edge.X)
	cy := float32(c.edge.Y)
	r := float32(c.edge.Radius)

	vector.StrokeCircle(screen, cx, cy, r, edgeStrokeWidth, edgeColor, true)

	clr := knobColor
	if c.captured {
		clr = knobActiveColor
	}
	vector.DrawFilledCircle(screen, cx+float32(c.knob.X), cy+float32(c.knob.Y), r*knobScale, clr, true)
}
