package ebiten

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func loadFace() (*text.GoTextFace, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.MPlus1pRegular_ttf))
	if err != nil {
		return nil, err
	}
	return &text.GoTextFace{Source: src, Size: fontSize}, nil
}

// drawLines draws lines top-down starting at (x, y) and returns the y below
// the last line.
func (e *EbitenRenderer) drawLines(screen *ebiten.Image, lines []string, x, y float64, clr color.Color) float64 {
	for _, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, line, e.face, op)
		y += lineHeight
	}
	return y
}
