package renderer

import (
	"context"

	"actionpad/pkg/game/gameplay"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleTitle
	StyleAction
	StyleActionShort
	StyleDevice
	StylePhase
	StyleSubtle
	StyleDenied
	StylePlayer
)

// Styler applies a style to text. For TUI this adds ANSI colors; graphical
// frontends may return the text unchanged and color it when drawing.
type Styler interface {
	StyleText(text string, style TextStyle) string
}

// PlainStyler leaves text unstyled.
type PlainStyler struct{}

// StyleText returns text as-is.
func (PlainStyler) StyleText(text string, _ TextStyle) string {
	return text
}

// Renderer is a frontend driving a session: it feeds the host from its
// platform's input and shows the game until it exits or ctx is done.
type Renderer interface {
	Run(ctx context.Context, s *gameplay.Session) error
}
