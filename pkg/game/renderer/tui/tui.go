// Package tui runs the demo in a raw-mode terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"

	"actionpad/pkg/engine/terminal"
	"actionpad/pkg/game/gameplay"
	"actionpad/pkg/game/renderer"
	"actionpad/pkg/game/state"
)

// Icons
const (
	PlayerIcon = "@"
	IconFloor  = "·"
	IconWall   = "▒"
)

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out   io.Writer
	size  func() (width, height int)
	plain bool

	colorTitle       color.Style
	colorAction      color.Style
	colorActionShort color.Style
	colorDevice      color.Style
	colorPhase       color.Style
	colorSubtle      color.Style
	colorDenied      color.Style
	colorPlayer      color.Style
	colorWall        color.Style
}

// New creates a new TUI renderer writing to stdout
func New() *TUIRenderer {
	t := &TUIRenderer{out: os.Stdout, size: terminal.GetSize}
	t.Init()
	return t
}

// Init initializes the colors
func (t *TUIRenderer) Init() {
	t.colorTitle = color.Style{color.FgCyan, color.OpBold}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorDevice = color.Style{color.FgBlue}
	t.colorPhase = color.Style{color.FgYellow, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorWall = color.Style{color.FgGray}
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	if t.plain {
		return text
	}
	switch style {
	case renderer.StyleTitle:
		return t.colorTitle.Sprint(text)
	case renderer.StyleAction:
		return t.colorAction.Sprint(text)
	case renderer.StyleActionShort:
		return t.colorActionShort.Sprint(text)
	case renderer.StyleDevice:
		return t.colorDevice.Sprint(text)
	case renderer.StylePhase:
		return t.colorPhase.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	case renderer.StyleDenied:
		return t.colorDenied.Sprint(text)
	case renderer.StylePlayer:
		return t.colorPlayer.Sprint(text)
	default:
		return text
	}
}

// Run reads keys from stdin until the game exits, Ctrl+C is pressed or ctx
// is done. Each key is delivered to the session as a tap.
func (t *TUIRenderer) Run(ctx context.Context, s *gameplay.Session) error {
	restore, err := terminal.MakeRaw()
	if err != nil {
		return err
	}
	defer restore()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	keys, errc := terminal.Listen(ctx, terminal.NewDecoder(os.Stdin))

	t.render(s)
	for {
		select {
		case <-ctx.Done():
			return nil
		case code, ok := <-keys:
			if !ok {
				err := <-errc
				if errors.Is(err, terminal.ErrInterrupt) || errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
			if done, err := t.handleKey(s, code, time.Now()); done {
				return err
			}
		}
	}
}

// handleKey feeds one key to the session and redraws. It reports whether the
// loop should stop.
func (t *TUIRenderer) handleKey(s *gameplay.Session, code string, now time.Time) (bool, error) {
	terminal.Press(s.Host, code, now)
	if err := s.Err(); err != nil {
		return true, err
	}
	if s.Game.Exit {
		t.write(renderer.T("GOODBYE") + "\n")
		return true, nil
	}
	t.render(s)
	return false, nil
}

func (t *TUIRenderer) render(s *gameplay.Session) {
	t.write("\x1b[H\x1b[2J" + t.frame(s))
}

// write converts newlines for raw mode, where "\n" does not return the carriage.
func (t *TUIRenderer) write(text string) {
	fmt.Fprint(t.out, strings.ReplaceAll(text, "\n", "\r\n"))
}

// frame renders a complete game frame
func (t *TUIRenderer) frame(s *gameplay.Session) string {
	var b strings.Builder
	width, height := t.size()

	b.WriteString(t.StyleText(renderer.T("TITLE"), renderer.StyleTitle) + "\n\n")
	t.printArena(&b, s.Game)
	b.WriteString("\n")
	for _, line := range renderer.StatusLines(t, s.Game, s.Controls.CurrentActions()) {
		b.WriteString(line + "\n")
	}

	// Skip the bindings on short terminals.
	if height >= state.Height+24 {
		b.WriteString("\n" + t.StyleText(renderer.T("BINDINGS"), renderer.StyleTitle) + "\n")
		for _, line := range renderer.BindingLines(t, s.Controls.Profile()) {
			b.WriteString("- " + line + "\n")
		}
	}

	t.printMessagesPane(&b, s.Game, width)
	return b.String()
}

func (t *TUIRenderer) printArena(b *strings.Builder, g *state.Game) {
	wall := t.colorWallText(strings.Repeat(IconWall, state.Width+2))
	b.WriteString(wall + "\n")
	for y := 0; y < state.Height; y++ {
		b.WriteString(t.colorWallText(IconWall))
		for x := 0; x < state.Width; x++ {
			if x == g.X && y == g.Y {
				b.WriteString(t.StyleText(PlayerIcon, renderer.StylePlayer))
			} else {
				b.WriteString(t.StyleText(IconFloor, renderer.StyleSubtle))
			}
		}
		b.WriteString(t.colorWallText(IconWall) + "\n")
	}
	b.WriteString(wall + "\n")
}

func (t *TUIRenderer) colorWallText(s string) string {
	if t.plain {
		return s
	}
	return t.colorWall.Sprint(s)
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(b *strings.Builder, g *state.Game, width int) {
	label := " " + renderer.T("MESSAGES") + " "
	sideLen := (width - len(label)) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	rightLen := max(width-sideLen-len(label), 1)

	b.WriteString("\n")
	b.WriteString(t.StyleText(strings.Repeat("─", sideLen)+label+strings.Repeat("─", rightLen), renderer.StyleSubtle) + "\n")
	if len(g.Messages) == 0 {
		b.WriteString(t.StyleText("  "+renderer.T("NO_MESSAGES"), renderer.StyleSubtle) + "\n")
	} else {
		for _, msg := range g.Messages {
			b.WriteString("  " + msg + "\n")
		}
	}
	b.WriteString(t.StyleText(strings.Repeat("─", max(width, 1)), renderer.StyleSubtle) + "\n")
}
