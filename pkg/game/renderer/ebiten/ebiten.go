package ebiten

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"actionpad/pkg/engine/host"
	"actionpad/pkg/engine/input"
	"actionpad/pkg/game/gameplay"
	"actionpad/pkg/game/renderer"
	"actionpad/pkg/game/state"
)

// EbitenRenderer implements ebiten.Game for a gameplay session.
type EbitenRenderer struct {
	ctx     context.Context
	session *gameplay.Session
	driver  *host.EbitenDriver
	face    *text.GoTextFace
}

// New creates a new Ebiten renderer
func New() *EbitenRenderer {
	return &EbitenRenderer{}
}

// Run opens the window and blocks until the game exits, the window is closed
// or ctx is done.
func (e *EbitenRenderer) Run(ctx context.Context, s *gameplay.Session) error {
	face, err := loadFace()
	if err != nil {
		return err
	}
	e.ctx = ctx
	e.session = s
	e.driver = host.NewEbitenDriver(s.Host)
	e.face = face

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle(renderer.T("TITLE"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update polls input through the driver, which drives the whole input stack.
func (e *EbitenRenderer) Update() error {
	if e.ctx.Err() != nil {
		return ebiten.Termination
	}
	e.driver.Update()
	if err := e.session.Err(); err != nil {
		return err
	}
	if e.session.Game.Exit {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the arena, the status panel and the joystick.
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g := e.session.Game
	active := e.session.Controls.CurrentActions()

	y := e.drawLines(screen, []string{renderer.T("TITLE")}, panelPadding, panelPadding, colorAction)
	y = e.drawLines(screen, renderer.StatusLines(renderer.PlainStyler{}, g, active), panelPadding, y, colorText)

	arenaY := y + panelPadding
	arenaH := e.drawArena(screen, g, panelPadding, arenaY, active.Has(state.ActionJump))

	if len(g.Messages) > 0 {
		e.drawLines(screen, g.Messages, messagesX, arenaY+arenaH+panelPadding, colorSubtle)
	}

	if p := e.session.Controls.Profile(); p != nil {
		lines := renderer.BindingLines(renderer.PlainStyler{}, p)
		h := float32(len(lines))*lineHeight + 2*panelPadding
		vector.DrawFilledRect(screen, bindingsX-panelPadding, float32(arenaY), ScreenWidth-bindingsX, h, colorPanelBackground, false)
		e.drawLines(screen, lines, bindingsX, arenaY+panelPadding, colorSubtle)
	}

	if e.session.Joystick != nil && e.session.Controls.Profile().HasDevice(input.DeviceJoystick) {
		e.session.Joystick.Draw(screen)
	}
	if err := e.session.Err(); err != nil {
		e.drawLines(screen, []string{err.Error()}, panelPadding, ScreenHeight-lineHeight-panelPadding, colorDenied)
	}
}

// drawArena draws the border, the floor and the player with the top-left
// corner at (x, y) and returns the arena's height.
func (e *EbitenRenderer) drawArena(screen *ebiten.Image, g *state.Game, x, y float64, jumping bool) float64 {
	w := float64(state.Width+2) * tileSize
	h := float64(state.Height+2) * tileSize

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), colorWallBg, false)
	vector.DrawFilledRect(screen, float32(x+tileSize), float32(y+tileSize),
		float32(state.Width*tileSize), float32(state.Height*tileSize), colorMapBackground, false)

	margin := float32(2)
	for row := 0; row < state.Height; row++ {
		for col := 0; col < state.Width; col++ {
			cx := float32(x) + float32(col+1)*tileSize
			cy := float32(y) + float32(row+1)*tileSize
			clr := colorFloor
			if col == g.X && row == g.Y {
				clr = colorPlayer
				if jumping {
					clr = colorPlayerJump
				}
			}
			vector.DrawFilledRect(screen, cx+margin, cy+margin, tileSize-margin*2, tileSize-margin*2, clr, false)
		}
	}
	return h
}

// Layout returns the game's logical screen size
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
