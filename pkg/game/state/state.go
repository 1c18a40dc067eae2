// Package state holds the demo game's state and turns actions into state
// changes.
package state

import "fmt"

// Phase is the game's top-level mode. Each phase has its own action profile.
type Phase int

// Phases
const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns the profile name used for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Actions understood by the demo.
const (
	ActionStart     = "start"
	ActionQuit      = "quit"
	ActionRestart   = "restart"
	ActionExit      = "exit"
	ActionJump      = "jump"
	ActionInteract  = "interact"
	ActionMoveUp    = "move-up"
	ActionMoveDown  = "move-down"
	ActionMoveLeft  = "move-left"
	ActionMoveRight = "move-right"
)

// Arena size in cells.
const (
	Width  = 21
	Height = 11
)

const maxMessages = 5

// Game represents the demo's state.
type Game struct {
	Phase Phase

	// Player position, 0 <= X < Width, 0 <= Y < Height.
	X, Y int

	Jumps int

	Messages []string

	// Exit is set once the exit action is received.
	Exit bool
}

// NewGame creates a game in the idle phase.
func NewGame() *Game {
	g := &Game{Messages: make([]string, 0)}
	g.center()
	return g
}

func (g *Game) center() {
	g.X, g.Y = Width/2, Height/2
}

// Press applies a pressed action and reports whether the phase changed.
func (g *Game) Press(action string) bool {
	switch g.Phase {
	case PhaseIdle:
		switch action {
		case ActionStart:
			return g.setPhase(PhasePlaying)
		case ActionExit:
			g.Exit = true
		}
	case PhasePlaying:
		switch action {
		case ActionQuit:
			return g.setPhase(PhaseGameOver)
		case ActionJump:
			g.Jumps++
			g.AddMessage("jump!")
		case ActionInteract:
			g.AddMessage(fmt.Sprintf("nothing to use at %d,%d", g.X, g.Y))
		case ActionMoveUp:
			g.move(0, -1)
		case ActionMoveDown:
			g.move(0, 1)
		case ActionMoveLeft:
			g.move(-1, 0)
		case ActionMoveRight:
			g.move(1, 0)
		}
	case PhaseGameOver:
		switch action {
		case ActionRestart:
			g.Jumps = 0
			g.center()
			return g.setPhase(PhasePlaying)
		case ActionExit:
			g.Exit = true
		}
	}
	return false
}

func (g *Game) move(dx, dy int) {
	g.X = min(max(g.X+dx, 0), Width-1)
	g.Y = min(max(g.Y+dy, 0), Height-1)
}

func (g *Game) setPhase(p Phase) bool {
	if g.Phase == p {
		return false
	}
	g.Phase = p
	g.AddMessage("phase: " + p.String())
	return true
}

// ProfileName returns the name of the action profile for the current phase.
func (g *Game) ProfileName() string {
	return g.Phase.String()
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}
