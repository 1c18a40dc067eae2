package state

import (
	"fmt"
	"reflect"
	"testing"
)

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Phase
		action  string
		want    Phase
		changed bool
	}{
		{"start from idle", PhaseIdle, ActionStart, PhasePlaying, true},
		{"quit from idle is ignored", PhaseIdle, ActionQuit, PhaseIdle, false},
		{"quit while playing", PhasePlaying, ActionQuit, PhaseGameOver, true},
		{"start while playing is ignored", PhasePlaying, ActionStart, PhasePlaying, false},
		{"restart after game over", PhaseGameOver, ActionRestart, PhasePlaying, true},
		{"jump after game over is ignored", PhaseGameOver, ActionJump, PhaseGameOver, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame()
			g.Phase = tt.from
			if changed := g.Press(tt.action); changed != tt.changed {
				t.Errorf("Press(%q) changed = %v, want %v", tt.action, changed, tt.changed)
			}
			if g.Phase != tt.want {
				t.Errorf("Phase = %v, want %v", g.Phase, tt.want)
			}
		})
	}
}

func TestProfileName(t *testing.T) {
	g := NewGame()
	names := []string{g.ProfileName()}
	g.Press(ActionStart)
	names = append(names, g.ProfileName())
	g.Press(ActionQuit)
	names = append(names, g.ProfileName())
	if !reflect.DeepEqual(names, []string{"idle", "playing", "game-over"}) {
		t.Errorf("profile names = %v", names)
	}
}

func TestMovementIsClamped(t *testing.T) {
	g := NewGame()
	g.Press(ActionStart)
	for i := 0; i < Width; i++ {
		g.Press(ActionMoveLeft)
		g.Press(ActionMoveUp)
	}
	if g.X != 0 || g.Y != 0 {
		t.Errorf("position = %d,%d, want 0,0", g.X, g.Y)
	}
	g.Press(ActionMoveRight)
	g.Press(ActionMoveDown)
	if g.X != 1 || g.Y != 1 {
		t.Errorf("position = %d,%d, want 1,1", g.X, g.Y)
	}
}

func TestRestartResets(t *testing.T) {
	g := NewGame()
	g.Press(ActionStart)
	g.Press(ActionJump)
	g.Press(ActionMoveRight)
	g.Press(ActionQuit)
	g.Press(ActionRestart)
	if g.Jumps != 0 || g.X != Width/2 || g.Y != Height/2 {
		t.Errorf("restart left jumps=%d pos=%d,%d", g.Jumps, g.X, g.Y)
	}
}

func TestExit(t *testing.T) {
	g := NewGame()
	g.Press(ActionExit)
	if !g.Exit {
		t.Error("Exit not set from idle")
	}
}

func TestMessagesAreCapped(t *testing.T) {
	g := NewGame()
	for i := 0; i < 8; i++ {
		g.AddMessage(fmt.Sprint(i))
	}
	if !reflect.DeepEqual(g.Messages, []string{"3", "4", "5", "6", "7"}) {
		t.Errorf("Messages = %v", g.Messages)
	}
	g.ClearMessages()
	if len(g.Messages) != 0 {
		t.Error("ClearMessages left messages")
	}
}
