package gameplay

import (
	"actionpad/pkg/engine/input"
)

// ProcessAction applies a pressed action to the game and remaps when the
// phase changes. It is the coordinator's action callback.
func (s *Session) ProcessAction(action string) {
	if s.Game.Press(action) {
		s.remap()
	}
}

func (s *Session) onAction(action, code string, device input.Device) {
	s.log.Debug("action", "action", action, "code", code, "device", device)
	s.ProcessAction(action)
}

func (s *Session) onRelease(action, code string, device input.Device) {
	s.log.Debug("release", "action", action, "code", code, "device", device)
}
