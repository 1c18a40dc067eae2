// Package gameplay connects the input stack to the demo game: it builds the
// device adapters, the joystick and the coordinator, feeds actions into
// state.Game and remaps whenever the game changes phase.
package gameplay

import (
	"errors"
	"fmt"
	"log/slog"

	"actionpad/pkg/engine/controls"
	"actionpad/pkg/engine/devices"
	"actionpad/pkg/engine/host"
	"actionpad/pkg/engine/input"
	"actionpad/pkg/engine/joystick"
	"actionpad/pkg/game/config"
	"actionpad/pkg/game/state"
)

// JoystickLayout places the on-screen joystick at (X, Y). A zero
// Settings.Radius disables it.
type JoystickLayout struct {
	X, Y     float64
	Settings config.JoystickSettings
}

// Options configures a Session.
type Options struct {
	Profiles *config.ProfileSet
	// Pads is polled for gamepads; nil leaves the gamepad adapter out.
	Pads     devices.GamepadSource
	Joystick JoystickLayout
	// Zones name touch areas reported instead of the plain tap code.
	Zones  []devices.Zone
	Logger *slog.Logger
}

// Session owns one running demo.
type Session struct {
	Host     *host.Host
	Game     *state.Game
	Controls *controls.Controls

	// Joystick and Knob are nil when the joystick is disabled.
	Joystick *joystick.Controller
	Edge     *joystick.Edge
	Knob     *joystick.Knob

	profiles *config.ProfileSet
	log      *slog.Logger
	err      error
}

// NewSession builds the adapters for h and starts the game in its first phase.
func NewSession(h *host.Host, opts Options) (*Session, error) {
	if opts.Profiles == nil {
		opts.Profiles = config.DefaultProfiles()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{
		Host:     h,
		Game:     state.NewGame(),
		profiles: opts.Profiles,
		log:      opts.Logger,
	}

	profile, err := s.profiles.Get(s.Game.ProfileName())
	if err != nil {
		return nil, err
	}

	touch := devices.NewTouch(h, devices.TouchOptions{Zones: opts.Zones})
	adapters := []input.Adapter{devices.NewKeyboard(h), touch}
	if opts.Pads != nil {
		adapters = append(adapters, devices.NewGamepad(h, opts.Pads, devices.GamepadOptions{}))
	}

	s.Controls, err = controls.New(controls.Options{
		Profile:   profile,
		OnAction:  s.onAction,
		OnRelease: s.onRelease,
		Adapters:  adapters,
		Logger:    s.log,
	})
	if err != nil {
		return nil, err
	}

	if opts.Joystick.Settings.Radius > 0 {
		if err := s.addJoystick(h, touch, opts.Joystick, profile, adapters); err != nil {
			s.Close()
			return nil, err
		}
	}
	s.log.Info("session started", "profile", profile.Name(), "devices", profile.Devices())
	return s, nil
}

// addJoystick binds the on-screen joystick and adds it to the coordinator's
// adapter pool. The joystick resolves its own codes through the coordinator's
// table, so it follows every remap.
func (s *Session) addJoystick(h *host.Host, touch *devices.Touch, layout JoystickLayout, profile *input.Profile, adapters []input.Adapter) error {
	ctl, err := joystick.New(s.Controls.Table(), input.Handlers{}, layout.Settings.Options())
	if err != nil {
		return err
	}
	edge := &joystick.Edge{Source: &h.Pointers, X: layout.X, Y: layout.Y, Radius: layout.Settings.Radius}
	knob := &joystick.Knob{}
	if err := ctl.Bind(edge, knob); err != nil {
		return err
	}
	s.Joystick, s.Edge, s.Knob = ctl, edge, knob
	touch.Exclude(edge)
	return s.Controls.Remap(controls.Options{Profile: profile, Adapters: append(adapters, ctl)})
}

// Err returns the first remap failure, if any.
func (s *Session) Err() error {
	return s.err
}

// Close tears down the coordinator and the joystick. It may be called more
// than once.
func (s *Session) Close() {
	s.Controls.Destroy()
	if s.Joystick != nil {
		s.Joystick.Unbind()
	}
}

func (s *Session) remap() {
	name := s.Game.ProfileName()
	p, err := s.profiles.Get(name)
	if err == nil {
		err = s.Controls.Remap(controls.Options{Profile: p})
	}
	if err != nil {
		if errors.Is(err, controls.ErrDestroyed) {
			return
		}
		s.log.Error("remap failed", "phase", name, "err", err)
		if s.err == nil {
			s.err = fmt.Errorf("remap to %q: %w", name, err)
		}
		return
	}
	s.log.Info("remapped", "profile", name, "devices", p.Devices())
}
