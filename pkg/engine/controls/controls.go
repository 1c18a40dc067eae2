// Package controls merges device adapters into one stream of named actions.
//
// A Controls value owns one installed mapping profile and the reference counts
// of every action. Raw transitions from the attached adapters are looked up in
// the profile; an action fires OnAction when its first raw input goes down and
// OnRelease when its last one comes up, however many keys, buttons or joystick
// directions are bound to it.
//
// Controls is driven from the host goroutine and is not safe for concurrent use.
package controls

import (
	"errors"
	"fmt"
	"log/slog"

	"actionpad/pkg/engine/input"
)

var (
	// ErrNoProfile is returned when Options carries no mapping profile.
	ErrNoProfile = errors.New("controls: no mapping profile")
	// ErrDestroyed is returned by Remap after Destroy.
	ErrDestroyed = errors.New("controls: destroyed")
)

// Options configures a Controls value.
type Options struct {
	// Profile is the mapping installed by New or Remap. Required.
	Profile *input.Profile
	// OnAction and OnRelease receive action transitions. In Remap, nil keeps
	// the current callback.
	OnAction  input.ActionFunc
	OnRelease input.ActionFunc
	// Adapters is the pool of device adapters. Only adapters whose device
	// appears in Profile are attached. In Remap, nil keeps the current pool.
	Adapters []input.Adapter
	// Logger receives debug output; nil discards it (in Remap, keeps the current one).
	Logger *slog.Logger
}

// Controls is the handle returned by New.
type Controls struct {
	table     *input.Table
	tracker   *input.Tracker
	handlers  input.Handlers
	adapters  []input.Adapter
	attached  map[input.Adapter]bool
	log       *slog.Logger
	destroyed bool
}

// New installs opts.Profile and attaches the adapters it needs.
func New(opts Options) (*Controls, error) {
	if opts.Profile == nil {
		return nil, ErrNoProfile
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	c := &Controls{
		table:    input.NewTable(opts.Profile),
		handlers: input.Handlers{OnAction: opts.OnAction, OnRelease: opts.OnRelease},
		adapters: append([]input.Adapter(nil), opts.Adapters...),
		attached: make(map[input.Adapter]bool),
		log:      log,
	}
	c.tracker = input.NewTracker(c.handlers)
	c.syncAdapters()
	c.log.Debug("controls created", "profile", opts.Profile.Name(), "devices", opts.Profile.Devices())
	return c, nil
}

// handle is the ReportFunc given to every attached adapter.
func (c *Controls) handle(tr input.Transition) {
	if c.destroyed {
		return
	}
	if !tr.Active {
		c.tracker.Release(tr)
		return
	}
	action, ok := c.table.Lookup(tr.Device, tr.Code)
	if !ok {
		c.log.Debug("unmapped input", "device", tr.Device, "code", tr.Code)
		return
	}
	c.tracker.Press(action, tr)
}

// syncAdapters attaches every pooled adapter the installed profile needs and
// detaches the rest.
func (c *Controls) syncAdapters() {
	profile := c.table.Current()
	for _, a := range c.adapters {
		if profile.HasDevice(a.Device()) {
			a.Attach(c.handle)
			c.attached[a] = true
			continue
		}
		if c.attached[a] {
			a.Detach()
			delete(c.attached, a)
		}
	}
}

// Remap releases every pressed action under the current profile, then
// installs opts.Profile and re-attaches adapters for it. On return no action
// is pressed.
func (c *Controls) Remap(opts Options) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if opts.Profile == nil {
		return fmt.Errorf("remap: %w", ErrNoProfile)
	}
	if opts.Logger != nil {
		c.log = opts.Logger
	}

	released := c.tracker.ReleaseAll()

	previous := c.table.Install(opts.Profile)
	if opts.OnAction != nil {
		c.handlers.OnAction = opts.OnAction
	}
	if opts.OnRelease != nil {
		c.handlers.OnRelease = opts.OnRelease
	}
	c.tracker.SetHandlers(c.handlers)

	if opts.Adapters != nil {
		keep := make(map[input.Adapter]bool, len(opts.Adapters))
		for _, a := range opts.Adapters {
			keep[a] = true
		}
		for a := range c.attached {
			if !keep[a] {
				a.Detach()
				delete(c.attached, a)
			}
		}
		c.adapters = append([]input.Adapter(nil), opts.Adapters...)
	}
	c.syncAdapters()

	c.log.Debug("controls remapped",
		"from", previous.Name(),
		"to", opts.Profile.Name(),
		"released", released,
		"devices", opts.Profile.Devices())
	return nil
}

// Destroy detaches every adapter and releases every pressed action. Calling
// it again does nothing.
func (c *Controls) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	for _, a := range c.adapters {
		if c.attached[a] {
			a.Detach()
			delete(c.attached, a)
		}
	}
	released := c.tracker.ReleaseAll()
	c.log.Debug("controls destroyed", "released", released)
}

// CurrentActions returns a live, read-only view of the pressed actions.
func (c *Controls) CurrentActions() input.ActionSet {
	return c.tracker.Active()
}

// Profile returns the installed mapping profile.
func (c *Controls) Profile() *input.Profile {
	return c.table.Current()
}

// Table returns the installed-profile table, for controllers such as the
// on-screen joystick that resolve their own codes.
func (c *Controls) Table() *input.Table {
	return c.table
}
