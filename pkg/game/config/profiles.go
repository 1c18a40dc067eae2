package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"actionpad/pkg/engine/input"
)

var (
	// ErrUnknownProfile is returned by ProfileSet.Get for a missing name.
	ErrUnknownProfile = errors.New("config: unknown profile")
	// ErrInvalidProfiles is returned when a profile file cannot be used.
	ErrInvalidProfiles = errors.New("config: invalid profiles")
)

// profileFile is the on-disk layout:
//
//	profiles:
//	  playing:
//	    keyboard:
//	      space: jump
//	    gamepad:
//	      a: jump
type profileFile struct {
	Profiles map[string]map[string]map[string]string `yaml:"profiles"`
}

// ProfileSet holds named action profiles.
type ProfileSet struct {
	profiles map[string]*input.Profile
}

// Get returns the profile called name.
func (s *ProfileSet) Get(name string) (*input.Profile, error) {
	if p, ok := s.profiles[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

// Names returns the profile names in sorted order.
func (s *ProfileSet) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadProfiles reads and parses a profile file.
func LoadProfiles(path string) (*ProfileSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set, err := ParseProfiles(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// ParseProfiles decodes profile YAML. Unknown fields, unknown devices and
// empty codes or actions are rejected.
func ParseProfiles(data []byte) (*ProfileSet, error) {
	var f profileFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfiles, err)
	}
	if len(f.Profiles) == 0 {
		return nil, fmt.Errorf("%w: no profiles defined", ErrInvalidProfiles)
	}

	set := &ProfileSet{profiles: make(map[string]*input.Profile, len(f.Profiles))}
	for name, devices := range f.Profiles {
		if name == "" {
			return nil, fmt.Errorf("%w: empty profile name", ErrInvalidProfiles)
		}
		bindings := make(map[input.Device]map[string]string, len(devices))
		for devName, codes := range devices {
			dev, err := input.ParseDevice(devName)
			if err != nil {
				return nil, fmt.Errorf("%w: profile %q: %w", ErrInvalidProfiles, name, err)
			}
			for code, action := range codes {
				if code == "" || action == "" {
					return nil, fmt.Errorf("%w: profile %q: %s binding %q -> %q", ErrInvalidProfiles, name, dev, code, action)
				}
			}
			bindings[dev] = codes
		}
		set.profiles[name] = input.NewProfile(name, bindings)
	}
	return set, nil
}

const defaultProfiles = `
profiles:
  idle:
    keyboard:
      enter: start
      space: start
      escape: exit
    gamepad:
      start: start
      a: start
      b: exit
    touch:
      tap: start
  playing:
    keyboard:
      arrowup: move-up
      w: move-up
      arrowdown: move-down
      s: move-down
      arrowleft: move-left
      a: move-left
      arrowright: move-right
      d: move-right
      space: jump
      e: interact
      escape: quit
      q: quit
    gamepad:
      dpad-up: move-up
      left-stick-up: move-up
      dpad-down: move-down
      left-stick-down: move-down
      dpad-left: move-left
      left-stick-left: move-left
      dpad-right: move-right
      left-stick-right: move-right
      a: jump
      x: interact
      b: quit
    joystick:
      up: move-up
      down: move-down
      left: move-left
      right: move-right
    touch:
      tap: jump
  game-over:
    keyboard:
      enter: restart
      r: restart
      escape: exit
    gamepad:
      start: restart
      a: restart
      b: exit
    touch:
      tap: restart
`

// DefaultProfiles returns the built-in idle, playing and game-over profiles.
func DefaultProfiles() *ProfileSet {
	set, err := ParseProfiles([]byte(defaultProfiles))
	if err != nil {
		panic(err)
	}
	return set
}
