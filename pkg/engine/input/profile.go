package input

import (
	"sort"
	"sync/atomic"
)

// Profile is an immutable mapping from (device, code) to an action name.
// Multiple codes, on the same or different devices, may point to the same action.
// A Profile is never edited after construction; remapping replaces it wholesale.
type Profile struct {
	name     string
	bindings map[Device]map[string]string
}

// NewProfile copies bindings into a new Profile. Entries with an empty code or
// action are dropped.
func NewProfile(name string, bindings map[Device]map[string]string) *Profile {
	p := &Profile{
		name:     name,
		bindings: make(map[Device]map[string]string, len(bindings)),
	}
	for device, codes := range bindings {
		inner := make(map[string]string, len(codes))
		for code, action := range codes {
			if code == "" || action == "" {
				continue
			}
			inner[code] = action
		}
		if len(inner) > 0 {
			p.bindings[device] = inner
		}
	}
	return p
}

// Name returns the profile name, e.g. "playing".
func (p *Profile) Name() string {
	if p == nil {
		return ""
	}
	return p.name
}

// Lookup returns the action bound to code on device.
func (p *Profile) Lookup(device Device, code string) (string, bool) {
	if p == nil {
		return "", false
	}
	action, ok := p.bindings[device][code]
	return action, ok
}

// HasDevice reports whether the profile binds anything on device.
func (p *Profile) HasDevice(device Device) bool {
	if p == nil {
		return false
	}
	_, ok := p.bindings[device]
	return ok
}

// Devices returns the devices that have at least one binding, sorted.
func (p *Profile) Devices() []Device {
	if p == nil {
		return nil
	}
	out := make([]Device, 0, len(p.bindings))
	for d := range p.bindings {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Bindings returns a copy of the code -> action map for device.
func (p *Profile) Bindings(device Device) map[string]string {
	out := make(map[string]string)
	if p == nil {
		return out
	}
	for code, action := range p.bindings[device] {
		out[code] = action
	}
	return out
}

// ByAction returns the bindings grouped by action as "device:code" strings.
func (p *Profile) ByAction() map[string][]string {
	result := make(map[string][]string)
	if p == nil {
		return result
	}
	for device, codes := range p.bindings {
		for code, action := range codes {
			result[action] = append(result[action], string(device)+":"+code)
		}
	}
	// Stable ordering so menus listing bindings don't flicker.
	for action, codes := range result {
		sort.Strings(codes)
		result[action] = codes
	}
	return result
}

// Table holds the installed Profile. Install replaces it in a single atomic
// step, so a concurrent Lookup sees either the old or the new profile.
type Table struct {
	current atomic.Pointer[Profile]
}

// NewTable returns a table with p installed.
func NewTable(p *Profile) *Table {
	t := &Table{}
	t.current.Store(p)
	return t
}

// Install replaces the current profile and returns the previous one.
func (t *Table) Install(p *Profile) *Profile {
	return t.current.Swap(p)
}

// Current returns the installed profile, possibly nil.
func (t *Table) Current() *Profile {
	return t.current.Load()
}

// Lookup resolves code on device against the installed profile.
func (t *Table) Lookup(device Device, code string) (string, bool) {
	return t.current.Load().Lookup(device, code)
}
