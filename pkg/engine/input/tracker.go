package input

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

type rawKey struct {
	device Device
	code   string
}

// Tracker reference-counts the raw inputs holding each action. An action is
// pressed while at least one raw input holds it: OnAction fires when the count
// goes 0 -> 1 and OnRelease when it returns to 0. A raw input counts at most
// once, and releasing a raw input that holds nothing is ignored.
//
// Counts are created lazily and left at zero once released.
type Tracker struct {
	handlers Handlers
	counts   map[string]int
	holders  map[rawKey]string
	active   mapset.Set[string]
}

// NewTracker returns an empty tracker that reports to h.
func NewTracker(h Handlers) *Tracker {
	return &Tracker{
		handlers: h,
		counts:   make(map[string]int),
		holders:  make(map[rawKey]string),
		active:   mapset.New[string](),
	}
}

// SetHandlers replaces the callbacks used for later transitions.
func (t *Tracker) SetHandlers(h Handlers) {
	t.handlers = h
}

// Press records that the raw input in tr now holds action. It returns true if
// this press activated the action.
func (t *Tracker) Press(action string, tr Transition) bool {
	key := rawKey{tr.Device, tr.Code}
	if _, held := t.holders[key]; held {
		return false
	}
	t.holders[key] = action
	t.counts[action]++
	if t.counts[action] != 1 {
		return false
	}
	t.active.Put(action)
	t.handlers.action(action, tr.Code, tr.Device)
	return true
}

// Release drops the hold of the raw input in tr. It returns true if this was
// the last hold and the action was released.
func (t *Tracker) Release(tr Transition) bool {
	key := rawKey{tr.Device, tr.Code}
	action, held := t.holders[key]
	if !held {
		return false
	}
	delete(t.holders, key)
	if t.counts[action] <= 0 {
		t.counts[action] = 0
		return false
	}
	t.counts[action]--
	if t.counts[action] > 0 {
		return false
	}
	t.active.Remove(action)
	t.handlers.release(action, tr.Code, tr.Device)
	return true
}

// ReleaseAll force-releases every pressed action in name order, firing
// OnRelease once per action. The reported code and device are those of one of
// the raw inputs that was holding it.
func (t *Tracker) ReleaseAll() []string {
	if len(t.holders) == 0 {
		return nil
	}
	keys := make([]rawKey, 0, len(t.holders))
	for k := range t.holders {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].device != keys[j].device {
			return keys[i].device < keys[j].device
		}
		return keys[i].code < keys[j].code
	})
	culprit := make(map[string]rawKey)
	for _, k := range keys {
		action := t.holders[k]
		if _, seen := culprit[action]; !seen {
			culprit[action] = k
		}
	}
	clear(t.holders)

	released := make([]string, 0, len(culprit))
	for action := range culprit {
		released = append(released, action)
	}
	sort.Strings(released)
	for _, action := range released {
		t.counts[action] = 0
		t.active.Remove(action)
	}
	for _, action := range released {
		k := culprit[action]
		t.handlers.release(action, k.code, k.device)
	}
	return released
}

// Count returns the number of raw inputs holding action.
func (t *Tracker) Count(action string) int {
	return t.counts[action]
}

// Active returns the live set of pressed actions.
func (t *Tracker) Active() ActionSet {
	return ActionSet{set: t.active}
}
