package input

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// ActionSet is a read-only, live view of the actions that are currently pressed.
type ActionSet struct {
	set mapset.Set[string]
}

// Has reports whether action is currently pressed.
func (s ActionSet) Has(action string) bool {
	return s.set.Has(action)
}

// Size returns the number of pressed actions.
func (s ActionSet) Size() int {
	return s.set.Size()
}

// Each calls fn for every pressed action in no particular order.
func (s ActionSet) Each(fn func(action string)) {
	s.set.Each(fn)
}

// Slice returns the pressed actions sorted by name.
func (s ActionSet) Slice() []string {
	out := make([]string, 0, s.set.Size())
	s.set.Each(func(a string) {
		out = append(out, a)
	})
	sort.Strings(out)
	return out
}
