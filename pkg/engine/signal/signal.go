// Package signal provides an ordered listener registry with removable handles.
// It plays the role that event targets and frame callbacks play in a browser:
// sources Emit values, listeners Connect to them and later Disconnect.
package signal

// Signal delivers values to its listeners in connection order.
// The zero value is ready to use. A Signal is not safe for concurrent use.
type Signal[T any] struct {
	slots []*slot[T]
}

type slot[T any] struct {
	fn      func(T)
	removed bool
}

// Handle removes a listener from its Signal.
type Handle struct {
	detach func()
}

// Disconnect removes the listener. Calling it more than once, or on a nil
// Handle, does nothing.
func (h *Handle) Disconnect() {
	if h == nil || h.detach == nil {
		return
	}
	detach := h.detach
	h.detach = nil
	detach()
}

// Connected reports whether the listener is still registered.
func (h *Handle) Connected() bool {
	return h != nil && h.detach != nil
}

// Connect registers fn and returns the handle that removes it.
func (s *Signal[T]) Connect(fn func(T)) *Handle {
	sl := &slot[T]{fn: fn}
	s.slots = append(s.slots, sl)
	return &Handle{detach: func() { s.remove(sl) }}
}

func (s *Signal[T]) remove(target *slot[T]) {
	target.removed = true
	for i, sl := range s.slots {
		if sl == target {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return
		}
	}
}

// Emit calls every listener with v. Listeners connected during Emit first see
// the next value; listeners disconnected during Emit are skipped.
func (s *Signal[T]) Emit(v T) {
	if len(s.slots) == 0 {
		return
	}
	snapshot := make([]*slot[T], len(s.slots))
	copy(snapshot, s.slots)
	for _, sl := range snapshot {
		if sl.removed {
			continue
		}
		sl.fn(v)
	}
}

// Len returns the number of connected listeners.
func (s *Signal[T]) Len() int {
	return len(s.slots)
}
