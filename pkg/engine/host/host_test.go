package host

import "testing"

func TestPointerKindString(t *testing.T) {
	tests := []struct {
		kind PointerKind
		want string
	}{
		{PointerStart, "start"},
		{PointerMove, "move"},
		{PointerEnd, "end"},
		{PointerKind(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("PointerKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestListeners(t *testing.T) {
	h := New()
	k := h.Keys.Connect(func(KeyEvent) {})
	p := h.Pointers.Connect(func(PointerEvent) {})
	f := h.Frames.Connect(func(Frame) {})
	if h.Listeners() != 3 {
		t.Fatalf("Listeners() = %d, want 3", h.Listeners())
	}
	k.Disconnect()
	p.Disconnect()
	f.Disconnect()
	if h.Listeners() != 0 {
		t.Errorf("Listeners() = %d after disconnect, want 0", h.Listeners())
	}
}
