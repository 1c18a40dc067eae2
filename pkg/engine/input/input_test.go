package input

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

type call struct {
	kind   string
	action string
	code   string
	device Device
}

type recorder struct {
	calls []call
}

func (r *recorder) handlers() Handlers {
	return Handlers{
		OnAction: func(action, code string, device Device) {
			r.calls = append(r.calls, call{"action", action, code, device})
		},
		OnRelease: func(action, code string, device Device) {
			r.calls = append(r.calls, call{"release", action, code, device})
		},
	}
}

func (r *recorder) count(kind, action string) int {
	n := 0
	for _, c := range r.calls {
		if c.kind == kind && c.action == action {
			n++
		}
	}
	return n
}

func jumpProfile() *Profile {
	return NewProfile("playing", map[Device]map[string]string{
		DeviceKeyboard: {"space": "jump", "arrowup": "move-forward"},
		DeviceGamepad:  {"a": "jump"},
	})
}

func TestParseDevice(t *testing.T) {
	for _, d := range AllDevices() {
		got, err := ParseDevice(string(d))
		if err != nil || got != d {
			t.Errorf("ParseDevice(%q) = (%v, %v)", d, got, err)
		}
	}
	if _, err := ParseDevice("mouse"); !errors.Is(err, ErrUnknownDevice) {
		t.Errorf("ParseDevice(mouse) error = %v, want ErrUnknownDevice", err)
	}
}

func TestProfileLookup(t *testing.T) {
	p := jumpProfile()
	tests := []struct {
		device Device
		code   string
		want   string
		ok     bool
	}{
		{DeviceKeyboard, "space", "jump", true},
		{DeviceGamepad, "a", "jump", true},
		{DeviceKeyboard, "a", "", false},
		{DeviceTouch, "tap", "", false},
	}
	for _, tt := range tests {
		got, ok := p.Lookup(tt.device, tt.code)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%s, %s) = (%q, %v), want (%q, %v)", tt.device, tt.code, got, ok, tt.want, tt.ok)
		}
	}
}

func TestProfileIsACopy(t *testing.T) {
	src := map[Device]map[string]string{DeviceKeyboard: {"space": "jump"}}
	p := NewProfile("p", src)
	src[DeviceKeyboard]["space"] = "duck"
	if got, _ := p.Lookup(DeviceKeyboard, "space"); got != "jump" {
		t.Errorf("profile changed through source map: %q", got)
	}
	b := p.Bindings(DeviceKeyboard)
	b["space"] = "duck"
	if got, _ := p.Lookup(DeviceKeyboard, "space"); got != "jump" {
		t.Errorf("profile changed through Bindings copy: %q", got)
	}
}

func TestProfileDevicesAndByAction(t *testing.T) {
	p := NewProfile("p", map[Device]map[string]string{
		DeviceKeyboard: {"space": "jump", "": "ignored", "x": ""},
		DeviceGamepad:  {"a": "jump"},
		DeviceTouch:    {},
	})
	if got, want := p.Devices(), []Device{DeviceGamepad, DeviceKeyboard}; !reflect.DeepEqual(got, want) {
		t.Errorf("Devices() = %v, want %v", got, want)
	}
	if p.HasDevice(DeviceTouch) {
		t.Error("empty device should not be reported")
	}
	want := map[string][]string{"jump": {"gamepad:a", "keyboard:space"}}
	if got := p.ByAction(); !reflect.DeepEqual(got, want) {
		t.Errorf("ByAction() = %v, want %v", got, want)
	}
}

func TestNilProfile(t *testing.T) {
	var p *Profile
	if _, ok := p.Lookup(DeviceKeyboard, "space"); ok {
		t.Error("nil profile lookup should miss")
	}
	if p.Devices() != nil || p.Name() != "" {
		t.Error("nil profile should be empty")
	}
}

func TestTableInstall(t *testing.T) {
	a := jumpProfile()
	b := NewProfile("idle", map[Device]map[string]string{DeviceKeyboard: {"enter": "start"}})
	table := NewTable(a)

	if prev := table.Install(b); prev != a {
		t.Errorf("Install returned %v, want previous profile", prev.Name())
	}
	if _, ok := table.Lookup(DeviceKeyboard, "space"); ok {
		t.Error("old binding visible after Install")
	}
	if got, _ := table.Lookup(DeviceKeyboard, "enter"); got != "start" {
		t.Errorf("Lookup(enter) = %q, want start", got)
	}
}

func TestTableInstallConcurrentLookups(t *testing.T) {
	a := NewProfile("a", map[Device]map[string]string{DeviceKeyboard: {"k1": "a", "k2": "a"}})
	b := NewProfile("b", map[Device]map[string]string{DeviceKeyboard: {"k1": "b", "k2": "b"}})
	table := NewTable(a)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if i%2 == 0 {
				table.Install(b)
			} else {
				table.Install(a)
			}
		}
	}()
	for i := 0; i < 1000; i++ {
		p := table.Current()
		x, _ := p.Lookup(DeviceKeyboard, "k1")
		y, _ := p.Lookup(DeviceKeyboard, "k2")
		if x != y {
			t.Fatalf("mixed profile observed: %q / %q", x, y)
		}
	}
	wg.Wait()
}

func TestTrackerRefCountsManyToOne(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(rec.handlers())

	space := Transition{Device: DeviceKeyboard, Code: "space", Active: true}
	pad := Transition{Device: DeviceGamepad, Code: "a", Active: true}

	if !tr.Press("jump", space) {
		t.Error("first press should activate")
	}
	if tr.Press("jump", pad) {
		t.Error("second press should not activate again")
	}
	if got := tr.Count("jump"); got != 2 {
		t.Errorf("Count(jump) = %d, want 2", got)
	}

	space.Active = false
	if tr.Release(space) {
		t.Error("releasing space while a is held should not release jump")
	}
	if !tr.Active().Has("jump") {
		t.Error("jump should still be active")
	}
	pad.Active = false
	if !tr.Release(pad) {
		t.Error("releasing the last holder should release jump")
	}

	want := []call{
		{"action", "jump", "space", DeviceKeyboard},
		{"release", "jump", "a", DeviceGamepad},
	}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestTrackerDuplicatePressAndUnderflow(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(rec.handlers())
	down := Transition{Device: DeviceKeyboard, Code: "space", Active: true}
	up := Transition{Device: DeviceKeyboard, Code: "space"}

	tr.Press("jump", down)
	tr.Press("jump", down)
	if got := tr.Count("jump"); got != 1 {
		t.Errorf("Count after duplicate press = %d, want 1", got)
	}
	tr.Release(up)
	tr.Release(up)
	if got := tr.Count("jump"); got != 0 {
		t.Errorf("Count after double release = %d, want 0", got)
	}
	if rec.count("action", "jump") != 1 || rec.count("release", "jump") != 1 {
		t.Errorf("calls = %v, want one action and one release", rec.calls)
	}
	if tr.Release(Transition{Device: DeviceGamepad, Code: "b"}) {
		t.Error("release of a never-pressed input reported a release")
	}
}

func TestTrackerReleaseAll(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(rec.handlers())
	tr.Press("jump", Transition{Device: DeviceKeyboard, Code: "space", Active: true})
	tr.Press("jump", Transition{Device: DeviceGamepad, Code: "a", Active: true})
	tr.Press("fire", Transition{Device: DeviceKeyboard, Code: "f", Active: true})
	rec.calls = nil

	released := tr.ReleaseAll()
	if want := []string{"fire", "jump"}; !reflect.DeepEqual(released, want) {
		t.Errorf("ReleaseAll() = %v, want %v", released, want)
	}
	want := []call{
		{"release", "fire", "f", DeviceKeyboard},
		{"release", "jump", "a", DeviceGamepad},
	}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
	if tr.Active().Size() != 0 {
		t.Errorf("active = %v, want empty", tr.Active().Slice())
	}
	if tr.ReleaseAll() != nil {
		t.Error("second ReleaseAll should release nothing")
	}
	// A stale key-up after a forced release must not fire again.
	if tr.Release(Transition{Device: DeviceKeyboard, Code: "space"}) {
		t.Error("stale release fired after ReleaseAll")
	}
}

func TestActionSetIsLive(t *testing.T) {
	tr := NewTracker(Handlers{})
	view := tr.Active()
	tr.Press("b", Transition{Device: DeviceKeyboard, Code: "b", Active: true})
	tr.Press("a", Transition{Device: DeviceKeyboard, Code: "a", Active: true})
	if got := view.Slice(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Slice() = %v, want [a b]", got)
	}
	n := 0
	view.Each(func(string) { n++ })
	if n != 2 || view.Size() != 2 {
		t.Errorf("Each visited %d, Size %d, want 2", n, view.Size())
	}
}
