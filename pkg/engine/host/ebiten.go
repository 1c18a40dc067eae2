package host

import (
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	keyRepeatInitialDelay = 500 * time.Millisecond
	keyRepeatInterval     = 100 * time.Millisecond
)

// keyRepeatInfo tracks the repeat state for a held key
type keyRepeatInfo struct {
	firstPressed time.Time
	lastRepeat   time.Time
}

type pointerPos struct {
	x, y float64
}

// EbitenDriver polls ebiten's input state once per Update and turns it into
// host events: key downs, auto-repeats and ups, then pointer starts, moves and
// ends for the mouse and every touch, then one Frame.
type EbitenDriver struct {
	host *Host
	now  func() time.Time

	keys         []ebiten.Key
	keyRepeat    map[ebiten.Key]keyRepeatInfo
	mouseDown    bool
	mouseLast    pointerPos
	touchIDs     []ebiten.TouchID
	touches      map[ebiten.TouchID]pointerPos
	wasUnfocused bool
}

// NewEbitenDriver creates a driver emitting on h.
func NewEbitenDriver(h *Host) *EbitenDriver {
	return &EbitenDriver{
		host:      h,
		now:       time.Now,
		keyRepeat: make(map[ebiten.Key]keyRepeatInfo),
		touches:   make(map[ebiten.TouchID]pointerPos),
	}
}

// KeyName returns the mapping code for an ebiten key: its name in lower case,
// e.g. "space", "arrowup", "a", "digit1".
func KeyName(k ebiten.Key) string {
	return strings.ToLower(k.String())
}

// Update must be called from ebiten.Game.Update.
func (d *EbitenDriver) Update() {
	now := d.now()

	// Losing focus means we will never see the matching ups; release everything.
	if !ebiten.IsFocused() {
		if !d.wasUnfocused {
			d.releaseAll(now)
			d.wasUnfocused = true
		}
		d.host.Frames.Emit(Frame{Time: now})
		return
	}
	d.wasUnfocused = false

	d.updateKeys(now)
	d.updateMouse(now)
	d.updateTouches(now)
	d.host.Frames.Emit(Frame{Time: now})
}

func (d *EbitenDriver) updateKeys(now time.Time) {
	d.keys = inpututil.AppendJustReleasedKeys(d.keys[:0])
	for _, k := range d.keys {
		delete(d.keyRepeat, k)
		d.host.Keys.Emit(KeyEvent{Code: KeyName(k), Down: false, Time: now})
	}

	d.keys = inpututil.AppendJustPressedKeys(d.keys[:0])
	for _, k := range d.keys {
		d.keyRepeat[k] = keyRepeatInfo{firstPressed: now, lastRepeat: now}
		d.host.Keys.Emit(KeyEvent{Code: KeyName(k), Down: true, Time: now})
	}

	d.keys = inpututil.AppendPressedKeys(d.keys[:0])
	for _, k := range d.keys {
		if d.shouldRepeatKey(k, now) {
			d.host.Keys.Emit(KeyEvent{Code: KeyName(k), Down: true, Repeat: true, Time: now})
		}
	}
}

// shouldRepeatKey reports whether a held key is due for an auto-repeat event.
func (d *EbitenDriver) shouldRepeatKey(k ebiten.Key, now time.Time) bool {
	state, exists := d.keyRepeat[k]
	if !exists {
		// Held since before the driver started; treat this as the first press time.
		d.keyRepeat[k] = keyRepeatInfo{firstPressed: now, lastRepeat: now}
		return false
	}
	if now.Sub(state.firstPressed) < keyRepeatInitialDelay {
		return false
	}
	if now.Sub(state.lastRepeat) < keyRepeatInterval {
		return false
	}
	state.lastRepeat = now
	d.keyRepeat[k] = state
	return true
}

func (d *EbitenDriver) updateMouse(now time.Time) {
	mx, my := ebiten.CursorPosition()
	pos := pointerPos{float64(mx), float64(my)}
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case pressed && !d.mouseDown:
		d.mouseDown = true
		d.mouseLast = pos
		d.emitPointer(PointerStart, MouseID, pos, now)
	case pressed && d.mouseDown:
		if pos != d.mouseLast {
			d.mouseLast = pos
			d.emitPointer(PointerMove, MouseID, pos, now)
		}
	case !pressed && d.mouseDown:
		d.mouseDown = false
		d.emitPointer(PointerEnd, MouseID, pos, now)
	}
}

func (d *EbitenDriver) updateTouches(now time.Time) {
	d.touchIDs = ebiten.AppendTouchIDs(d.touchIDs[:0])
	sort.Slice(d.touchIDs, func(i, j int) bool { return d.touchIDs[i] < d.touchIDs[j] })

	seen := make(map[ebiten.TouchID]bool, len(d.touchIDs))
	for _, id := range d.touchIDs {
		seen[id] = true
		tx, ty := ebiten.TouchPosition(id)
		pos := pointerPos{float64(tx), float64(ty)}
		last, ok := d.touches[id]
		d.touches[id] = pos
		switch {
		case !ok:
			d.emitPointer(PointerStart, touchPointerID(id), pos, now)
		case pos != last:
			d.emitPointer(PointerMove, touchPointerID(id), pos, now)
		}
	}

	for _, id := range d.sortedTouches() {
		if seen[id] {
			continue
		}
		pos := d.touches[id]
		delete(d.touches, id)
		d.emitPointer(PointerEnd, touchPointerID(id), pos, now)
	}
}

func (d *EbitenDriver) sortedTouches() []ebiten.TouchID {
	ids := make([]ebiten.TouchID, 0, len(d.touches))
	for id := range d.touches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (d *EbitenDriver) releaseAll(now time.Time) {
	keys := make([]ebiten.Key, 0, len(d.keyRepeat))
	for k := range d.keyRepeat {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		delete(d.keyRepeat, k)
		d.host.Keys.Emit(KeyEvent{Code: KeyName(k), Down: false, Time: now})
	}
	if d.mouseDown {
		d.mouseDown = false
		d.emitPointer(PointerEnd, MouseID, d.mouseLast, now)
	}
	for _, id := range d.sortedTouches() {
		pos := d.touches[id]
		delete(d.touches, id)
		d.emitPointer(PointerEnd, touchPointerID(id), pos, now)
	}
}

func (d *EbitenDriver) emitPointer(kind PointerKind, id int, pos pointerPos, now time.Time) {
	d.host.Pointers.Emit(PointerEvent{Kind: kind, ID: id, X: pos.x, Y: pos.y, Time: now})
}

func touchPointerID(id ebiten.TouchID) int {
	return int(id) + 1
}
