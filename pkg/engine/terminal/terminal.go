// Package terminal feeds keys typed on a raw-mode terminal into a host.
//
// Terminals only report characters, never key releases, so every decoded key
// is delivered as a press immediately followed by a release.
package terminal

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/term"

	"actionpad/pkg/engine/host"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// ErrNotTerminal is returned by MakeRaw when stdin is not a terminal.
var ErrNotTerminal = errors.New("terminal: stdin is not a terminal")

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// MakeRaw puts stdin into raw mode and returns the function restoring it.
func MakeRaw() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() { _ = term.Restore(fd, old) }, nil
}

// Press delivers code to h as a key down, a key up and a frame.
func Press(h *host.Host, code string, at time.Time) {
	h.Keys.Emit(host.KeyEvent{Code: code, Down: true, Time: at})
	h.Keys.Emit(host.KeyEvent{Code: code, Down: false, Time: at})
	h.Frames.Emit(host.Frame{Time: at})
}

// Listen decodes keys on its own goroutine and sends them on the returned
// channel, which is closed once ctx is done or the decoder fails. The
// decoder's final error, if any, is sent on errc before it is closed.
func Listen(ctx context.Context, d *Decoder) (keys <-chan string, errc <-chan error) {
	out := make(chan string)
	ec := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(ec)
		for {
			code, err := d.Next()
			if err != nil {
				ec <- err
				return
			}
			select {
			case out <- code:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, ec
}
