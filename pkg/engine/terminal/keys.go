package terminal

import (
	"bufio"
	"errors"
	"io"
)

// ErrInterrupt is returned by Decoder.Next when Ctrl+C is read. Raw mode
// disables the terminal's own signal handling.
var ErrInterrupt = errors.New("terminal: interrupt")

const (
	keyEsc       = 0x1b
	keyCtrlC     = 3
	keyTab       = '\t'
	keyBackspace = 127
	keyCtrlH     = 8
)

// Key codes match the names the ebiten driver reports, so one profile serves
// both.
var arrowCodes = map[byte]string{
	'A': "arrowup",
	'B': "arrowdown",
	'C': "arrowright",
	'D': "arrowleft",
}

// Decoder turns raw terminal bytes into key codes.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder reads from r, typically os.Stdin in raw mode.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next blocks until a recognised key is read. Unknown escape sequences and
// non-printable bytes are skipped.
func (d *Decoder) Next() (string, error) {
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == keyEsc {
			code, ok, err := d.escape()
			if err != nil {
				return "", err
			}
			if ok {
				return code, nil
			}
			continue
		}
		if b == keyCtrlC {
			return "", ErrInterrupt
		}
		if code := byteCode(b); code != "" {
			return code, nil
		}
	}
}

// escape reads the rest of a CSI (ESC [) or SS3 (ESC O) sequence. An ESC with
// nothing buffered behind it is the escape key itself.
func (d *Decoder) escape() (string, bool, error) {
	if d.r.Buffered() == 0 {
		return "escape", true, nil
	}
	b2, err := d.r.ReadByte()
	if err != nil {
		return "", false, err
	}
	if b2 != '[' && b2 != 'O' {
		_ = d.r.UnreadByte()
		return "escape", true, nil
	}
	b3, err := d.r.ReadByte()
	if err != nil {
		return "", false, err
	}
	if code, ok := arrowCodes[b3]; ok {
		return code, true, nil
	}
	// Skip parameters of longer sequences such as ESC [ 1 ; 5 C.
	for b3 >= '0' && b3 <= '9' || b3 == ';' {
		if b3, err = d.r.ReadByte(); err != nil {
			return "", false, err
		}
	}
	return "", false, nil
}

func byteCode(b byte) string {
	switch {
	case b == '\r' || b == '\n':
		return "enter"
	case b == ' ':
		return "space"
	case b == keyTab:
		return "tab"
	case b == keyBackspace || b == keyCtrlH:
		return "backspace"
	case b >= 'a' && b <= 'z':
		return string(b)
	case b >= 'A' && b <= 'Z':
		return string(b + 'a' - 'A')
	case b >= '0' && b <= '9':
		return "digit" + string(b)
	}
	return ""
}
