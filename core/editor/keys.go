package editor

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/abiosoft/readline"
)

// Key identifies a decoded key press.
type Key int

const (
	KeyOther Key = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	// KeyEOF is Ctrl-D.
	KeyEOF
)

func (k Key) String() string {
	switch k {
	case KeyOther:
		return "other"
	case KeyRune:
		return "rune"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEOF:
		return "eof"
	default:
		return fmt.Sprintf("Key(%d)", int(k))
	}
}

// KeyEvent is a single key press. Rune is only set for KeyRune.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// Control bytes delivered by a terminal in raw mode.
const (
	byteEnter     = byte(readline.CharEnter)
	byteLineFeed  = byte(readline.CharCtrlJ)
	byteBackspace = byte(readline.CharBackspace)
	byteCtrlH     = byte(readline.CharCtrlH)
	byteCtrlD     = byte(readline.CharDelete)
	byteEsc       = byte(readline.CharEsc)
	byteCSI       = byte(readline.CharEscapeEx)
	// readline has no constant for the SS3 introducer.
	byteSS3 = byte('O')
)

// decoder turns raw terminal bytes into key events. Escape sequences and
// multi-byte runes may be split across reads.
type decoder struct {
	pending []byte
}

// feed appends input and returns every complete key in the pending bytes.
func (d *decoder) feed(p []byte) []KeyEvent {
	d.pending = append(d.pending, p...)

	var out []KeyEvent
	for len(d.pending) > 0 {
		ev, n := decodeKey(d.pending)
		if n == 0 {
			break
		}
		out = append(out, ev)
		d.pending = d.pending[n:]
	}
	return out
}

// flush discards an incomplete sequence, reporting it as a single KeyOther.
func (d *decoder) flush() []KeyEvent {
	if len(d.pending) == 0 {
		return nil
	}
	d.pending = nil
	return []KeyEvent{{Key: KeyOther}}
}

// decodeKey decodes the first key in b, returning the number of bytes it
// used or 0 if b holds an incomplete sequence.
func decodeKey(b []byte) (KeyEvent, int) {
	switch c := b[0]; {
	case c == byteEnter, c == byteLineFeed:
		return KeyEvent{Key: KeyEnter}, 1
	case c == byteBackspace, c == byteCtrlH:
		return KeyEvent{Key: KeyBackspace}, 1
	case c == byteCtrlD:
		return KeyEvent{Key: KeyEOF}, 1
	case c == byteEsc:
		return decodeEscape(b)
	case c < ' ':
		return KeyEvent{Key: KeyOther}, 1
	}

	if !utf8.FullRune(b) {
		return KeyEvent{}, 0
	}
	r, n := utf8.DecodeRune(b)
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		return KeyEvent{Key: KeyOther}, n
	}
	return KeyEvent{Key: KeyRune, Rune: r}, n
}

// decodeEscape decodes CSI (ESC [) and SS3 (ESC O) sequences, only the
// arrow keys are distinguished.
func decodeEscape(b []byte) (KeyEvent, int) {
	if len(b) < 2 {
		return KeyEvent{}, 0
	}

	switch b[1] {
	case byteSS3:
		if len(b) < 3 {
			return KeyEvent{}, 0
		}
		return KeyEvent{Key: arrowKey(b[2])}, 3

	case byteCSI:
		for i := 2; i < len(b); i++ {
			switch c := b[i]; {
			case c >= 0x40 && c <= 0x7e:
				if i == 2 {
					return KeyEvent{Key: arrowKey(c)}, i + 1
				}
				return KeyEvent{Key: KeyOther}, i + 1
			case c < 0x20:
				return KeyEvent{Key: KeyOther}, i
			}
		}
		return KeyEvent{}, 0

	default:
		// A bare escape, the next byte is decoded on its own.
		return KeyEvent{Key: KeyOther}, 1
	}
}

func arrowKey(final byte) Key {
	switch final {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	default:
		return KeyOther
	}
}
