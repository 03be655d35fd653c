// Package editor reads interactive input lines in terminal raw mode.
//
// A producer (TTY.PollKeys) runs in its own goroutine for the life of the
// process and forwards key events over a channel. The Editor consumes them
// while composing a line, owning the line buffer and the history cursor.
package editor

import (
	"fmt"
	"io"
)

const (
	// clearLine returns to column zero and erases the line.
	clearLine = "\r\x1b[K"
	// newline moves to the start of the next line; output post-processing
	// is off in raw mode.
	newline = "\r\n"
)

// RawMode is a terminal that can hold raw mode for the duration of one read.
type RawMode interface {
	EnterRaw() (restore func() error, err error)
}

// Editor composes lines from key events.
type Editor struct {
	Terminal RawMode
	Keys     <-chan KeyEvent
	Out      io.Writer
	History  *History
}

// New creates an editor. A nil history gets an empty one.
func New(terminal RawMode, keys <-chan KeyEvent, out io.Writer, history *History) *Editor {
	if history == nil {
		history = &History{}
	}

	return &Editor{
		Terminal: terminal,
		Keys:     keys,
		Out:      out,
		History:  history,
	}
}

// ReadLine reads a line in raw mode. prompt must already be printed, it's
// reprinted ahead of the buffer on every redraw. Raw mode is released on
// every return path.
//
// It returns io.EOF if the key channel closes or Ctrl-D is pressed on an empty
// line.
func (e *Editor) ReadLine(prompt string) (line string, err error) {
	restore, err := e.Terminal.EnterRaw()
	if err != nil {
		return "", err
	}
	defer func() {
		if restoreErr := restore(); restoreErr != nil && err == nil {
			err = restoreErr
		}
	}()

	var buf []rune
	for {
		ev, ok := <-e.Keys
		if !ok {
			return "", io.EOF
		}

		switch ev.Key {
		case KeyRune:
			buf = append(buf, ev.Rune)

		case KeyBackspace:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}

		case KeyEnter:
			fmt.Fprint(e.Out, newline)
			e.History.Reset()
			return string(buf), nil

		case KeyUp:
			entry, ok := e.History.Prev()
			if !ok {
				continue
			}
			buf = []rune(entry)

		case KeyDown:
			entry, ok := e.History.Next()
			if !ok {
				continue
			}
			buf = []rune(entry)

		case KeyEOF:
			if len(buf) > 0 {
				continue
			}
			fmt.Fprint(e.Out, newline)
			return "", io.EOF

		default:
			continue
		}

		e.redraw(prompt, buf)
	}
}

func (e *Editor) redraw(prompt string, buf []rune) {
	fmt.Fprintf(e.Out, "%s%s%s", clearLine, prompt, string(buf))
}
