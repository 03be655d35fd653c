package editor

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/abiosoft/readline"
)

// ErrNotTerminal is returned when input isn't connected to a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// TTY is the controlling terminal. It switches raw mode on and off around
// line reads and produces key events while raw mode is held.
type TTY struct {
	in       *os.File
	fd       int
	interval time.Duration

	// raw is set while a line read holds raw mode; keys are only read from
	// the terminal then so programs started by the shell get their input.
	raw atomic.Bool
}

// NewTTY wraps in, which must be a terminal. interval is the poll timeout of
// the key producer.
func NewTTY(in *os.File, interval time.Duration) (*TTY, error) {
	fd := int(in.Fd())
	if !readline.IsTerminal(fd) {
		return nil, fmt.Errorf("%s: %w", in.Name(), ErrNotTerminal)
	}

	return &TTY{
		in:       in,
		fd:       fd,
		interval: interval,
	}, nil
}

// EnterRaw puts the terminal into raw mode. The returned function restores
// the previous mode and must be called exactly once.
func (t *TTY) EnterRaw() (restore func() error, err error) {
	state, err := readline.MakeRaw(t.fd)
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}
	t.raw.Store(true)

	return func() error {
		t.raw.Store(false)
		if err := readline.Restore(t.fd, state); err != nil {
			return fmt.Errorf("disable raw mode: %w", err)
		}
		return nil
	}, nil
}

// PollKeys sends key events to events for the life of the process. Each tick
// waits up to the poll interval for input. It returns, closing events, only
// once the terminal can't be read anymore.
func (t *TTY) PollKeys(events chan<- KeyEvent) {
	defer close(events)

	var dec decoder
	buf := make([]byte, 256)
	for {
		if !t.raw.Load() {
			time.Sleep(t.interval)
			continue
		}

		ready, err := waitReadable(t.fd, t.interval)
		if err != nil {
			return
		}
		if !ready {
			for _, ev := range dec.flush() {
				events <- ev
			}
			continue
		}
		// Raw mode may have been released while waiting, the input then
		// belongs to whatever the shell started.
		if !t.raw.Load() {
			continue
		}

		n, err := t.in.Read(buf)
		for _, ev := range dec.feed(buf[:n]) {
			events <- ev
		}
		if err != nil {
			return
		}
	}
}
