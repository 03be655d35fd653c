//go:build unix

package editor

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPipeTTY returns a TTY reading from a pipe and the pipe's write end.
func newPipeTTY(t *testing.T, interval time.Duration) (*TTY, *os.File) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		w.Close()
		r.Close()
	})

	return &TTY{in: r, fd: int(r.Fd()), interval: interval}, w
}

func nextKey(t *testing.T, events <-chan KeyEvent) (KeyEvent, bool) {
	t.Helper()

	select {
	case ev, ok := <-events:
		return ev, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a key event")
		return KeyEvent{}, false
	}
}

func assertNoKey(t *testing.T, events <-chan KeyEvent, wait time.Duration) {
	t.Helper()

	select {
	case ev, ok := <-events:
		t.Fatalf("unexpected key event %v (open: %v)", ev, ok)
	case <-time.After(wait):
	}
}

func TestTTY_PollKeys_forwardsKeys(t *testing.T) {
	tty, w := newPipeTTY(t, 10*time.Millisecond)
	tty.raw.Store(true)

	events := make(chan KeyEvent, 16)
	go tty.PollKeys(events)

	_, err := w.Write([]byte("ls\x1b[A\r"))
	require.NoError(t, err)

	for _, want := range []KeyEvent{
		{Key: KeyRune, Rune: 'l'},
		{Key: KeyRune, Rune: 's'},
		{Key: KeyUp},
		{Key: KeyEnter},
	} {
		got, ok := nextKey(t, events)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestTTY_PollKeys_flushesOnTimeout(t *testing.T) {
	tty, w := newPipeTTY(t, 10*time.Millisecond)
	tty.raw.Store(true)

	events := make(chan KeyEvent, 16)
	go tty.PollKeys(events)

	// A lone escape is only known to be complete once a tick passes.
	_, err := w.Write([]byte{0x1b})
	require.NoError(t, err)

	got, ok := nextKey(t, events)
	assert.True(t, ok)
	assert.Equal(t, KeyEvent{Key: KeyOther}, got)
}

func TestTTY_PollKeys_closesOnEOF(t *testing.T) {
	tty, w := newPipeTTY(t, 10*time.Millisecond)
	tty.raw.Store(true)

	events := make(chan KeyEvent, 16)
	go tty.PollKeys(events)

	_, err := w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, ok := nextKey(t, events)
	assert.True(t, ok)
	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: 'x'}, got)

	_, ok = nextKey(t, events)
	assert.False(t, ok, "events must be closed once the terminal hits EOF")
}

func TestTTY_PollKeys_onlyReadsInRawMode(t *testing.T) {
	tty, w := newPipeTTY(t, 10*time.Millisecond)

	events := make(chan KeyEvent, 16)
	go tty.PollKeys(events)

	_, err := w.Write([]byte("x"))
	require.NoError(t, err)
	assertNoKey(t, events, 100*time.Millisecond)

	// The pending input is left for the next line read.
	tty.raw.Store(true)
	got, ok := nextKey(t, events)
	assert.True(t, ok)
	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: 'x'}, got)
}

func TestTTY_PollKeys_rawModeReleasedWhileWaiting(t *testing.T) {
	tty, w := newPipeTTY(t, 500*time.Millisecond)
	tty.raw.Store(true)

	events := make(chan KeyEvent, 16)
	go tty.PollKeys(events)

	// Let the producer block waiting for input, then release raw mode the way
	// a finished line read does before the shell starts a program.
	time.Sleep(50 * time.Millisecond)
	tty.raw.Store(false)

	_, err := w.Write([]byte("x"))
	require.NoError(t, err)
	assertNoKey(t, events, time.Second)

	tty.raw.Store(true)
	got, ok := nextKey(t, events)
	assert.True(t, ok)
	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: 'x'}, got)
}
