//go:build unix

package editor

import (
	"time"

	"golang.org/x/sys/unix"
)

// waitReadable waits up to timeout for fd to have input.
func waitReadable(fd int, timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}

	n, err := unix.Poll(fds, int(timeout/time.Millisecond))
	switch {
	case err == unix.EINTR:
		return false, nil
	case err != nil:
		return false, err
	}
	return n > 0, nil
}
