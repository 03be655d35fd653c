//go:build !unix

package editor

import "time"

// waitReadable always reports input, PollKeys then blocks in Read.
func waitReadable(fd int, timeout time.Duration) (bool, error) {
	return true, nil
}
