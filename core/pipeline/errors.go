package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCommand is returned for a stage with no program name, e.g. the
	// stage after a trailing pipe.
	ErrEmptyCommand = errors.New("empty command")

	// ErrMissingRedirectTarget is returned for a redirection operator that
	// wasn't followed by a filename.
	ErrMissingRedirectTarget = errors.New("missing redirect target")
)

// Kind classifies why a stage failed.
type Kind int

const (
	// KindParseAmbiguity is a malformed stage that reached execution.
	KindParseAmbiguity Kind = iota
	// KindFileOpen is a redirection file that couldn't be opened or created.
	KindFileOpen
	// KindPipe is a failure allocating an OS pipe.
	KindPipe
	// KindSpawn is a program that couldn't be started.
	KindSpawn
	// KindWait is a failure observing a started program's exit.
	KindWait
)

func (k Kind) String() string {
	switch k {
	case KindParseAmbiguity:
		return "parse"
	case KindFileOpen:
		return "open"
	case KindPipe:
		return "pipe"
	case KindSpawn:
		return "spawn"
	case KindWait:
		return "wait"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// StageError is the failure of a single pipeline stage.
type StageError struct {
	Stage int
	Name  string
	Kind  Kind
	Err   error
}

func (e *StageError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("stage %d: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
