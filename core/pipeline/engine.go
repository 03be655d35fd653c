// Package pipeline runs parsed shell stages as OS processes connected by
// pipes and file redirections.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/josephlewis42/crush/core/shell"
	"github.com/spf13/afero"
)

// Engine starts pipeline stages and waits for them.
type Engine struct {
	// Fs resolves redirection targets.
	Fs afero.Fs

	// Terminal streams inherited by stages that aren't piped or redirected.
	// Standard error is always inherited.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates an engine over the real filesystem and the process's standard
// streams.
func New() *Engine {
	return &Engine{
		Fs:     afero.NewOsFs(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Result is the outcome of a single stage.
type Result struct {
	Args []string

	// Started is set if the process was spawned.
	Started bool

	// ExitCode is the observed exit status, or -1 if it wasn't observed.
	ExitCode int

	// Err holds a *StageError if the stage couldn't be run or waited on.
	Err error
}

// Success reports whether the stage ran and exited with status zero.
func (r Result) Success() bool {
	return r.Started && r.Err == nil && r.ExitCode == 0
}

type stage struct {
	cmd *exec.Cmd

	// files are redirection targets, they stay open until the process is
	// reaped because non-*os.File targets are copied by exec.
	files []io.Closer
}

func (s *stage) closeFiles() {
	closeAll(s.files)
	s.files = nil
}

// Execute starts every stage in order then waits for the started ones, also
// in order. A stage that fails to start is reported in its Result and the
// remaining stages are still attempted. Execute doesn't return until every
// started process has exited.
func (e *Engine) Execute(pipeline []shell.Command) []Result {
	results := make([]Result, len(pipeline))
	running := make([]*stage, len(pipeline))

	// upstream holds the read end of the previous stage's output pipe.
	var upstream handle
	for i, cmd := range pipeline {
		results[i] = Result{Args: cmd.Args, ExitCode: -1}

		prior := handle{upstream.take()}
		st, next, err := e.start(i, cmd, &prior)
		// Release our copy whether or not the stage started, a spawned child
		// holds its own and the upstream writer only sees EOF once ours is gone.
		prior.Close()
		upstream = next

		if err != nil {
			results[i].Err = err
			continue
		}
		results[i].Started = true
		running[i] = st
	}
	upstream.Close()

	for i, st := range running {
		if st == nil {
			continue
		}

		err := st.cmd.Wait()
		st.closeFiles()

		var exitErr *exec.ExitError
		switch {
		case err == nil:
			results[i].ExitCode = 0
		case errors.As(err, &exitErr):
			results[i].ExitCode = exitErr.ExitCode()
		default:
			results[i].Err = &StageError{Stage: i, Name: pipeline[i].Name(), Kind: KindWait, Err: err}
		}
	}

	return results
}

// start resolves a stage's streams and spawns it. The returned handle is the
// read end of the stage's output pipe, if it has one.
func (e *Engine) start(index int, cmd shell.Command, prior *handle) (*stage, handle, error) {
	var (
		next handle
		// parent copies of pipe ends, released once the child is spawned
		pipeEnds []io.Closer
		st       = &stage{}
		ok       bool
	)
	defer func() {
		closeAll(pipeEnds)
		if !ok {
			st.closeFiles()
			next.Close()
		}
	}()

	fail := func(kind Kind, err error) (*stage, handle, error) {
		return nil, handle{}, &StageError{Stage: index, Name: cmd.Name(), Kind: kind, Err: err}
	}

	if len(cmd.Args) == 0 {
		return fail(KindParseAmbiguity, ErrEmptyCommand)
	}
	proc := exec.Command(cmd.Args[0], cmd.Args[1:]...)
	proc.Stderr = e.Stderr

	switch cmd.Input {
	case shell.SourceFile:
		if cmd.InputFile == "" {
			return fail(KindParseAmbiguity, fmt.Errorf("%s: %w", shell.OpRedirectIn, ErrMissingRedirectTarget))
		}
		fd, err := e.Fs.Open(cmd.InputFile)
		if err != nil {
			return fail(KindFileOpen, err)
		}
		st.files = append(st.files, fd)
		proc.Stdin = fd

	case shell.SourcePipe:
		// An empty handle means the previous stage didn't produce a pipe, the
		// process reads from the null device.
		if fd := prior.take(); fd != nil {
			pipeEnds = append(pipeEnds, fd)
			proc.Stdin = fd
		}

	default:
		proc.Stdin = e.Stdin
	}

	switch cmd.Output {
	case shell.SinkFile:
		if cmd.OutputFile == "" {
			return fail(KindParseAmbiguity, fmt.Errorf("%s: %w", shell.OpRedirectOut, ErrMissingRedirectTarget))
		}
		fd, err := e.Fs.OpenFile(cmd.OutputFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fail(KindFileOpen, err)
		}
		st.files = append(st.files, fd)
		proc.Stdout = fd

	case shell.SinkPipe:
		r, w, err := os.Pipe()
		if err != nil {
			return fail(KindPipe, err)
		}
		next = handle{r}
		pipeEnds = append(pipeEnds, w)
		proc.Stdout = w

	default:
		proc.Stdout = e.Stdout
	}

	if err := proc.Start(); err != nil {
		return fail(KindSpawn, err)
	}

	ok = true
	st.cmd = proc
	return st, next, nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}
