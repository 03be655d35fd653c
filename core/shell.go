package core

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/josephlewis42/crush/core/config"
	"github.com/josephlewis42/crush/core/editor"
	"github.com/josephlewis42/crush/core/logger"
	"github.com/josephlewis42/crush/core/pipeline"
	"github.com/josephlewis42/crush/core/shell"
)

// LineReader reads a line of input. The prompt has already been printed
// when ReadLine is called. It returns io.EOF once no more lines are coming.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Executor runs a parsed pipeline to completion.
type Executor interface {
	Execute(pipeline []shell.Command) []pipeline.Result
}

var (
	_ LineReader = (*editor.Editor)(nil)
	_ LineReader = (*editor.Scanner)(nil)
	_ Executor   = (*pipeline.Engine)(nil)
)

type Shell struct {
	Stdout io.Writer
	Stderr io.Writer

	Reader   LineReader
	History  *editor.History
	Executor Executor

	// Events records what the user ran.
	Events *logger.SessionLogger
	// Log receives internal failures that don't concern the user's command.
	Log   *log.Logger
	Color ColorPrinter

	Getwd func() (string, error)
	Chdir func(dir string) error
}

// NewShell creates a shell running pipelines on the host OS. history must be
// the one the reader recalls lines from, if any.
func NewShell(reader LineReader, history *editor.History) *Shell {
	if history == nil {
		history = &editor.History{}
	}

	return &Shell{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Reader:   reader,
		History:  history,
		Executor: pipeline.New(),
		Events:   logger.NewNopLogger().Sessionless(),
		Log:      log.New(ioutil.Discard, "", 0),
		Color:    ColorPrinter{Mode: config.ColorNever},
		Getwd:    os.Getwd,
		Chdir:    os.Chdir,
	}
}

// Prompt renders the prompt for the working directory.
func Prompt(wd string) string {
	return fmt.Sprintf("crush: %s > ", wd)
}

// Run reads and executes lines until exit or the end of input. It only
// returns an error if the working directory can't be determined or input
// can't be read.
func (s *Shell) Run() error {
	for {
		wd, err := s.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		prompt := Prompt(wd)
		fmt.Fprint(s.Stdout, prompt)
		line, err := s.Reader.ReadLine(prompt)

		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case err != nil:
			return fmt.Errorf("read line: %w", err)
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ExitCommand:
			return nil
		}

		s.runLine(line)
	}
}

func (s *Shell) runLine(line string) {
	stages := shell.ParseLine(line)

	// Builtins only look at their own stage, operators on it are ignored.
	if builtin, ok := AllBuiltins[stages[0].Name()]; ok {
		builtin.Main(s, stages[0].Args)
		return
	}

	results := s.Executor.Execute(stages)

	event := &logger.RunCommand{Line: line}
	for _, res := range results {
		stage := &logger.StageState{
			Command:  res.Args,
			Started:  res.Started,
			ExitCode: res.ExitCode,
		}
		if res.Err != nil {
			stage.Error = res.Err.Error()
			s.printError(res.Err)
		}
		event.Stages = append(event.Stages, stage)
	}

	s.History.Add(line)
	s.record(event)
}

func (s *Shell) printError(err error) {
	fmt.Fprintf(s.Stderr, "%s %v\n", s.Color.Sprintf(ColorBoldRed, "crush:"), err)
}

func (s *Shell) record(event logger.LogType) {
	if err := s.Events.Record(event); err != nil {
		s.Log.Printf("couldn't record event: %v", err)
	}
}
