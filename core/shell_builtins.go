package core

import (
	"errors"
	"fmt"

	"github.com/josephlewis42/crush/core/logger"
)

// ExitCommand ends the shell when it's the whole line.
const ExitCommand = "exit"

// ErrCdUsage is reported when cd isn't given exactly one directory.
var ErrCdUsage = errors.New("cd: incorrect amount of arguments, usage: cd <dir>")

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// Cd is the cd shell builtin
func Cd(s *Shell, args []string) int {
	if len(args) != 2 {
		s.printError(ErrCdUsage)
		return 1
	}

	event := &logger.ChangeDirectory{Dir: args[1]}
	defer s.record(event)

	if err := s.Chdir(args[1]); err != nil {
		event.Error = err.Error()
		s.printError(fmt.Errorf("%s: %w", args[0], err))
		return 1
	}
	return 0
}

func init() {
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
}
