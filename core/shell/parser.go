// Package shell turns an input line into pipeline stages.
//
// Grammar:
//
//	line  := stage ( '|' stage )*
//	stage := ( WORD | redir )+
//	redir := ( '>' | '<' ) WORD?
//
// Parsing never fails. Malformed lines (a dangling operator, a redirection
// without a filename, an empty stage) produce descriptors that are rejected
// when the pipeline is executed.
package shell

import (
	"fmt"
	"strings"
)

const (
	OpPipe        = "|"
	OpRedirectIn  = "<"
	OpRedirectOut = ">"
)

// Source is where a stage reads standard input from.
type Source int

const (
	// SourceTerminal inherits the shell's standard input.
	SourceTerminal Source = iota
	// SourceFile reads from Command.InputFile.
	SourceFile
	// SourcePipe reads the previous stage's output.
	SourcePipe
)

func (s Source) String() string {
	switch s {
	case SourceTerminal:
		return "terminal"
	case SourceFile:
		return "file"
	case SourcePipe:
		return "pipe"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Sink is where a stage writes standard output to.
type Sink int

const (
	// SinkTerminal inherits the shell's standard output.
	SinkTerminal Sink = iota
	// SinkFile creates or truncates Command.OutputFile.
	SinkFile
	// SinkPipe feeds the next stage.
	SinkPipe
)

func (s Sink) String() string {
	switch s {
	case SinkTerminal:
		return "terminal"
	case SinkFile:
		return "file"
	case SinkPipe:
		return "pipe"
	default:
		return fmt.Sprintf("Sink(%d)", int(s))
	}
}

// Command describes a single pipeline stage.
type Command struct {
	// Args holds the program name followed by its arguments. It may be empty
	// for malformed input.
	Args []string

	Input Source
	// InputFile is set when Input is SourceFile and a filename followed the
	// operator.
	InputFile string

	Output Sink
	// OutputFile is set when Output is SinkFile and a filename followed the
	// operator.
	OutputFile string
}

// Name returns the program name or the empty string.
func (c Command) Name() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

func (c Command) String() string {
	in := c.Input.String()
	if c.Input == SourceFile {
		in = fmt.Sprintf("file(%q)", c.InputFile)
	}
	out := c.Output.String()
	if c.Output == SinkFile {
		out = fmt.Sprintf("file(%q)", c.OutputFile)
	}
	return fmt.Sprintf("args=%q in=%s out=%s", c.Args, in, out)
}

// IsOperator reports whether the token is one of the pipeline operators.
func IsOperator(token string) bool {
	switch token {
	case OpPipe, OpRedirectIn, OpRedirectOut:
		return true
	default:
		return false
	}
}

// Parse partitions tokens into pipeline stages.
//
// A redirection consumes the following token as its filename unless that
// token is missing or is itself an operator. A redirection wins over a pipe
// on the same side of a stage.
func Parse(tokens []string) []Command {
	var (
		out     []Command
		current Command
	)

	for i := 0; i < len(tokens); i++ {
		switch tok := tokens[i]; tok {
		case OpRedirectOut:
			current.Output = SinkFile
			current.OutputFile = ""
			if i+1 < len(tokens) && !IsOperator(tokens[i+1]) {
				i++
				current.OutputFile = tokens[i]
			}

		case OpRedirectIn:
			current.Input = SourceFile
			current.InputFile = ""
			if i+1 < len(tokens) && !IsOperator(tokens[i+1]) {
				i++
				current.InputFile = tokens[i]
			}

		case OpPipe:
			if current.Output != SinkFile {
				current.Output = SinkPipe
			}
			out = append(out, current)
			current = Command{Input: SourcePipe}

		default:
			current.Args = append(current.Args, tok)
		}
	}

	return append(out, current)
}

// ParseLine tokenizes and parses a line.
func ParseLine(line string) []Command {
	return Parse(Tokenize(line))
}

// Tokens flattens stages back into a token list that parses to an equivalent
// pipeline.
func Tokens(pipeline []Command) []string {
	var out []string
	for i, cmd := range pipeline {
		if i > 0 {
			out = append(out, OpPipe)
		}
		out = append(out, cmd.Args...)
		if cmd.Input == SourceFile {
			out = append(out, OpRedirectIn)
			if cmd.InputFile != "" {
				out = append(out, cmd.InputFile)
			}
		}
		if cmd.Output == SinkFile {
			out = append(out, OpRedirectOut)
			if cmd.OutputFile != "" {
				out = append(out, cmd.OutputFile)
			}
		}
	}
	return out
}

// Format renders a pipeline as a single line.
func Format(pipeline []Command) string {
	return strings.Join(Tokens(pipeline), " ")
}
