package editor

import (
	"bufio"
	"io"
)

// Scanner reads lines from input that isn't a terminal, e.g. a script piped
// into the shell.
type Scanner struct {
	scanner *bufio.Scanner
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{scanner: bufio.NewScanner(r)}
}

// ReadLine returns the next line, or io.EOF at the end of input.
func (s *Scanner) ReadLine(prompt string) (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
