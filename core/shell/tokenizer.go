package shell

import "strings"

// Tokenize splits a line into whitespace separated words.
//
// There is no quoting or escaping: operators are only recognized when they
// stand alone, so "a|b" is a single word.
func Tokenize(line string) []string {
	return strings.Fields(line)
}
