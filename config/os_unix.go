//go:build !windows

package config

import (
	"os"
	"strings"
	"unicode"

	"golang.org/x/term"
)

// CleanFileName drops characters which cannot appear in file name. Document
// numbers often contain slashes ("FV/1/2024"), those become dashes.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		switch {
		case sym == os.PathSeparator:
			return '-'
		case sym == os.PathListSeparator || unicode.IsControl(sym):
			return -1
		}
		return sym
	}, in)
	out = strings.TrimLeft(strings.TrimSpace(out), ".")
	if len(out) == 0 {
		out = badFileName
	}
	return out
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
