package domain

import (
	"runtime"
	"strings"
	"unicode"
)

// Line boundaries: CR LF pairs, CR, LF, VT, FF, the file/group/record
// separators, NEL, and the Unicode line and paragraph separators.
var newlines = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\v", "\n",
	"\f", "\n",
	"\x1c", "\n",
	"\x1d", "\n",
	"\x1e", "\n",
	"\u0085", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
)

func lineSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// isBlankRune also treats the unit separator as whitespace.
func isBlankRune(r rune) bool {
	return unicode.IsSpace(r) || r == '\x1f'
}

// StripBlankLines drops every line that is empty after trimming whitespace
// and joins the rest with the platform line separator.
func StripBlankLines(s string) string {
	lines := strings.Split(newlines.Replace(s), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimFunc(line, isBlankRune) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, lineSeparator())
}
