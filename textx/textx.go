// Package textx provides small text formatting helpers for terminal and log output.
package textx

import (
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// PadRight pads s with spaces on the right up to width. Longer strings are returned unchanged.
func PadRight(s string, width int) string {
	if pad := width - utf8.RuneCountInString(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// PadLeft pads s with spaces on the left up to width. Longer strings are returned unchanged.
func PadLeft(s string, width int) string {
	if pad := width - utf8.RuneCountInString(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

// Truncate shortens s to at most width runes, appending "..." when anything was cut.
// Widths of 3 or less return a plain cut without the suffix.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Indent prefixes every line of s with the given prefix.
// Trailing newlines are preserved, and empty lines are left empty.
func Indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if len(line) > 0 {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// Wrap breaks s into lines no longer than width runes, splitting on word boundaries.
// Words longer than width are placed on their own line unbroken.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	var (
		out  strings.Builder
		line int
	)
	for i, word := range strings.Fields(s) {
		wordLen := utf8.RuneCountInString(word)
		switch {
		case i == 0:
			// First word always starts the first line.
		case line+1+wordLen > width:
			out.WriteByte('\n')
			line = 0
		default:
			out.WriteByte(' ')
			line++
		}
		out.WriteString(word)
		line += wordLen
	}
	return out.String()
}

// TermWidth reports the current terminal width, or the fallback when stdout isn't a terminal.
func TermWidth(fallback int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
