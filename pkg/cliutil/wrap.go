package cliutil

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// TerminalWidth returns the width that help text should be wrapped to, or 0
// for "don't wrap".
func TerminalWidth() int {
	// Obey COLUMNS if the shell or the user set it.
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil {
		return cols
	}

	// Otherwise ask the stdout file descriptor.
	if cols, _, err := term.GetSize(1); err == nil {
		return cols
	}

	// Stdout is a terminal but won't tell us its size; assume the
	// traditional 80.
	if term.IsTerminal(1) {
		return 80
	}

	// Not a terminal; don't wrap.
	return 0
}

// Wrap word-wraps `s` to a maximum width `w`.  Pass `w` == 0 to do no
// wrapping.
//
// To leave a little slop and avoid a short word ending up on a line by
// itself, lines are actually wrapped to `w - 5`.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// WrapIndent is Wrap with every line but the first indented `i` spaces (the
// first line's indentation is assumed to have been emitted by the caller).
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

func wrap(indent, width int, text string) string {
	if width == 0 {
		return text
	}
	limit := width - 5
	if limit <= indent {
		return text
	}
	prefix := strings.Repeat(" ", indent)

	paragraphs := strings.Split(strings.TrimRight(text, "\n"), "\n\n")
	wrapped := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		wrapped = append(wrapped, wrapParagraph(prefix, limit, paragraph))
	}
	return strings.Join(wrapped, "\n\n"+prefix)
}

func wrapParagraph(prefix string, limit int, paragraph string) string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return ""
	}

	var ret strings.Builder
	ret.WriteString(words[0])
	col := len(prefix) + len(words[0])
	for _, word := range words[1:] {
		if col+1+len(word) > limit {
			ret.WriteString("\n")
			ret.WriteString(prefix)
			ret.WriteString(word)
			col = len(prefix) + len(word)
		} else {
			ret.WriteString(" ")
			ret.WriteString(word)
			col += 1 + len(word)
		}
	}
	return ret.String()
}
