// Package expand replaces tab characters with spaces using tab-stop arithmetic.
package expand

import (
	"strings"
	"unicode/utf8"
)

// Options controls how whole texts are expanded.
type Options struct {
	// TrimTrailing removes trailing spaces and tabs from every line after expansion.
	TrimTrailing bool
}

// Line expands every tab in line so that the column after it is the next
// multiple of width. Columns count runes, one per rune. A byte that is not
// valid UTF-8 counts one column and is copied as is.
//
// Width must be at least 1.
func Line(line string, width int) string {
	if width < 1 {
		panic("expand: tab width must be at least 1")
	}
	if line == "" || strings.IndexByte(line, '\t') < 0 {
		return line
	}

	var b strings.Builder
	b.Grow(len(line) + width*strings.Count(line, "\t"))

	col := 0
	for i := 0; i < len(line); {
		if line[i] == '\t' {
			n := width - col%width
			for range n {
				b.WriteByte(' ')
			}
			col += n
			i++
			continue
		}
		_, size := utf8.DecodeRuneInString(line[i:])
		b.WriteString(line[i : i+size])
		col++
		i += size
	}
	return b.String()
}

// Text expands each newline-separated line of content and joins them back
// with a single newline. A trailing newline in content is kept.
func Text(content string, width int, opts Options) string {
	if content == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		line = Line(line, width)
		if opts.TrimTrailing {
			line = strings.TrimRight(line, " \t")
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// HasTabs reports whether content contains at least one tab.
func HasTabs(content string) bool {
	return strings.IndexByte(content, '\t') >= 0
}
