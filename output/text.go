package output

import "strings"

// CollapseWhitespace reduces runs of spaces (and no-break spaces) to a
// single space and runs of line breaks to at most one blank line. Spaces
// at the start of a line are dropped.
func CollapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	newlines, spaces := 0, 0
	for _, c := range s {
		switch c {
		case '\n':
			newlines++
			spaces = 0
			if newlines > 2 {
				continue
			}
		case ' ', '\u00a0':
			if newlines > 0 {
				spaces++
			}
			newlines = 0
			spaces++
			if spaces == 1 {
				b.WriteByte(' ')
			}
			continue
		default:
			newlines, spaces = 0, 0
		}
		b.WriteRune(c)
	}
	return b.String()
}
