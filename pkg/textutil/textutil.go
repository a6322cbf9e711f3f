// Package textutil contains small text helpers for help rendering.
package textutil

import "strings"

// Wrap greedily wraps text into lines at most width characters wide. Words
// longer than width get a line of their own; runs of whitespace collapse to
// a single space.
func Wrap(text string, width int) []string {
	var (
		lines []string
		line  strings.Builder
	)
	for _, word := range strings.Fields(text) {
		if line.Len() == 0 {
			line.WriteString(word)
			continue
		}
		if line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			continue
		}
		line.WriteByte(' ')
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
