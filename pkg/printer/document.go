package printer

import (
	"strings"
	"unicode/utf8"
)

// Document accumulates fixed-width plain-text lines for a receipt.
// Widths are measured in runes so that non-ASCII text lines up on
// character printers and monospace displays.
type Document struct {
	lines []string
	width int
}

// NewDocument creates an empty document with the given character width.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = 32
	}
	return &Document{width: width}
}

// Width returns the configured character width.
func (d *Document) Width() int {
	return d.width
}

// Text appends a line as-is.
func (d *Document) Text(s string) *Document {
	d.lines = append(d.lines, s)
	return d
}

// Center appends s centered within the document width. Text wider than
// the document is appended unchanged.
func (d *Document) Center(s string) *Document {
	d.lines = append(d.lines, Center(s, d.width))
	return d
}

// Separator appends a full-width rule made of char.
func (d *Document) Separator(char rune) *Document {
	d.lines = append(d.lines, strings.Repeat(string(char), d.width))
	return d
}

// KeyValue appends a left-aligned key and right-aligned value on the same line.
// At least one space always separates them, so the line may overflow the width.
// Example: "Total                 12.50"
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}
	d.lines = append(d.lines, key+strings.Repeat(" ", spaces)+value)
	return d
}

// Lines returns the accumulated lines.
func (d *Document) Lines() []string {
	return d.lines
}

// MaxLineWidth returns the rune length of the longest line.
func (d *Document) MaxLineWidth() int {
	longest := 0
	for _, l := range d.lines {
		if n := utf8.RuneCountInString(l); n > longest {
			longest = n
		}
	}
	return longest
}

// String joins the lines with newlines.
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

// Center pads s with spaces on both sides to width runes. With odd padding
// the extra space goes left when width is odd and right when it is even.
func Center(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	left := pad/2 + (pad & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// Truncate shortens s to at most max runes, replacing the tail with "..."
// when it had to be cut.
func Truncate(s string, max int) string {
	const ellipsis = "..."
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	keep := max - len(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string([]rune(s)[:keep]) + ellipsis
}
