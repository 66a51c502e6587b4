// Package position converts between byte offsets into LESS source and LSP
// positions, which count lines from zero and columns in UTF-16 code units.
package position

import (
	"sort"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Table indexes the line starts of one text so offsets can be mapped in
// either direction. Offsets are byte offsets into exactly the text given
// to NewTable, which for parsed documents is the normalized source.
type Table struct {
	text  string
	lines []int
}

func NewTable(text string) *Table {
	lines := []int{0}
	for i := strings.IndexByte(text, '\n'); i >= 0; {
		start := lines[len(lines)-1] + i + 1
		lines = append(lines, start)
		i = strings.IndexByte(text[start:], '\n')
	}
	return &Table{text: text, lines: lines}
}

// LineCount reports the number of lines, counting a final empty line
func (t *Table) LineCount() int {
	return len(t.lines)
}

func (t *Table) line(n int) string {
	start := t.lines[n]
	end := len(t.text)
	if n+1 < len(t.lines) {
		end = t.lines[n+1] - 1
	}
	return t.text[start:end]
}

// Position maps a byte offset to an LSP position. Offsets outside the
// text clamp to its ends.
func (t *Table) Position(offset int) protocol.Position {
	offset = min(max(offset, 0), len(t.text))
	n := sort.Search(len(t.lines), func(i int) bool { return t.lines[i] > offset }) - 1
	col := ByteOffsetToUTF16(t.line(n), offset-t.lines[n])
	return protocol.Position{Line: uint32(n), Character: uint32(col)}
}

// Offset maps an LSP position back to a byte offset. Lines past the end
// map to len(text); characters past the end of a line map to its end.
func (t *Table) Offset(pos protocol.Position) int {
	n := int(pos.Line)
	if n >= len(t.lines) {
		return len(t.text)
	}
	return t.lines[n] + UTF16ToByteOffset(t.line(n), int(pos.Character))
}

// Range maps the half-open byte range [start, end) to an LSP range
func (t *Table) Range(start, end int) protocol.Range {
	return protocol.Range{Start: t.Position(start), End: t.Position(end)}
}
