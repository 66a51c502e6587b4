package less

import (
	"regexp"

	"bennypowers.dev/lessls/internal/parser/less/tree"
)

// marker is a saved cursor position
type marker int

func (p *Parser) checkpoint() marker {
	return marker(p.pos)
}

func (p *Parser) restore(m marker) {
	p.pos = int(m)
}

// memo is the outcome of a rule at one offset: the node, or nil for no
// match, and the cursor state the rule left behind
type memo struct {
	node   tree.Node
	pos    int
	tokEnd int
}

// memoized runs r at the cursor once per offset and replays the stored
// outcome on later attempts. Hard failures are never stored; they end the parse.
func (p *Parser) memoized(table map[int]memo, r rule) tree.Node {
	if m, ok := table[p.pos]; ok {
		p.pos, p.tokEnd = m.pos, m.tokEnd
		return m.node
	}
	start := p.pos
	n := r(p)
	table[start] = memo{node: n, pos: p.pos, tokEnd: p.tokEnd}
	return n
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.input)
}

// at returns the byte offset bytes away from the cursor, or 0 outside the input
func (p *Parser) at(offset int) byte {
	i := p.pos + offset
	if i < 0 || i >= len(p.input) {
		return 0
	}
	return p.input[i]
}

func (p *Parser) peekChar(c byte) bool {
	return p.at(0) == c
}

func (p *Parser) peekCharAt(c byte, offset int) bool {
	return p.at(offset) == c
}

func (p *Parser) peek(re *regexp.Regexp) bool {
	return re.MatchString(p.input[p.pos:])
}

// lookahead reports whether re matches offset bytes ahead of the cursor
func (p *Parser) lookahead(re *regexp.Regexp, offset int) bool {
	i := p.pos + offset
	if i < 0 || i > len(p.input) {
		return false
	}
	return re.MatchString(p.input[i:])
}

// isWhitespace reports whether c is in the C locale space class
func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func (p *Parser) isWhitespaceAt(offset int) bool {
	return isWhitespace(p.at(offset))
}

// skipWhitespace advances n bytes, records the end of the consumed token,
// then skips any whitespace that follows it
func (p *Parser) skipWhitespace(n int) {
	p.pos += n
	p.tokEnd = p.pos
	for p.pos < len(p.input) && isWhitespace(p.input[p.pos]) {
		p.pos++
	}
}

// base returns the node header for a construct that began at start and
// ends at the last consumed token
func (p *Parser) base(start marker) tree.Base {
	end := max(p.tokEnd, int(start))
	return tree.Base{Span: tree.Span{Start: int(start), End: end}, File: p.file}
}
