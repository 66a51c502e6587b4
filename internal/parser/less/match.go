package less

import (
	"regexp"

	"bennypowers.dev/lessls/internal/parser/less/tree"
)

// rule is a grammar function usable as an alternative in matchAny
type rule func(*Parser) tree.Node

func (p *Parser) matchChar(c byte) bool {
	if p.eof() || p.input[p.pos] != c {
		return false
	}
	p.skipWhitespace(1)
	return true
}

// match applies re at the cursor. On success it consumes the match plus
// trailing whitespace and returns the submatches, whole match first.
func (p *Parser) match(re *regexp.Regexp) []string {
	m := re.FindStringSubmatch(p.input[p.pos:])
	if m == nil {
		return nil
	}
	p.skipWhitespace(len(m[0]))
	return m
}

// matchText is match for patterns whose whole match is the result
func (p *Parser) matchText(re *regexp.Regexp) (string, bool) {
	m := p.match(re)
	if m == nil {
		return "", false
	}
	return m[0], true
}

// matchAny returns the result of the first alternative that matches.
// Alternatives restore the cursor themselves when they fail.
func (p *Parser) matchAny(alts ...rule) tree.Node {
	for _, alt := range alts {
		if n := alt(p); n != nil {
			return n
		}
	}
	return nil
}

func (p *Parser) expectChar(c byte) {
	if !p.matchChar(c) {
		p.unexpected("'" + string(c) + "'")
	}
}

func (p *Parser) expectNode(n tree.Node, what string) tree.Node {
	if n == nil {
		p.unexpected(what)
	}
	return n
}

func (p *Parser) expectText(re *regexp.Regexp, what string) string {
	s, ok := p.matchText(re)
	if !ok {
		p.unexpected(what)
	}
	return s
}

// enter guards recursion depth; every call must be paired with leave
func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		p.failWith(ErrMaxDepth)
	}
}

func (p *Parser) leave() {
	p.depth--
}
