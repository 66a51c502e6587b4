package less

import (
	"strings"

	"bennypowers.dev/lessls/internal/parser/less/tree"
)

// entity is the generic value position: literals first, then the rest
func (p *Parser) entity() tree.Node {
	return p.matchAny(
		(*Parser).literal,
		(*Parser).variable,
		(*Parser).url,
		(*Parser).call,
		(*Parser).keyword,
		(*Parser).javascript,
		(*Parser).comment,
	)
}

func (p *Parser) literal() tree.Node {
	return p.matchAny(
		(*Parser).dimension,
		(*Parser).color,
		(*Parser).quoted,
		(*Parser).unicodeDescriptor,
	)
}

// quoted matches "..." or '...', optionally escaped with a leading ~
func (p *Parser) quoted() tree.Node {
	start := p.checkpoint()
	j := 0
	escaped := p.peekChar('~')
	if escaped {
		j++
	}
	if !p.lookahead(reQuoteOpen, j) {
		return nil
	}
	if escaped {
		p.matchChar('~')
	}
	m := p.match(reQuoted)
	if m == nil {
		p.restore(start)
		return nil
	}
	content := m[2]
	if m[0][0] == '"' {
		content = m[1]
	}
	return &tree.Quoted{Base: p.base(start), Raw: m[0], Value: content, Escaped: escaped}
}

// keyword matches an identifier; identifiers naming a color become Color nodes
func (p *Parser) keyword() tree.Node {
	start := p.checkpoint()
	k, ok := p.matchText(reKeyword)
	if !ok {
		return nil
	}
	if hex, ok := p.colors(k); ok {
		return &tree.Color{Base: p.base(start), Hex: hex, Keyword: k}
	}
	return &tree.Keyword{Base: p.base(start), Value: k}
}

// call matches name(args). url() is left to the url rule and
// alpha(opacity=N) becomes an Alpha node.
func (p *Parser) call() tree.Node {
	return p.memoized(p.calls, (*Parser).parseCall)
}

func (p *Parser) parseCall() tree.Node {
	m := reCallName.FindStringSubmatch(p.input[p.pos:])
	if m == nil {
		return nil
	}
	name := m[1]
	lower := strings.ToLower(name)
	if lower == "url" {
		return nil
	}

	start := p.checkpoint()
	p.pos += len(name)

	if lower == "alpha" {
		if a := p.alpha(start); a != nil {
			return a
		}
	}

	p.matchChar('(')
	args := p.arguments()
	if !p.matchChar(')') {
		p.restore(start)
		return nil
	}
	return &tree.Call{Base: p.base(start), Name: name, Args: args}
}

// arguments parses comma separated call arguments
func (p *Parser) arguments() []tree.Node {
	var args []tree.Node
	for {
		arg := p.matchAny((*Parser).assignment, (*Parser).expression)
		if arg == nil {
			break
		}
		args = append(args, arg)
		if !p.matchChar(',') {
			break
		}
	}
	return args
}

// assignment matches key=value inside filter style calls
func (p *Parser) assignment() tree.Node {
	if !p.peek(reAssignKey) {
		return nil
	}
	start := p.checkpoint()
	key, _ := p.matchText(reWord)
	if p.matchChar('=') {
		if value := p.entity(); value != nil {
			return &tree.Assignment{Base: p.base(start), Key: key, Value: value}
		}
	}
	p.restore(start)
	return nil
}

// alpha matches the `(opacity=N)` tail of IE's alpha()
func (p *Parser) alpha(start marker) tree.Node {
	argStart := p.checkpoint()
	if p.match(reAlphaOpen) == nil {
		return nil
	}
	var value tree.Node
	valueStart := p.checkpoint()
	if digits, ok := p.matchText(reDigits); ok {
		value = &tree.Anonymous{Base: p.base(valueStart), Value: digits}
	} else {
		value = p.variable()
	}
	if value == nil {
		p.restore(argStart)
		return nil
	}
	p.expectChar(')')
	return &tree.Alpha{Base: p.base(start), Value: value}
}

// url matches url(...) with a quoted, variable or raw value
func (p *Parser) url() tree.Node {
	if !p.peekChar('u') {
		return nil
	}
	start := p.checkpoint()
	if p.match(reURLOpen) == nil {
		return nil
	}

	value := p.matchAny((*Parser).quoted, (*Parser).variable)
	if value == nil {
		rawStart := p.checkpoint()
		raw, _ := p.matchText(reURLRaw)
		raw = strings.TrimRight(raw, " \t\n\v\f\r")
		anon := &tree.Anonymous{Base: p.base(rawStart), Value: raw}
		anon.Span.End = int(rawStart) + len(raw)
		value = anon
	}
	p.expectChar(')')
	return &tree.URL{Base: p.base(start), Value: value}
}

func (p *Parser) variable() tree.Node {
	if !p.peekChar('@') {
		return nil
	}
	start := p.checkpoint()
	name, ok := p.matchText(reVariable)
	if !ok {
		return nil
	}
	return &tree.Variable{Base: p.base(start), Name: name}
}

// variableCurly matches @{name} interpolation
func (p *Parser) variableCurly() tree.Node {
	if !p.peekChar('@') {
		return nil
	}
	start := p.checkpoint()
	m := p.match(reVarCurly)
	if m == nil {
		return nil
	}
	return &tree.Variable{Base: p.base(start), Name: "@" + m[1]}
}

func (p *Parser) color() tree.Node {
	if !p.peekChar('#') {
		return nil
	}
	start := p.checkpoint()
	m := p.match(reHexColor)
	if m == nil {
		return nil
	}
	return &tree.Color{Base: p.base(start), Hex: m[1]}
}

func (p *Parser) dimension() tree.Node {
	// only digits, '.', '+' and '-' can start a number
	c := p.at(0)
	if c < '+' || c > '9' || c == ',' || c == '/' {
		return nil
	}
	start := p.checkpoint()
	m := p.match(reDimension)
	if m == nil {
		return nil
	}
	return &tree.Dimension{Base: p.base(start), Value: m[1], Unit: m[2]}
}

func (p *Parser) unicodeDescriptor() tree.Node {
	if !p.peekChar('U') {
		return nil
	}
	start := p.checkpoint()
	text, ok := p.matchText(reUnicode)
	if !ok {
		return nil
	}
	return &tree.UnicodeDescriptor{Base: p.base(start), Value: text}
}

// javascript matches `code`, optionally escaped with a leading ~
func (p *Parser) javascript() tree.Node {
	start := p.checkpoint()
	j := 0
	escaped := p.peekChar('~')
	if escaped {
		j++
	}
	if !p.peekCharAt('`', j) {
		return nil
	}
	if escaped {
		p.matchChar('~')
	}
	m := p.match(reJavascript)
	if m == nil {
		p.restore(start)
		return nil
	}
	return &tree.Javascript{Base: p.base(start), Code: m[1], Escaped: escaped}
}
