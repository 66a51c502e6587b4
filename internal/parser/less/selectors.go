package less

import (
	"bennypowers.dev/lessls/internal/parser/less/tree"
)

// extendRule matches the statement form `&:extend(a, b all);`
func (p *Parser) extendRule() []*tree.Extend {
	return p.extend(true)
}

// extend matches `:extend(...)`, returning one Extend per comma separated
// target. Once the opener has matched, a malformed list is a hard failure.
func (p *Parser) extend(statement bool) []*tree.Extend {
	start := p.checkpoint()
	opener := reExtend
	if statement {
		opener = reExtendRule
	}
	if p.match(opener) == nil {
		return nil
	}

	var extends []*tree.Extend
	for {
		targetStart := p.checkpoint()
		var option string
		var elements []*tree.Element
		for {
			if p.peek(reExtendAll) {
				option, _ = p.matchText(reAll)
				break
			}
			e := p.element()
			if e == nil {
				break
			}
			elements = append(elements, e)
		}
		if len(elements) == 0 {
			p.unexpected("selector")
		}
		sel := &tree.Selector{Base: p.base(targetStart), Elements: elements}
		extends = append(extends, &tree.Extend{Base: p.base(start), Selector: sel, Option: option})
		if !p.matchChar(',') {
			break
		}
	}

	p.expectChar(')')
	if statement {
		p.expectChar(';')
	}
	return extends
}

// combinator is never nil: it is "" when no combinator applies
func (p *Parser) combinator() *tree.Combinator {
	start := p.checkpoint()
	switch c := p.at(0); c {
	case '>', '+', '~', '|':
		p.skipWhitespace(1)
		return &tree.Combinator{Base: p.base(start), Value: string(c)}
	}
	if p.pos > 0 && p.isWhitespaceAt(-1) {
		return &tree.Combinator{Base: tree.Base{Span: tree.Span{Start: p.pos, End: p.pos}, File: p.file}, Value: " "}
	}
	return &tree.Combinator{Base: tree.Base{Span: tree.Span{Start: p.pos, End: p.pos}, File: p.file}}
}

func (p *Parser) element() *tree.Element {
	start := p.checkpoint()
	c := p.combinator()
	valueStart := p.checkpoint()

	var e tree.Node
	text := func(s string) tree.Node {
		return &tree.Anonymous{Base: p.base(valueStart), Value: s}
	}
	switch {
	case p.peek(rePercentElem):
		s, _ := p.matchText(rePercentElem)
		e = text(s)
	case p.peek(reIdentElem):
		s, _ := p.matchText(reIdentElem)
		e = text(s)
	case p.matchChar('*'):
		e = text("*")
	case p.matchChar('&'):
		e = text("&")
	case p.peekChar('['):
		e = p.attribute()
	case p.peek(reRawParens):
		s, _ := p.matchText(reRawParens)
		e = text(s)
	case p.peek(reInterpStart):
		s := p.input[p.pos : p.pos+1]
		p.skipWhitespace(1)
		e = text(s)
	default:
		e = p.variableCurly()
	}
	if e == nil && p.matchChar('(') {
		if v := p.selector(); v != nil && p.matchChar(')') {
			e = &tree.Paren{Base: p.base(valueStart), Value: v}
		}
	}

	if e == nil {
		p.restore(start)
		return nil
	}
	return &tree.Element{Base: p.base(start), Combinator: c, Value: e}
}

// selector matches extends and elements up to one of `{ } ; , )`.
// Extends without any element are a hard failure.
func (p *Parser) selector() *tree.Selector {
	p.enter()
	defer p.leave()

	start := p.checkpoint()
	var elements []*tree.Element
	var extends []*tree.Extend
	var c byte
	for {
		if ext := p.extend(false); ext != nil {
			extends = append(extends, ext...)
		} else if e := p.element(); e != nil {
			c = p.at(0)
			elements = append(elements, e)
		} else {
			break
		}
		if c == '{' || c == '}' || c == ';' || c == ',' || c == ')' {
			break
		}
	}

	if len(elements) > 0 {
		return &tree.Selector{Base: p.base(start), Elements: elements, Extends: extends}
	}
	if len(extends) > 0 {
		p.restore(start)
		p.failWith(ErrExtendAlone)
	}
	return nil
}

// attribute matches [key], [key=value] and the other attribute operators
func (p *Parser) attribute() tree.Node {
	start := p.checkpoint()
	if !p.matchChar('[') {
		return nil
	}

	key := p.variableCurly()
	if key == nil {
		keyStart := p.checkpoint()
		text := p.expectText(reAttrKey, "attribute name")
		key = &tree.Anonymous{Base: p.base(keyStart), Value: text}
	}

	var value tree.Node
	op, _ := p.matchText(reAttrOp)
	if op != "" {
		valueStart := p.checkpoint()
		if value = p.quoted(); value == nil {
			if word, ok := p.matchText(reAttrWord); ok {
				value = &tree.Anonymous{Base: p.base(valueStart), Value: word}
			} else {
				value = p.variableCurly()
			}
		}
	}

	p.expectChar(']')
	return &tree.Attribute{Base: p.base(start), Key: key, Op: op, Value: value}
}
