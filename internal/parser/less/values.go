package less

import (
	"strings"

	"bennypowers.dev/lessls/internal/parser/less/tree"
)

// value is a comma separated list of expressions
func (p *Parser) value() tree.Node {
	start := p.checkpoint()
	var exprs []tree.Node
	for {
		e := p.expression()
		if e == nil {
			break
		}
		exprs = append(exprs, e)
		if !p.matchChar(',') {
			break
		}
	}
	if len(exprs) == 0 {
		return nil
	}
	return &tree.Value{Base: p.base(start), Values: exprs}
}

// expression is a whitespace separated run of operations and entities.
// A '/' that cannot be division is kept as a literal, as in `font: 12px/1.5`
// after a keyword.
func (p *Parser) expression() tree.Node {
	p.enter()
	defer p.leave()

	start := p.checkpoint()
	var entities []tree.Node
	for {
		e := p.matchAny((*Parser).addition, (*Parser).entity)
		if e == nil {
			break
		}
		entities = append(entities, e)

		slash := p.checkpoint()
		if !p.peek(reCommentStart) && p.matchChar('/') {
			d := &tree.Anonymous{Base: p.base(slash), Value: "/"}
			d.Span.End = int(slash) + 1
			entities = append(entities, d)
		}
	}
	if len(entities) == 0 {
		return nil
	}
	return &tree.Expression{Base: p.base(start), Values: entities}
}

// addition parses left associative + and -. An operator counts when it is
// followed by whitespace, or when it is glued to an operand that was itself
// not followed by whitespace.
func (p *Parser) addition() tree.Node {
	start := p.checkpoint()
	m := p.multiplication()
	if m == nil {
		return nil
	}
	result := m
	isSpaced := p.isWhitespaceAt(-1)

	for {
		opStart := p.checkpoint()
		var op string
		if s, ok := p.matchText(reSpacedAddOp); ok {
			op = strings.TrimRight(s, " \t\n\v\f\r")
		} else if !isSpaced && p.matchChar('+') {
			op = "+"
		} else if !isSpaced && p.matchChar('-') {
			op = "-"
		} else if isSpaced && computed(result) && p.negativeOperand() {
			neg := p.negative()
			if neg == nil {
				p.restore(opStart)
				break
			}
			result = &tree.Operation{Base: p.base(start), Op: "+", Operands: [2]tree.Node{result, neg}, IsSpaced: true}
			isSpaced = p.isWhitespaceAt(-1)
			continue
		} else {
			break
		}

		a := p.multiplication()
		if a == nil {
			p.restore(opStart)
			break
		}
		result = &tree.Operation{Base: p.base(start), Op: op, Operands: [2]tree.Node{result, a}, IsSpaced: isSpaced}
		isSpaced = p.isWhitespaceAt(-1)
	}
	return result
}

// negativeOperand reports whether the cursor is at a '-' glued to the
// operand after it, as in `@a -1`
func (p *Parser) negativeOperand() bool {
	if !p.peekChar('-') {
		return false
	}
	c := p.at(1)
	return c == '@' || c == '(' || c == '.' || (c >= '0' && c <= '9')
}

// negative consumes a '-' and wraps the multiplication after it
func (p *Parser) negative() tree.Node {
	start := p.checkpoint()
	p.pos++
	operand := p.multiplication()
	if operand == nil {
		p.restore(start)
		return nil
	}
	return &tree.Negative{Base: p.base(start), Value: operand}
}

// computed reports whether n is a value only known after evaluation, the
// left operands after which a glued '-' reads as subtraction of a negative
func computed(n tree.Node) bool {
	switch n := n.(type) {
	case *tree.Variable, *tree.Call, *tree.Operation, *tree.Negative:
		return true
	case *tree.Expression:
		return n.Parens
	}
	return false
}

func (p *Parser) multiplication() tree.Node {
	start := p.checkpoint()
	m := p.operand()
	if m == nil {
		return nil
	}
	result := m
	isSpaced := p.isWhitespaceAt(-1)

	for !p.peek(reCommentStart) {
		opStart := p.checkpoint()
		var op string
		switch {
		case p.matchChar('/'):
			op = "/"
		case p.matchChar('*'):
			op = "*"
		}
		if op == "" {
			break
		}
		a := p.operand()
		if a == nil {
			p.restore(opStart)
			break
		}
		result = &tree.Operation{Base: p.base(start), Op: op, Operands: [2]tree.Node{result, a}, IsSpaced: isSpaced}
		isSpaced = p.isWhitespaceAt(-1)
	}
	return result
}

// operand is a sub-expression, dimension, color, variable or call, with a
// unary minus when '-' is directly followed by '@' or '('
func (p *Parser) operand() tree.Node {
	start := p.checkpoint()
	negate := false
	if p.peekChar('-') && (p.peekCharAt('@', 1) || p.peekCharAt('(', 1)) {
		negate = p.matchChar('-')
	}

	o := p.matchAny(
		(*Parser).sub,
		(*Parser).dimension,
		(*Parser).color,
		(*Parser).variable,
		(*Parser).call,
	)
	if o == nil {
		p.restore(start)
		return nil
	}
	if negate {
		return &tree.Negative{Base: p.base(start), Value: o}
	}
	return o
}

// sub is a parenthesised addition
func (p *Parser) sub() tree.Node {
	p.enter()
	defer p.leave()

	start := p.checkpoint()
	if !p.matchChar('(') {
		return nil
	}
	a := p.addition()
	if a == nil {
		p.restore(start)
		return nil
	}
	p.expectChar(')')
	return &tree.Expression{Base: p.base(start), Values: []tree.Node{a}, Parens: true}
}
