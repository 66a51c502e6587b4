package less

import (
	"bennypowers.dev/lessls/internal/parser/less/tree"
)

// mixinCall matches `.a > #b(args) !important;`
func (p *Parser) mixinCall() tree.Node {
	if !p.peekChar('.') && !p.peekChar('#') {
		return nil
	}
	start := p.checkpoint()

	var elements []*tree.Element
	comb := ""
	for {
		elemStart := p.checkpoint()
		name, ok := p.matchText(reMixinElem)
		if !ok {
			break
		}
		value := &tree.Anonymous{Base: p.base(elemStart), Value: name}
		elements = append(elements, &tree.Element{
			Base:       p.base(elemStart),
			Combinator: &tree.Combinator{Base: tree.Base{Span: tree.Span{Start: int(elemStart), End: int(elemStart)}, File: p.file}, Value: comb},
			Value:      value,
		})
		comb = ""
		if p.matchChar('>') {
			comb = ">"
		}
	}

	var args []tree.MixinArg
	if p.matchChar('(') {
		args, _ = p.mixinArgs(true)
		p.expectChar(')')
	}
	important := p.important()

	if len(elements) > 0 && p.end() {
		return &tree.MixinCall{Base: p.base(start), Elements: elements, Args: args, Important: important}
	}
	p.restore(start)
	return nil
}

// mixinDefinition matches `.name(params) when (guard) { ... }`
func (p *Parser) mixinDefinition() tree.Node {
	if (!p.peekChar('.') && !p.peekChar('#')) || p.peek(reNotBlockEnd) {
		return nil
	}
	start := p.checkpoint()

	m := p.match(reMixinDef)
	if m == nil {
		return nil
	}
	name := m[1]

	params, variadic := p.mixinArgs(false)
	// `.mixincall("@{a}");` looks like a definition up to here
	if !p.matchChar(')') {
		p.restore(start)
		return nil
	}

	p.comment()

	var cond tree.Node
	if p.match(reWhen) != nil {
		cond = p.expectNode(p.conditions(), "conditions")
	}

	rules, ok := p.block()
	if !ok {
		p.restore(start)
		return nil
	}
	return &tree.MixinDefinition{
		Base:      p.base(start),
		Name:      name,
		Params:    params,
		Rules:     rules,
		Condition: cond,
		Variadic:  variadic,
	}
}

// mixinArgs parses the argument list of a call, or the parameter list of a
// definition when isCall is false. Arguments are separated by ',' until the
// first ';', after which the list is ';' separated and each group of comma
// separated expressions collapses into one Value.
func (p *Parser) mixinArgs(isCall bool) (args []tree.MixinArg, variadic bool) {
	var (
		expressions   []tree.Node
		argsSemicolon []tree.MixinArg
		argsComma     []tree.MixinArg
		semicolons    bool
		containsNamed bool
		name          string
	)

	// variadicTail records a trailing `...` parameter, optionally followed by ';'
	variadicTail := func(argName string) {
		variadic = true
		if p.matchChar(';') && !semicolons {
			if len(argsComma) > 0 {
				p.failWith(ErrMixedDelimiters)
			}
			semicolons = true
		}
		arg := tree.MixinArg{Name: argName, Variadic: true}
		if semicolons {
			argsSemicolon = append(argsSemicolon, arg)
		} else {
			argsComma = append(argsComma, arg)
		}
	}

loop:
	for {
		var arg tree.Node
		if isCall {
			arg = p.expression()
		} else {
			p.comment()
			if p.peekChar('.') && p.match(reEllipsis) != nil {
				variadicTail("")
				break
			}
			arg = p.matchAny((*Parser).variable, (*Parser).literal, (*Parser).keyword)
		}
		if arg == nil {
			break
		}

		if expr, ok := arg.(*tree.Expression); ok {
			arg = withoutComments(expr)
		}

		var nameLoop string
		value := arg
		val := arg
		if isCall {
			val = nil
			if expr := arg.(*tree.Expression); len(expr.Values) == 1 {
				val = expr.Values[0]
			}
		}

		if v, ok := val.(*tree.Variable); ok {
			switch {
			case p.matchChar(':'):
				if len(expressions) > 0 {
					if semicolons {
						p.failWith(ErrMixedDelimiters)
					}
					containsNamed = true
				}
				value = p.expectNode(p.expression(), "expression")
				name = v.Name
				nameLoop = v.Name
			case !isCall && p.match(reEllipsis) != nil:
				variadicTail(v.Name)
				break loop
			case !isCall:
				name = v.Name
				nameLoop = v.Name
				value = nil
			}
		}

		if value != nil {
			expressions = append(expressions, value)
		}
		argsComma = append(argsComma, tree.MixinArg{Name: nameLoop, Value: value})

		if p.matchChar(',') {
			continue
		}

		if p.matchChar(';') || semicolons {
			if containsNamed {
				p.failWith(ErrMixedDelimiters)
			}
			semicolons = true

			if len(expressions) > 1 {
				value = &tree.Value{Base: tree.Base{Span: tree.Span{Start: expressions[0].Index(), End: expressions[len(expressions)-1].Pos().End}, File: p.file}, Values: expressions}
			}
			argsSemicolon = append(argsSemicolon, tree.MixinArg{Name: name, Value: value})

			name = ""
			expressions = nil
			containsNamed = false
		}
	}

	if semicolons {
		return argsSemicolon, variadic
	}
	return argsComma, variadic
}

// withoutComments drops comment nodes from a call argument
func withoutComments(expr *tree.Expression) tree.Node {
	values := expr.Values[:0:0]
	for _, v := range expr.Values {
		if _, ok := v.(*tree.Comment); !ok {
			values = append(values, v)
		}
	}
	if len(values) == len(expr.Values) {
		return expr
	}
	out := *expr
	out.Values = values
	return &out
}

// conditions matches a comma separated (or) list of guard conditions
func (p *Parser) conditions() tree.Node {
	start := p.checkpoint()
	a := p.condition()
	if a == nil {
		return nil
	}
	cond := a
	for {
		orStart := p.checkpoint()
		if !p.matchChar(',') {
			break
		}
		b := p.condition()
		if b == nil {
			p.restore(orStart)
			break
		}
		cond = &tree.Condition{Base: p.base(start), Op: "or", Left: cond, Right: b}
	}
	return cond
}

// condition matches `[not] (a [op b]) [and condition]`
func (p *Parser) condition() tree.Node {
	p.enter()
	defer p.leave()

	start := p.checkpoint()
	negate := p.match(reNot) != nil
	p.expectChar('(')

	operand := func() tree.Node {
		return p.matchAny((*Parser).addition, (*Parser).keyword, (*Parser).quoted)
	}
	a := operand()
	if a == nil {
		p.restore(start)
		return nil
	}

	var c *tree.Condition
	if op, ok := p.matchText(reCompareOp); ok {
		b := operand()
		if b == nil {
			p.failf("unexpected expression")
		}
		c = &tree.Condition{Op: op, Left: a, Right: b, Negate: negate}
	} else {
		truth := &tree.Keyword{Base: tree.Base{Span: tree.Span{Start: a.Pos().End, End: a.Pos().End}, File: p.file}, Value: "true"}
		c = &tree.Condition{Op: "=", Left: a, Right: truth, Negate: negate}
	}
	p.expectChar(')')
	c.Base = p.base(start)

	if p.match(reAnd) != nil {
		right := p.expectNode(p.condition(), "condition")
		return &tree.Condition{Base: p.base(start), Op: "and", Left: c, Right: right}
	}
	return c
}
