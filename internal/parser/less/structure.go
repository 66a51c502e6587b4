package less

import (
	"strings"

	"bennypowers.dev/lessls/internal/parser/less/tree"
)

// document parses statements until none match. It is used for the file
// root and for the inside of every block.
func (p *Parser) document() []tree.Node {
	p.enter()
	defer p.leave()

	rules := []tree.Node{}
	for !p.eof() {
		if extends := p.extendRule(); extends != nil {
			for _, e := range extends {
				rules = append(rules, e)
			}
			continue
		}
		n := p.matchAny(
			(*Parser).mixinDefinition,
			(*Parser).rule,
			(*Parser).ruleset,
			(*Parser).mixinCall,
			(*Parser).comment,
			(*Parser).directive,
		)
		if n != nil {
			rules = append(rules, n)
			continue
		}
		if p.match(reSpaceRun) == nil && p.match(reSemicolonRun) == nil {
			break
		}
	}
	return rules
}

// block parses `{ document }`. The returned slice is non-nil on success,
// even for an empty block.
func (p *Parser) block() ([]tree.Node, bool) {
	start := p.checkpoint()
	if !p.matchChar('{') {
		return nil, false
	}
	rules := p.document()
	if !p.matchChar('}') {
		p.restore(start)
		return nil, false
	}
	return rules, true
}

func (p *Parser) ruleset() tree.Node {
	start := p.checkpoint()

	var selectors []*tree.Selector
	for {
		s := p.selector()
		if s == nil {
			break
		}
		selectors = append(selectors, s)
		p.comment()
		if !p.matchChar(',') {
			break
		}
		p.comment()
	}

	if len(selectors) > 0 {
		if rules, ok := p.block(); ok {
			return &tree.Ruleset{
				Base:          p.base(start),
				Selectors:     selectors,
				Rules:         rules,
				StrictImports: p.strictImports,
			}
		}
	}
	p.restore(start)
	return nil
}

// rule parses a property or variable declaration
func (p *Parser) rule() tree.Node {
	if c := p.at(0); c == '.' || c == '#' || c == '&' {
		return nil
	}
	start := p.checkpoint()

	name := p.ruleName()
	if name == "" {
		return nil
	}

	var value tree.Node
	if p.compress || name[0] == '@' {
		value = p.matchAny((*Parser).value, (*Parser).anonymousValue)
	} else {
		value = p.matchAny((*Parser).anonymousValue, (*Parser).value)
	}
	important := p.important()

	if value != nil && p.end() {
		return &tree.Rule{
			Base:      p.base(start),
			Name:      name,
			Value:     value,
			Important: important,
			Variable:  name[0] == '@',
		}
	}
	p.restore(start)
	return nil
}

// ruleName matches `@name:` or `property:` and returns the name
func (p *Parser) ruleName() string {
	if p.peekChar('@') {
		if m := p.match(reVariableDef); m != nil {
			return m[1]
		}
		return ""
	}
	if m := p.match(reProperty); m != nil {
		return m[1]
	}
	return ""
}

// anonymousValue is the shortcut for plain values that run up to a ';'
// with no LESS syntax in them. The ';' is left for the caller. A value that
// is exactly one keyword, color or dimension is returned as that entity.
func (p *Parser) anonymousValue() tree.Node {
	m := reAnonValue.FindStringSubmatch(p.input[p.pos:])
	if m == nil {
		return nil
	}
	start := p.checkpoint()
	text := strings.TrimRight(m[1], " \t\n\v\f\r")
	end := int(start) + len(m[0]) - 1

	if text != "" {
		if n := p.matchAny((*Parser).dimension, (*Parser).color, (*Parser).keyword); n != nil && n.Pos().End == int(start)+len(text) {
			p.skipWhitespace(end - p.pos)
			return n
		}
		p.restore(start)
	}

	p.pos = int(start) + len(text)
	node := &tree.Anonymous{Base: p.base(start), Value: text}
	node.Span.End = int(start) + len(text)
	p.skipWhitespace(end - p.pos)
	return node
}

func (p *Parser) important() bool {
	return p.peekChar('!') && p.match(reImportant) != nil
}

// end matches a statement terminator: ';' or an upcoming '}'
func (p *Parser) end() bool {
	return p.matchChar(';') || p.peekChar('}')
}

func (p *Parser) comment() tree.Node {
	if !p.peekChar('/') {
		return nil
	}
	start := p.checkpoint()
	if p.peekCharAt('/', 1) {
		text, _ := p.matchText(reLineComment)
		return &tree.Comment{Base: p.base(start), Value: text, Silent: true}
	}
	if text, ok := p.matchText(reBlockComment); ok {
		return &tree.Comment{Base: p.base(start), Value: text}
	}
	return nil
}
