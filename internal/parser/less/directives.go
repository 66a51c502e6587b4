package less

import (
	"strings"

	"bennypowers.dev/lessls/internal/parser/less/tree"
)

type directiveKind int

const (
	directiveEntity     directiveKind = iota // @name entity;
	directiveExpression                      // @name expression;
	directiveBlock                           // @name { ... }
	directiveNamedBlock                      // @name identifier { ... }
)

var directiveKinds = map[string]directiveKind{
	"@font-face":           directiveBlock,
	"@viewport":            directiveBlock,
	"@top-left":            directiveBlock,
	"@top-left-corner":     directiveBlock,
	"@top-center":          directiveBlock,
	"@top-right":           directiveBlock,
	"@top-right-corner":    directiveBlock,
	"@bottom-left":         directiveBlock,
	"@bottom-left-corner":  directiveBlock,
	"@bottom-center":       directiveBlock,
	"@bottom-right":        directiveBlock,
	"@bottom-right-corner": directiveBlock,
	"@left-top":            directiveBlock,
	"@left-middle":         directiveBlock,
	"@left-bottom":         directiveBlock,
	"@right-top":           directiveBlock,
	"@right-middle":        directiveBlock,
	"@right-bottom":        directiveBlock,
	"@page":                directiveNamedBlock,
	"@document":            directiveNamedBlock,
	"@supports":            directiveNamedBlock,
	"@keyframes":           directiveNamedBlock,
	"@namespace":           directiveExpression,
}

// unvendored strips a vendor prefix: @-webkit-keyframes becomes @keyframes
func unvendored(name string) string {
	if len(name) > 2 && name[1] == '-' {
		if i := strings.IndexByte(name[2:], '-'); i >= 0 {
			return "@" + name[2+i+1:]
		}
	}
	return name
}

// directive matches @import, @media and the other at-rules
func (p *Parser) directive() tree.Node {
	if !p.peekChar('@') {
		return nil
	}
	if n := p.matchAny((*Parser).importRule, (*Parser).media); n != nil {
		return n
	}

	start := p.checkpoint()
	name, ok := p.matchText(reAtName)
	if !ok {
		return nil
	}

	kind := directiveKinds[unvendored(name)]
	if kind == directiveNamedBlock {
		ident, _ := p.matchText(reIdentifier)
		if ident = strings.TrimSpace(ident); ident != "" {
			name += " " + ident
		}
	}

	switch kind {
	case directiveBlock, directiveNamedBlock:
		if rules, ok := p.block(); ok {
			return &tree.Directive{Base: p.base(start), Name: name, Rules: rules}
		}
	default:
		var value tree.Node
		if kind == directiveExpression {
			value = p.expression()
		} else {
			value = p.entity()
		}
		if value != nil && p.matchChar(';') {
			return &tree.Directive{Base: p.base(start), Name: name, Value: value}
		}
	}

	p.restore(start)
	return nil
}

// importRule matches `@import (options) "path" media;`
func (p *Parser) importRule() tree.Node {
	start := p.checkpoint()
	if p.match(reImport) == nil {
		return nil
	}

	options := p.importOptions()
	path := p.matchAny((*Parser).quoted, (*Parser).url)
	if path != nil {
		featStart := p.checkpoint()
		features := p.mediaFeatures()
		var value *tree.Value
		if len(features) > 0 {
			value = &tree.Value{Base: p.base(featStart), Values: features}
		}
		if p.matchChar(';') {
			return &tree.Import{Base: p.base(start), Path: path, Features: value, Options: options}
		}
	}

	p.restore(start)
	return nil
}

// importOptions matches the parenthesised option list. css and once are
// stored as false values of Less and Multiple.
func (p *Parser) importOptions() tree.ImportOptions {
	var opts tree.ImportOptions
	if !p.matchChar('(') {
		return opts
	}
	for {
		opt, ok := p.matchText(reImportOption)
		if !ok {
			break
		}
		switch opt {
		case "less":
			opts.Less = tree.Bool(true)
		case "css":
			opts.Less = tree.Bool(false)
		case "multiple":
			opts.Multiple = tree.Bool(true)
		case "once":
			opts.Multiple = tree.Bool(false)
		}
		if !p.matchChar(',') {
			break
		}
	}
	p.expectChar(')')
	return opts
}

// mediaFeature matches a run of keywords and parenthesised tests such as
// `screen and (min-width: 768px)`. A single node is returned unwrapped.
func (p *Parser) mediaFeature() tree.Node {
	start := p.checkpoint()
	var nodes []tree.Node
	for {
		if k := p.keyword(); k != nil {
			nodes = append(nodes, k)
			continue
		}
		parenStart := p.checkpoint()
		if !p.matchChar('(') {
			break
		}
		ruleStart := p.checkpoint()
		prop := ""
		if m := p.match(reProperty); m != nil {
			prop = m[1]
		}
		value := p.value()
		if value == nil || !p.matchChar(')') {
			p.restore(start)
			return nil
		}
		var inner tree.Node = value
		if prop != "" {
			r := &tree.Rule{Base: p.base(ruleStart), Name: prop, Value: value, Inline: true}
			// the rule ends at its value, not at ')'
			r.Span.End = value.Pos().End
			inner = r
		}
		nodes = append(nodes, &tree.Paren{Base: p.base(parenStart), Value: inner})
	}

	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return nodes[0]
	}
	return &tree.Expression{Base: p.base(start), Values: nodes}
}

// mediaFeatures matches comma separated features or variables
func (p *Parser) mediaFeatures() []tree.Node {
	var features []tree.Node
	for {
		f := p.matchAny((*Parser).mediaFeature, (*Parser).variable)
		if f == nil {
			break
		}
		features = append(features, f)
		if !p.matchChar(',') {
			break
		}
	}
	return features
}

func (p *Parser) media() tree.Node {
	start := p.checkpoint()
	if p.match(reMedia) == nil {
		return nil
	}
	features := p.mediaFeatures()
	rules, ok := p.block()
	if !ok {
		p.restore(start)
		return nil
	}
	return &tree.Media{Base: p.base(start), Features: features, Rules: rules}
}
