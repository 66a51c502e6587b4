package tree

import (
	"io"
	"strings"
)

// String renders n back to LESS source
func String(n Node) string {
	var p printer
	p.print(n)
	return p.buf.String()
}

// Fprint writes the LESS source form of n to w
func Fprint(w io.Writer, n Node) error {
	_, err := io.WriteString(w, String(n))
	return err
}

// Params renders a mixin argument or parameter list with its parentheses
func Params(args []MixinArg) string {
	var p printer
	p.write("(")
	p.args(args)
	p.write(")")
	return p.buf.String()
}

type printer struct {
	buf   strings.Builder
	depth int
}

func (p *printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *printer) print(n Node) {
	switch n := n.(type) {
	case nil:
	case *Keyword:
		p.write(n.Value)
	case *Color:
		if n.Keyword != "" {
			p.write(n.Keyword)
		} else {
			p.write("#" + n.Hex)
		}
	case *Dimension:
		p.write(n.Value + n.Unit)
	case *Quoted:
		if n.Escaped {
			p.write("~")
		}
		p.write(n.Raw)
	case *Variable:
		p.write(n.Name)
	case *URL:
		p.write("url(")
		p.print(n.Value)
		p.write(")")
	case *Call:
		p.write(n.Name + "(")
		p.list(n.Args, ", ")
		p.write(")")
	case *Javascript:
		if n.Escaped {
			p.write("~")
		}
		p.write("`" + n.Code + "`")
	case *UnicodeDescriptor:
		p.write(n.Value)
	case *Assignment:
		p.write(n.Key + "=")
		p.print(n.Value)
	case *Anonymous:
		p.write(n.Value)
	case *Alpha:
		p.write("alpha(opacity=")
		p.print(n.Value)
		p.write(")")
	case *Expression:
		if n.Parens {
			p.write("(")
		}
		p.list(n.Values, " ")
		if n.Parens {
			p.write(")")
		}
	case *Operation:
		p.print(n.Operands[0])
		if n.IsSpaced {
			p.write(" " + n.Op + " ")
		} else {
			p.write(n.Op)
		}
		p.print(n.Operands[1])
	case *Negative:
		p.write("-")
		p.print(n.Value)
	case *Paren:
		p.write("(")
		p.print(n.Value)
		p.write(")")
	case *Value:
		p.list(n.Values, ", ")
	case *Condition:
		p.condition(n)
	case *Combinator:
		p.write(n.Value)
	case *Element:
		p.element(n, false)
	case *Attribute:
		p.write("[")
		p.print(n.Key)
		p.write(n.Op)
		p.print(n.Value)
		p.write("]")
	case *Selector:
		p.selector(n)
	case *Extend:
		p.write("&:extend(")
		p.extendTarget(n)
		p.write(");")
	case *Rule:
		p.write(n.Name + ": ")
		p.print(n.Value)
		if n.Important {
			p.write(" !important")
		}
		if !n.Inline {
			p.write(";")
		}
	case *Ruleset:
		if n.Root {
			p.statements(n.Rules)
			return
		}
		for i, s := range n.Selectors {
			if i > 0 {
				p.write(", ")
			}
			p.selector(s)
		}
		p.write(" ")
		p.block(n.Rules)
	case *MixinCall:
		for i, e := range n.Elements {
			p.element(e, i == 0)
		}
		if len(n.Args) > 0 {
			p.write("(")
			p.args(n.Args)
			p.write(")")
		}
		if n.Important {
			p.write(" !important")
		}
		p.write(";")
	case *MixinDefinition:
		p.write(n.Name + "(")
		p.args(n.Params)
		p.write(")")
		if n.Condition != nil {
			p.write(" when ")
			p.print(n.Condition)
		}
		p.write(" ")
		p.block(n.Rules)
	case *Directive:
		p.write(n.Name)
		if n.Rules != nil {
			p.write(" ")
			p.block(n.Rules)
			return
		}
		p.write(" ")
		p.print(n.Value)
		p.write(";")
	case *Media:
		p.write("@media ")
		p.list(n.Features, ", ")
		p.write(" ")
		p.block(n.Rules)
	case *Import:
		p.write("@import ")
		p.importOptions(n.Options)
		p.print(n.Path)
		if n.Features != nil {
			p.write(" ")
			p.print(n.Features)
		}
		p.write(";")
	case *Comment:
		p.write(strings.TrimRight(n.Value, "\n"))
	}
}

func (p *printer) list(nodes []Node, sep string) {
	for i, n := range nodes {
		if i > 0 {
			p.write(sep)
		}
		p.print(n)
	}
}

func (p *printer) statements(nodes []Node) {
	for _, n := range nodes {
		p.write(strings.Repeat("  ", p.depth))
		p.print(n)
		p.write("\n")
	}
}

func (p *printer) block(rules []Node) {
	p.write("{\n")
	p.depth++
	p.statements(rules)
	p.depth--
	p.write(strings.Repeat("  ", p.depth) + "}")
}

func (p *printer) element(e *Element, first bool) {
	if e.Combinator != nil {
		switch c := e.Combinator.Value; c {
		case "":
		case " ":
			if !first {
				p.write(" ")
			}
		case "|":
			p.write(c)
		default:
			if first {
				p.write(c + " ")
			} else {
				p.write(" " + c + " ")
			}
		}
	}
	p.print(e.Value)
}

func (p *printer) selector(s *Selector) {
	for i, e := range s.Elements {
		p.element(e, i == 0)
	}
	if len(s.Extends) == 0 {
		return
	}
	p.write(":extend(")
	for i, ext := range s.Extends {
		if i > 0 {
			p.write(", ")
		}
		p.extendTarget(ext)
	}
	p.write(")")
}

func (p *printer) extendTarget(ext *Extend) {
	if ext.Selector != nil {
		p.selector(ext.Selector)
	}
	if ext.Option != "" {
		p.write(" " + ext.Option)
	}
}

func (p *printer) args(args []MixinArg) {
	sep := ", "
	for _, a := range args {
		if v, ok := a.Value.(*Value); ok && len(v.Values) > 1 {
			sep = "; "
			break
		}
	}
	for i, a := range args {
		if i > 0 {
			p.write(sep)
		}
		switch {
		case a.Variadic:
			p.write(a.Name + "...")
		case a.Name != "" && a.Value != nil:
			p.write(a.Name + ": ")
			p.print(a.Value)
		case a.Name != "":
			p.write(a.Name)
		default:
			p.print(a.Value)
		}
	}
}

func (p *printer) condition(c *Condition) {
	switch c.Op {
	case "and":
		p.print(c.Left)
		p.write(" and ")
		p.print(c.Right)
	case "or":
		p.print(c.Left)
		p.write(", ")
		p.print(c.Right)
	default:
		if c.Negate {
			p.write("not ")
		}
		p.write("(")
		p.print(c.Left)
		p.write(" " + c.Op + " ")
		p.print(c.Right)
		p.write(")")
	}
}

func (p *printer) importOptions(o ImportOptions) {
	var opts []string
	if o.Less != nil {
		if *o.Less {
			opts = append(opts, "less")
		} else {
			opts = append(opts, "css")
		}
	}
	if o.Multiple != nil {
		if *o.Multiple {
			opts = append(opts, "multiple")
		} else {
			opts = append(opts, "once")
		}
	}
	if len(opts) > 0 {
		p.write("(" + strings.Join(opts, ", ") + ") ")
	}
}
