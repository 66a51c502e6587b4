package tree

// Walk traverses the tree rooted at n depth-first, calling fn for each node
// before its children. If fn returns false the children of that node are
// skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	switch n := n.(type) {
	case *URL:
		Walk(n.Value, fn)
	case *Call:
		walkList(n.Args, fn)
	case *Assignment:
		Walk(n.Value, fn)
	case *Alpha:
		Walk(n.Value, fn)
	case *Expression:
		walkList(n.Values, fn)
	case *Operation:
		Walk(n.Operands[0], fn)
		Walk(n.Operands[1], fn)
	case *Negative:
		Walk(n.Value, fn)
	case *Paren:
		Walk(n.Value, fn)
	case *Value:
		walkList(n.Values, fn)
	case *Condition:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Element:
		if n.Combinator != nil {
			Walk(n.Combinator, fn)
		}
		Walk(n.Value, fn)
	case *Attribute:
		Walk(n.Key, fn)
		Walk(n.Value, fn)
	case *Selector:
		for _, e := range n.Elements {
			Walk(e, fn)
		}
		for _, e := range n.Extends {
			Walk(e, fn)
		}
	case *Extend:
		if n.Selector != nil {
			Walk(n.Selector, fn)
		}
	case *Rule:
		Walk(n.Value, fn)
	case *Ruleset:
		for _, s := range n.Selectors {
			Walk(s, fn)
		}
		walkList(n.Rules, fn)
	case *MixinCall:
		for _, e := range n.Elements {
			Walk(e, fn)
		}
		walkArgs(n.Args, fn)
	case *MixinDefinition:
		walkArgs(n.Params, fn)
		Walk(n.Condition, fn)
		walkList(n.Rules, fn)
	case *Directive:
		Walk(n.Value, fn)
		walkList(n.Rules, fn)
	case *Media:
		walkList(n.Features, fn)
		walkList(n.Rules, fn)
	case *Import:
		Walk(n.Path, fn)
		if n.Features != nil {
			Walk(n.Features, fn)
		}
	}
}

func walkList(nodes []Node, fn func(Node) bool) {
	for _, c := range nodes {
		Walk(c, fn)
	}
}

func walkArgs(args []MixinArg, fn func(Node) bool) {
	for _, a := range args {
		Walk(a.Value, fn)
	}
}
