package tree

// ToMap converts a tree into nested maps and slices suitable for
// encoding/json or yaml.v3. Every map has "kind", "start" and "end" keys;
// empty fields are omitted.
func ToMap(n Node) map[string]any {
	if n == nil {
		return nil
	}
	span := n.Pos()
	m := map[string]any{
		"kind":  n.Kind().String(),
		"start": span.Start,
		"end":   span.End,
	}
	set := func(key string, v any) {
		switch v := v.(type) {
		case string:
			if v == "" {
				return
			}
		case bool:
			if !v {
				return
			}
		case map[string]any:
			if v == nil {
				return
			}
		case []any:
			if len(v) == 0 {
				return
			}
		}
		m[key] = v
	}

	switch n := n.(type) {
	case *Keyword:
		set("value", n.Value)
	case *Color:
		set("hex", n.Hex)
		set("keyword", n.Keyword)
	case *Dimension:
		set("value", n.Value)
		set("unit", n.Unit)
	case *Quoted:
		set("raw", n.Raw)
		set("value", n.Value)
		set("escaped", n.Escaped)
	case *Variable:
		set("name", n.Name)
	case *URL:
		set("value", ToMap(n.Value))
	case *Call:
		set("name", n.Name)
		set("args", listToMaps(n.Args))
	case *Javascript:
		set("code", n.Code)
		set("escaped", n.Escaped)
	case *UnicodeDescriptor:
		set("value", n.Value)
	case *Assignment:
		set("key", n.Key)
		set("value", ToMap(n.Value))
	case *Anonymous:
		set("value", n.Value)
	case *Alpha:
		set("value", ToMap(n.Value))
	case *Expression:
		set("values", listToMaps(n.Values))
		set("parens", n.Parens)
	case *Operation:
		set("op", n.Op)
		set("operands", []any{ToMap(n.Operands[0]), ToMap(n.Operands[1])})
		set("spaced", n.IsSpaced)
	case *Negative:
		set("value", ToMap(n.Value))
	case *Paren:
		set("value", ToMap(n.Value))
	case *Value:
		set("values", listToMaps(n.Values))
	case *Condition:
		set("op", n.Op)
		set("left", ToMap(n.Left))
		set("right", ToMap(n.Right))
		set("negate", n.Negate)
	case *Combinator:
		set("value", n.Value)
	case *Element:
		if n.Combinator != nil {
			set("combinator", n.Combinator.Value)
		}
		set("value", ToMap(n.Value))
	case *Attribute:
		set("key", ToMap(n.Key))
		set("op", n.Op)
		set("value", ToMap(n.Value))
	case *Selector:
		set("elements", elementsToMaps(n.Elements))
		var exts []any
		for _, e := range n.Extends {
			exts = append(exts, ToMap(e))
		}
		set("extends", exts)
	case *Extend:
		if n.Selector != nil {
			set("selector", ToMap(n.Selector))
		}
		set("option", n.Option)
	case *Rule:
		set("name", n.Name)
		set("value", ToMap(n.Value))
		set("important", n.Important)
		set("variable", n.Variable)
		set("inline", n.Inline)
	case *Ruleset:
		var sels []any
		for _, s := range n.Selectors {
			sels = append(sels, ToMap(s))
		}
		set("selectors", sels)
		set("rules", listToMaps(n.Rules))
		set("root", n.Root)
		set("strictImports", n.StrictImports)
	case *MixinCall:
		set("elements", elementsToMaps(n.Elements))
		set("args", argsToMaps(n.Args))
		set("important", n.Important)
	case *MixinDefinition:
		set("name", n.Name)
		set("params", argsToMaps(n.Params))
		set("condition", ToMap(n.Condition))
		set("rules", listToMaps(n.Rules))
		set("variadic", n.Variadic)
	case *Directive:
		set("name", n.Name)
		set("value", ToMap(n.Value))
		set("rules", listToMaps(n.Rules))
	case *Media:
		set("features", listToMaps(n.Features))
		set("rules", listToMaps(n.Rules))
	case *Import:
		set("path", ToMap(n.Path))
		if n.Features != nil {
			set("features", ToMap(n.Features))
		}
		if n.Options.Less != nil {
			m["less"] = *n.Options.Less
		}
		if n.Options.Multiple != nil {
			m["multiple"] = *n.Options.Multiple
		}
	case *Comment:
		set("value", n.Value)
		set("silent", n.Silent)
	}
	return m
}

func listToMaps(nodes []Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ToMap(n))
	}
	return out
}

func elementsToMaps(elements []*Element) []any {
	out := make([]any, 0, len(elements))
	for _, e := range elements {
		out = append(out, ToMap(e))
	}
	return out
}

func argsToMaps(args []MixinArg) []any {
	out := make([]any, 0, len(args))
	for _, a := range args {
		arg := map[string]any{}
		if a.Name != "" {
			arg["name"] = a.Name
		}
		if a.Value != nil {
			arg["value"] = ToMap(a.Value)
		}
		if a.Variadic {
			arg["variadic"] = true
		}
		out = append(out, arg)
	}
	return out
}
