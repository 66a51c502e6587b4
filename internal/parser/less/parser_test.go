package less_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"bennypowers.dev/lessls/internal/parser/less"
	"bennypowers.dev/lessls/internal/parser/less/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string, opts ...less.Option) *tree.Ruleset {
	t.Helper()
	root, err := less.Parse(src, opts...)
	require.NoError(t, err, "parse %q", src)
	require.NotNil(t, root)
	return root
}

func parseError(t *testing.T, src string, opts ...less.Option) *less.ParseError {
	t.Helper()
	root, err := less.Parse(src, opts...)
	require.Error(t, err, "parse %q should fail", src)
	assert.Nil(t, root, "no partial tree on failure")
	var perr *less.ParseError
	require.True(t, errors.As(err, &perr), "error should be a *ParseError")
	return perr
}

func TestParseRulesetWithRuleAndMixinCall(t *testing.T) {
	root := parse(t, ".box { color: red; .mixin(1px, 2px); }")

	assert.True(t, root.Root)
	assert.Empty(t, root.Selectors, "only the root has no selectors")
	require.Len(t, root.Rules, 1)

	rs, ok := root.Rules[0].(*tree.Ruleset)
	require.True(t, ok, "expected a Ruleset, got %T", root.Rules[0])
	require.Len(t, rs.Selectors, 1)
	require.Len(t, rs.Selectors[0].Elements, 1)
	assert.Equal(t, ".box", rs.Selectors[0].Elements[0].Value.(*tree.Anonymous).Value)
	require.Len(t, rs.Rules, 2)

	rule, ok := rs.Rules[0].(*tree.Rule)
	require.True(t, ok)
	assert.Equal(t, "color", rule.Name)
	assert.False(t, rule.Variable)
	color, ok := rule.Value.(*tree.Color)
	require.True(t, ok, "expected a Color, got %T", rule.Value)
	assert.Equal(t, "red", color.Keyword)

	call, ok := rs.Rules[1].(*tree.MixinCall)
	require.True(t, ok, "expected a MixinCall, got %T", rs.Rules[1])
	require.Len(t, call.Elements, 1)
	assert.Equal(t, ".mixin", call.Elements[0].Value.(*tree.Anonymous).Value)
	require.Len(t, call.Args, 2)
	for i, want := range []string{"1", "2"} {
		expr := call.Args[i].Value.(*tree.Expression)
		require.Len(t, expr.Values, 1)
		dim, ok := expr.Values[0].(*tree.Dimension)
		require.True(t, ok)
		assert.Equal(t, want, dim.Value)
		assert.Equal(t, "px", dim.Unit)
		assert.Empty(t, call.Args[i].Name)
	}

	assert.Equal(t, ".box {\n  color: red;\n  .mixin(1px, 2px);\n}\n", tree.String(root))
}

func TestParseMedia(t *testing.T) {
	root := parse(t, "@media (min-width: 768px) { a { color: blue; } }")
	require.Len(t, root.Rules, 1)

	media, ok := root.Rules[0].(*tree.Media)
	require.True(t, ok, "expected Media, got %T", root.Rules[0])
	require.Len(t, media.Features, 1)

	paren, ok := media.Features[0].(*tree.Paren)
	require.True(t, ok, "feature should be a Paren, got %T", media.Features[0])
	rule, ok := paren.Value.(*tree.Rule)
	require.True(t, ok)
	assert.Equal(t, "min-width", rule.Name)
	assert.True(t, rule.Inline)
	assert.Equal(t, "768px", tree.String(rule.Value))

	require.Len(t, media.Rules, 1)
	_, ok = media.Rules[0].(*tree.Ruleset)
	assert.True(t, ok)
}

func TestParseMediaQueryList(t *testing.T) {
	root := parse(t, "@media screen and (max-width: 100px), print { }")
	media := root.Rules[0].(*tree.Media)
	require.Len(t, media.Features, 2)

	expr, ok := media.Features[0].(*tree.Expression)
	require.True(t, ok)
	require.Len(t, expr.Values, 3)
	assert.Equal(t, "screen", expr.Values[0].(*tree.Keyword).Value)
	assert.Equal(t, "and", expr.Values[1].(*tree.Keyword).Value)
	assert.Equal(t, "print", media.Features[1].(*tree.Keyword).Value)
	assert.NotNil(t, media.Rules)
}

func TestParseEmptyInputs(t *testing.T) {
	for _, src := range []string{"", " \n\t", ";;", "\uFEFF"} {
		root := parse(t, src)
		assert.Empty(t, root.Rules, "input %q", src)
	}
}

func TestParseMixedDelimitersFails(t *testing.T) {
	for _, src := range []string{
		".m(1, @b: 2; 3);",
		".box { .m(1, @b: 2; 3); }",
		".m(@a, @rest...;) { }",
	} {
		perr := parseError(t, src)
		assert.ErrorIs(t, perr, less.ErrMixedDelimiters, "input %q", src)
		assert.Equal(t, "cannot mix ; and , as delimiter types", perr.Message)
	}
}

func TestParseExtendAloneFails(t *testing.T) {
	perr := parseError(t, ":extend(.a) { color: red; }")
	assert.ErrorIs(t, perr, less.ErrExtendAlone)
	assert.Contains(t, perr.Message, "extend must be used to extend a selector")
	assert.Equal(t, 0, perr.Index)
}

func TestParseSemicolonArguments(t *testing.T) {
	root := parse(t, ".m(1, 2; 3);")
	call := root.Rules[0].(*tree.MixinCall)
	require.Len(t, call.Args, 2)

	first, ok := call.Args[0].Value.(*tree.Value)
	require.True(t, ok, "comma run before ';' collapses into a Value")
	assert.Len(t, first.Values, 2)
	assert.Equal(t, "3", tree.String(call.Args[1].Value))
	assert.Equal(t, ".m(1, 2; 3);", tree.String(call))
}

func TestParseNamedArguments(t *testing.T) {
	root := parse(t, ".m(@a: 1px; @b: red);")
	call := root.Rules[0].(*tree.MixinCall)
	require.Len(t, call.Args, 2)
	assert.Equal(t, "@a", call.Args[0].Name)
	assert.Equal(t, "1px", tree.String(call.Args[0].Value))
	assert.Equal(t, "@b", call.Args[1].Name)
}

func TestParseMixinCallPath(t *testing.T) {
	root := parse(t, "#ns > .m() !important;")
	call := root.Rules[0].(*tree.MixinCall)
	require.Len(t, call.Elements, 2)
	assert.Equal(t, "", call.Elements[0].Combinator.Value)
	assert.Equal(t, ">", call.Elements[1].Combinator.Value)
	assert.True(t, call.Important)
	assert.Empty(t, call.Args)
}

func TestParseMixinDefinition(t *testing.T) {
	root := parse(t, ".m(@a; @b: 2) when (@a > 1), not (@b) { width: @a; }")
	def, ok := root.Rules[0].(*tree.MixinDefinition)
	require.True(t, ok, "expected MixinDefinition, got %T", root.Rules[0])

	assert.Equal(t, ".m", def.Name)
	require.Len(t, def.Params, 2)
	assert.Equal(t, "@a", def.Params[0].Name)
	assert.Nil(t, def.Params[0].Value)
	assert.Equal(t, "@b", def.Params[1].Name)
	assert.Equal(t, "2", tree.String(def.Params[1].Value))
	assert.False(t, def.Variadic)

	or, ok := def.Condition.(*tree.Condition)
	require.True(t, ok)
	assert.Equal(t, "or", or.Op)
	gt := or.Left.(*tree.Condition)
	assert.Equal(t, ">", gt.Op)
	assert.False(t, gt.Negate)
	truthy := or.Right.(*tree.Condition)
	assert.True(t, truthy.Negate)
	assert.Equal(t, "=", truthy.Op)
	assert.Equal(t, "true", truthy.Right.(*tree.Keyword).Value)

	require.Len(t, def.Rules, 1)
	assert.Equal(t, "width", def.Rules[0].(*tree.Rule).Name)
}

func TestParseMixinGuardAnd(t *testing.T) {
	root := parse(t, ".m(@a) when (@a >= 1) and (@a =< 10) { }")
	def := root.Rules[0].(*tree.MixinDefinition)
	and := def.Condition.(*tree.Condition)
	assert.Equal(t, "and", and.Op)
	assert.Equal(t, ">=", and.Left.(*tree.Condition).Op)
	assert.Equal(t, "=<", and.Right.(*tree.Condition).Op)
}

func TestParseVariadicMixin(t *testing.T) {
	root := parse(t, ".m(@a, @rest...) { } .n(...) { }")
	require.Len(t, root.Rules, 2)

	m := root.Rules[0].(*tree.MixinDefinition)
	assert.True(t, m.Variadic)
	require.Len(t, m.Params, 2)
	assert.Equal(t, tree.MixinArg{Name: "@rest", Variadic: true}, m.Params[1])
	assert.NotNil(t, m.Rules)

	n := root.Rules[1].(*tree.MixinDefinition)
	assert.True(t, n.Variadic)
	assert.Equal(t, []tree.MixinArg{{Variadic: true}}, n.Params)
}

func TestParseMixinPatternParams(t *testing.T) {
	root := parse(t, ".m(dark; @color) { }")
	def := root.Rules[0].(*tree.MixinDefinition)
	require.Len(t, def.Params, 2)
	assert.Equal(t, "dark", def.Params[0].Value.(*tree.Keyword).Value)
	assert.Equal(t, "@color", def.Params[1].Name)
}

func TestParseGuardErrors(t *testing.T) {
	perr := parseError(t, ".m() when (@a >) { }")
	assert.Equal(t, "unexpected expression", perr.Message)
	assert.ErrorIs(t, perr, less.ErrUnexpected)

	perr = parseError(t, ".m() when () { }")
	assert.Equal(t, "conditions", perr.Expected)
}

func TestParseRuleValues(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		check func(t *testing.T, r *tree.Rule)
	}{
		{
			name: "anonymous shortcut",
			src:  "a { border: 1px solid black; }",
			check: func(t *testing.T, r *tree.Rule) {
				anon, ok := r.Value.(*tree.Anonymous)
				require.True(t, ok, "got %T", r.Value)
				assert.Equal(t, "1px solid black", anon.Value)
			},
		},
		{
			name: "single dimension",
			src:  "a { width: 10px; }",
			check: func(t *testing.T, r *tree.Rule) {
				assert.Equal(t, "10", r.Value.(*tree.Dimension).Value)
			},
		},
		{
			name: "hex color",
			src:  "a { color: #abc; }",
			check: func(t *testing.T, r *tree.Rule) {
				assert.Equal(t, "abc", r.Value.(*tree.Color).Hex)
			},
		},
		{
			name: "variables parse fully",
			src:  "@w: 10px !important;",
			check: func(t *testing.T, r *tree.Rule) {
				assert.True(t, r.Variable)
				assert.True(t, r.Important)
				_, ok := r.Value.(*tree.Value)
				assert.True(t, ok)
			},
		},
		{
			name: "values with operators parse fully",
			src:  "a { width: @w * 2; }",
			check: func(t *testing.T, r *tree.Rule) {
				v := r.Value.(*tree.Value)
				require.Len(t, v.Values, 1)
				assert.Equal(t, "@w * 2", tree.String(v))
			},
		},
		{
			name: "comma separated list",
			src:  "a { font-family: \"Helvetica Neue\", Arial, sans-serif; }",
			check: func(t *testing.T, r *tree.Rule) {
				v := r.Value.(*tree.Value)
				assert.Len(t, v.Values, 3)
			},
		},
		{
			name: "star hack property",
			src:  "a { *zoom: 1; }",
			check: func(t *testing.T, r *tree.Rule) {
				assert.Equal(t, "*zoom", r.Name)
			},
		},
		{
			name: "last rule without semicolon",
			src:  "a { color: @c }",
			check: func(t *testing.T, r *tree.Rule) {
				assert.Equal(t, "@c", tree.String(r.Value))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parse(t, tt.src)
			require.NotEmpty(t, root.Rules)
			r, ok := root.Rules[0].(*tree.Rule)
			if !ok {
				rs := root.Rules[0].(*tree.Ruleset)
				require.NotEmpty(t, rs.Rules)
				r, ok = rs.Rules[0].(*tree.Rule)
			}
			require.True(t, ok)
			tt.check(t, r)
		})
	}
}

func TestParseCompressPrefersFullValues(t *testing.T) {
	root := parse(t, "a { color: red !important; }", less.WithCompress(true))
	r := root.Rules[0].(*tree.Ruleset).Rules[0].(*tree.Rule)
	assert.True(t, r.Important)
	_, ok := r.Value.(*tree.Value)
	assert.True(t, ok)

	root = parse(t, "a { color: red !important; }")
	r = root.Rules[0].(*tree.Ruleset).Rules[0].(*tree.Rule)
	assert.False(t, r.Important)
	assert.Equal(t, "red !important", r.Value.(*tree.Anonymous).Value)
}

func TestParseSelectors(t *testing.T) {
	t.Run("combinators", func(t *testing.T) {
		root := parse(t, "ul > li + li ~ p a { }")
		sel := root.Rules[0].(*tree.Ruleset).Selectors[0]
		var combs []string
		for _, e := range sel.Elements {
			combs = append(combs, e.Combinator.Value)
		}
		assert.Equal(t, []string{"", ">", "+", "~", " "}, combs)
	})

	t.Run("selector list", func(t *testing.T) {
		root := parse(t, "h1, /* c */ h2 { }")
		assert.Len(t, root.Rules[0].(*tree.Ruleset).Selectors, 2)
	})

	t.Run("attribute", func(t *testing.T) {
		root := parse(t, `input[type="text"] { }`)
		sel := root.Rules[0].(*tree.Ruleset).Selectors[0]
		require.Len(t, sel.Elements, 2)
		attr := sel.Elements[1].Value.(*tree.Attribute)
		assert.Equal(t, "type", attr.Key.(*tree.Anonymous).Value)
		assert.Equal(t, "=", attr.Op)
		assert.Equal(t, `"text"`, attr.Value.(*tree.Quoted).Raw)
	})

	t.Run("interpolation", func(t *testing.T) {
		root := parse(t, ".@{name}-suffix { }")
		sel := root.Rules[0].(*tree.Ruleset).Selectors[0]
		require.Len(t, sel.Elements, 3)
		assert.Equal(t, ".", sel.Elements[0].Value.(*tree.Anonymous).Value)
		assert.Equal(t, "@name", sel.Elements[1].Value.(*tree.Variable).Name)
		assert.Equal(t, "-suffix", sel.Elements[2].Value.(*tree.Anonymous).Value)
	})

	t.Run("pseudo classes and parent", func(t *testing.T) {
		root := parse(t, "a { &:hover { } }")
		inner := root.Rules[0].(*tree.Ruleset).Rules[0].(*tree.Ruleset)
		sel := inner.Selectors[0]
		require.Len(t, sel.Elements, 2)
		assert.Equal(t, "&", sel.Elements[0].Value.(*tree.Anonymous).Value)
		assert.Equal(t, ":hover", sel.Elements[1].Value.(*tree.Anonymous).Value)
	})

	t.Run("extend on a selector", func(t *testing.T) {
		root := parse(t, ".a:extend(.b all) { }")
		sel := root.Rules[0].(*tree.Ruleset).Selectors[0]
		require.Len(t, sel.Extends, 1)
		assert.Equal(t, "all", sel.Extends[0].Option)
		assert.Equal(t, ".a:extend(.b all)", tree.String(sel))
	})
}

func TestParseExtendStatement(t *testing.T) {
	root := parse(t, ".a { &:extend(.b all, .c); }")
	rs := root.Rules[0].(*tree.Ruleset)
	require.Len(t, rs.Rules, 2, "one Extend per target")

	first := rs.Rules[0].(*tree.Extend)
	assert.Equal(t, "all", first.Option)
	assert.Equal(t, ".b", tree.String(first.Selector))
	second := rs.Rules[1].(*tree.Extend)
	assert.Empty(t, second.Option)
}

func TestParseDirectives(t *testing.T) {
	t.Run("block directive", func(t *testing.T) {
		root := parse(t, "@font-face { font-family: foo; }")
		d := root.Rules[0].(*tree.Directive)
		assert.Equal(t, "@font-face", d.Name)
		assert.Len(t, d.Rules, 1)
	})

	t.Run("vendor prefixed keyframes", func(t *testing.T) {
		root := parse(t, "@-webkit-keyframes spin { 0% { top: 0; } 12.5% { top: 1px; } }")
		d := root.Rules[0].(*tree.Directive)
		assert.Equal(t, "@-webkit-keyframes spin", d.Name)
		require.Len(t, d.Rules, 2)
		frame := d.Rules[1].(*tree.Ruleset)
		assert.Equal(t, "12.5%", frame.Selectors[0].Elements[0].Value.(*tree.Anonymous).Value)
	})

	t.Run("entity directive", func(t *testing.T) {
		root := parse(t, `@charset "utf-8";`)
		d := root.Rules[0].(*tree.Directive)
		assert.Nil(t, d.Rules)
		assert.Equal(t, `"utf-8"`, d.Value.(*tree.Quoted).Raw)
	})

	t.Run("namespace takes an expression", func(t *testing.T) {
		root := parse(t, "@namespace svg url(http://www.w3.org/2000/svg);")
		d := root.Rules[0].(*tree.Directive)
		expr := d.Value.(*tree.Expression)
		assert.Len(t, expr.Values, 2)
	})

	t.Run("page with identifier", func(t *testing.T) {
		root := parse(t, "@page :first { margin: 1in; }")
		assert.Equal(t, "@page :first", root.Rules[0].(*tree.Directive).Name)
	})
}

func TestParseImport(t *testing.T) {
	t.Run("options invert css and once", func(t *testing.T) {
		root := parse(t, `@import (css, once) url("foo.css") screen;`)
		imp := root.Rules[0].(*tree.Import)
		require.NotNil(t, imp.Options.Less)
		assert.False(t, *imp.Options.Less)
		require.NotNil(t, imp.Options.Multiple)
		assert.False(t, *imp.Options.Multiple)
		_, ok := imp.Path.(*tree.URL)
		assert.True(t, ok)
		require.NotNil(t, imp.Features)
		assert.Equal(t, "screen", tree.String(imp.Features))
	})

	t.Run("plain path", func(t *testing.T) {
		root := parse(t, `@import "lib";`)
		imp := root.Rules[0].(*tree.Import)
		assert.Nil(t, imp.Options.Less)
		assert.Nil(t, imp.Options.Multiple)
		assert.Nil(t, imp.Features)
		assert.Equal(t, "lib", imp.Path.(*tree.Quoted).Value)
		assert.Equal(t, `@import "lib";`, tree.String(imp))
	})

	t.Run("less and multiple", func(t *testing.T) {
		root := parse(t, `@import (less, multiple) "a.css";`)
		imp := root.Rules[0].(*tree.Import)
		assert.True(t, *imp.Options.Less)
		assert.True(t, *imp.Options.Multiple)
	})
}

func TestParseComments(t *testing.T) {
	root := parse(t, "// line\n/* block */\na { }")
	require.Len(t, root.Rules, 3)

	line := root.Rules[0].(*tree.Comment)
	assert.True(t, line.Silent)
	assert.Equal(t, "// line", line.Value)

	block := root.Rules[1].(*tree.Comment)
	assert.False(t, block.Silent)
	assert.Equal(t, "/* block */\n", block.Value)
}

func TestParseFileInfoAndStrictImports(t *testing.T) {
	fi := &tree.FileInfo{Filename: "styles/main.less"}
	root := parse(t, "a { b: c; }", less.WithFileInfo(fi), less.WithStrictImports(true))

	assert.True(t, root.StrictImports)
	tree.Walk(root, func(n tree.Node) bool {
		assert.Same(t, fi, n.FileInfo(), "%s should carry the file info", n.Kind())
		return true
	})
	assert.True(t, root.Rules[0].(*tree.Ruleset).StrictImports)
}

func TestParseNormalizesInput(t *testing.T) {
	root := parse(t, "\uFEFFa {\r\n  b: c;\r\n}")
	rs := root.Rules[0].(*tree.Ruleset)
	assert.Equal(t, 0, rs.Index())
	assert.Equal(t, 6, rs.Rules[0].Index())
}

func TestParseErrorPosition(t *testing.T) {
	perr := parseError(t, "a {\n  b: (1 2);\n}")
	assert.Equal(t, "expected ')' got '2'", perr.Message)
	assert.Equal(t, "')'", perr.Expected)
	assert.Equal(t, "'2'", perr.Found)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, 9, perr.Column)
	assert.Equal(t, "2:9: expected ')' got '2'", perr.Error())
}

func TestParseErrorFilename(t *testing.T) {
	_, err := less.Parse("a { b: (1 2); }", less.WithFileInfo(&tree.FileInfo{Filename: "x.less"}))
	require.Error(t, err)
	assert.Equal(t, "x.less:1:11: expected ')' got '2'", err.Error())
}

func TestParseUnrecognisedInput(t *testing.T) {
	perr := parseError(t, "a { color: red; }\n}")
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, 1, perr.Column)
	assert.ErrorIs(t, perr, less.ErrUnexpected)
}

func TestParseMaxDepth(t *testing.T) {
	nested := "a { b { c { d { e { f { } } } } } }"
	_, err := less.Parse(nested)
	require.NoError(t, err)

	perr := parseError(t, nested, less.WithMaxDepth(4))
	assert.ErrorIs(t, perr, less.ErrMaxDepth)

	perr = parseError(t, "@a: ((((((((1))))))));", less.WithMaxDepth(4))
	assert.ErrorIs(t, perr, less.ErrMaxDepth)
}

func TestParseNestedUnclosedCalls(t *testing.T) {
	src := "a { b: " + strings.Repeat("f(", 30) + " }"

	done := make(chan error, 1)
	go func() {
		_, err := less.Parse(src)
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, less.ErrUnexpected)
		assert.Contains(t, err.Error(), "unrecognised input")
	case <-time.After(5 * time.Second):
		t.Fatal("parsing nested unclosed calls did not finish")
	}
}

func TestParseNestedCalls(t *testing.T) {
	const depth = 30
	src := "@a: " + strings.Repeat("f(", depth) + "1" + strings.Repeat(")", depth) + ";"
	root := parse(t, src)

	var calls []*tree.Call
	tree.Walk(root, func(n tree.Node) bool {
		if c, ok := n.(*tree.Call); ok {
			calls = append(calls, c)
		}
		return true
	})
	require.Len(t, calls, depth)
	for i, c := range calls {
		assert.Equal(t, "f", c.Name)
		assert.Equal(t, 4+2*i, c.Index(), "call %d", i)
		assert.Equal(t, len(src)-1-i, c.Span.End, "call %d", i)
	}
}

func TestParseErrorFoundMultibyte(t *testing.T) {
	perr := parseError(t, "a { b: (1 é); }")
	assert.Equal(t, "'é'", perr.Found)
	assert.Equal(t, "expected ')' got 'é'", perr.Message)
}

func TestParseBacktracksAmbiguousPrefixes(t *testing.T) {
	// a property-looking selector with a block is a ruleset
	root := parse(t, "a:hover { color: red; }")
	_, ok := root.Rules[0].(*tree.Ruleset)
	assert.True(t, ok, "got %T", root.Rules[0])

	// a definition-looking call without a block is a call
	root = parse(t, `.mixin("@{a}");`)
	_, ok = root.Rules[0].(*tree.MixinCall)
	assert.True(t, ok, "got %T", root.Rules[0])
}
