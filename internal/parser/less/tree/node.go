package tree

// Kind identifies the concrete type of a Node
type Kind int

const (
	// Entities
	KindKeyword Kind = iota
	KindColor
	KindDimension
	KindQuoted
	KindVariable
	KindURL
	KindCall
	KindJavascript
	KindUnicodeDescriptor
	KindAssignment
	KindAnonymous
	KindAlpha

	// Structural
	KindExpression
	KindOperation
	KindNegative
	KindParen
	KindValue
	KindCondition

	// Selectors
	KindCombinator
	KindElement
	KindAttribute
	KindSelector
	KindExtend

	// Block level
	KindRule
	KindRuleset
	KindMixinCall
	KindMixinDefinition
	KindDirective
	KindMedia
	KindImport
	KindComment
)

var kindNames = [...]string{
	KindKeyword:           "Keyword",
	KindColor:             "Color",
	KindDimension:         "Dimension",
	KindQuoted:            "Quoted",
	KindVariable:          "Variable",
	KindURL:               "Url",
	KindCall:              "Call",
	KindJavascript:        "Javascript",
	KindUnicodeDescriptor: "UnicodeDescriptor",
	KindAssignment:        "Assignment",
	KindAnonymous:         "Anonymous",
	KindAlpha:             "Alpha",
	KindExpression:        "Expression",
	KindOperation:         "Operation",
	KindNegative:          "Negative",
	KindParen:             "Paren",
	KindValue:             "Value",
	KindCondition:         "Condition",
	KindCombinator:        "Combinator",
	KindElement:           "Element",
	KindAttribute:         "Attribute",
	KindSelector:          "Selector",
	KindExtend:            "Extend",
	KindRule:              "Rule",
	KindRuleset:           "Ruleset",
	KindMixinCall:         "MixinCall",
	KindMixinDefinition:   "MixinDefinition",
	KindDirective:         "Directive",
	KindMedia:             "Media",
	KindImport:            "Import",
	KindComment:           "Comment",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Span is a half-open byte range [Start, End) in the parsed source
type Span struct {
	Start int
	End   int
}

// FileInfo describes the file a tree was parsed from.
// The parser attaches it to every node and never looks inside.
type FileInfo struct {
	Filename         string
	CurrentDirectory string
	RootPath         string
	EntryPath        string
	URIRoot          string
}

// Node is implemented by every syntax tree node. The set of implementations
// is closed: use a type switch over the pointer types in this package.
type Node interface {
	Kind() Kind
	// Index is the byte offset where the construct began
	Index() int
	Pos() Span
	FileInfo() *FileInfo
	node()
}

// Base carries the position and file information shared by all nodes
type Base struct {
	Span Span
	File *FileInfo
}

func (b *Base) Index() int          { return b.Span.Start }
func (b *Base) Pos() Span           { return b.Span }
func (b *Base) FileInfo() *FileInfo { return b.File }
func (*Base) node()                 {}

// Keyword is a bare identifier such as `solid` or `border-collapse`
type Keyword struct {
	Base
	Value string
}

// Color is a hex color, or a keyword that names a color.
// Hex holds the digits without the leading '#'.
type Color struct {
	Base
	Hex     string
	Keyword string // source name when the color was written as a keyword
}

// Dimension is a number with an optional unit
type Dimension struct {
	Base
	Value string
	Unit  string
}

// Quoted is a string literal. Raw keeps the quotes, Value the content.
type Quoted struct {
	Base
	Raw     string
	Value   string
	Escaped bool // ~"..."
}

// Variable is a variable reference; Name includes the '@' sigil(s)
type Variable struct {
	Base
	Name string
}

// URL is url(...). Value is a *Quoted, *Variable or *Anonymous.
type URL struct {
	Base
	Value Node
}

// Call is a function call with its ordered arguments
type Call struct {
	Base
	Name string
	Args []Node
}

// Javascript is backtick-quoted inline script
type Javascript struct {
	Base
	Code    string
	Escaped bool
}

// UnicodeDescriptor is a unicode-range value such as U+0025-00FF
type UnicodeDescriptor struct {
	Base
	Value string
}

// Assignment is a key=value argument of filter-style calls
type Assignment struct {
	Base
	Key   string
	Value Node
}

// Anonymous is raw, unparsed text
type Anonymous struct {
	Base
	Value string
}

// Alpha is IE's alpha(opacity=N). Value is an *Anonymous or *Variable.
type Alpha struct {
	Base
	Value Node
}

// Expression is a whitespace separated run of entities and operations
type Expression struct {
	Base
	Values []Node
	Parens bool
}

// Operation is a binary arithmetic operation
type Operation struct {
	Base
	Op       string
	Operands [2]Node
	IsSpaced bool // whitespace preceded the operator
}

// Negative is a unary minus applied to its operand
type Negative struct {
	Base
	Value Node
}

// Paren wraps a value, a media feature rule, or a selector in parentheses
type Paren struct {
	Base
	Value Node
}

// Value is a comma separated list
type Value struct {
	Base
	Values []Node
}

// Condition is a mixin guard comparison. Op "and" and "or" combine two
// conditions held in Left and Right.
type Condition struct {
	Base
	Op     string
	Left   Node
	Right  Node
	Negate bool
}

// Combinator relates an element to the previous one: ">", "+", "~", "|",
// " " (descendant) or "" (none)
type Combinator struct {
	Base
	Value string
}

// Element is a single compound part of a selector. Value is an *Anonymous
// (tag, class, id, pseudo, "*", "&"...), *Attribute, *Paren or *Variable.
type Element struct {
	Base
	Combinator *Combinator
	Value      Node
}

// Attribute is an attribute selector. Key is an *Anonymous or *Variable;
// Value, when Op is set, is a *Quoted, *Anonymous or *Variable.
type Attribute struct {
	Base
	Key   Node
	Op    string
	Value Node
}

// Selector is a non-empty list of elements with the extends attached to it
type Selector struct {
	Base
	Elements []*Element
	Extends  []*Extend
}

// Extend asks the extend visitor to make Selector match wherever the
// enclosing selector matches. Option is "all" or empty.
type Extend struct {
	Base
	Selector *Selector
	Option   string
}

// Rule is a property or variable declaration
type Rule struct {
	Base
	Name      string
	Value     Node
	Important bool
	Variable  bool
	Inline    bool // media feature test, printed without ';'
}

// Ruleset is a selector list with a block. The document root is the only
// ruleset without selectors.
type Ruleset struct {
	Base
	Selectors     []*Selector
	Rules         []Node
	Root          bool
	StrictImports bool
}

// MixinArg is one argument of a mixin call or one parameter of a mixin
// definition
type MixinArg struct {
	Name     string
	Value    Node
	Variadic bool
}

// MixinCall invokes a mixin by its element path
type MixinCall struct {
	Base
	Elements  []*Element
	Args      []MixinArg
	Important bool
}

// MixinDefinition is a parameterised, optionally guarded mixin
type MixinDefinition struct {
	Base
	Name      string
	Params    []MixinArg
	Rules     []Node
	Condition Node
	Variadic  bool
}

// Directive is an at-rule with either a block (Rules) or a single Value
type Directive struct {
	Base
	Name  string
	Rules []Node
	Value Node
}

// Media is an @media block
type Media struct {
	Base
	Features []Node
	Rules    []Node
}

// ImportOptions holds the parenthesised @import options. A nil field was
// not given. (css) sets Less to false, (once) sets Multiple to false.
type ImportOptions struct {
	Less     *bool
	Multiple *bool
}

// Import is an @import statement
type Import struct {
	Base
	Path     Node
	Features *Value
	Options  ImportOptions
}

// Comment is a block comment, or a silent // line comment
type Comment struct {
	Base
	Value  string
	Silent bool
}

func (*Keyword) Kind() Kind           { return KindKeyword }
func (*Color) Kind() Kind             { return KindColor }
func (*Dimension) Kind() Kind         { return KindDimension }
func (*Quoted) Kind() Kind            { return KindQuoted }
func (*Variable) Kind() Kind          { return KindVariable }
func (*URL) Kind() Kind               { return KindURL }
func (*Call) Kind() Kind              { return KindCall }
func (*Javascript) Kind() Kind        { return KindJavascript }
func (*UnicodeDescriptor) Kind() Kind { return KindUnicodeDescriptor }
func (*Assignment) Kind() Kind        { return KindAssignment }
func (*Anonymous) Kind() Kind         { return KindAnonymous }
func (*Alpha) Kind() Kind             { return KindAlpha }
func (*Expression) Kind() Kind        { return KindExpression }
func (*Operation) Kind() Kind         { return KindOperation }
func (*Negative) Kind() Kind          { return KindNegative }
func (*Paren) Kind() Kind             { return KindParen }
func (*Value) Kind() Kind             { return KindValue }
func (*Condition) Kind() Kind         { return KindCondition }
func (*Combinator) Kind() Kind        { return KindCombinator }
func (*Element) Kind() Kind           { return KindElement }
func (*Attribute) Kind() Kind         { return KindAttribute }
func (*Selector) Kind() Kind          { return KindSelector }
func (*Extend) Kind() Kind            { return KindExtend }
func (*Rule) Kind() Kind              { return KindRule }
func (*Ruleset) Kind() Kind           { return KindRuleset }
func (*MixinCall) Kind() Kind         { return KindMixinCall }
func (*MixinDefinition) Kind() Kind   { return KindMixinDefinition }
func (*Directive) Kind() Kind         { return KindDirective }
func (*Media) Kind() Kind             { return KindMedia }
func (*Import) Kind() Kind            { return KindImport }
func (*Comment) Kind() Kind           { return KindComment }

// Bool returns a pointer to b, for ImportOptions
func Bool(b bool) *bool {
	return &b
}
