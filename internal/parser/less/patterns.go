package less

import "regexp"

// anchored compiles pat so that it only ever matches at the start of the
// text it is applied to. The parser always applies patterns to the input
// from the cursor onwards.
func anchored(pat string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + pat + `)`)
}

// Document level
var (
	reSpaceRun     = anchored(`\s+`)
	reSemicolonRun = anchored(`;+`)
	reNotBlockEnd  = anchored(`[^{]*\}`)
)

// Comments
var (
	reLineComment  = anchored(`//.*`)
	reBlockComment = anchored(`/\*(?:[^*]|\*+[^/*])*\*+/\n?`)
	reCommentStart = anchored(`/[/*]`)
)

// Entities
var (
	reQuoted      = anchored(`"((?:[^"\\\r\n]|\\.)*)"|'((?:[^'\\\r\n]|\\.)*)'`)
	reQuoteOpen   = anchored(`["']`)
	reKeyword     = anchored(`[_A-Za-z-][_A-Za-z0-9-]*`)
	reCallName    = anchored(`([\w-]+|%|progid:[\w.]+)\(`)
	reAssignKey   = anchored(`\w+\s?=`)
	reWord        = anchored(`\w+`)
	reURLOpen     = anchored(`url\(`)
	reURLRaw      = anchored(`(?:\\[()'"]|[^()'"])+`)
	reVariable    = anchored(`@@?[\w-]+`)
	reVarCurly    = anchored(`@\{([\w-]+)\}`)
	reHexColor    = anchored(`#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})`)
	reDimension   = anchored(`([+-]?\d*\.?\d+)(%|[a-z]+)?`)
	reUnicode     = anchored(`U\+[0-9a-fA-F?]+(?:-[0-9a-fA-F?]+)?`)
	reJavascript  = anchored("`([^`]*)`")
	reAlphaOpen   = anchored(`(?i:\(opacity=)`)
	reDigits      = anchored(`[0-9]+`)
	reImportant   = anchored(`! *important`)
	reAnonValue   = anchored(`([^@+/'"*` + "`" + `(;{}-]*);`)
	reVariableDef = anchored(`(@[\w-]+)\s*:`)
	reProperty    = anchored(`(\*?-?[_a-zA-Z0-9-]+)\s*:`)
)

// Operators
var (
	reSpacedAddOp = anchored(`[-+]\s+`)
	reCompareOp   = anchored(`>=|=<|[<=>]`)
	reNot         = anchored(`not`)
	reAnd         = anchored(`and`)
	reWhen        = anchored(`when`)
	reEllipsis    = anchored(`\.{3}`)
)

// Selectors
var (
	rePercentElem = anchored(`(?:\d+\.\d+|\d+)%`)
	reIdentElem   = anchored(`(?:[.#]?|:*)(?:[\w-]|[^\x00-\x9f]|\\(?:[A-Fa-f0-9]{1,6} ?|[^A-Fa-f0-9]))+`)
	reRawParens   = anchored(`\([^()@]+\)`)
	reInterpStart = anchored(`[.#]@`)
	reAttrKey     = anchored(`(?:[_A-Za-z0-9*-]*\|)?(?:[_A-Za-z0-9-]|\\.)+`)
	reAttrOp      = anchored(`[|~*$^]?=`)
	reAttrWord    = anchored(`[\w-]+`)
	reExtendRule  = anchored(`&:extend\(`)
	reExtend      = anchored(`:extend\(`)
	reExtendAll   = anchored(`all\s*[),]`)
	reAll         = anchored(`all`)
)

// Mixins
var (
	reMixinElem = anchored(`[#.](?:[\w-]|\\(?:[A-Fa-f0-9]{1,6} ?|[^A-Fa-f0-9]))+`)
	reMixinDef  = anchored(`([#.](?:[\w-]|\\(?:[A-Fa-f0-9]{1,6} ?|[^A-Fa-f0-9]))+)\s*\(`)
)

// Directives
var (
	reImport       = anchored(`@import?\s+`)
	reImportOption = anchored(`less|css|multiple|once`)
	reMedia        = anchored(`@media`)
	reAtName       = anchored(`@[a-z-]+`)
	reIdentifier   = anchored(`[^{]+`)
)
