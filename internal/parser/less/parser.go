// Package less parses LESS stylesheets into a concrete syntax tree.
//
// The parser is a single-pass backtracking recursive descent parser with no
// separate tokenizer. Each grammar rule matches characters or anchored
// patterns at the cursor and returns a node, or nil with the cursor restored.
// The first hard failure aborts the parse and is returned as a *ParseError.
package less

import (
	"strings"

	"bennypowers.dev/lessls/internal/parser/less/tree"
)

// Parser holds the state of one parse. It is not safe for concurrent use
// and is not reused between parses; call Parse.
type Parser struct {
	input  string
	pos    int
	tokEnd int
	depth  int

	// outcomes of call() by start offset, shared by operand and entity
	calls map[int]memo

	file          *tree.FileInfo
	compress      bool
	strictImports bool
	maxDepth      int
	colors        ColorLookup
}

// Normalize applies the input normalization done before parsing: CRLF line
// endings become LF and a leading byte order mark is dropped. Node offsets
// refer to the normalized text.
func Normalize(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return strings.TrimPrefix(src, "\uFEFF")
}

func newParser(src string, opts ...Option) *Parser {
	p := &Parser{
		input:    Normalize(src),
		calls:    make(map[int]memo),
		maxDepth: DefaultMaxDepth,
		colors:   defaultColors,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src and returns the root ruleset
func Parse(src string, opts ...Option) (root *tree.Ruleset, err error) {
	p := newParser(src, opts...)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		b.err.locate(p.input)
		if p.file != nil {
			b.err.Filename = p.file.Filename
		}
		root, err = nil, b.err
	}()

	rules := p.document()
	if !p.eof() {
		p.failf("unrecognised input %s", p.describe())
	}

	root = &tree.Ruleset{
		Base:          tree.Base{Span: tree.Span{Start: 0, End: len(p.input)}, File: p.file},
		Rules:         rules,
		Root:          true,
		StrictImports: p.strictImports,
	}
	return root, nil
}
