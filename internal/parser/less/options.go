package less

import (
	"bennypowers.dev/lessls/internal/colors"
	"bennypowers.dev/lessls/internal/parser/less/tree"
)

// DefaultMaxDepth bounds grammar recursion when no WithMaxDepth option is given
const DefaultMaxDepth = 256

// ColorLookup resolves a keyword to hex digits (without '#') when it names a color
type ColorLookup func(name string) (hex string, ok bool)

// Option configures a parse
type Option func(*Parser)

// WithCompress makes rules try full value parsing before the anonymous
// value shortcut, as compressed output requires
func WithCompress(compress bool) Option {
	return func(p *Parser) {
		p.compress = compress
	}
}

// WithStrictImports sets the strict-imports flag on every ruleset
func WithStrictImports(strict bool) Option {
	return func(p *Parser) {
		p.strictImports = strict
	}
}

// WithMaxDepth sets the recursion limit. Values below 1 select DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}
		p.maxDepth = depth
	}
}

// WithFileInfo attaches fi to every node of the tree
func WithFileInfo(fi *tree.FileInfo) Option {
	return func(p *Parser) {
		p.file = fi
	}
}

// WithColors replaces the color name table used for keywords
func WithColors(lookup ColorLookup) Option {
	return func(p *Parser) {
		if lookup != nil {
			p.colors = lookup
		}
	}
}

func defaultColors(name string) (string, bool) {
	return colors.Lookup(name)
}
