package documents

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/lessls/internal/parser/less"
	"bennypowers.dev/lessls/internal/parser/less/tree"
	"bennypowers.dev/lessls/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Document is an open text document. Its parse tree and position table
// are built lazily and cached until the content or version changes.
type Document struct {
	uri        string
	languageID string
	content    string
	version    int

	mu       sync.Mutex
	parsed   bool
	root     *tree.Ruleset
	parseErr error
	table    *position.Table
}

// NewDocument creates a document at version with the given content.
func NewDocument(uri, languageID string, version int, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
	}
}

// URI returns the document URI.
func (d *Document) URI() string {
	return d.uri
}

// LanguageID returns the language identifier sent by the client.
func (d *Document) LanguageID() string {
	return d.languageID
}

// Version returns the version of the current content.
func (d *Document) Version() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

// Content returns the text exactly as the client sent it
func (d *Document) Content() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}

// SetContent updates the content and version. Updates older than the
// current version are rejected.
func (d *Document) SetContent(content string, version int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.content = content
	d.version = version
	d.reset()
	return nil
}

// Invalidate drops the cached parse, for example after the parser options
// changed
func (d *Document) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

func (d *Document) reset() {
	d.parsed = false
	d.root = nil
	d.parseErr = nil
	d.table = nil
}

// Parse returns the parse tree of the current content. The result of the
// first call for a version is cached, so opts only matter after a change
// or an Invalidate.
func (d *Document) Parse(opts ...less.Option) (*tree.Ruleset, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.parsed {
		d.root, d.parseErr = less.Parse(d.content, opts...)
		d.parsed = true
	}
	return d.root, d.parseErr
}

// Range converts a byte range of the parsed (normalized) text into a range
// in the client's text. Line numbers agree because only \r is dropped; a
// byte order mark shifts the first line by one code unit.
func (d *Document) Range(start, end int) protocol.Range {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.table == nil {
		d.table = position.NewTable(less.Normalize(d.content))
	}
	r := d.table.Range(start, end)
	if strings.HasPrefix(d.content, "\uFEFF") {
		if r.Start.Line == 0 {
			r.Start.Character++
		}
		if r.End.Line == 0 {
			r.End.Character++
		}
	}
	return r
}

// Offset converts a client position to a byte offset into the parsed text
func (d *Document) Offset(pos protocol.Position) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.table == nil {
		d.table = position.NewTable(less.Normalize(d.content))
	}
	if pos.Line == 0 && pos.Character > 0 && strings.HasPrefix(d.content, "\uFEFF") {
		pos.Character--
	}
	return d.table.Offset(pos)
}
