// Package documents tracks the LESS documents open in the editor
package documents

import (
	"fmt"
	"sync"

	"bennypowers.dev/lessls/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Manager manages text documents for the language server
type Manager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewManager creates an empty document store.
func NewManager() *Manager {
	return &Manager{
		documents: make(map[string]*Document),
	}
}

// Get retrieves a document by URI, or nil when it is not open
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// GetAll returns all open documents in no particular order
func (m *Manager) GetAll() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	return docs
}

// InvalidateAll drops every cached parse
func (m *Manager) InvalidateAll() {
	for _, doc := range m.GetAll() {
		doc.Invalidate()
	}
}

// DidOpen starts tracking a document opened by the client.
func (m *Manager) DidOpen(uri, languageID string, version int, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[uri] = NewDocument(uri, languageID, version, content)
	return nil
}

// DidClose stops tracking a document and drops its cached tree.
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[uri]; !exists {
		return fmt.Errorf("document not found: %s", uri)
	}
	delete(m.documents, uri)
	return nil
}

// DidChange applies full or incremental content changes in order
func (m *Manager) DidChange(uri string, version int, changes []protocol.TextDocumentContentChangeEvent) error {
	doc := m.Get(uri)
	if doc == nil {
		return fmt.Errorf("document not found: %s", uri)
	}

	content := doc.Content()
	for _, change := range changes {
		if change.Range == nil {
			content = change.Text
			continue
		}
		next, err := applyIncrementalChange(content, *change.Range, change.Text)
		if err != nil {
			return fmt.Errorf("failed to apply changes: %w", err)
		}
		content = next
	}

	if err := doc.SetContent(content, version); err != nil {
		return fmt.Errorf("failed to set document content: %w", err)
	}
	return nil
}

// applyIncrementalChange replaces the text in r. Positions count UTF-16
// code units; a range may start or end one line past the last line to
// append at the end of the document.
func applyIncrementalChange(content string, r protocol.Range, text string) (string, error) {
	table := position.NewTable(content)
	if n := table.LineCount(); int(r.Start.Line) > n || int(r.End.Line) > n {
		return "", fmt.Errorf("range %d:%d-%d:%d out of bounds (total lines: %d)",
			r.Start.Line, r.Start.Character, r.End.Line, r.End.Character, n)
	}

	start, end := table.Offset(r.Start), table.Offset(r.End)
	if start > end {
		return "", fmt.Errorf("range start %d:%d is after its end %d:%d",
			r.Start.Line, r.Start.Character, r.End.Line, r.End.Character)
	}
	return content[:start] + text + content[end:], nil
}
