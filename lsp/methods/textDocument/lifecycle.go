package textDocument

import (
	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidOpen handles the textDocument/didOpen notification
func DidOpen(req *types.RequestContext, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Info("Document opened: %s (language: %s, version: %d)", uri, params.TextDocument.LanguageID, params.TextDocument.Version)

	err := req.Server.DocumentManager().DidOpen(uri, params.TextDocument.LanguageID,
		int(params.TextDocument.Version), params.TextDocument.Text)
	if err != nil {
		return err
	}

	publish(req, uri)
	return nil
}

// DidChange handles the textDocument/didChange notification. Both
// incremental and whole-document change events are accepted.
func DidChange(req *types.RequestContext, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)
	log.Debug("Document changed: %s (version: %d, changes: %d)", uri, version, len(params.ContentChanges))

	changes := make([]protocol.TextDocumentContentChangeEvent, 0, len(params.ContentChanges))
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			changes = append(changes, c)
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, protocol.TextDocumentContentChangeEvent{Text: c.Text})
		}
	}

	if err := req.Server.DocumentManager().DidChange(uri, version, changes); err != nil {
		return err
	}

	publish(req, uri)
	return nil
}

// DidClose handles the textDocument/didClose notification. Pushed
// diagnostics are cleared.
func DidClose(req *types.RequestContext, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Info("Document closed: %s", uri)

	if err := req.Server.DocumentManager().DidClose(uri); err != nil {
		return err
	}

	publish(req, uri)
	return nil
}

// publish pushes diagnostics for uri unless the client pulls them
func publish(req *types.RequestContext, uri string) {
	if req.Server.UsePullDiagnostics() {
		return
	}
	glspCtx := req.GLSP
	if glspCtx == nil {
		glspCtx = req.Server.GLSPContext()
	}
	if glspCtx == nil {
		return
	}
	if err := req.Server.PublishDiagnostics(glspCtx, uri); err != nil {
		req.AddWarning(err)
	}
}
