package lsp

import (
	"fmt"
	"sync"

	"bennypowers.dev/lessls/internal/documents"
	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/internal/parser/less"
	"bennypowers.dev/lessls/internal/parser/less/tree"
	"bennypowers.dev/lessls/internal/session"
	"bennypowers.dev/lessls/internal/uriutil"
	"bennypowers.dev/lessls/lsp/methods/lifecycle"
	"bennypowers.dev/lessls/lsp/methods/textDocument"
	"bennypowers.dev/lessls/lsp/methods/textDocument/diagnostic"
	documentcolor "bennypowers.dev/lessls/lsp/methods/textDocument/documentColor"
	documentlink "bennypowers.dev/lessls/lsp/methods/textDocument/documentLink"
	documentsymbol "bennypowers.dev/lessls/lsp/methods/textDocument/documentSymbol"
	"bennypowers.dev/lessls/lsp/methods/workspace"
	"bennypowers.dev/lessls/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

var _ types.ServerContext = (*Server)(nil)

// Server is the LESS language server
type Server struct {
	documents  *documents.Manager
	glspServer *server.Server

	// configMu protects every field below
	configMu                   sync.RWMutex
	context                    *glsp.Context
	rootURI                    string
	rootPath                   string
	config                     types.ServerConfig
	workspaceConfig            types.ServerConfig // defaults merged with the workspace file
	settings                   any                // last client settings, applied over workspaceConfig
	session                    *session.Session
	clientDiagnosticCapability *bool
	usePullDiagnostics         bool
}

// NewServer creates a LESS language server with the default configuration.
func NewServer() (*Server, error) {
	config := types.DefaultConfig()
	s := &Server{
		documents:       documents.NewManager(),
		config:          config,
		workspaceConfig: config.Clone(),
		session:         session.New(config.ParserOptions()...),
	}

	protocolHandler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		WorkspaceDidChangeWatchedFiles:  notify(s, "workspace/didChangeWatchedFiles", workspace.DidChangeWatchedFiles),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentDocumentSymbol:      method(s, "textDocument/documentSymbol", documentsymbol.DocumentSymbol),
		TextDocumentDocumentLink:        method(s, "textDocument/documentLink", documentlink.DocumentLink),
		TextDocumentColor:               method(s, "textDocument/documentColor", documentcolor.DocumentColor),
		TextDocumentColorPresentation:   method(s, "textDocument/colorPresentation", documentcolor.ColorPresentation),
	}

	// glsp v0.2.2 speaks LSP 3.16; CustomHandler adds the 3.17 pull
	// diagnostics request on top of protocol.Handler
	customHandler := &CustomHandler{
		Handler: &protocolHandler,
		server:  s,
	}

	s.glspServer = server.NewServer(customHandler, lifecycle.ServerName, false)

	return s, nil
}

// RunStdio serves the protocol on stdin and stdout
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Document returns the open document with the given URI, or nil.
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the store of open documents.
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns every open document.
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// ParseDocument parses an open document with the current parser options.
// The document caches the tree until its content changes or it is
// invalidated.
func (s *Server) ParseDocument(uri string) (*tree.Ruleset, error) {
	doc := s.Document(uri)
	if doc == nil {
		return nil, nil
	}
	opts := s.GetConfig().ParserOptions()
	if uriutil.IsFileURI(uri) {
		opts = append(opts, less.WithFileInfo(session.NewFileInfo(uriutil.URIToPath(uri), "")))
	}
	return doc.Parse(opts...)
}

// RootURI returns the workspace root URI.
func (s *Server) RootURI() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root as a file system path.
func (s *Server) RootPath() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootPath
}

// SetRootURI records the workspace root URI.
func (s *Server) SetRootURI(uri string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root. Relative import directories are
// resolved against it, so the session is rebuilt.
func (s *Server) SetRootPath(path string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootPath = path
	s.session = s.config.NewSession(path)
}

// Session returns the session holding the configured import directories
func (s *Server) Session() *session.Session {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.session
}

// GLSPContext returns the client context stored by initialized, or nil.
func (s *Server) GLSPContext() *glsp.Context {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.context
}

// SetGLSPContext stores the client context for notifications sent
// outside of a request.
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.context = ctx
}

// ClientDiagnosticCapability returns whether the client declared pull
// diagnostics support, or nil before initialize was seen
func (s *Server) ClientDiagnosticCapability() *bool {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.clientDiagnosticCapability
}

// SetClientDiagnosticCapability records what CustomHandler detected in the
// raw initialize params
func (s *Server) SetClientDiagnosticCapability(hasCapability bool) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.clientDiagnosticCapability = &hasCapability
}

// UsePullDiagnostics reports whether the client pulls diagnostics with
// textDocument/diagnostic. When it does, nothing is pushed.
func (s *Server) UsePullDiagnostics() bool {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.usePullDiagnostics
}

// SetUsePullDiagnostics selects pull diagnostics instead of publishing them.
func (s *Server) SetUsePullDiagnostics(use bool) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.usePullDiagnostics = use
}

// IndexWorkspace lists the workspace files matching the include patterns
// and returns how many there are
func (s *Server) IndexWorkspace() (int, error) {
	root := s.RootPath()
	if root == "" {
		return 0, nil
	}
	files, err := session.Discover(root, s.GetConfig().Include)
	if err != nil {
		return 0, fmt.Errorf("failed to index workspace: %w", err)
	}

	log.Info("Indexed %d LESS files under %s", len(files), root)
	return len(files), nil
}

// PublishDiagnostics pushes the diagnostics of uri to the client. It does
// nothing when the client pulls diagnostics.
func (s *Server) PublishDiagnostics(context *glsp.Context, uri string) error {
	workingContext := context
	if workingContext == nil {
		workingContext = s.GLSPContext()
	}
	if workingContext == nil || workingContext.Notify == nil {
		return fmt.Errorf("cannot publish diagnostics: no client context available")
	}

	if s.UsePullDiagnostics() {
		return nil
	}

	diagnostics, err := diagnostic.GetDiagnostics(s, uri)
	if err != nil {
		return err
	}

	log.Debug("Publishing %d diagnostics for %s", len(diagnostics), uri)
	workingContext.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
	return nil
}
