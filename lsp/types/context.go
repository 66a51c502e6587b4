package types

import (
	"bennypowers.dev/lessls/internal/documents"
	"bennypowers.dev/lessls/internal/parser/less/tree"
	"bennypowers.dev/lessls/internal/session"
	"github.com/tliron/glsp"
)

// ServerContext provides all dependencies needed for LSP handlers.
// Handlers depend on this interface so tests can substitute a mock.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// ParseDocument parses an open document with the current configuration.
	// It returns nil and no error when the document is not open.
	ParseDocument(uri string) (*tree.Ruleset, error)

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)
	Session() *session.Session

	// Configuration
	GetConfig() ServerConfig
	SetConfig(config ServerConfig)
	LoadWorkspaceConfig() error
	ApplySettings(settings any) error
	IsConfigFile(path string) bool

	// Workspace indexing (called by Initialized and file watching)
	IndexWorkspace() (int, error)
	RegisterFileWatchers(ctx *glsp.Context) error

	// LSP context (for publishing diagnostics, etc.)
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)

	// Diagnostics
	UsePullDiagnostics() bool
	SetUsePullDiagnostics(use bool)
	ClientDiagnosticCapability() *bool
	PublishDiagnostics(context *glsp.Context, uri string) error
}
