// Package testutil provides a ServerContext for handler tests
package testutil

import (
	"encoding/json"
	"sync"

	"bennypowers.dev/lessls/internal/documents"
	"bennypowers.dev/lessls/internal/parser/less"
	"bennypowers.dev/lessls/internal/parser/less/tree"
	"bennypowers.dev/lessls/internal/session"
	"bennypowers.dev/lessls/internal/uriutil"
	"bennypowers.dev/lessls/lsp/types"
	"github.com/tliron/glsp"
)

var _ types.ServerContext = (*MockServerContext)(nil)

// MockServerContext implements types.ServerContext in memory. Behaviour
// that touches the client or the file system can be replaced through the
// Func fields; calls are recorded for assertions.
type MockServerContext struct {
	mu          sync.Mutex
	docs        *documents.Manager
	session     *session.Session
	rootURI     string
	rootPath    string
	config      types.ServerConfig
	glspContext *glsp.Context
	pull        bool
	capability  *bool

	LoadWorkspaceConfigFunc func() error
	IndexWorkspaceFunc      func() (int, error)
	RegisterWatchersFunc    func(*glsp.Context) error
	PublishDiagnosticsFunc  func(*glsp.Context, string) error
	IsConfigFileFunc        func(string) bool

	LoadWorkspaceConfigCalled bool
	IndexWorkspaceCalled      bool
	Indexed                   int
	RegisterWatchersCalled    bool
	Published                 []string
	Settings                  []any
}

func NewMockServerContext() *MockServerContext {
	return &MockServerContext{
		docs:    documents.NewManager(),
		session: session.New(),
		config:  types.DefaultConfig(),
	}
}

func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

// ParseDocument parses with the mock's configuration, attaching file
// information for file URIs
func (m *MockServerContext) ParseDocument(uri string) (*tree.Ruleset, error) {
	doc := m.docs.Get(uri)
	if doc == nil {
		return nil, nil
	}
	opts := m.GetConfig().ParserOptions()
	if uriutil.IsFileURI(uri) {
		opts = append(opts, less.WithFileInfo(session.NewFileInfo(uriutil.URIToPath(uri), "")))
	}
	return doc.Parse(opts...)
}

func (m *MockServerContext) RootURI() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rootURI
}

func (m *MockServerContext) RootPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rootPath
}

func (m *MockServerContext) SetRootURI(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rootURI = uri
}

func (m *MockServerContext) SetRootPath(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rootPath = path
}

func (m *MockServerContext) Session() *session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// SetSession replaces the session, for tests that need import directories
func (m *MockServerContext) SetSession(s *session.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
}

func (m *MockServerContext) GetConfig() types.ServerConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config.Clone()
}

func (m *MockServerContext) SetConfig(config types.ServerConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = config.Clone()
}

func (m *MockServerContext) LoadWorkspaceConfig() error {
	m.LoadWorkspaceConfigCalled = true
	if m.LoadWorkspaceConfigFunc != nil {
		return m.LoadWorkspaceConfigFunc()
	}
	return nil
}

// ApplySettings records settings and overlays their lessLanguageServer
// section on the default configuration
func (m *MockServerContext) ApplySettings(settings any) error {
	m.Settings = append(m.Settings, settings)
	config := types.DefaultConfig()
	if sm, ok := settings.(map[string]any); ok {
		if ours, ok := sm[types.ConfigKey]; ok {
			data, err := json.Marshal(ours)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(data, &config); err != nil {
				return err
			}
		}
	}
	m.SetConfig(config)
	return nil
}

func (m *MockServerContext) IsConfigFile(path string) bool {
	if m.IsConfigFileFunc != nil {
		return m.IsConfigFileFunc(path)
	}
	return false
}

// IndexWorkspace discovers files under the root unless IndexWorkspaceFunc
// is set
func (m *MockServerContext) IndexWorkspace() (int, error) {
	m.IndexWorkspaceCalled = true
	if m.IndexWorkspaceFunc != nil {
		return m.IndexWorkspaceFunc()
	}
	root := m.RootPath()
	if root == "" {
		return 0, nil
	}
	files, err := session.Discover(root, m.GetConfig().Include)
	if err != nil {
		return 0, err
	}
	m.Indexed = len(files)
	return len(files), nil
}

func (m *MockServerContext) RegisterFileWatchers(ctx *glsp.Context) error {
	m.RegisterWatchersCalled = true
	if m.RegisterWatchersFunc != nil {
		return m.RegisterWatchersFunc(ctx)
	}
	return nil
}

func (m *MockServerContext) GLSPContext() *glsp.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.glspContext
}

func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.glspContext = ctx
}

func (m *MockServerContext) UsePullDiagnostics() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pull
}

func (m *MockServerContext) SetUsePullDiagnostics(use bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pull = use
}

func (m *MockServerContext) ClientDiagnosticCapability() *bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.capability
}

// SetClientDiagnosticCapability stands in for the detection the real
// server does on the raw initialize params
func (m *MockServerContext) SetClientDiagnosticCapability(has bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.capability = &has
}

// PublishDiagnostics records uri and calls PublishDiagnosticsFunc when set
func (m *MockServerContext) PublishDiagnostics(context *glsp.Context, uri string) error {
	m.mu.Lock()
	m.Published = append(m.Published, uri)
	m.mu.Unlock()
	if m.PublishDiagnosticsFunc != nil {
		return m.PublishDiagnosticsFunc(context, uri)
	}
	return nil
}
