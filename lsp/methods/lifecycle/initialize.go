package lifecycle

import (
	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/internal/uriutil"
	"bennypowers.dev/lessls/internal/version"
	"bennypowers.dev/lessls/lsp/methods/textDocument/diagnostic"
	"bennypowers.dev/lessls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerName is reported to clients as serverInfo.name
const ServerName = "less-language-server"

// InitializeResult mirrors protocol.InitializeResult with untyped
// capabilities, so LSP 3.17 fields such as diagnosticProvider fit
type InitializeResult struct {
	Capabilities map[string]any                       `json:"capabilities"`
	ServerInfo   *protocol.InitializeResultServerInfo `json:"serverInfo,omitempty"`
}

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	log.Info("Initializing for client: %s", clientName)
	log.Debug("Build info: %v", version.GetBuildInfo())

	// CustomHandler has already looked for the capability in the raw params
	capability := req.Server.ClientDiagnosticCapability()
	pull := capability != nil && *capability
	req.Server.SetUsePullDiagnostics(pull)
	if pull {
		log.Info("Using pull diagnostics")
	} else {
		log.Info("Using push diagnostics")
	}

	switch {
	case params.RootURI != nil && *params.RootURI != "":
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
	case params.RootPath != nil && *params.RootPath != "":
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
	case len(params.WorkspaceFolders) > 0:
		req.Server.SetRootURI(params.WorkspaceFolders[0].URI)
		req.Server.SetRootPath(uriutil.URIToPath(params.WorkspaceFolders[0].URI))
	}
	if root := req.Server.RootPath(); root != "" {
		log.Info("Workspace root: %s", root)
	}

	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities := map[string]any{
		"textDocumentSync": protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &syncKind,
		},
		"documentSymbolProvider": true,
		"documentLinkProvider": protocol.DocumentLinkOptions{
			ResolveProvider: boolPtr(false),
		},
		"colorProvider": true,
	}
	if pull {
		capabilities["diagnosticProvider"] = diagnostic.DiagnosticOptions{
			InterFileDependencies: false,
			WorkspaceDiagnostics:  false,
		}
	}

	return InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: strPtr(version.GetVersion()),
		},
	}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
