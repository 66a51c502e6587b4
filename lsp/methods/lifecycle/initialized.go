package lifecycle

import (
	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/lsp/methods/workspace"
	"bennypowers.dev/lessls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification. Failures here are
// reported to the client but never fail the notification.
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	req.Server.SetGLSPContext(req.GLSP)

	if err := req.Server.LoadWorkspaceConfig(); err != nil {
		workspace.LogWarning(req.GLSP, "failed to load workspace configuration: %v", err)
	}

	if n, err := req.Server.IndexWorkspace(); err != nil {
		workspace.LogWarning(req.GLSP, "failed to index workspace: %v", err)
	} else {
		log.Info("Found %d LESS files in the workspace", n)
	}

	if err := req.Server.RegisterFileWatchers(req.GLSP); err != nil {
		workspace.LogWarning(req.GLSP, "failed to register file watchers: %v", err)
	}

	return nil
}
