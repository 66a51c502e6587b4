package workspace

import (
	"fmt"

	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/internal/uriutil"
	"bennypowers.dev/lessls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeWatchedFiles handles the workspace/didChangeWatchedFiles
// notification. A changed config file reloads the configuration and
// reindexes; a created or deleted LESS file only reindexes.
func DidChangeWatchedFiles(req *types.RequestContext, params *protocol.DidChangeWatchedFilesParams) error {
	log.Debug("Watched files changed: %d files", len(params.Changes))

	configChanged := false
	filesChanged := false

	for _, change := range params.Changes {
		path := uriutil.URIToPath(change.URI)
		log.Debug("File change: %s (type: %d)", path, change.Type)

		switch {
		case req.Server.IsConfigFile(path):
			configChanged = true
		case uriutil.IsLess(change.URI) && change.Type != protocol.FileChangeTypeChanged:
			filesChanged = true
		}
	}

	if configChanged {
		log.Info("Reloading workspace configuration")
		if err := req.Server.LoadWorkspaceConfig(); err != nil {
			req.AddWarning(fmt.Errorf("failed to reload configuration: %w", err))
		}
		req.Server.DocumentManager().InvalidateAll()
		republish(req)
	}

	if configChanged || filesChanged {
		n, err := req.Server.IndexWorkspace()
		if err != nil {
			req.AddWarning(fmt.Errorf("failed to index workspace: %w", err))
			return nil
		}
		log.Info("Found %d LESS files", n)
	}
	return nil
}
