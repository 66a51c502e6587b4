package workspace

import (
	"fmt"

	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeConfiguration handles the workspace/didChangeConfiguration
// notification. Settings that cannot be applied leave the previous
// configuration in place.
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Info("Configuration changed")

	if err := req.Server.ApplySettings(params.Settings); err != nil {
		LogWarning(req.GLSP, "ignoring settings: %v", err)
		ShowMessage(req.GLSP, protocol.MessageTypeWarning, fmt.Sprintf("Invalid %s settings: %v", types.ConfigKey, err))
		return nil
	}
	log.Debug("New configuration: %+v", req.Server.GetConfig())

	req.Server.DocumentManager().InvalidateAll()
	republish(req)
	return nil
}

// republish refreshes diagnostics for every open document
func republish(req *types.RequestContext) {
	ctx := req.GLSP
	if ctx == nil {
		ctx = req.Server.GLSPContext()
	}
	if ctx == nil || req.Server.UsePullDiagnostics() {
		return
	}
	for _, doc := range req.Server.AllDocuments() {
		if err := req.Server.PublishDiagnostics(ctx, doc.URI()); err != nil {
			req.AddWarning(fmt.Errorf("failed to publish diagnostics for %s: %w", doc.URI(), err))
		}
	}
}
