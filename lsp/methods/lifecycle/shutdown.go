package lifecycle

import (
	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/lsp/types"
)

// Shutdown handles the LSP shutdown request
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")
	return nil
}
