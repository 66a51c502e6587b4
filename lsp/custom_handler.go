package lsp

import (
	"encoding/json"

	"bennypowers.dev/lessls/lsp/methods/textDocument/diagnostic"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CustomHandler wraps protocol.Handler with the LSP 3.17 parts glsp v0.2.2
// does not know about: the textDocument.diagnostic client capability and
// the textDocument/diagnostic request
type CustomHandler struct {
	*protocol.Handler // pointer: the handler holds a mutex
	server            *Server
}

// Handle implements glsp.Handler
func (h *CustomHandler) Handle(context *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	switch context.Method {
	case "initialize":
		// the parsed InitializeParams drop the 3.17 field, so look at the
		// raw params before the regular handler runs
		h.server.SetClientDiagnosticCapability(DetectPullDiagnosticsSupport(context.Params))

	case diagnostic.MethodDocumentDiagnostic:
		var params diagnostic.DocumentDiagnosticParams
		if err := json.Unmarshal(context.Params, &params); err != nil {
			return nil, true, false, err
		}
		handler := method(h.server, diagnostic.MethodDocumentDiagnostic, diagnostic.DocumentDiagnostic)
		result, err := handler(context, &params)
		if err != nil {
			return nil, true, true, err
		}
		return result, true, true, nil
	}

	return h.Handler.Handle(context)
}
