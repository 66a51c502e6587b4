package lsp

import (
	"encoding/json"
)

// DetectPullDiagnosticsSupport reports whether the raw initialize params
// declare the LSP 3.17 textDocument.diagnostic client capability. Its
// presence is enough, whatever its value. Unparseable params mean push
// diagnostics.
func DetectPullDiagnosticsSupport(rawParams json.RawMessage) bool {
	var initParams struct {
		Capabilities struct {
			TextDocument *struct {
				Diagnostic *json.RawMessage `json:"diagnostic"`
			} `json:"textDocument"`
		} `json:"capabilities"`
	}

	if err := json.Unmarshal(rawParams, &initParams); err != nil {
		return false
	}
	td := initParams.Capabilities.TextDocument
	return td != nil && td.Diagnostic != nil
}
