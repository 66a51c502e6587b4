package diagnostic

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// LSP 3.17 pull diagnostics types, missing from glsp v0.2.2

// MethodDocumentDiagnostic is the pull diagnostics request
const MethodDocumentDiagnostic = "textDocument/diagnostic"

// DocumentDiagnosticParams are the params of textDocument/diagnostic
type DocumentDiagnosticParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`

	// Identifier is the one given at registration, if any
	Identifier string `json:"identifier,omitempty"`

	PreviousResultID string `json:"previousResultId,omitempty"`
}

// DocumentDiagnosticReportKind is "full" or "unchanged"
type DocumentDiagnosticReportKind string

const (
	DiagnosticFull      DocumentDiagnosticReportKind = "full"
	DiagnosticUnchanged DocumentDiagnosticReportKind = "unchanged"
)

// RelatedFullDocumentDiagnosticReport is a full diagnostics report
type RelatedFullDocumentDiagnosticReport struct {
	Kind             string                `json:"kind"`
	ResultID         string                `json:"resultId,omitempty"`
	Items            []protocol.Diagnostic `json:"items"`
	RelatedDocuments map[string]any        `json:"relatedDocuments,omitempty"`
}

// DiagnosticOptions is the server's diagnosticProvider capability
type DiagnosticOptions struct {
	Identifier            string `json:"identifier,omitempty"`
	InterFileDependencies bool   `json:"interFileDependencies"`
	WorkspaceDiagnostics  bool   `json:"workspaceDiagnostics"`
}
