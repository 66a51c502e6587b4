package diagnostic

import (
	"errors"
	"fmt"

	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/internal/parser/less"
	"bennypowers.dev/lessls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Source labels every diagnostic the server reports
const Source = "less"

// DocumentDiagnostic handles the textDocument/diagnostic request
func DocumentDiagnostic(req *types.RequestContext, params *DocumentDiagnosticParams) (any, error) {
	uri := params.TextDocument.URI
	log.Debug("Pull diagnostics requested for: %s", uri)

	diagnostics, err := GetDiagnostics(req.Server, uri)
	if err != nil {
		return nil, err
	}

	return RelatedFullDocumentDiagnosticReport{
		Kind:  string(DiagnosticFull),
		Items: diagnostics,
	}, nil
}

// GetDiagnostics parses the document at uri. A parse failure yields a
// single Error diagnostic, one character wide, at the offset where parsing
// stopped. The result is never nil so it serialises as an empty list.
func GetDiagnostics(ctx types.ServerContext, uri string) ([]protocol.Diagnostic, error) {
	diagnostics := []protocol.Diagnostic{}

	doc := ctx.Document(uri)
	if doc == nil {
		return diagnostics, nil
	}

	_, err := ctx.ParseDocument(uri)
	if err == nil {
		return diagnostics, nil
	}

	var perr *less.ParseError
	if !errors.As(err, &perr) {
		return nil, fmt.Errorf("failed to parse %s: %w", uri, err)
	}

	severity := protocol.DiagnosticSeverityError
	source := Source
	diagnostics = append(diagnostics, protocol.Diagnostic{
		Range:    doc.Range(perr.Index, perr.Index+1),
		Severity: &severity,
		Source:   &source,
		Message:  perr.Message,
	})
	return diagnostics, nil
}
