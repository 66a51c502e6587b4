package documentsymbol

import (
	"strings"

	"bennypowers.dev/lessls/internal/documents"
	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/internal/parser/less/tree"
	"bennypowers.dev/lessls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocumentSymbol handles the textDocument/documentSymbol request with a
// hierarchy of rulesets, mixins, variables, properties and at-rules. A
// document that does not parse has no symbols.
func DocumentSymbol(req *types.RequestContext, params *protocol.DocumentSymbolParams) (any, error) {
	uri := params.TextDocument.URI
	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, nil
	}

	root, err := req.Server.ParseDocument(uri)
	if err != nil {
		log.Debug("No symbols for %s: %v", uri, err)
		return []protocol.DocumentSymbol{}, nil
	}

	return Symbols(doc, root.Rules), nil
}

// Symbols converts a list of statements into document symbols, ranging
// over doc
func Symbols(doc *documents.Document, rules []tree.Node) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	for _, n := range rules {
		if sym, ok := symbol(doc, n); ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func symbol(doc *documents.Document, n tree.Node) (protocol.DocumentSymbol, bool) {
	span := n.Pos()
	sym := protocol.DocumentSymbol{Range: doc.Range(span.Start, span.End)}
	sym.SelectionRange = sym.Range

	switch n := n.(type) {
	case *tree.Ruleset:
		names := make([]string, len(n.Selectors))
		for i, sel := range n.Selectors {
			names[i] = tree.String(sel)
		}
		sym.Name = strings.Join(names, ", ")
		sym.Kind = protocol.SymbolKindClass
		if len(n.Selectors) > 0 {
			first, last := n.Selectors[0].Pos(), n.Selectors[len(n.Selectors)-1].Pos()
			sym.SelectionRange = doc.Range(first.Start, last.End)
		}
		sym.Children = Symbols(doc, n.Rules)

	case *tree.MixinDefinition:
		sym.Name = n.Name
		sym.Kind = protocol.SymbolKindMethod
		sym.Detail = strPtr(tree.Params(n.Params))
		sym.SelectionRange = doc.Range(span.Start, min(span.Start+len(n.Name), span.End))
		sym.Children = Symbols(doc, n.Rules)

	case *tree.Rule:
		sym.Name = n.Name
		sym.Kind = protocol.SymbolKindProperty
		if n.Variable {
			sym.Kind = protocol.SymbolKindVariable
		}
		if n.Value != nil {
			sym.Detail = strPtr(tree.String(n.Value))
		}
		sym.SelectionRange = doc.Range(span.Start, min(span.Start+len(n.Name), span.End))

	case *tree.Media:
		features := make([]string, len(n.Features))
		for i, f := range n.Features {
			features[i] = tree.String(f)
		}
		sym.Name = strings.TrimSpace("@media " + strings.Join(features, ", "))
		sym.Kind = protocol.SymbolKindNamespace
		sym.Children = Symbols(doc, n.Rules)

	case *tree.Directive:
		sym.Name = n.Name
		sym.Kind = protocol.SymbolKindModule
		if n.Value != nil {
			sym.Detail = strPtr(tree.String(n.Value))
		}
		if n.Rules != nil {
			sym.Children = Symbols(doc, n.Rules)
		}

	case *tree.Import:
		sym.Name = "@import " + tree.String(n.Path)
		sym.Kind = protocol.SymbolKindFile

	default:
		return sym, false
	}

	if sym.Name == "" {
		sym.Name = n.Kind().String()
	}
	return sym, true
}

func strPtr(s string) *string {
	return &s
}
