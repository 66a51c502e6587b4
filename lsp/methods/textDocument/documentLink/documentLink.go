package documentlink

import (
	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/internal/session"
	"bennypowers.dev/lessls/internal/uriutil"
	"bennypowers.dev/lessls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocumentLink handles the textDocument/documentLink request. Each LESS
// @import that resolves to a file on disk becomes a link spanning the
// import path.
func DocumentLink(req *types.RequestContext, params *protocol.DocumentLinkParams) ([]protocol.DocumentLink, error) {
	uri := params.TextDocument.URI
	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, nil
	}
	if !uriutil.IsFileURI(uri) {
		return []protocol.DocumentLink{}, nil
	}

	root, err := req.Server.ParseDocument(uri)
	if err != nil {
		log.Debug("No links for %s: %v", uri, err)
		return []protocol.DocumentLink{}, nil
	}

	from := session.NewFileInfo(uriutil.URIToPath(uri), "")
	sess := req.Server.Session()

	links := []protocol.DocumentLink{}
	for _, imp := range session.Imports(root) {
		if imp.Path == nil {
			continue
		}
		target, ok := sess.ResolveImport(from, imp)
		if !ok {
			continue
		}
		span := imp.Path.Pos()
		targetURI := uriutil.PathToURI(target)
		links = append(links, protocol.DocumentLink{
			Range:  doc.Range(span.Start, span.End),
			Target: &targetURI,
		})
	}
	return links, nil
}
