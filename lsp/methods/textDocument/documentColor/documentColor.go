package documentcolor

import (
	"fmt"

	"bennypowers.dev/lessls/internal/colors"
	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/internal/parser/less/tree"
	"bennypowers.dev/lessls/lsp/types"
	"github.com/mazznoer/csscolorparser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocumentColor handles the textDocument/documentColor request. Every
// color value in the document is reported, hex or named.
func DocumentColor(req *types.RequestContext, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := params.TextDocument.URI
	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, nil
	}

	root, err := req.Server.ParseDocument(uri)
	if err != nil {
		log.Debug("No colors for %s: %v", uri, err)
		return []protocol.ColorInformation{}, nil
	}

	infos := []protocol.ColorInformation{}
	for _, c := range Colors(root) {
		parsed, err := colors.FromHex(c.Hex)
		if err != nil {
			// keep the colors that did parse
			req.AddWarning(fmt.Errorf("color %s: %w", tree.String(c), err))
			continue
		}
		span := c.Pos()
		infos = append(infos, protocol.ColorInformation{
			Range: doc.Range(span.Start, span.End),
			Color: toProtocol(parsed),
		})
	}

	log.Debug("Found %d colors in %s", len(infos), uri)
	return infos, nil
}

// Colors returns the color nodes of root in source order
func Colors(root tree.Node) []*tree.Color {
	var found []*tree.Color
	tree.Walk(root, func(n tree.Node) bool {
		if c, ok := n.(*tree.Color); ok {
			found = append(found, c)
		}
		return true
	})
	return found
}

// ColorPresentation handles the textDocument/colorPresentation request.
// The picked color is offered in hex and rgb() form. When the edited range
// holds a color name that still denotes the picked color, the name comes
// first so accepting it leaves the source unchanged.
func ColorPresentation(req *types.RequestContext, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	picked := fromProtocol(params.Color)

	var labels []string
	if name := namedColorAt(req, params.TextDocument.URI, params.Range); name != "" {
		if c, err := colors.Parse(name); err == nil && colors.Same(c, picked) {
			labels = append(labels, name)
		}
	}
	labels = append(labels, colors.Hex(picked), colors.RGB(picked))

	presentations := make([]protocol.ColorPresentation, 0, len(labels))
	for _, label := range labels {
		presentations = append(presentations, protocol.ColorPresentation{
			Label: label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: label,
			},
		})
	}
	return presentations, nil
}

// namedColorAt returns the keyword of the named color spanning exactly rng
func namedColorAt(req *types.RequestContext, uri string, rng protocol.Range) string {
	doc := req.Server.Document(uri)
	if doc == nil {
		return ""
	}
	root, err := req.Server.ParseDocument(uri)
	if err != nil {
		return ""
	}
	for _, c := range Colors(root) {
		span := c.Pos()
		if c.Keyword != "" && doc.Range(span.Start, span.End) == rng {
			return c.Keyword
		}
	}
	return ""
}

func toProtocol(c csscolorparser.Color) protocol.Color {
	return protocol.Color{
		Red:   protocol.Decimal(c.R),
		Green: protocol.Decimal(c.G),
		Blue:  protocol.Decimal(c.B),
		Alpha: protocol.Decimal(c.A),
	}
}

func fromProtocol(c protocol.Color) csscolorparser.Color {
	return csscolorparser.Color{
		R: float64(c.Red),
		G: float64(c.Green),
		B: float64(c.Blue),
		A: float64(c.Alpha),
	}
}
