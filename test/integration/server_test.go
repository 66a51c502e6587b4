package integration_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"bennypowers.dev/lessls/internal/uriutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func workspace(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func TestInitialization(t *testing.T) {
	root := workspace(t, map[string]string{"main.less": ".a { }"})
	client := NewLSPClient(t)

	capabilities := client.Initialize(uriutil.PathToURI(root), false)
	assert.Contains(t, capabilities, "textDocumentSync")
	assert.Contains(t, capabilities, "documentSymbolProvider")
	assert.Contains(t, capabilities, "documentLinkProvider")
	assert.Contains(t, capabilities, "colorProvider")
	assert.NotContains(t, capabilities, "diagnosticProvider")

	require.Eventually(t, func() bool {
		return slices.Contains(client.ServerCalls(), "client/registerCapability")
	}, 5*time.Second, 50*time.Millisecond, "file watchers are registered after initialized")
}

func TestPushDiagnostics(t *testing.T) {
	client := NewLSPClient(t)
	client.Initialize("", false)

	uri := "file:///tmp/broken.less"
	client.DidOpen(uri, ".a {\n  b: (1 2);\n}\n")

	diagnostics := client.WaitForDiagnostics(uri)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "expected ')' got '2'", diagnostics[0].Message)
	assert.Equal(t, protocol.Position{Line: 1, Character: 8}, diagnostics[0].Range.Start)
	require.NotNil(t, diagnostics[0].Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diagnostics[0].Severity)

	client.DidChange(uri, ".a {\n  b: (1);\n}\n", 2)
	assert.Empty(t, client.WaitForDiagnostics(uri))
}

func TestPullDiagnostics(t *testing.T) {
	client := NewLSPClient(t)
	capabilities := client.Initialize("", true)
	assert.Contains(t, capabilities, "diagnosticProvider")

	uri := "file:///tmp/pulled.less"
	client.DidOpen(uri, "@x: (;")

	var report struct {
		Kind  string                `json:"kind"`
		Items []protocol.Diagnostic `json:"items"`
	}
	client.Request("textDocument/diagnostic", map[string]any{
		"textDocument": map[string]any{"uri": uri},
	}, &report)

	assert.Equal(t, "full", report.Kind)
	require.Len(t, report.Items, 1)
	require.NotNil(t, report.Items[0].Source)
	assert.Equal(t, "less", *report.Items[0].Source)
}

func TestDocumentFeatures(t *testing.T) {
	const main = `@import "theme";
.card {
  color: #336699;
  .title { background: red; }
}
`
	root := workspace(t, map[string]string{
		"main.less":  main,
		"theme.less": "@primary: blue;",
	})
	client := NewLSPClient(t)
	client.Initialize(uriutil.PathToURI(root), false)

	uri := uriutil.PathToURI(filepath.Join(root, "main.less"))
	client.DidOpen(uri, main)
	assert.Empty(t, client.WaitForDiagnostics(uri))

	doc := map[string]any{"textDocument": map[string]any{"uri": uri}}

	t.Run("symbols", func(t *testing.T) {
		var symbols []struct {
			Name     string `json:"name"`
			Children []struct {
				Name string `json:"name"`
			} `json:"children"`
		}
		client.Request("textDocument/documentSymbol", doc, &symbols)
		require.Len(t, symbols, 2)
		assert.Equal(t, `@import "theme"`, symbols[0].Name)
		assert.Equal(t, ".card", symbols[1].Name)

		var children []string
		for _, c := range symbols[1].Children {
			children = append(children, c.Name)
		}
		assert.Equal(t, []string{"color", ".title"}, children)
	})

	t.Run("colors", func(t *testing.T) {
		var colors []protocol.ColorInformation
		client.Request("textDocument/documentColor", doc, &colors)
		require.Len(t, colors, 2)
		assert.Equal(t, protocol.UInteger(2), colors[0].Range.Start.Line)
		assert.Equal(t, protocol.Decimal(1), colors[1].Color.Red)
	})

	t.Run("links", func(t *testing.T) {
		var links []protocol.DocumentLink
		client.Request("textDocument/documentLink", doc, &links)
		require.Len(t, links, 1)
		require.NotNil(t, links[0].Target)
		assert.Equal(t, uriutil.PathToURI(filepath.Join(root, "theme.less")), *links[0].Target)
	})
}

func TestConfigurationChange(t *testing.T) {
	client := NewLSPClient(t)
	client.Initialize("", false)

	uri := "file:///tmp/nested.less"
	client.DidOpen(uri, "a { b { c { d { e: f; } } } }")
	assert.Empty(t, client.WaitForDiagnostics(uri))

	client.DidChangeConfiguration(map[string]any{
		"lessLanguageServer": map[string]any{"maxDepth": 2},
	})

	diagnostics := client.WaitForDiagnostics(uri)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "maximum nesting depth exceeded", diagnostics[0].Message)
}

func TestUnknownDocument(t *testing.T) {
	client := NewLSPClient(t)
	client.Initialize("", false)

	var raw json.RawMessage
	client.Request("textDocument/documentSymbol", map[string]any{
		"textDocument": map[string]any{"uri": "file:///tmp/never-opened.less"},
	}, &raw)
	assert.Equal(t, "null", string(raw))
}
