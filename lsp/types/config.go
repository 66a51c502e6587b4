package types

import (
	"maps"
	"path/filepath"
	"slices"

	"bennypowers.dev/lessls/internal/parser/less"
	"bennypowers.dev/lessls/internal/session"
)

// ServerConfig represents the server configuration
type ServerConfig struct {
	// Compress selects the value-parsing order used for compressed output
	Compress bool `json:"compress" yaml:"compress"`

	// StrictImports is copied onto every parsed ruleset
	StrictImports bool `json:"strictImports" yaml:"strictImports"`

	// MaxDepth bounds grammar recursion. 0 selects the parser default.
	MaxDepth int `json:"maxDepth" yaml:"maxDepth"`

	// ImportDirs maps a directory searched for @import targets to the URI
	// root its files are served under. Relative directories are resolved
	// against the workspace root.
	ImportDirs map[string]string `json:"importDirs" yaml:"importDirs"`

	// Include lists doublestar patterns, relative to the workspace root,
	// of the files indexed by the server
	// Default: ["**/*.less"]
	Include []string `json:"include" yaml:"include"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Include: slices.Clone(session.DefaultInclude),
	}
}

// Clone returns a deep copy of c
func (c ServerConfig) Clone() ServerConfig {
	c.ImportDirs = maps.Clone(c.ImportDirs)
	c.Include = slices.Clone(c.Include)
	return c
}

// ParserOptions translates the configuration into parser options
func (c ServerConfig) ParserOptions() []less.Option {
	return []less.Option{
		less.WithCompress(c.Compress),
		less.WithStrictImports(c.StrictImports),
		less.WithMaxDepth(c.MaxDepth),
	}
}

// NewSession builds a parse session from c. Relative import directories
// are taken relative to root.
func (c ServerConfig) NewSession(root string) *session.Session {
	sess := session.New(c.ParserOptions()...)
	dirs := make(map[string]string, len(c.ImportDirs))
	for dir, uriRoot := range c.ImportDirs {
		if !filepath.IsAbs(dir) && root != "" {
			dir = filepath.Join(root, dir)
		}
		dirs[dir] = uriRoot
	}
	sess.SetImportDirs(dirs)
	return sess
}

// ConfigKey is the key holding server settings in package.json and in
// client settings
const ConfigKey = "lessLanguageServer"
