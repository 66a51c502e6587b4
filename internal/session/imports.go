package session

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"bennypowers.dev/lessls/internal/parser/less/tree"
)

// Imports returns every @import in root, including those nested in media
// blocks, rulesets and directives, in source order
func Imports(root tree.Node) []*tree.Import {
	var imports []*tree.Import
	tree.Walk(root, func(n tree.Node) bool {
		if imp, ok := n.(*tree.Import); ok {
			imports = append(imports, imp)
			return false
		}
		return true
	})
	return imports
}

// ImportPath extracts the literal path of an import. Interpolated or
// variable paths yield "".
func ImportPath(imp *tree.Import) string {
	switch p := imp.Path.(type) {
	case *tree.Quoted:
		if strings.Contains(p.Value, "@{") {
			return ""
		}
		return p.Value
	case *tree.URL:
		switch v := p.Value.(type) {
		case *tree.Quoted:
			return v.Value
		case *tree.Anonymous:
			return v.Value
		}
	}
	return ""
}

// IsLessImport reports whether imp pulls in LESS source rather than being
// passed through as a CSS @import
func IsLessImport(imp *tree.Import) bool {
	if imp.Options.Less != nil {
		return *imp.Options.Less
	}
	p := ImportPath(imp)
	if p == "" || strings.Contains(p, "://") || strings.HasPrefix(p, "//") {
		return false
	}
	return path.Ext(p) != ".css"
}

// ResolveImport finds the file imp refers to. The importing file's
// directory is searched first, then the session's import directories.
// A path without an extension gets ".less".
func (s *Session) ResolveImport(from *tree.FileInfo, imp *tree.Import) (string, bool) {
	p := ImportPath(imp)
	if p == "" || !IsLessImport(imp) {
		return "", false
	}
	if path.Ext(p) == "" {
		p += ".less"
	}
	if filepath.IsAbs(p) {
		return p, exists(p)
	}

	var dirs []string
	if from != nil && from.CurrentDirectory != "" {
		dirs = append(dirs, from.CurrentDirectory)
	}
	for _, d := range s.ImportDirs() {
		dirs = append(dirs, d.Path)
	}
	for _, dir := range dirs {
		candidate := filepath.Join(filepath.FromSlash(dir), filepath.FromSlash(p))
		if exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func exists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// Visit receives each file parsed by ParseTree. root is nil when err is
// not.
type Visit func(filename string, root *tree.Ruleset, err error)

// ParseTree parses entry and, recursively, the LESS files it imports.
// Files already in the registry are skipped unless imported with the
// multiple option. Unresolvable imports are not errors; CSS passes them
// through.
func (s *Session) ParseTree(entry, uriRoot string, visit Visit) {
	if s.FileParsed(entry) {
		return
	}
	root, err := s.ParseFile(entry, uriRoot)
	visit(entry, root, err)
	if err != nil {
		return
	}

	fi := NewFileInfo(entry, uriRoot)
	for _, imp := range Imports(root) {
		target, ok := s.ResolveImport(fi, imp)
		if !ok {
			continue
		}
		if imp.Options.Multiple != nil && *imp.Options.Multiple {
			root, err := s.ParseFile(target, uriRoot)
			visit(target, root, err)
			continue
		}
		s.ParseTree(target, uriRoot, visit)
	}
}
