// Package session holds the state shared by a run of parses over many
// files: the import directories and the registry of files already parsed.
// The parser itself is stateless; a Session is owned by whoever drives it,
// such as one lessp invocation or one language server workspace.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"bennypowers.dev/lessls/internal/collections"
	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/internal/parser/less"
	"bennypowers.dev/lessls/internal/parser/less/tree"
)

// ImportDir is a directory searched for imports and the URI root that
// files found there are served under
type ImportDir struct {
	Path    string
	URIRoot string
}

type Session struct {
	mu         sync.Mutex
	importDirs []ImportDir
	parsed     collections.OrderedSet[string]
	options    []less.Option
}

// New returns an empty session whose parses use opts. WithFileInfo is
// always supplied per file and need not be passed here.
func New(opts ...less.Option) *Session {
	return &Session{options: opts}
}

// SetImportDirs adds directories, keyed by path, to the import search
// list. Both the path and the URI root get a trailing slash. Directories
// already present have their URI root replaced.
func (s *Session) SetImportDirs(dirs map[string]string) {
	paths := make([]string, 0, len(dirs))
	for p := range dirs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range paths {
		dir := ImportDir{Path: withSlash(p), URIRoot: withSlash(dirs[p])}
		i := slices.IndexFunc(s.importDirs, func(d ImportDir) bool { return d.Path == dir.Path })
		if i >= 0 {
			s.importDirs[i] = dir
		} else {
			s.importDirs = append(s.importDirs, dir)
		}
	}
}

// ImportDirs returns a copy of the search list in lookup order
func (s *Session) ImportDirs() []ImportDir {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.importDirs)
}

func withSlash(p string) string {
	if p == "" {
		return ""
	}
	return strings.TrimRight(p, `/\`) + "/"
}

// NewFileInfo builds the file information for filename. Every directory
// field is the absolute directory of the file with a trailing slash.
func NewFileInfo(filename, uriRoot string) *tree.FileInfo {
	dir := filepath.Dir(filename)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	dir = withSlash(filepath.ToSlash(dir))
	return &tree.FileInfo{
		Filename:         filename,
		CurrentDirectory: dir,
		RootPath:         dir,
		EntryPath:        dir,
		URIRoot:          withSlash(uriRoot),
	}
}

// Parse parses src as the contents of fi.Filename without touching the
// registry
func (s *Session) Parse(src string, fi *tree.FileInfo) (*tree.Ruleset, error) {
	s.mu.Lock()
	opts := append(slices.Clone(s.options), less.WithFileInfo(fi))
	s.mu.Unlock()
	return less.Parse(src, opts...)
}

// ParseFile reads and parses filename and records it as parsed
func (s *Session) ParseFile(filename, uriRoot string) (*tree.Ruleset, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("file `%s` not found: %w", filename, err)
	}
	s.AddParsedFile(filename)
	log.Debug("parsing %s", filename)
	return s.Parse(string(src), NewFileInfo(filename, uriRoot))
}

// AddParsedFile records filename under its absolute path.
func (s *Session) AddParsedFile(filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parsed.Add(registryKey(filename))
}

// FileParsed reports whether filename has been recorded
func (s *Session) FileParsed(filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parsed.Has(registryKey(filename))
}

// registryKey is the absolute form of filename, so a relative entry and
// the resolved import of the same file are one registry entry
func registryKey(filename string) string {
	if abs, err := filepath.Abs(filename); err == nil {
		return abs
	}
	return filepath.Clean(filename)
}

// ParsedFiles lists recorded files in the order they were first parsed
func (s *Session) ParsedFiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parsed.Members()
}
