package session

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches every LESS file below the root
var DefaultInclude = []string{"**/*.less"}

// Discover returns the files under root matching any of the doublestar
// patterns, as sorted absolute paths without duplicates. Anything inside
// node_modules or a dot directory is skipped unless a pattern names it
// explicitly.
func Discover(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultInclude
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	fsys := os.DirFS(abs)
	var files []string
	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if hidden(m) && !hidden(pattern) {
				continue
			}
			files = append(files, filepath.Join(abs, filepath.FromSlash(m)))
		}
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func hidden(p string) bool {
	for seg := range strings.SplitSeq(p, "/") {
		if seg == "node_modules" || (len(seg) > 1 && strings.HasPrefix(seg, ".") && seg != "..") {
			return true
		}
	}
	return false
}
