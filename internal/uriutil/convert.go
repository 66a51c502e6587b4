// Package uriutil converts between file:// document URIs and file system
// paths
package uriutil

import (
	"net/url"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// PathToURI converts a file system path to a file:// URI. Relative paths
// are made absolute first. Segments are percent-encoded, Windows drive
// paths gain a leading slash (file:///C:/proj) and UNC paths keep their
// server as the URI host (file://server/share).
func PathToURI(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}

	if runtime.GOOS == "windows" && strings.HasPrefix(p, `\\`) {
		return "file://" + escapeSegments(filepath.ToSlash(p[2:]))
	}

	p = filepath.ToSlash(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "file://" + escapeSegments(p)
}

func escapeSegments(p string) string {
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// URIToPath converts a file:// URI to a file system path. Anything that is
// not a well-formed file URI is treated leniently as a path with an
// optional file:// prefix.
func URIToPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return lenientPath(uri)
	}

	if parsed.Host != "" {
		if runtime.GOOS == "windows" {
			return `\\` + parsed.Host + strings.ReplaceAll(parsed.Path, "/", `\`)
		}
		return parsed.Host + parsed.Path
	}

	// url.Parse has already percent-decoded Path
	return filepath.FromSlash(trimDriveSlash(parsed.Path))
}

func lenientPath(uri string) string {
	p := strings.TrimPrefix(uri, "file://")
	return filepath.FromSlash(trimDriveSlash(p))
}

// trimDriveSlash turns /C:/proj into C:/proj
func trimDriveSlash(p string) string {
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		return p[1:]
	}
	return p
}

// IsLess reports whether uri or path names a .less file
func IsLess(uri string) bool {
	return strings.EqualFold(path.Ext(strings.TrimSuffix(uri, "/")), ".less")
}

// IsFileURI reports whether uri uses the file scheme. Untitled buffers
// and other virtual documents do not.
func IsFileURI(uri string) bool {
	return len(uri) >= 5 && strings.EqualFold(uri[:5], "file:")
}
