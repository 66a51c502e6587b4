package uriutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathToURI(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"absolute path", "/home/user/styles/main.less", "file:///home/user/styles/main.less"},
		{"root", "/", "file:///"},
		{"spaces are escaped", "/home/user/my styles/a.less", "file:///home/user/my%20styles/a.less"},
		{"unicode is escaped", "/home/user/样式.less", "file:///home/user/%E6%A0%B7%E5%BC%8F.less"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PathToURI(tt.input))
		})
	}
}

func TestURIToPath(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		name     string
		input    string
		expected string
		windows  bool
		posix    bool
	}{
		{name: "file URI", input: "file:///home/user/a.less", expected: "/home/user/a.less", posix: true},
		{name: "root URI", input: "file:///", expected: "/", posix: true},
		{name: "percent-decoded", input: "file:///home/user/my%20styles", expected: "/home/user/my styles", posix: true},
		{name: "unicode", input: "file:///home/%E6%A0%B7%E5%BC%8F", expected: "/home/样式", posix: true},
		{name: "drive letter", input: "file:///C:/proj/a.less", expected: "C:" + sep + "proj" + sep + "a.less"},
		{name: "UNC", input: "file://server/share/a.less", expected: `\\server\share\a.less`, windows: true},
		{name: "not a file URI", input: "untitled:Untitled-1", expected: "untitled:Untitled-1", posix: true},
		{name: "bare path", input: "/tmp/a.less", expected: "/tmp/a.less", posix: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.windows && runtime.GOOS != "windows" {
				t.Skip("Windows-only test")
			}
			if tt.posix && runtime.GOOS == "windows" {
				t.Skip("POSIX-only test")
			}
			assert.Equal(t, tt.expected, URIToPath(tt.input))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}
	for _, p := range []string{
		"/home/user/project/main.less",
		"/srv/my styles/theme.less",
		"/home/user/样式/a.less",
	} {
		assert.Equal(t, p, URIToPath(PathToURI(p)))
	}
}

func TestIsLess(t *testing.T) {
	assert.True(t, IsLess("file:///a/b.less"))
	assert.True(t, IsLess("/a/B.LESS"))
	assert.False(t, IsLess("file:///a/b.css"))
	assert.False(t, IsLess("file:///a/less"))
}

func TestIsFileURI(t *testing.T) {
	assert.True(t, IsFileURI("file:///a/b.less"))
	assert.True(t, IsFileURI("FILE:///a/b.less"))
	assert.False(t, IsFileURI("untitled:Untitled-1"))
	assert.False(t, IsFileURI("file"))
}
