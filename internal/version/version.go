// Package version reports the build version of the lessls binaries
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set at build time with -ldflags "-X bennypowers.dev/lessls/internal/version.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildTime = "unknown"
	GitDirty  = "" // "dirty" for builds from a modified tree
)

// GetVersion prefers the ldflags version, then the module version from
// build info, then tag-commit from the git variables.
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	if GitTag == "unknown" || GitCommit == "unknown" {
		return "dev"
	}

	v := GitTag
	short := GitCommit
	if len(short) > 7 {
		short = short[:7]
	}
	if short != "" && !strings.HasSuffix(GitTag, short) {
		v += "-" + short
	}
	if GitDirty == "dirty" {
		v += "-dirty"
	}
	return v
}

// GetFullVersion is GetVersion plus the commit, for --version output
func GetFullVersion() string {
	if GitCommit != "unknown" {
		return fmt.Sprintf("%s (commit: %s)", GetVersion(), GitCommit)
	}
	return GetVersion()
}

// GetBuildInfo returns the version fields as reported in serverInfo logs
func GetBuildInfo() map[string]string {
	return map[string]string{
		"version":   GetVersion(),
		"gitCommit": GitCommit,
		"gitTag":    GitTag,
		"buildTime": BuildTime,
		"gitDirty":  GitDirty,
	}
}
