// Package buildinfo reports version details recorded by the Go toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"strings"
)

var readBuildInfo = debug.ReadBuildInfo

// Version returns the module version. Development builds report "dev",
// followed by the VCS revision when one was recorded.
func Version() string {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return "dev"
	}
	version := info.Main.Version
	if version != "" && version != "(devel)" {
		return version
	}
	rev := setting(info, "vcs.revision")
	if rev == "" {
		return "dev"
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if setting(info, "vcs.modified") == "true" {
		rev += "-dirty"
	}
	return "dev+" + rev
}

// Tags returns the build tags recorded at compile time.
func Tags() string {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return ""
	}
	return setting(info, "-tags")
}

// VersionWithTags returns the version string and tags if present.
func VersionWithTags() string {
	version := Version()
	tags := strings.TrimSpace(Tags())
	if tags == "" {
		return version
	}
	return fmt.Sprintf("%s (tags: %s)", version, tags)
}

func setting(info *debug.BuildInfo, key string) string {
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
