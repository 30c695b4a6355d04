// Package misc provides program identification helpers.
package misc

import (
	"runtime/debug"
	"strings"
)

const appName = "oklchify"

// GetAppName returns short program name to be used in logs and reports.
func GetAppName() string {
	return appName
}

// GetVersion returns module version recorded in build info.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) > 0 {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns VCS revision recorded in build info, shortened to 12 characters.
func GetGitHash() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "unknown"
}

// GetModifiedMark returns "*" when the build was made from a dirty tree.
func GetModifiedMark() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.modified" && strings.EqualFold(s.Value, "true") {
			return "*"
		}
	}
	return ""
}
