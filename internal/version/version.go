// Package version reports folddisco's build identity the way the
// teacher's src/version.go does for Samoyed: a build-time-overridable
// version string plus VCS revision and dirty flag pulled from
// runtime/debug.ReadBuildInfo.
package version

import (
	"fmt"
	"runtime/debug"
	"strconv"
)

// FoldDiscoVersion is set at build time via
// -ldflags "-X github.com/Danialgharaie/folddisco/internal/version.FoldDiscoVersion=X".
var FoldDiscoVersion string

func getBuildSetting(bi *debug.BuildInfo, key, fallback string) string {
	if bi == nil {
		return fallback
	}
	for _, bs := range bi.Settings {
		if bs.Key == key {
			return bs.Value
		}
	}
	return fallback
}

// String renders the one-line version banner `folddisco` prints for
// `folddisco version` and `--version`.
func String() string {
	buildInfo, _ := debug.ReadBuildInfo()

	buildTime := getBuildSetting(buildInfo, "vcs.time", "UNKNOWN")
	revision := getBuildSetting(buildInfo, "vcs.revision", "UNKNOWN")
	dirtyStr := getBuildSetting(buildInfo, "vcs.modified", "")

	if dirty, err := strconv.ParseBool(dirtyStr); err == nil && dirty {
		revision += "-dirty"
	}

	v := FoldDiscoVersion
	if v == "" {
		v = "dev"
	}

	return fmt.Sprintf("folddisco %s (revision %s, built %s)", v, revision, buildTime)
}
