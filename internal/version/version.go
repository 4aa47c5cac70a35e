// Package version exposes build information, populated at build time via
// -ldflags and supplemented from the embedded module build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/chisel-ui/chisel/internal/version.Version=v0.3.0 ..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// BuildInfo bundles everything the version command reports.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the build information, filling the commit from the embedded
// VCS metadata when ldflags did not set one.
func Get() BuildInfo {
	commit := GitCommit
	if commit == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" {
					commit = setting.Value
					break
				}
			}
		}
	}
	return BuildInfo{
		Version:   Version,
		GitCommit: commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String formats the build info as a single human-readable line.
func (b BuildInfo) String() string {
	return fmt.Sprintf("chisel %s (commit %s, built %s, %s, %s)",
		b.Version, b.GitCommit, b.BuildTime, b.GoVersion, b.Platform)
}
