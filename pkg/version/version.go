// Package version reports which build of filecombiner is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Name is the program name used in help output, logs and the version line.
const Name = "filecombiner"

// Release builds stamp these with -ldflags, e.g.
// -X 'filecombiner/pkg/version.Version=1.2.3' -X 'filecombiner/pkg/version.Commit=abcdefg'
// Anything left at its default is filled from the module build info when the
// binary was built by `go install` or from a VCS checkout.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

const shortCommitLen = 7

// Info describes one build.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
	Modified  bool // built from a working tree with uncommitted changes
	GoVersion string
	Platform  string
}

// Get returns the build info of the running binary.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
}

// resolve merges the linker-stamped values with bi, which may be nil.
func resolve(bi *debug.BuildInfo) Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi == nil {
		return info
	}

	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" && s.Value != "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "unknown" && s.Value != "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	if len(info.Commit) > shortCommitLen {
		info.Commit = info.Commit[:shortCommitLen]
	}
	return info
}

// String renders i on one line, for example
// filecombiner 1.2.3 (commit abcdefg, built 2024-04-27T15:04:05Z) go1.23.1 linux/amd64
func (i Info) String() string {
	commit := i.Commit
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s %s (commit %s, built %s) %s %s",
		Name, i.Version, commit, i.BuildTime, i.GoVersion, i.Platform)
}
