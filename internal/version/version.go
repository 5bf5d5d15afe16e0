package version

import (
	"runtime/debug"
	"strings"
)

// Set via -ldflags "-X github.com/samcharles93/pngme/internal/version.Version=...".
var (
	Version   = ""
	Commit    = ""
	BuildTime = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Resolve prefers values injected at link time and falls back to the module
// and VCS stamps recorded by the go tool. A binary with neither reports
// "devel".
func Resolve() Info {
	info := Info{Version: Version, Commit: Commit, BuildTime: BuildTime}

	bi, ok := readBuildInfo()
	if ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}

	if info.Version == "" {
		info.Version = "devel"
	}
	return info
}

// String renders "v1.2.3 (abcdef123456)" or "v1.2.3 (abcdef123456, dirty)".
func (i Info) String() string {
	if i.Commit == "" {
		return i.Version
	}
	var sb strings.Builder
	sb.WriteString(i.Version)
	sb.WriteString(" (")
	sb.WriteString(shortCommit(i.Commit))
	if i.Modified {
		sb.WriteString(", dirty")
	}
	sb.WriteByte(')')
	return sb.String()
}

func String() string {
	return Resolve().String()
}

func shortCommit(commit string) string {
	if len(commit) <= 12 {
		return commit
	}
	return commit[:12]
}
