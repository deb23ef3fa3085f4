// Package buildinfo carries version metadata stamped in at link time, e.g.
//
//	go build -ldflags "-X github.com/AkhmadOnline/transport-catalogue/internal/buildinfo.Version=v1.2.0"
package buildinfo

import "runtime/debug"

var (
	Version       = "dev"
	CommitHash    = ""
	CommitTime    = ""
	CommitMessage = ""
	Branch        = ""
	BuildTime     = ""
	Dirty         = "false"
	Host          = ""
	UserName      = ""
	UserEmail     = ""
	RemoteURL     = ""
)

func init() {
	if CommitHash != "" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			CommitHash = s.Value
		case "vcs.time":
			CommitTime = s.Value
		case "vcs.modified":
			Dirty = s.Value
		}
	}
}

// ShortHash is the seven character abbreviation of CommitHash, or "unknown".
func ShortHash() string {
	if len(CommitHash) < 7 {
		return "unknown"
	}
	return CommitHash[:7]
}
