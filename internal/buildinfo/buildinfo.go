package buildinfo

import "fmt"

// Set via -ldflags "-X github.com/aPeter1/musrfit-fork-sub004/internal/buildinfo.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("rgehandler %s (commit=%s, date=%s)", Version, Commit, Date)
}
