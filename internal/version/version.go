package version

import "fmt"

// Build metadata, set with -ldflags "-X .../internal/version.Version=0.0.52".
var (
	// Version is both the launcher release and the kubernetes-mcp-server release it
	// runs by default. Unstamped builds follow the newest published server.
	Version = "latest"
	Commit  = "none"
	// BuildTime is a UTC timestamp.
	BuildTime = "unknown"
)

// Short returns the release name used as the default artifact version.
func Short() string {
	return Version
}

// Full describes the launcher build on one line.
func Full() string {
	return fmt.Sprintf("kubernetes-mcp-server launcher %s (commit %s, built %s)", Version, Commit, BuildTime)
}
