// Package version carries build metadata injected at link time via
// -ldflags "-X github.com/MeKo-Tech/textspot/internal/version.Version=...".
package version

import "fmt"

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String formats the build metadata as a single line for --version output.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}
