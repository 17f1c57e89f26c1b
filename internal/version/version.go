// Package version holds build metadata stamped via ldflags.
package version

//nolint:revive // Overwritten by the release pipeline.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build metadata in one line for startup logs.
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
