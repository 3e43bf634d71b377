// Package version holds the autorelease build information.
// This is a separate package to avoid import cycles - it has no dependencies
// and can be safely imported from any package.
package version

var (
	// Version information - set via ldflags during build:
	//   -X github.com/ariel-frischer/autorelease/internal/version.Version=v1.2.3
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// String is the one-line form: the version, then the abbreviated commit
// when one was stamped in.
func String() string {
	if Commit == "" || Commit == "unknown" {
		return Version
	}
	return Version + " (" + ShortCommit() + ")"
}

// ShortCommit returns the first eight characters of Commit.
func ShortCommit() string {
	if len(Commit) > 8 {
		return Commit[:8]
	}
	return Commit
}

// UserAgent identifies autorelease to the GitHub API.
func UserAgent() string {
	return "autorelease/" + Version
}
