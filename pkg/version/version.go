// Package version reports the esgsync build version.
package version

// Set at build time with
// -ldflags "-X github.com/rshade/esgsync/pkg/version.version=v1.2.3 -X ...commit=abc123".
//
//nolint:gochecknoglobals // ldflags targets.
var (
	version = "dev"
	commit  = "none"
)

// GetVersion returns the build version.
func GetVersion() string {
	return version
}

// GetCommit returns the build commit.
func GetCommit() string {
	return commit
}

// String returns "version (commit)", or just the version for dev builds.
func String() string {
	if commit == "" || commit == "none" {
		return version
	}
	return version + " (" + commit + ")"
}
