package version

var (
	// Version is the current application version.
	// It is populated by the build system (ldflags) and falls back to this default.
	Version = "v1.0.0"

	// Commit is the git short hash of the build.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)
