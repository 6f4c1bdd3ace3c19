// Package version holds build-time identifiers injected via -ldflags. Both
// vars are overwritten at build time; the defaults here only matter for
// `go run`/tests where no ldflags are supplied.
package version

var (
	// Version is the router's build version, e.g. a git tag or commit SHA.
	Version = "dev"
	// Date is the build timestamp, e.g. from `date -u +%Y-%m-%dT%H:%M:%SZ`.
	Date = "unknown"
)
