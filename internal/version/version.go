// Package version holds the application version identifier that preset files
// are checked against.
package version

// Build-time variables injected via ldflags
var (
	Version   = "6.4"
	GitMaster = ""
)

// Long returns the full version string, suffixed with ".git" for builds from
// the development branch.
func Long() string {
	v := Version
	if GitMaster != "" {
		v += ".git"
	}
	return v
}
