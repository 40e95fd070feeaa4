package version

import "fmt"

// Version is the current release of qcomnews.
const Version = "0.1.0"

// Commit is stamped at build time with -ldflags "-X qcomnews/internal/version.Commit=<sha>".
var Commit = ""

// GetVersion returns the version line printed by `qcomnews version`.
func GetVersion() string {
	if Commit == "" {
		return fmt.Sprintf("qcomnews %s", Version)
	}
	return fmt.Sprintf("qcomnews %s (%s)", Version, Commit)
}
