package version

import (
	"fmt"
	"strings"
)

// Set at build time with -ldflags "-X .../internal/version.Version=...".
var (
	App       = "PasswordGrant"
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	BuildOS   string
	BuildArch string
)

// Short returns the release version, or "dev" for local builds.
func Short() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// String formats the version line, e.g. "PasswordGrant v1.2.0 (3f9c2ab)".
func String() string {
	s := App + " " + Short()
	if commit := shortCommit(); commit != "" {
		s += " (" + commit + ")"
	}
	return s
}

// PrintVersion prints the version line followed by any build details.
func PrintVersion() {
	var b strings.Builder
	b.WriteString(String() + "\n")
	if BuildTime != "" {
		fmt.Fprintf(&b, "Build time: %s\n", BuildTime)
	}
	if GoVersion != "" {
		fmt.Fprintf(&b, "Go version: %s\n", GoVersion)
	}
	if BuildOS != "" && BuildArch != "" {
		fmt.Fprintf(&b, "Built for: %s/%s\n", BuildOS, BuildArch)
	}
	fmt.Print(b.String())
}

func shortCommit() string {
	if len(GitCommit) > 7 {
		return GitCommit[:7]
	}
	return GitCommit
}
