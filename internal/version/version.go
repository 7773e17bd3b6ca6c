// Package version exposes build information set with -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set at build time, e.g.
//
//	go build -ldflags "-X github.com/jrakibi/skibidi-wallet-sub000/internal/version.Version=v1.2.0"
//
//nolint:gochecknoglobals // ldflags targets
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders Info on one line.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "skibidi %s", i.Version)
	if i.Commit != "" {
		fmt.Fprintf(&b, " (%s)", shortCommit(i.Commit))
	}
	if i.BuildDate != "" {
		fmt.Fprintf(&b, " built %s", i.BuildDate)
	}
	fmt.Fprintf(&b, " %s %s", i.GoVersion, i.Platform)
	return b.String()
}

// UserAgent is sent with every outbound HTTP request.
func UserAgent() string {
	return fmt.Sprintf("skibidi/%s (%s/%s)", strings.TrimPrefix(Version, "v"), runtime.GOOS, runtime.GOARCH)
}

// IsDev reports whether this is an unreleased build.
func IsDev() bool {
	return Version == "" || Version == "dev"
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
