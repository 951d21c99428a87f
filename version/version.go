package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags -X at release time. Unset values fall back to the module
// and VCS data the Go toolchain embeds in the binary.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

const (
	appPackage = "huffarc"
	unknown    = "unknown"
)

// Info describes the running build.
type Info struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Modified bool   `json:"modified,omitempty"`
	Package  string `json:"package"`
	Go       string `json:"go"`
}

// buildSetting returns the embedded VCS setting for key, or "".
func buildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

// pick returns linked unless it still holds its placeholder, then the
// embedded setting, then fallback.
func pick(linked, placeholder, embedded, fallback string) string {
	switch {
	case linked != "" && linked != placeholder:
		return linked
	case embedded != "":
		return embedded
	}
	return fallback
}

// GetVersion returns the release version, the module version, or
// "development" for a local build.
func GetVersion() string {
	var module string
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" {
		module = info.Main.Version
	}
	return pick(Version, "dev", module, "development")
}

// GetCommit returns the full commit hash of the build.
func GetCommit() string {
	return pick(Commit, unknown, buildSetting("vcs.revision"), unknown)
}

// GetBuildDate returns the build or commit time of the build.
func GetBuildDate() string {
	return pick(Date, unknown, buildSetting("vcs.time"), unknown)
}

// GetInfo collects everything known about the running build.
func GetInfo() Info {
	return Info{
		Version:  GetVersion(),
		Commit:   GetCommit(),
		Date:     GetBuildDate(),
		Modified: buildSetting("vcs.modified") == "true",
		Package:  appPackage,
		Go:       runtime.Version(),
	}
}

// String formats the version with a short commit, a dirty marker and the
// build date where those are known.
func (i Info) String() string {
	if i.Commit == unknown || len(i.Commit) <= 7 {
		return i.Version
	}
	commit := i.Commit[:7]
	if i.Modified {
		commit += "+dirty"
	}
	if i.Date == unknown || i.Date == "" {
		return fmt.Sprintf("%s (%s)", i.Version, commit)
	}
	return fmt.Sprintf("%s (%s, built %s)", i.Version, commit, i.Date)
}

// GetFullVersion returns GetInfo().String().
func GetFullVersion() string {
	return GetInfo().String()
}

// PrintVersion writes a multi-line version report for appName to w.
func PrintVersion(w io.Writer, appName string) {
	info := GetInfo()
	fmt.Fprintf(w, "%s version %s\n", appName, info)
	fmt.Fprintf(w, "Package: %s\n", info.Package)
	fmt.Fprintf(w, "Commit: %s\n", info.Commit)
	fmt.Fprintf(w, "Build Date: %s\n", info.Date)
	fmt.Fprintf(w, "Go: %s\n", info.Go)
}
