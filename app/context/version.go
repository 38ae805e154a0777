package context

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// vcsVersion can be set at build time with
// -ldflags "-X go.hackfix.me/hexo/app/context.vcsVersion=$(git describe)".
var vcsVersion string

// GetVersion returns the app version followed by the VCS revision, if the
// binary was built from a repository, and the Go runtime information.
func GetVersion() string {
	goInfo := fmt.Sprintf("%s, %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	version := strings.TrimPrefix(vcsVersion, "v")
	var revision string
	var dirty bool
	if bi, ok := debug.ReadBuildInfo(); ok {
		if version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			version = strings.TrimPrefix(bi.Main.Version, "v")
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				revision = s.Value
				if len(revision) > 10 {
					revision = revision[:10]
				}
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
	}
	if version == "" {
		version = "0.0.0"
	}

	if revision == "" {
		return fmt.Sprintf("v%s (%s)", version, goInfo)
	}
	if dirty {
		revision += "-dirty"
	}
	return fmt.Sprintf("v%s (commit/%s, %s)", version, revision, goInfo)
}
