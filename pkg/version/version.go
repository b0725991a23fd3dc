package version

import "runtime/debug"

// version is injected at release build time via
// -ldflags "-X github.com/dstraub/satellite-plugin/pkg/version.version=...".
var version string

func GetVersion() string {
	if version != "" {
		return version
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			revision := setting.Value
			if len(revision) > 12 {
				revision = revision[:12]
			}
			return "git-" + revision
		}
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "unknown"
}
