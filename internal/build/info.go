package build

import (
	"crypto/fips140"
	"maps"
	"runtime/debug"
	"slices"
	"strconv"
	"strings"
)

var (
	// gitTag is the git tag logcheck was built from. Set with -ldflags -X.
	gitTag = "main"
	// gitCommit is the git commit hash logcheck was built from.
	gitCommit = "unknown"
	// gitTreeState is the state of the git tree when logcheck was built.
	gitTreeState = "unknown"
)

func InfoMap() map[string]string {
	return map[string]string{
		"git_tag":           gitTag,
		"git_commit":        shortenedGitCommit(),
		"go_version":        goVersion(),
		"git_tree_state":    gitTreeState,
		"fips_mode_enabled": strconv.FormatBool(fips140.Enabled()),
	}
}

func GitTag() string {
	return gitTag
}

// Summary renders the build info as a single line for --version.
func Summary() string {
	info := InfoMap()

	keys := slices.Sorted(maps.Keys(info))
	parts := make([]string, 0, len(keys))

	for _, k := range keys {
		parts = append(parts, k+"="+info[k])
	}

	return "logcheck " + gitTag + " (" + strings.Join(parts, ", ") + ")"
}

func shortenedGitCommit() string {
	if gitCommit == "" {
		return "unknown"
	}

	const shortSHALength = 7
	if len(gitCommit) > shortSHALength {
		return gitCommit[:shortSHALength]
	}

	return gitCommit
}

var readBuildInfo = debug.ReadBuildInfo

func goVersion() string {
	buildInfo, ok := readBuildInfo()
	if !ok {
		return "unknown"
	}

	return buildInfo.GoVersion
}
