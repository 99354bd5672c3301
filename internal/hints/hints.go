// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"os/exec"
	"strings"

	"github.com/alnah/go-note2site/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// LookPath finds an executable in PATH. Replaced in tests.
var LookPath = exec.LookPath

// ForSiteBuild returns hints for site generator failures.
// Suggests installing the generator when it is missing from PATH and
// skipping the build step in CI or containers.
func ForSiteBuild(command string) string {
	var hints []string

	if command == "" {
		command = "jekyll"
	}
	if _, err := LookPath(command); err != nil {
		hints = append(hints, command+" not found in PATH, install it (gem install "+command+" bundler)")
	}

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
	if inCI || IsInContainer() {
		hints = append(hints, "use --no-build to only write the site sources")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeouts for slow operations.
func ForTimeout() string {
	return format("for large corpora or a slow lookup service, use --timeout or --lookup-timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/note2site/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/note2site") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForSourceNotFound returns hints for a missing export directory.
func ForSourceNotFound() string {
	return format("pass the export directory as argument or set source.dir / NOTE2SITE_SOURCE_DIR")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForAssetNotFound returns hints for missing custom stylesheets or fragments.
func ForAssetNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("expected files: " + strings.Join(available, ", "))
}

// ForLookup returns hints for asset lookup failures.
func ForLookup() string {
	return format("check lookup.baseURL is reachable or use --no-lookup to keep image sources as exported")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
