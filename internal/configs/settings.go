package configs

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultHomeName is the directory under $HOME used when nothing else
// is configured.
const DefaultHomeName = ".koru"

// HomeEnvVar overrides the default profile root when set.
const HomeEnvVar = "KORU_HOME"

// ResolveHome returns the profile root directory, in order of
// precedence: the explicit flag value, $KORU_HOME, then ~/.koru.
// A leading "~/" in any source is expanded to the user's home
// directory. The root is threaded explicitly into every component so
// tests can run against isolated roots; it is never process-global.
func ResolveHome(flagValue string) (string, error) {
	dir := flagValue
	if dir == "" {
		dir = os.Getenv(HomeEnvVar)
	}
	if dir == "" {
		dir = "~/" + DefaultHomeName
	}
	return ExpandHome(dir)
}

// ExpandHome expands a leading "~" or "~/" to the user's home directory
// and returns an absolute path.
func ExpandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return filepath.Abs(path)
}
