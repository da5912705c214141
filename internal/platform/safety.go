package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	// "go run" builds into the temp dir
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}

	// "go test" binaries end in .test
	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}

	return false
}

// ResolveDBPath returns where the database really lives. When forceTemp is
// set, paths outside the temp directory are re-rooted under it so a dev run
// never touches the user's notes. ":memory:" is returned untouched.
func ResolveDBPath(userPath string, forceTemp bool) string {
	if userPath == "" {
		userPath = DBFile
	}
	if !forceTemp || userPath == ":memory:" {
		return userPath
	}

	clean := filepath.Clean(userPath)
	tempRoot := os.TempDir()

	// Already inside the temp dir (t.TempDir() and friends).
	rel, err := filepath.Rel(tempRoot, clean)
	if err == nil && !strings.HasPrefix(rel, "..") {
		return clean
	}

	sub := filepath.Base(filepath.Dir(clean))
	if sub == "." || sub == string(os.PathSeparator) {
		sub = "default"
	}
	return filepath.Join(tempRoot, "inkpad-dev", sub, filepath.Base(clean))
}
