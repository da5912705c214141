package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// MarkerDir marks a directory whose notes live in a local database.
	MarkerDir = ".inkpad"

	// DBFile is the database file name inside the data directory.
	DBFile = "inkpad.db"
)

// FindRoot looks upwards from startDir for a directory holding MarkerDir.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, MarkerDir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

// DefaultDBPath picks the database used when none is given: the project
// database under the nearest MarkerDir, else the per-user one.
func DefaultDBPath(startDir string) (string, error) {
	if root, err := FindRoot(startDir); err == nil {
		return filepath.Join(root, MarkerDir, DBFile), nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(cfg, "inkpad", DBFile), nil
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
