package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the wicli data directory.
const HomeEnv = "WICLI_HOME"

// DataDir returns the wicli data directory: $WICLI_HOME, or ~/.wicli.
// Falls back to the temp directory if the home directory is unavailable.
func DataDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".wicli")
	}
	return filepath.Join(home, ".wicli")
}

// DefaultLogDir returns <data dir>/logs.
func DefaultLogDir() string {
	return filepath.Join(DataDir(), "logs")
}

// DefaultLogPath returns the debug log path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "wicli.log")
}

// FindLogFile resolves the log file to view. An explicit path wins;
// otherwise the default path is used if it exists.
func FindLogFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("log file not found: %s", explicit)
		}
		return explicit, nil
	}

	path := DefaultLogPath()
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no log file found at %s\nrun a command with --debug first, e.g. 'wicli --debug search <term>'", path)
	}
	return path, nil
}
