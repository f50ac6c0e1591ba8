package settings

import (
	"os"
	"path/filepath"
)

// GetWorkingFolder detects the executable's own dir, used as the fallback
// location for the log file.
func GetWorkingFolder() (string, string, error) {
	exePath, exeErr := os.Executable()
	if exeErr != nil {
		return "", "", exeErr
	}

	return exePath, filepath.Dir(exePath), nil
}
