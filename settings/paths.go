package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Home returns the current user's home directory, empty when unknown.
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// ConfigDir returns the settings folder (~/.config/fluorine)
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, SETTINGS_DIR)
}

// SettingsPath returns the settings file path (~/.config/fluorine/config.json)
func SettingsPath() string {
	return filepath.Join(ConfigDir(), SETTINGS_FILENAME)
}

// LegacySettingsPath returns the pre-xdg settings file path (~/Fluorine/config.json)
func LegacySettingsPath() string {
	return filepath.Join(Home(), LEGACY_DIR, SETTINGS_FILENAME)
}

// DefaultDataPath returns the default data folder (~/Fluorine)
func DefaultDataPath() string {
	return filepath.Join(Home(), LEGACY_DIR)
}

// GetDataPath returns the configured data folder
func (a *AppSettings) GetDataPath() string {
	if a.DataPath == "" {
		return DefaultDataPath()
	}
	return a.DataPath
}

// DefaultCacheDir returns the default cache folder (~/.cache/fluorine)
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, SETTINGS_DIR)
}

// GetCacheDir returns the configured cache folder for downloads and tmp files
func (a *AppSettings) GetCacheDir() string {
	if a.CacheLocation == "" {
		return DefaultCacheDir()
	}
	return a.CacheLocation
}

// GetTmpPath returns the folder for in-flight install work
func (a *AppSettings) GetTmpPath() string {
	return filepath.Join(a.GetCacheDir(), "tmp")
}

// DxvkConfPath returns the path of the shared dxvk.conf file
func DxvkConfPath() string {
	return filepath.Join(DefaultCacheDir(), "dxvk.conf")
}

// NormalizePathForSteam rewrites paths for compatibility with the
// pressure-vessel/Steam container. On Fedora Atomic and Bazzite $HOME is
// /var/home/user while /home is a symlink to /var/home; pressure-vessel
// exposes /home but may not handle paths that spell out /var/home. This is
// a plain prefix rewrite, the path does not need to exist.
func NormalizePathForSteam(path string) string {
	if stripped, ok := strings.CutPrefix(path, "/var/home/"); ok {
		return "/home/" + stripped
	}
	return path
}
