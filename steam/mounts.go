package steam

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/RevengeRip/Fluorine-Manager/settings"
)

// Directories that pressure-vessel already exposes by default
var alreadyExposed = []string{
	"bin", "etc", "home", "lib", "lib32", "lib64",
	"overrides", "run", "sbin", "tmp", "usr", "var",
}

// System directories that should never be mounted
var systemDirs = []string{
	"proc", "sys", "dev", "boot", "root", "lost+found", "snap",
}

// DetectExtraMounts lists top-level directories that need to be added to
// STEAM_COMPAT_MOUNTS for the sandboxed runtime to see them. The result is
// sorted, so repeated runs on an unchanged filesystem are byte-identical.
func DetectExtraMounts() []string {
	return detectExtraMounts("/")
}

func detectExtraMounts(rootDir string) []string {
	var mounts []string

	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return mounts
	}

	for _, entry := range entries {
		name := entry.Name()

		if contains(alreadyExposed, name) || contains(systemDirs, name) {
			continue
		}
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !entry.IsDir() {
			continue
		}

		mounts = append(mounts, "/"+name)
	}

	sort.Strings(mounts)
	return mounts
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// GenerateLaunchOptions composes the Steam launch-options string for the
// current machine, see BuildLaunchOptions for the layout.
func GenerateLaunchOptions(dxvkConfPath string, isElectronApp bool) string {
	return BuildLaunchOptions(dxvkConfPath, DetectExtraMounts(), isElectronApp)
}

// BuildLaunchOptions composes, in a fixed order, an optional DXVK config
// assignment, an optional STEAM_COMPAT_MOUNTS assignment and the %command%
// placeholder, plus extra flags for browser-engine based applications.
func BuildLaunchOptions(dxvkConfPath string, mounts []string, isElectronApp bool) string {
	// the path goes between the quotes verbatim, shell-style, not Go-escaped
	dxvkPart := ""
	if dxvkConfPath != "" {
		dxvkPart = fmt.Sprintf("DXVK_CONFIG_FILE=\"%v\"", settings.NormalizePathForSteam(dxvkConfPath))
	}

	electronFlags := ""
	if isElectronApp {
		electronFlags = " --disable-gpu --no-sandbox"
	}

	switch {
	case dxvkPart == "" && len(mounts) == 0:
		return fmt.Sprintf("%%command%%%v", electronFlags)
	case dxvkPart == "":
		return fmt.Sprintf("STEAM_COMPAT_MOUNTS=%v %%command%%%v", strings.Join(mounts, ":"), electronFlags)
	case len(mounts) == 0:
		return fmt.Sprintf("%v %%command%%%v", dxvkPart, electronFlags)
	default:
		return fmt.Sprintf("%v STEAM_COMPAT_MOUNTS=%v %%command%%%v", dxvkPart, strings.Join(mounts, ":"), electronFlags)
	}
}
