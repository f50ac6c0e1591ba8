package gamefinder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/andygrunwald/vdf"
	"go.uber.org/zap"

	"github.com/RevengeRip/Fluorine-Manager/logger"
	"github.com/RevengeRip/Fluorine-Manager/steam"
)

// Steam's own runtime components show up as apps but are not games
func isSteamTool(name string) bool {
	return strings.HasPrefix(name, "Proton") ||
		strings.HasPrefix(name, "Steam Linux Runtime") ||
		name == "Steamworks Common Redistributables"
}

// DetectSteamGames scans every Steam library for installed games, pairing
// each one with its compatdata prefix when present.
func DetectSteamGames() []Game {
	root, ok := steam.FindRoot()
	if !ok {
		zap.S().Debug("no Steam installation found")
		return nil
	}
	logger.Infof("Steam detected at: %v", root.Path)

	launcher := Launcher{Type: LauncherSteam, IsFlatpak: root.IsFlatpak, IsSnap: root.IsSnap}

	var games []Game
	for _, steamApps := range steamLibraries(filepath.Join(root.Path, "steamapps")) {
		games = append(games, scanSteamLibrary(steamApps, launcher)...)
	}
	return games
}

// steamLibraries returns the steamapps directory of every configured Steam
// library, the main one first. Extra libraries come from libraryfolders.vdf.
func steamLibraries(mainSteamApps string) []string {
	libraries := []string{mainSteamApps}
	seen := map[string]bool{mainSteamApps: true}

	f, err := os.Open(filepath.Join(mainSteamApps, "libraryfolders.vdf"))
	if err != nil {
		zap.S().Debugf("no libraryfolders.vdf - %v", err)
		return libraries
	}
	defer f.Close()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		zap.S().Warnf("failed to parse libraryfolders.vdf - %v", err)
		return libraries
	}

	folders, ok := vdfSection(m, "libraryfolders")
	if !ok {
		return libraries
	}
	for _, v := range folders {
		entry, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		path, ok := entry["path"].(string)
		if !ok {
			continue
		}
		steamApps := filepath.Join(path, "steamapps")
		if !seen[steamApps] {
			seen[steamApps] = true
			libraries = append(libraries, steamApps)
		}
	}
	return libraries
}

func scanSteamLibrary(steamApps string, launcher Launcher) []Game {
	entries, err := os.ReadDir(steamApps)
	if err != nil {
		zap.S().Debugf("cannot list %v - %v", steamApps, err)
		return nil
	}

	var games []Game
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "appmanifest_") || !strings.HasSuffix(name, ".acf") {
			continue
		}

		game, ok := readAppManifest(filepath.Join(steamApps, name), steamApps, launcher)
		if ok {
			games = append(games, game)
		}
	}
	return games
}

func readAppManifest(manifestPath, steamApps string, launcher Launcher) (Game, bool) {
	f, err := os.Open(manifestPath)
	if err != nil {
		zap.S().Debugf("cannot open manifest %v - %v", manifestPath, err)
		return Game{}, false
	}
	defer f.Close()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		zap.S().Warnf("malformed manifest %v - %v", manifestPath, err)
		return Game{}, false
	}

	appState, ok := vdfSection(m, "AppState")
	if !ok {
		return Game{}, false
	}

	appID, _ := appState["appid"].(string)
	name, _ := appState["name"].(string)
	installDir, _ := appState["installdir"].(string)
	if appID == "" || name == "" || installDir == "" {
		return Game{}, false
	}
	if isSteamTool(name) {
		return Game{}, false
	}

	installPath := filepath.Join(steamApps, "common", installDir)
	if _, err := os.Stat(installPath); err != nil {
		// manifest left behind after an uninstall
		return Game{}, false
	}

	game := Game{
		Name:        name,
		AppID:       appID,
		InstallPath: installPath,
		Launcher:    launcher,
	}

	prefix := filepath.Join(steamApps, "compatdata", appID, "pfx")
	if _, err := os.Stat(prefix); err == nil {
		game.PrefixPath = prefix
	}

	if known, ok := FindKnownBySteamID(appID); ok {
		known.fill(&game)
	}

	return game, true
}

// vdfSection fetches a top-level subtree tolerating key case drift between
// Steam client versions.
func vdfSection(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			section, ok := v.(map[string]interface{})
			return section, ok
		}
	}
	return nil, false
}
