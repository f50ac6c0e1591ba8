package gamefinder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/RevengeRip/Fluorine-Manager/settings"
)

// Heroic config roots in priority order (native, then Flatpak)
func heroicRoots() []string {
	home := settings.Home()
	return []string{
		filepath.Join(home, ".config", "heroic"),
		filepath.Join(home, ".var", "app", "com.heroicgameslauncher.hgl", "config", "heroic"),
	}
}

type gogInstalledFile struct {
	Installed []struct {
		AppName     string `json:"appName"`
		InstallPath string `json:"install_path"`
	} `json:"installed"`
}

type gogLibraryFile struct {
	Games []struct {
		AppName string `json:"app_name"`
		Title   string `json:"title"`
	} `json:"games"`
}

type legendaryInstalledEntry struct {
	Title       string `json:"title"`
	InstallPath string `json:"install_path"`
}

// DetectHeroicGames scans Heroic's GOG and Epic (legendary) install records.
func DetectHeroicGames() []Game {
	for _, root := range heroicRoots() {
		if _, err := os.Stat(root); err != nil {
			continue
		}

		var games []Game
		games = append(games, detectHeroicGOG(root)...)
		games = append(games, detectHeroicEpic(root)...)
		return games
	}
	return nil
}

func detectHeroicGOG(root string) []Game {
	var installed gogInstalledFile
	if !readJSONFile(filepath.Join(root, "gog_store", "installed.json"), &installed) {
		return nil
	}

	titles := gogTitleIndex(root)

	var games []Game
	for _, entry := range installed.Installed {
		if entry.AppName == "" || entry.InstallPath == "" {
			continue
		}
		if _, err := os.Stat(entry.InstallPath); err != nil {
			continue
		}

		name := titles[entry.AppName]
		if name == "" {
			name = filepath.Base(entry.InstallPath)
		}

		game := Game{
			Name:        name,
			AppID:       entry.AppName,
			InstallPath: entry.InstallPath,
			Launcher:    Launcher{Type: LauncherHeroic, Store: StoreGOG},
			PrefixPath:  heroicGamePrefix(root, entry.AppName),
		}

		if known, ok := FindKnownByGOGID(entry.AppName); ok {
			known.fill(&game)
		} else if known, ok := FindKnownByName(name); ok {
			known.fill(&game)
		}

		games = append(games, game)
	}
	return games
}

// gogTitleIndex maps GOG app ids to display titles. The library cache moved
// between Heroic versions, both locations are tried.
func gogTitleIndex(root string) map[string]string {
	titles := map[string]string{}
	for _, path := range []string{
		filepath.Join(root, "store_cache", "gog_library.json"),
		filepath.Join(root, "gog_store", "library.json"),
	} {
		var library gogLibraryFile
		if !readJSONFile(path, &library) {
			continue
		}
		for _, g := range library.Games {
			if g.AppName != "" && g.Title != "" {
				titles[g.AppName] = g.Title
			}
		}
		if len(titles) > 0 {
			break
		}
	}
	return titles
}

func detectHeroicEpic(root string) []Game {
	installed := map[string]legendaryInstalledEntry{}
	if !readJSONFile(filepath.Join(root, "legendaryConfig", "legendary", "installed.json"), &installed) {
		return nil
	}

	var games []Game
	for appName, entry := range installed {
		if entry.InstallPath == "" {
			continue
		}
		if _, err := os.Stat(entry.InstallPath); err != nil {
			continue
		}

		name := entry.Title
		if name == "" {
			name = filepath.Base(entry.InstallPath)
		}

		game := Game{
			Name:        name,
			AppID:       appName,
			InstallPath: entry.InstallPath,
			Launcher:    Launcher{Type: LauncherHeroic, Store: StoreEpic},
			PrefixPath:  heroicGamePrefix(root, appName),
		}

		if known, ok := FindKnownByName(name); ok {
			known.fill(&game)
		}

		games = append(games, game)
	}

	// map iteration order is random, keep probe output deterministic
	sort.Slice(games, func(i, j int) bool { return games[i].Name < games[j].Name })
	return games
}

// heroicGamePrefix reads the per-game wine prefix from GamesConfig, empty
// when not configured or not present on disk.
func heroicGamePrefix(root, appName string) string {
	config := map[string]json.RawMessage{}
	if !readJSONFile(filepath.Join(root, "GamesConfig", appName+".json"), &config) {
		return ""
	}

	var gameConfig struct {
		WinePrefix string `json:"winePrefix"`
	}
	raw, ok := config[appName]
	if !ok || json.Unmarshal(raw, &gameConfig) != nil {
		return ""
	}

	if gameConfig.WinePrefix == "" {
		return ""
	}
	if _, err := os.Stat(gameConfig.WinePrefix); err != nil {
		return ""
	}
	return gameConfig.WinePrefix
}

func readJSONFile(path string, target interface{}) bool {
	buf, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(buf, target); err != nil {
		zap.S().Warnf("malformed json file %v - %v", path, err)
		return false
	}
	return true
}
