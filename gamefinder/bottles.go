package gamefinder

import (
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/RevengeRip/Fluorine-Manager/settings"
)

// Bottles data roots in priority order (native, then Flatpak)
func bottlesRoots() []string {
	home := settings.Home()
	return []string{
		filepath.Join(home, ".local", "share", "bottles", "bottles"),
		filepath.Join(home, ".var", "app", "com.usebottles.bottles", "data", "bottles", "bottles"),
	}
}

type bottleConfig struct {
	Name             string                   `yaml:"Name"`
	ExternalPrograms map[string]bottleProgram `yaml:"External_Programs"`
}

type bottleProgram struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// DetectBottlesGames scans every bottle's registered external programs.
// A bottle is itself a wine prefix, so every game found here carries one.
func DetectBottlesGames() []Game {
	for _, root := range bottlesRoots() {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}

		var games []Game
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			games = append(games, scanBottle(filepath.Join(root, entry.Name()))...)
		}
		return games
	}
	return nil
}

func scanBottle(bottlePath string) []Game {
	buf, err := os.ReadFile(filepath.Join(bottlePath, "bottle.yml"))
	if err != nil {
		return nil
	}

	var config bottleConfig
	if err := yaml.Unmarshal(buf, &config); err != nil {
		zap.S().Warnf("malformed bottle.yml in %v - %v", bottlePath, err)
		return nil
	}

	var games []Game
	for programID, program := range config.ExternalPrograms {
		if program.Name == "" || program.Path == "" {
			continue
		}

		game := Game{
			Name:        program.Name,
			AppID:       programID,
			InstallPath: filepath.Dir(program.Path),
			PrefixPath:  bottlePath,
			Launcher:    Launcher{Type: LauncherBottles},
		}

		if known, ok := FindKnownByName(program.Name); ok {
			known.fill(&game)
		}

		games = append(games, game)
	}

	sort.Slice(games, func(i, j int) bool { return games[i].Name < games[j].Name })
	return games
}
