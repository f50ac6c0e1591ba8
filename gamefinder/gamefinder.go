package gamefinder

import (
	"os"
	"path/filepath"
	"strings"
)

// Unified game detection across multiple launchers:
// - Steam (native, Flatpak, Snap)
// - Heroic (GOG, Epic)
// - Bottles
//
// Probes are read-only and never fail hard, a missing launcher or malformed
// entry simply yields no games.

type LauncherType int

const (
	LauncherSteam LauncherType = iota
	LauncherHeroic
	LauncherBottles
)

type HeroicStore int

const (
	StoreGOG HeroicStore = iota
	StoreEpic
)

// Launcher is a closed descriptive variant, it carries no behavior beyond
// display naming and family filtering. Adding a launcher means adding a
// variant plus a probe function.
type Launcher struct {
	Type      LauncherType
	IsFlatpak bool
	IsSnap    bool
	Store     HeroicStore
}

func (l Launcher) DisplayName() string {
	switch l.Type {
	case LauncherSteam:
		if l.IsFlatpak {
			return "Steam (Flatpak)"
		}
		if l.IsSnap {
			return "Steam (Snap)"
		}
		return "Steam"
	case LauncherHeroic:
		if l.Store == StoreEpic {
			return "Heroic (Epic)"
		}
		return "Heroic (GOG)"
	case LauncherBottles:
		return "Bottles"
	}
	return "Unknown"
}

// FamilyTag returns the launcher family name used for filtering, ignoring
// sub-variant fields.
func (l Launcher) FamilyTag() string {
	switch l.Type {
	case LauncherHeroic:
		return "heroic"
	case LauncherBottles:
		return "bottles"
	default:
		return "steam"
	}
}

// A detected game installation. Constructed fresh on every scan and never
// mutated afterwards. Optional string fields use "" for absence.
type Game struct {
	Name        string
	AppID       string
	InstallPath string
	// Wine/Proton compatibility prefix, empty when none was found on disk.
	// Bottles games always carry their own prefix.
	PrefixPath           string
	Launcher             Launcher
	MyGamesFolder        string
	AppDataLocalFolder   string
	AppDataRoamingFolder string
	RegistryPath         string
	RegistryValue        string
}

func (g *Game) HasPrefix() bool {
	return g.PrefixPath != ""
}

// PrefixUserPath resolves the Windows user directory inside the prefix: the
// first entry of drive_c/users that is not one of Wine's reserved accounts,
// falling back to the conventional steamuser subpath.
func (g *Game) PrefixUserPath() (string, bool) {
	if !g.HasPrefix() {
		return "", false
	}
	usersDir := filepath.Join(g.PrefixPath, "drive_c", "users")

	if entries, err := os.ReadDir(usersDir); err == nil {
		for _, entry := range entries {
			name := entry.Name()
			if name != "Public" && name != "root" {
				return filepath.Join(usersDir, name), true
			}
		}
	}

	return filepath.Join(usersDir, "steamuser"), true
}

func (g *Game) PrefixDocumentsPath() (string, bool) {
	user, ok := g.PrefixUserPath()
	if !ok {
		return "", false
	}
	return filepath.Join(user, "Documents"), true
}

func (g *Game) PrefixMyGamesPath() (string, bool) {
	docs, ok := g.PrefixDocumentsPath()
	if !ok || g.MyGamesFolder == "" {
		return "", false
	}
	return filepath.Join(docs, "My Games", g.MyGamesFolder), true
}

func (g *Game) PrefixAppDataLocalPath() (string, bool) {
	user, ok := g.PrefixUserPath()
	if !ok || g.AppDataLocalFolder == "" {
		return "", false
	}
	return filepath.Join(user, "AppData", "Local", g.AppDataLocalFolder), true
}

func (g *Game) PrefixAppDataRoamingPath() (string, bool) {
	user, ok := g.PrefixUserPath()
	if !ok || g.AppDataRoamingFolder == "" {
		return "", false
	}
	return filepath.Join(user, "AppData", "Roaming", g.AppDataRoamingFolder), true
}

// GameScanResult aggregates one detection pass. The per-launcher counters are
// probe-authoritative, they are filled from each probe's own result length.
type GameScanResult struct {
	Games        []Game
	SteamCount   int
	HeroicCount  int
	BottlesCount int
}

func (r *GameScanResult) GamesWithPrefixes() []*Game {
	var games []*Game
	for i := range r.Games {
		if r.Games[i].HasPrefix() {
			games = append(games, &r.Games[i])
		}
	}
	return games
}

// GamesByLauncher filters by launcher family tag ("steam", "heroic", "bottles")
func (r *GameScanResult) GamesByLauncher(family string) []*Game {
	var games []*Game
	for i := range r.Games {
		if r.Games[i].Launcher.FamilyTag() == family {
			games = append(games, &r.Games[i])
		}
	}
	return games
}

func (r *GameScanResult) FindByName(name string) (*Game, bool) {
	for i := range r.Games {
		if strings.EqualFold(r.Games[i].Name, name) {
			return &r.Games[i], true
		}
	}
	return nil, false
}

func (r *GameScanResult) FindByAppID(appID string) (*Game, bool) {
	for i := range r.Games {
		if r.Games[i].AppID == appID {
			return &r.Games[i], true
		}
	}
	return nil, false
}

// DetectAllGames runs all probes in a fixed order (Steam, Heroic, Bottles)
// and concatenates their outputs preserving per-probe order.
func DetectAllGames() *GameScanResult {
	result := &GameScanResult{}

	steamGames := DetectSteamGames()
	result.SteamCount = len(steamGames)
	result.Games = append(result.Games, steamGames...)

	heroicGames := DetectHeroicGames()
	result.HeroicCount = len(heroicGames)
	result.Games = append(result.Games, heroicGames...)

	bottlesGames := DetectBottlesGames()
	result.BottlesCount = len(bottlesGames)
	result.Games = append(result.Games, bottlesGames...)

	return result
}

// DetectSteamOnly runs the Steam probe alone, the other counters stay zero.
func DetectSteamOnly() *GameScanResult {
	steamGames := DetectSteamGames()
	return &GameScanResult{
		Games:      steamGames,
		SteamCount: len(steamGames),
	}
}
