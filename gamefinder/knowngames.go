package gamefinder

import "strings"

// KnownGame is a static catalog entry supplying per-game metadata that a
// filesystem scan cannot infer: save folder names and the registry entry a
// mod manager expects inside the prefix. Immutable for the process lifetime.
type KnownGame struct {
	Name                 string
	SteamAppID           string
	GOGAppID             string
	MyGamesFolder        string
	AppDataLocalFolder   string
	AppDataRoamingFolder string
	RegistryPath         string
	RegistryValue        string
	// Folder name under steamapps/common
	SteamFolder string
}

// KnownGames is the static catalog of games with known save/registry
// conventions. Adding a game is adding a row.
var KnownGames = []KnownGame{
	{
		Name:               "Skyrim Special Edition",
		SteamAppID:         "489830",
		GOGAppID:           "1711230643",
		MyGamesFolder:      "Skyrim Special Edition",
		AppDataLocalFolder: "Skyrim Special Edition",
		RegistryPath:       `Software\Bethesda Softworks\Skyrim Special Edition`,
		RegistryValue:      "Installed Path",
		SteamFolder:        "Skyrim Special Edition",
	},
	{
		Name:               "Skyrim",
		SteamAppID:         "72850",
		MyGamesFolder:      "Skyrim",
		AppDataLocalFolder: "Skyrim",
		RegistryPath:       `Software\Bethesda Softworks\Skyrim`,
		RegistryValue:      "Installed Path",
		SteamFolder:        "Skyrim",
	},
	{
		Name:               "Fallout 4",
		SteamAppID:         "377160",
		GOGAppID:           "1998527297",
		MyGamesFolder:      "Fallout4",
		AppDataLocalFolder: "Fallout4",
		RegistryPath:       `Software\Bethesda Softworks\Fallout4`,
		RegistryValue:      "Installed Path",
		SteamFolder:        "Fallout 4",
	},
	{
		Name:               "Fallout New Vegas",
		SteamAppID:         "22380",
		GOGAppID:           "1454587428",
		MyGamesFolder:      "FalloutNV",
		AppDataLocalFolder: "FalloutNV",
		RegistryPath:       `Software\Bethesda Softworks\FalloutNV`,
		RegistryValue:      "Installed Path",
		SteamFolder:        "Fallout New Vegas",
	},
	{
		Name:               "Fallout 3",
		SteamAppID:         "22300",
		GOGAppID:           "1454315831",
		MyGamesFolder:      "Fallout3",
		AppDataLocalFolder: "Fallout3",
		RegistryPath:       `Software\Bethesda Softworks\Fallout3`,
		RegistryValue:      "Installed Path",
		SteamFolder:        "Fallout 3 goty",
	},
	{
		Name:               "Oblivion",
		SteamAppID:         "22330",
		GOGAppID:           "1458058109",
		MyGamesFolder:      "Oblivion",
		AppDataLocalFolder: "Oblivion",
		RegistryPath:       `Software\Bethesda Softworks\Oblivion`,
		RegistryValue:      "Installed Path",
		SteamFolder:        "Oblivion",
	},
	{
		Name:          "Morrowind",
		SteamAppID:    "22320",
		GOGAppID:      "1440163901",
		RegistryPath:  `Software\Bethesda Softworks\Morrowind`,
		RegistryValue: "Installed Path",
		SteamFolder:   "Morrowind",
	},
	{
		Name:               "Starfield",
		SteamAppID:         "1716740",
		MyGamesFolder:      "Starfield",
		AppDataLocalFolder: "Starfield",
		RegistryPath:       `Software\Bethesda Softworks\Starfield`,
		RegistryValue:      "Installed Path",
		SteamFolder:        "Starfield",
	},
	{
		Name:               "Enderal Special Edition",
		SteamAppID:         "976620",
		MyGamesFolder:      "Enderal Special Edition",
		AppDataLocalFolder: "Enderal Special Edition",
		RegistryPath:       `Software\SureAI\EnderalSE`,
		RegistryValue:      "Install_Path",
		SteamFolder:        "Enderal Special Edition",
	},
	{
		Name:               "Baldur's Gate 3",
		SteamAppID:         "1086940",
		GOGAppID:           "1456460669",
		AppDataLocalFolder: "Larian Studios",
		RegistryPath:       `Software\Larian Studios\Baldur's Gate 3`,
		RegistryValue:      "InstallDir",
		SteamFolder:        "Baldurs Gate 3",
	},
}

// FindKnownByName looks a catalog entry up by name, case-insensitive.
func FindKnownByName(name string) (*KnownGame, bool) {
	for i := range KnownGames {
		if strings.EqualFold(KnownGames[i].Name, name) {
			return &KnownGames[i], true
		}
	}
	return nil, false
}

func FindKnownBySteamID(appID string) (*KnownGame, bool) {
	for i := range KnownGames {
		if KnownGames[i].SteamAppID == appID {
			return &KnownGames[i], true
		}
	}
	return nil, false
}

func FindKnownByGOGID(appID string) (*KnownGame, bool) {
	for i := range KnownGames {
		if KnownGames[i].GOGAppID != "" && KnownGames[i].GOGAppID == appID {
			return &KnownGames[i], true
		}
	}
	return nil, false
}

// fill copies the catalog metadata a scan cannot infer into a Game.
func (kg *KnownGame) fill(g *Game) {
	g.MyGamesFolder = kg.MyGamesFolder
	g.AppDataLocalFolder = kg.AppDataLocalFolder
	g.AppDataRoamingFolder = kg.AppDataRoamingFolder
	g.RegistryPath = kg.RegistryPath
	g.RegistryValue = kg.RegistryValue
}
