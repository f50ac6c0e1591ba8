package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RevengeRip/Fluorine-Manager/gamefinder"
	"github.com/RevengeRip/Fluorine-Manager/logger"
)

// EnsureTempDirectory creates AppData/Local/Temp inside the prefix. Mod
// managers expect it and some Wine builds never create it on their own.
func EnsureTempDirectory(prefix string) error {
	user, ok := prefixUserDir(prefix)
	if !ok {
		return fmt.Errorf("no prefix path given")
	}
	return os.MkdirAll(filepath.Join(user, "AppData", "Local", "Temp"), 0o755)
}

// CreateGameSymlinksAuto links the save folders of every detected prefixed
// game into the target prefix, so tools running there see the games' saves
// and configs. Best effort, any game that cannot be linked is skipped.
func CreateGameSymlinksAuto(prefix string) {
	result := gamefinder.DetectAllGamesCached()

	for _, game := range result.GamesWithPrefixes() {
		linked := 0
		if src, ok := game.PrefixMyGamesPath(); ok {
			if linkIntoPrefix(prefix, filepath.Join("Documents", "My Games", game.MyGamesFolder), src) {
				linked++
			}
		}
		if src, ok := game.PrefixAppDataLocalPath(); ok {
			if linkIntoPrefix(prefix, filepath.Join("AppData", "Local", game.AppDataLocalFolder), src) {
				linked++
			}
		}
		if src, ok := game.PrefixAppDataRoamingPath(); ok {
			if linkIntoPrefix(prefix, filepath.Join("AppData", "Roaming", game.AppDataRoamingFolder), src) {
				linked++
			}
		}
		if linked > 0 {
			logger.Infof("Linked %v folder(s) for %v", linked, game.Name)
		}
	}
}

// linkIntoPrefix symlinks src to <prefix user dir>/rel. An existing file or
// link at the target is left alone.
func linkIntoPrefix(prefix, rel, src string) bool {
	if _, err := os.Stat(src); err != nil {
		return false
	}

	user, ok := prefixUserDir(prefix)
	if !ok {
		return false
	}
	target := filepath.Join(user, rel)

	if _, err := os.Lstat(target); err == nil {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false
	}
	if err := os.Symlink(src, target); err != nil {
		logger.Warningf("Could not link %v [%v]", rel, err)
		return false
	}
	return true
}

// prefixUserDir finds the prefix's user directory the same way the game
// model does for game prefixes.
func prefixUserDir(prefix string) (string, bool) {
	probe := gamefinder.Game{PrefixPath: prefix}
	return probe.PrefixUserPath()
}
