// Package main builds the c-shared fluorine library consumed by the
// front-end process. Build with:
//
//	go build -buildmode=c-shared -o libfluorine.so ./export
package main

/*
#include <stdlib.h>
#include "fluorine.h"
*/
import "C"

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/RevengeRip/Fluorine-Manager/gamefinder"
	"github.com/RevengeRip/Fluorine-Manager/installer"
	"github.com/RevengeRip/Fluorine-Manager/logger"
	"github.com/RevengeRip/Fluorine-Manager/settings"
	"github.com/RevengeRip/Fluorine-Manager/steam"
)

const cancelPollInterval = 100 * time.Millisecond

func cString(s string) *C.char {
	return C.CString(s)
}

// cStringOpt maps the empty string to null, mirroring optional fields.
func cStringOpt(s string) *C.char {
	if s == "" {
		return nil
	}
	return C.CString(s)
}

func goString(p *C.char) string {
	if p == nil {
		return ""
	}
	return C.GoString(p)
}

func freeCString(p *C.char) {
	if p != nil {
		C.free(unsafe.Pointer(p))
	}
}

func cMalloc(n uintptr) unsafe.Pointer {
	return C.malloc(C.size_t(n))
}

// findProtonByPath matches one of the installed Proton builds, the lookup
// key the boundary uses for installation calls.
func findProtonByPath(path string) (steam.SteamProton, bool) {
	for _, proton := range steam.FindSteamProtons() {
		if proton.Path == path {
			return proton, true
		}
	}
	return steam.SteamProton{}, false
}

//export fluorine_init_logging
func fluorine_init_logging(cb C.fluorine_log_level_callback) {
	if cb == nil {
		return
	}
	logger.SetCallback(func(level, message string) {
		cLevel := C.CString(level)
		cMessage := C.CString(message)
		C.fluorine_call_log_level(cb, cLevel, cMessage)
		freeCString(cLevel)
		freeCString(cMessage)
	})
}

//export fluorine_detect_all_games
func fluorine_detect_all_games() C.fluorine_game_list_t {
	result := gamefinder.DetectAllGamesCached()

	var list C.fluorine_game_list_t
	list.count = C.size_t(len(result.Games))
	list.steam_count = C.size_t(result.SteamCount)
	list.heroic_count = C.size_t(result.HeroicCount)
	list.bottles_count = C.size_t(result.BottlesCount)

	if len(result.Games) == 0 {
		return list
	}

	list.games = (*C.fluorine_game_t)(cMalloc(uintptr(len(result.Games)) * unsafe.Sizeof(C.fluorine_game_t{})))
	games := unsafe.Slice(list.games, len(result.Games))
	for i, game := range result.Games {
		games[i] = C.fluorine_game_t{
			name:                   cString(game.Name),
			app_id:                 cString(game.AppID),
			install_path:           cString(game.InstallPath),
			prefix_path:            cStringOpt(game.PrefixPath),
			launcher:               cString(game.Launcher.DisplayName()),
			my_games_folder:        cStringOpt(game.MyGamesFolder),
			appdata_local_folder:   cStringOpt(game.AppDataLocalFolder),
			appdata_roaming_folder: cStringOpt(game.AppDataRoamingFolder),
			registry_path:          cStringOpt(game.RegistryPath),
			registry_value:         cStringOpt(game.RegistryValue),
		}
	}
	return list
}

//export fluorine_game_list_free
func fluorine_game_list_free(list C.fluorine_game_list_t) {
	if list.games == nil {
		return
	}
	games := unsafe.Slice(list.games, int(list.count))
	for _, game := range games {
		freeCString(game.name)
		freeCString(game.app_id)
		freeCString(game.install_path)
		freeCString(game.prefix_path)
		freeCString(game.launcher)
		freeCString(game.my_games_folder)
		freeCString(game.appdata_local_folder)
		freeCString(game.appdata_roaming_folder)
		freeCString(game.registry_path)
		freeCString(game.registry_value)
	}
	C.free(unsafe.Pointer(list.games))
}

//export fluorine_invalidate_game_cache
func fluorine_invalidate_game_cache() {
	gamefinder.InvalidateCache()
}

var (
	knownGamesOnce sync.Once
	knownGamesFFI  *C.fluorine_known_game_t
	knownGamesLen  int
)

//export fluorine_get_known_games
func fluorine_get_known_games(outCount *C.size_t) *C.fluorine_known_game_t {
	// built once, lives for the whole process, never freed
	knownGamesOnce.Do(func() {
		knownGamesLen = len(gamefinder.KnownGames)
		knownGamesFFI = (*C.fluorine_known_game_t)(cMalloc(uintptr(knownGamesLen) * unsafe.Sizeof(C.fluorine_known_game_t{})))
		entries := unsafe.Slice(knownGamesFFI, knownGamesLen)
		for i, kg := range gamefinder.KnownGames {
			entries[i] = C.fluorine_known_game_t{
				name:                   cString(kg.Name),
				steam_app_id:           cString(kg.SteamAppID),
				gog_app_id:             cStringOpt(kg.GOGAppID),
				my_games_folder:        cStringOpt(kg.MyGamesFolder),
				appdata_local_folder:   cStringOpt(kg.AppDataLocalFolder),
				appdata_roaming_folder: cStringOpt(kg.AppDataRoamingFolder),
				registry_path:          cString(kg.RegistryPath),
				registry_value:         cString(kg.RegistryValue),
				steam_folder:           cString(kg.SteamFolder),
			}
		}
	})

	if outCount != nil {
		*outCount = C.size_t(knownGamesLen)
	}
	return knownGamesFFI
}

//export fluorine_find_steam_protons
func fluorine_find_steam_protons() C.fluorine_proton_list_t {
	protons := steam.FindSteamProtons()

	var list C.fluorine_proton_list_t
	list.count = C.size_t(len(protons))
	if len(protons) == 0 {
		return list
	}

	list.protons = (*C.fluorine_proton_t)(cMalloc(uintptr(len(protons)) * unsafe.Sizeof(C.fluorine_proton_t{})))
	entries := unsafe.Slice(list.protons, len(protons))
	for i, proton := range protons {
		entries[i] = C.fluorine_proton_t{
			name:            cString(proton.Name),
			config_name:     cString(proton.ConfigName),
			path:            cString(proton.Path),
			is_steam_proton: boolToInt(proton.IsSteamProton),
			is_experimental: boolToInt(proton.IsExperimental),
		}
	}
	return list
}

func boolToInt(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

//export fluorine_proton_list_free
func fluorine_proton_list_free(list C.fluorine_proton_list_t) {
	if list.protons == nil {
		return
	}
	entries := unsafe.Slice(list.protons, int(list.count))
	for _, entry := range entries {
		freeCString(entry.name)
		freeCString(entry.config_name)
		freeCString(entry.path)
	}
	C.free(unsafe.Pointer(list.protons))
}

//export fluorine_find_steam_path
func fluorine_find_steam_path() *C.char {
	path, ok := steam.FindSteamPath()
	if !ok {
		return nil
	}
	return cString(path)
}

//export fluorine_get_steam_accounts
func fluorine_get_steam_accounts() C.fluorine_account_list_t {
	accounts := steam.GetSteamAccounts()

	var list C.fluorine_account_list_t
	list.count = C.size_t(len(accounts))
	if len(accounts) == 0 {
		return list
	}

	list.accounts = (*C.fluorine_account_t)(cMalloc(uintptr(len(accounts)) * unsafe.Sizeof(C.fluorine_account_t{})))
	entries := unsafe.Slice(list.accounts, len(accounts))
	for i, account := range accounts {
		entries[i] = C.fluorine_account_t{
			account_id:   cString(account.AccountID),
			persona_name: cString(account.PersonaName),
			most_recent:  boolToInt(account.MostRecent),
			timestamp:    C.int64_t(account.Timestamp),
		}
	}
	return list
}

//export fluorine_account_list_free
func fluorine_account_list_free(list C.fluorine_account_list_t) {
	if list.accounts == nil {
		return
	}
	entries := unsafe.Slice(list.accounts, int(list.count))
	for _, entry := range entries {
		freeCString(entry.account_id)
		freeCString(entry.persona_name)
	}
	C.free(unsafe.Pointer(list.accounts))
}

//export fluorine_find_userdata_path
func fluorine_find_userdata_path() *C.char {
	path, ok := steam.FindUserdataPath()
	if !ok {
		return nil
	}
	return cString(path)
}

//export fluorine_get_dxvk_conf_path
func fluorine_get_dxvk_conf_path() *C.char {
	return cString(settings.DxvkConfPath())
}

//export fluorine_install_all_dependencies
func fluorine_install_all_dependencies(
	prefixPath *C.char,
	protonName *C.char,
	protonPath *C.char,
	statusCb C.fluorine_status_callback,
	logCb C.fluorine_log_callback,
	progressCb C.fluorine_progress_callback,
	cancelFlag *C.int,
	appID C.uint32_t,
) *C.char {
	_ = goString(protonName)
	proton, ok := findProtonByPath(goString(protonPath))
	if !ok {
		return cString(fmt.Sprintf("Proton not found at path: %v", goString(protonPath)))
	}

	ctx := installer.NewTaskContext(
		func(message string) {
			cMessage := C.CString(message)
			C.fluorine_call_status(statusCb, cMessage)
			freeCString(cMessage)
		},
		func(message string) {
			cMessage := C.CString(message)
			C.fluorine_call_log(logCb, cMessage)
			freeCString(cMessage)
		},
		func(progress float32) {
			C.fluorine_call_progress(progressCb, C.float(progress))
		},
	)

	// the caller's flag is only ever read; a null flag disables cancellation
	stop := installer.WatchCancelFlag(ctx, func() bool {
		return cancelFlag != nil && *cancelFlag != 0
	}, cancelPollInterval)

	err := installer.InstallAllDependencies(goString(prefixPath), proton, ctx, 0.0, 1.0, uint32(appID))
	stop()

	if err != nil {
		return cString(err.Error())
	}
	return nil
}

//export fluorine_apply_wine_registry_settings
func fluorine_apply_wine_registry_settings(
	prefixPath *C.char,
	protonName *C.char,
	protonPath *C.char,
	logCb C.fluorine_log_callback,
	appID C.uint32_t,
) *C.char {
	_ = goString(protonName)
	proton, ok := findProtonByPath(goString(protonPath))
	if !ok {
		return cString(fmt.Sprintf("Proton not found at path: %v", goString(protonPath)))
	}

	err := installer.ApplyWineRegistrySettings(goString(prefixPath), proton, func(message string) {
		cMessage := C.CString(message)
		C.fluorine_call_log(logCb, cMessage)
		freeCString(cMessage)
	}, uint32(appID))

	if err != nil {
		return cString(err.Error())
	}
	return nil
}

//export fluorine_apply_registry_for_game_path
func fluorine_apply_registry_for_game_path(
	prefixPath *C.char,
	protonName *C.char,
	protonPath *C.char,
	gameName *C.char,
	installPath *C.char,
	logCb C.fluorine_log_callback,
) *C.char {
	_ = goString(protonName)
	proton, ok := findProtonByPath(goString(protonPath))
	if !ok {
		return cString(fmt.Sprintf("Proton not found at path: %v", goString(protonPath)))
	}

	err := installer.ApplyRegistryForGamePath(goString(prefixPath), proton, goString(gameName), goString(installPath), func(message string) {
		cMessage := C.CString(message)
		C.fluorine_call_log(logCb, cMessage)
		freeCString(cMessage)
	})

	if err != nil {
		return cString(err.Error())
	}
	return nil
}

//export fluorine_ensure_temp_directory
func fluorine_ensure_temp_directory(prefixPath *C.char) {
	if err := installer.EnsureTempDirectory(goString(prefixPath)); err != nil {
		logger.Warningf("Could not create Temp directory [%v]", err)
	}
}

//export fluorine_create_game_symlinks_auto
func fluorine_create_game_symlinks_auto(prefixPath *C.char) {
	installer.CreateGameSymlinksAuto(goString(prefixPath))
}

//export fluorine_string_free
func fluorine_string_free(s *C.char) {
	freeCString(s)
}

func main() {}
