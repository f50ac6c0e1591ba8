package steam

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/RevengeRip/Fluorine-Manager/logger"
	"github.com/RevengeRip/Fluorine-Manager/settings"
	"github.com/RevengeRip/Fluorine-Manager/vdftext"
)

// Offset between a 17-digit SteamID64 and the small Steam3 account id used
// for userdata folder names.
const steamID64Base = 76561197960265728

// Root describes a discovered Steam installation.
type Root struct {
	Path      string
	IsFlatpak bool
	IsSnap    bool
}

// FindRoot locates the Steam install directory, trying the native, user
// local-share, Flatpak and Snap conventions in that priority order.
func FindRoot() (Root, bool) {
	home := settings.Home()

	candidates := []Root{
		{Path: filepath.Join(home, ".steam", "steam")},
		{Path: filepath.Join(home, ".local", "share", "Steam")},
		{Path: filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".steam", "steam"), IsFlatpak: true},
		{Path: filepath.Join(home, "snap", "steam", "common", ".steam", "steam"), IsSnap: true},
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate.Path); err == nil {
			return candidate, true
		}
	}
	return Root{}, false
}

// FindSteamPath returns the Steam install directory, if any.
func FindSteamPath() (string, bool) {
	root, ok := FindRoot()
	return root.Path, ok
}

// SteamAccount is one entry of the Steam login history.
type SteamAccount struct {
	// Steam3 account id, the userdata folder name
	AccountID   string
	PersonaName string
	// MostRecent mirrors the loginusers.vdf flag
	MostRecent bool
	// Last login time (unix seconds)
	Timestamp int64
}

type accountBuilder struct {
	steamID     string
	accountName string
	personaName string
	mostRecent  bool
	timestamp   int64
}

// build validates an accumulated record, returning false when the record is
// incomplete or has no userdata directory on disk.
func (b *accountBuilder) build(userdataPath string) (SteamAccount, bool) {
	if b.accountName == "" {
		return SteamAccount{}, false
	}

	personaName := b.personaName
	if personaName == "" {
		personaName = b.accountName
	}

	steam64, err := strconv.ParseUint(b.steamID, 10, 64)
	if err != nil || steam64 < steamID64Base {
		return SteamAccount{}, false
	}
	accountID := strconv.FormatUint(steam64-steamID64Base, 10)

	if _, err := os.Stat(filepath.Join(userdataPath, accountID)); err != nil {
		return SteamAccount{}, false
	}

	return SteamAccount{
		AccountID:   accountID,
		PersonaName: personaName,
		MostRecent:  b.mostRecent,
		Timestamp:   b.timestamp,
	}, true
}

// GetSteamAccounts parses config/loginusers.vdf and returns the accounts
// that still have a userdata directory, most recent login first.
func GetSteamAccounts() []SteamAccount {
	steamPath, ok := FindSteamPath()
	if !ok {
		return nil
	}

	content, err := os.ReadFile(filepath.Join(steamPath, "config", "loginusers.vdf"))
	if err != nil {
		return nil
	}
	userdataPath := filepath.Join(steamPath, "userdata")

	var accounts []SteamAccount
	var current *accountBuilder

	finalize := func() {
		if current == nil {
			return
		}
		if account, ok := current.build(userdataPath); ok {
			accounts = append(accounts, account)
		}
		current = nil
	}

	for _, line := range strings.Split(string(content), "\n") {
		if id, ok := vdftext.SteamIDHeader(line); ok {
			finalize()
			current = &accountBuilder{steamID: id}
			continue
		}

		if current == nil {
			continue
		}
		key, value, ok := vdftext.ParseLine(line)
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "accountname":
			current.accountName = value
		case "personaname":
			current.personaName = value
		case "mostrecent":
			current.mostRecent = value == "1"
		case "timestamp":
			current.timestamp, _ = strconv.ParseInt(value, 10, 64)
		}
	}
	finalize()

	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].Timestamp > accounts[j].Timestamp
	})

	return accounts
}

// FindUserdataPathForAccount returns the userdata directory for a specific
// Steam3 account id, if it exists.
func FindUserdataPathForAccount(accountID string) (string, bool) {
	steamPath, ok := FindSteamPath()
	if !ok {
		return "", false
	}

	userdata := filepath.Join(steamPath, "userdata", accountID)
	if _, err := os.Stat(userdata); err != nil {
		return "", false
	}
	return userdata, true
}

// FindUserdataPath resolves the active account's userdata directory. The
// fallback chain is attempted strictly in order:
//  1. the account selected in settings, when its directory exists
//  2. the login-history entry flagged MostRecent
//  3. the login-history entry with the latest timestamp
//  4. the userdata subdirectory with the newest modification time
//
// Tier 4 is a degraded path that is reported as a warning.
func FindUserdataPath() (string, bool) {
	config := settings.ReadSettings()
	if config.SelectedSteamAccount != "" {
		if path, ok := FindUserdataPathForAccount(config.SelectedSteamAccount); ok {
			logger.Infof("Using Steam account from settings: %v", config.SelectedSteamAccount)
			return path, true
		}
	}

	steamPath, ok := FindSteamPath()
	if !ok {
		return "", false
	}
	userdata := filepath.Join(steamPath, "userdata")
	if _, err := os.Stat(userdata); err != nil {
		return "", false
	}

	accounts := GetSteamAccounts()

	for _, account := range accounts {
		if !account.MostRecent {
			continue
		}
		path := filepath.Join(userdata, account.AccountID)
		if _, err := os.Stat(path); err == nil {
			logger.Infof("Using Steam account from loginusers.vdf (MostRecent): %v (%v)",
				account.PersonaName, account.AccountID)
			return path, true
		}
	}

	for _, account := range accounts {
		path := filepath.Join(userdata, account.AccountID)
		if _, err := os.Stat(path); err == nil {
			logger.Infof("Using Steam account from loginusers.vdf (most recent timestamp): %v (%v)",
				account.PersonaName, account.AccountID)
			return path, true
		}
	}

	logger.Warning("Could not determine active Steam account from loginusers.vdf, falling back to directory modification time")

	return newestUserdataDir(userdata)
}

// newestUserdataDir scans userdata directly: numeric-named directories
// (excluding the reserved "0"), newest modification time first.
func newestUserdataDir(userdata string) (string, bool) {
	entries, err := os.ReadDir(userdata)
	if err != nil {
		return "", false
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var candidates []candidate

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == "0" || !isNumeric(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			path:    filepath.Join(userdata, name),
			modTime: info.ModTime(),
		})
	}

	if len(candidates) == 0 {
		return "", false
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime.After(candidates[j].modTime)
	})
	return candidates[0].path, true
}

func isNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
