package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

const (
	SETTINGS_DIR      = "fluorine"
	SETTINGS_FILENAME = "config.json"
	// Legacy data folder in the home directory, kept for config migration
	LEGACY_DIR = "Fluorine"

	FLUORINE_VERSION = "1.2.0"
)

// Settings of the application, persisted as JSON. The detection engine only
// reads SelectedSteamAccount and the data/cache paths, the remaining fields
// are owned by the front-end.
type AppSettings struct {
	// Config file name of the preferred Proton build
	SelectedProton string `json:"selected_proton,omitempty"`
	// Whether the first-run setup has been completed
	FirstRunCompleted bool `json:"first_run_completed"`
	// Path to the Fluorine data folder
	DataPath string `json:"data_path"`
	// Whether the Steam-native migration popup has been shown
	SteamMigrationShown bool `json:"steam_migration_shown"`
	// Custom cache location for downloads and tmp files, empty means default
	CacheLocation string `json:"cache_location"`
	// Selected Steam account id (Steam3 format, e.g. "910757758").
	// Empty means "use the most recently active account".
	SelectedSteamAccount string `json:"selected_steam_account"`
}

// Fill the structure with default values
func (a *AppSettings) defaults() {
	a.SelectedProton = ""
	a.FirstRunCompleted = false
	a.DataPath = DefaultDataPath()
	a.SteamMigrationShown = false
	a.CacheLocation = ""
	a.SelectedSteamAccount = ""
}

// ReadSettings loads the settings file, migrating a legacy-location file on
// the way when the new location does not exist or fails to parse. Any read
// or parse failure falls back to defaults, a missing config is the expected
// first-run state.
func ReadSettings() *AppSettings {
	a := &AppSettings{}

	if buf, err := os.ReadFile(SettingsPath()); err == nil {
		if jsonErr := json.Unmarshal(buf, a); jsonErr == nil {
			return a
		}
		zap.S().Warnf("corrupted config file at %v, trying legacy location", SettingsPath())
	}

	// Legacy location, migrate when found
	if buf, err := os.ReadFile(LegacySettingsPath()); err == nil {
		if jsonErr := json.Unmarshal(buf, a); jsonErr == nil {
			if a.DataPath == "" {
				a.DataPath = DefaultDataPath()
			}
			if saveErr := a.Save(); saveErr == nil {
				os.Remove(LegacySettingsPath())
			}
			return a
		}
	}

	a.defaults()
	return a
}

// Save writes the settings to the config file, creating the folder if needed
func (a *AppSettings) Save() error {
	if err := os.MkdirAll(ConfigDir(), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create config folder - %w", err)
	}

	jsonBytes, jsonErr := json.MarshalIndent(a, "", "  ")
	if jsonErr != nil {
		return fmt.Errorf("failed to marshal settings - %w", jsonErr)
	}

	if err := os.WriteFile(SettingsPath(), jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write settings - %w", err)
	}
	return nil
}

// Return settings as JSON
func (a *AppSettings) ToJSON() string {
	jsonBytes, jsonErr := json.MarshalIndent(a, "", "  ")
	if jsonErr != nil {
		return ""
	}

	return string(jsonBytes)
}
