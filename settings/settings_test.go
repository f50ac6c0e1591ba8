package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return home
}

func TestReadSettingsDefaults(t *testing.T) {
	home := setupHome(t)

	a := ReadSettings()
	assert.Equal(t, "", a.SelectedSteamAccount)
	assert.Equal(t, filepath.Join(home, LEGACY_DIR), a.GetDataPath())
	assert.Equal(t, filepath.Join(home, ".cache", SETTINGS_DIR), a.GetCacheDir())
	assert.False(t, a.FirstRunCompleted)
}

func TestSaveAndReadBack(t *testing.T) {
	setupHome(t)

	a := ReadSettings()
	a.SelectedSteamAccount = "910757758"
	a.SelectedProton = "proton_experimental"
	require.NoError(t, a.Save())

	b := ReadSettings()
	assert.Equal(t, "910757758", b.SelectedSteamAccount)
	assert.Equal(t, "proton_experimental", b.SelectedProton)
}

func TestLegacyMigration(t *testing.T) {
	home := setupHome(t)

	legacy := filepath.Join(home, LEGACY_DIR)
	require.NoError(t, os.MkdirAll(legacy, 0755))
	payload, _ := json.Marshal(map[string]any{
		"selected_steam_account": "12345",
		"first_run_completed":    true,
	})
	require.NoError(t, os.WriteFile(filepath.Join(legacy, SETTINGS_FILENAME), payload, 0644))

	a := ReadSettings()
	assert.Equal(t, "12345", a.SelectedSteamAccount)
	assert.True(t, a.FirstRunCompleted)
	// missing data path is backfilled during migration
	assert.Equal(t, legacy, a.DataPath)

	// migrated to the new location, old file removed
	assert.FileExists(t, SettingsPath())
	assert.NoFileExists(t, filepath.Join(legacy, SETTINGS_FILENAME))

	// the new location wins from now on
	b := ReadSettings()
	assert.Equal(t, "12345", b.SelectedSteamAccount)
}

func TestReadSettingsCorruptedFile(t *testing.T) {
	setupHome(t)

	require.NoError(t, os.MkdirAll(ConfigDir(), 0755))
	require.NoError(t, os.WriteFile(SettingsPath(), []byte("{not json"), 0644))

	a := ReadSettings()
	assert.Equal(t, "", a.SelectedSteamAccount)
}

func TestCustomCacheLocation(t *testing.T) {
	setupHome(t)

	a := ReadSettings()
	a.CacheLocation = "/mnt/fast/cache"
	assert.Equal(t, "/mnt/fast/cache", a.GetCacheDir())
	assert.Equal(t, "/mnt/fast/cache/tmp", a.GetTmpPath())
}

func TestNormalizePathForSteam(t *testing.T) {
	assert.Equal(t, "/home/alice/x", NormalizePathForSteam("/var/home/alice/x"))
	// already normalized paths pass through untouched
	assert.Equal(t, "/home/alice/x", NormalizePathForSteam("/home/alice/x"))
	assert.Equal(t, "/mnt/games", NormalizePathForSteam("/mnt/games"))
	assert.Equal(t, "/var/homework/x", NormalizePathForSteam("/var/homework/x"))
}
