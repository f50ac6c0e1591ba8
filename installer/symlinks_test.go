package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// seedSkyrim plants a Steam install with a Skyrim SE prefix holding save
// folders that the symlink step should pick up.
func seedSkyrim(t *testing.T, home string) string {
	t.Helper()
	steamPath := filepath.Join(home, ".steam", "steam")
	steamapps := filepath.Join(steamPath, "steamapps")

	manifest := `"AppState"
{
	"appid"		"489830"
	"name"		"The Elder Scrolls V: Skyrim Special Edition"
	"installdir"		"Skyrim Special Edition"
}
`
	require.NoError(t, os.MkdirAll(steamapps, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(steamapps, "appmanifest_489830.acf"), []byte(manifest), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(steamapps, "common", "Skyrim Special Edition"), 0o755))

	gamePrefix := filepath.Join(steamapps, "compatdata", "489830", "pfx")
	myGames := filepath.Join(gamePrefix, "drive_c", "users", "steamuser", "Documents", "My Games", "Skyrim Special Edition")
	require.NoError(t, os.MkdirAll(myGames, 0o755))
	return gamePrefix
}

func TestCreateGameSymlinksAuto(t *testing.T) {
	home := setupInstallHome(t)
	gamePrefix := seedSkyrim(t, home)

	prefix := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(prefix, "drive_c", "users", "steamuser"), 0o755))

	CreateGameSymlinksAuto(prefix)

	link := filepath.Join(prefix, "drive_c", "users", "steamuser", "Documents", "My Games", "Skyrim Special Edition")
	target, err := os.Readlink(link)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(gamePrefix, "drive_c", "users", "steamuser", "Documents", "My Games", "Skyrim Special Edition"), target)

	// a second run leaves the existing link alone
	CreateGameSymlinksAuto(prefix)
	_, err = os.Readlink(link)
	require.NoError(t, err)
}
