package installer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/RevengeRip/Fluorine-Manager/gamefinder"
	"github.com/RevengeRip/Fluorine-Manager/steam"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// setupInstallHome isolates HOME so detection probes and the settings file
// see an empty machine.
func setupInstallHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	gamefinder.InvalidateCache()
	t.Cleanup(gamefinder.InvalidateCache)
	return home
}

// makeFakeProton builds a proton directory whose wine binary records its
// arguments and exits cleanly.
func makeFakeProton(t *testing.T) steam.SteamProton {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "proton"), []byte("#!/bin/sh\n"), 0o755))

	binDir := filepath.Join(dir, "files", "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	wine := "#!/bin/sh\necho \"$@\" >> \"$WINEPREFIX/wine-args.txt\"\nexit 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "wine"), []byte(wine), 0o755))

	return steam.SteamProton{Name: "Proton 9.0", ConfigName: "proton_9", Path: dir, IsSteamProton: true}
}

func TestWatchCancelFlag(t *testing.T) {
	ctx := NewTaskContext(nil, nil, nil)

	flag := make(chan struct{})
	stop := WatchCancelFlag(ctx, func() bool {
		select {
		case <-flag:
			return true
		default:
			return false
		}
	}, 5*time.Millisecond)

	require.False(t, ctx.IsCancelled())
	close(flag)

	require.Eventually(t, ctx.IsCancelled, time.Second, time.Millisecond)
	stop()
}

func TestWatchCancelFlagStopWithoutCancel(t *testing.T) {
	ctx := NewTaskContext(nil, nil, nil)

	stop := WatchCancelFlag(ctx, func() bool { return false }, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	stop()

	require.False(t, ctx.IsCancelled())
	// stop is idempotent
	stop()
}

func TestWatchCancelFlagNilReader(t *testing.T) {
	ctx := NewTaskContext(nil, nil, nil)
	stop := WatchCancelFlag(ctx, nil, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	stop()
	require.False(t, ctx.IsCancelled())
}

func TestInstallAllDependenciesProtonMissing(t *testing.T) {
	setupInstallHome(t)
	ctx := NewTaskContext(nil, nil, nil)

	err := InstallAllDependencies(t.TempDir(), steam.SteamProton{Name: "Ghost", Path: "/nonexistent"}, ctx, 0, 1, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Proton not found at path")
}

func TestInstallAllDependenciesPreCancelled(t *testing.T) {
	setupInstallHome(t)
	proton := makeFakeProton(t)

	ctx := NewTaskContext(nil, nil, nil)
	ctx.Cancel()

	err := InstallAllDependencies(t.TempDir(), proton, ctx, 0, 1, 0)
	require.ErrorIs(t, err, ErrCancelled)
}

func TestInstallAllDependencies(t *testing.T) {
	setupInstallHome(t)
	proton := makeFakeProton(t)
	prefix := t.TempDir()

	var statuses []string
	var progress []float32
	ctx := NewTaskContext(
		func(msg string) { statuses = append(statuses, msg) },
		nil,
		func(p float32) { progress = append(progress, p) },
	)

	require.NoError(t, InstallAllDependencies(prefix, proton, ctx, 0, 1, 489830))

	// skeleton and temp directory are in place
	require.DirExists(t, filepath.Join(prefix, "drive_c", "users", "steamuser", "Documents"))
	require.DirExists(t, filepath.Join(prefix, "drive_c", "users", "steamuser", "AppData", "Local", "Temp"))

	// regedit ran inside the prefix
	args, err := os.ReadFile(filepath.Join(prefix, "wine-args.txt"))
	require.NoError(t, err)
	require.Contains(t, string(args), "regedit /S")

	require.NotEmpty(t, statuses)
	require.Equal(t, "Done", statuses[len(statuses)-1])

	require.NotEmpty(t, progress)
	require.Equal(t, float32(0), progress[0])
	require.Equal(t, float32(1), progress[len(progress)-1])
	for i := 1; i < len(progress); i++ {
		require.GreaterOrEqual(t, progress[i], progress[i-1])
	}

	// the run is journaled under the default data dir
	journal, err := OpenJournalAt(filepath.Join(os.Getenv("HOME"), "Fluorine"))
	require.NoError(t, err)
	defer journal.Close()

	record, found, err := journal.GetInstall(prefix)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Proton 9.0", record.ProtonName)
}

func TestInstallAllDependenciesProgressWindow(t *testing.T) {
	setupInstallHome(t)
	proton := makeFakeProton(t)

	var progress []float32
	ctx := NewTaskContext(nil, nil, func(p float32) { progress = append(progress, p) })

	require.NoError(t, InstallAllDependencies(t.TempDir(), proton, ctx, 0.25, 0.75, 0))

	require.Equal(t, float32(0.25), progress[0])
	require.Equal(t, float32(0.75), progress[len(progress)-1])
	for _, p := range progress {
		require.GreaterOrEqual(t, p, float32(0.25))
		require.LessOrEqual(t, p, float32(0.75))
	}
}

func TestEnsureTempDirectory(t *testing.T) {
	prefix := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(prefix, "drive_c", "users", "deck"), 0o755))

	require.NoError(t, EnsureTempDirectory(prefix))
	require.DirExists(t, filepath.Join(prefix, "drive_c", "users", "deck", "AppData", "Local", "Temp"))
}

func TestEnsureTempDirectoryEmptyPrefix(t *testing.T) {
	require.Error(t, EnsureTempDirectory(""))
}

func TestApplyRegistryForGamePathUnknownGame(t *testing.T) {
	proton := makeFakeProton(t)
	err := ApplyRegistryForGamePath(t.TempDir(), proton, "Definitely Not A Game", "/games/nope", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown game")
}

func TestApplyRegistryForGamePath(t *testing.T) {
	proton := makeFakeProton(t)
	prefix := t.TempDir()

	var logged []string
	err := ApplyRegistryForGamePath(prefix, proton, "Skyrim Special Edition", "/games/skyrim", func(msg string) {
		logged = append(logged, msg)
	})
	require.NoError(t, err)
	require.NotEmpty(t, logged)

	args, err := os.ReadFile(filepath.Join(prefix, "wine-args.txt"))
	require.NoError(t, err)
	require.Contains(t, string(args), "regedit /S")
}
