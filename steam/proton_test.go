package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeVendorProton(t *testing.T, steamPath, name string) {
	t.Helper()
	dir := filepath.Join(steamPath, "steamapps", "common", name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "proton"), []byte("#!/bin/sh\n"), 0o755))
}

func makeCompatToolProton(t *testing.T, steamPath, dirName, displayName string) {
	t.Helper()
	dir := filepath.Join(steamPath, "compatibilitytools.d", dirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "proton"), []byte("#!/bin/sh\n"), 0o755))

	manifest := fmt.Sprintf(`"compatibilitytools"
{
	"compat_tools"
	{
		"%v"
		{
			"install_path" "."
			"display_name" "%v"
			"from_oslist" "windows"
			"to_oslist" "linux"
		}
	}
}
`, dirName, displayName)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "compatibilitytool.vdf"), []byte(manifest), 0o644))
}

func TestFindSteamProtons(t *testing.T) {
	steamPath := setupSteamHome(t)

	makeVendorProton(t, steamPath, "Proton 9.0")
	makeVendorProton(t, steamPath, "Proton Experimental")
	// missing the proton script, must be skipped
	require.NoError(t, os.MkdirAll(filepath.Join(steamPath, "steamapps", "common", "Proton 8.0"), 0o755))
	// not a Proton at all
	makeVendorProton(t, steamPath, "Skyrim Special Edition")

	makeCompatToolProton(t, steamPath, "GE-Proton9-5", "GE-Proton9-5")
	makeCompatToolProton(t, steamPath, "GE-Proton9-10", "GE-Proton9-10")

	protons := FindSteamProtons()
	require.Len(t, protons, 4)

	// Valve builds first, newest first, then community builds newest first
	require.Equal(t, "Proton 9.0", protons[0].Name)
	require.Equal(t, "proton_9", protons[0].ConfigName)
	require.True(t, protons[0].IsSteamProton)
	require.False(t, protons[0].IsExperimental)

	require.Equal(t, "Proton Experimental", protons[1].Name)
	require.Equal(t, "proton_experimental", protons[1].ConfigName)
	require.True(t, protons[1].IsSteamProton)
	require.True(t, protons[1].IsExperimental)

	require.Equal(t, "GE-Proton9-10", protons[2].Name)
	require.False(t, protons[2].IsSteamProton)

	require.Equal(t, "GE-Proton9-5", protons[3].Name)
}

func TestFindSteamProtonsNoManifest(t *testing.T) {
	steamPath := setupSteamHome(t)

	dir := filepath.Join(steamPath, "compatibilitytools.d", "MyProton")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "proton"), []byte("#!/bin/sh\n"), 0o755))

	protons := FindSteamProtons()
	require.Len(t, protons, 1)
	require.Equal(t, "MyProton", protons[0].Name)
	require.Equal(t, "MyProton", protons[0].ConfigName)
}

func TestFindSteamProtonsNoSteam(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.Nil(t, FindSteamProtons())
}
