package gamefinder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userRegFixture = `WINE REGISTRY Version 2
;; All keys relative to \\User\\S-1-5-21-0-0-0-1000

[Software\\Bethesda Softworks\\Skyrim Special Edition] 1652112000
#time=1d85c8f11111111
"Installed Path"="D:\\Games\\Skyrim Special Edition\\"

[Software\\Wine\\DllOverrides] 1652112001
"winemenubuilder.exe"=""
"count"=dword:00000002
`

func TestReadRegistryValue(t *testing.T) {
	prefix := t.TempDir()
	writeFile(t, filepath.Join(prefix, "user.reg"), userRegFixture)

	value, ok := ReadRegistryValue(prefix, `Software\Bethesda Softworks\Skyrim Special Edition`, "Installed Path")
	require.True(t, ok)
	assert.Equal(t, `D:\Games\Skyrim Special Edition\`, value)

	// key path matching is case-insensitive
	_, ok = ReadRegistryValue(prefix, `software\bethesda softworks\skyrim special edition`, "installed path")
	assert.True(t, ok)

	_, ok = ReadRegistryValue(prefix, `Software\Missing`, "Installed Path")
	assert.False(t, ok)

	_, ok = ReadRegistryValue(prefix, `Software\Bethesda Softworks\Skyrim Special Edition`, "Missing Value")
	assert.False(t, ok)

	// falls through to system.reg
	writeFile(t, filepath.Join(prefix, "system.reg"), `
[Software\\System Only] 1
"Key"="from system"
`)
	value, ok = ReadRegistryValue(prefix, `Software\System Only`, "Key")
	require.True(t, ok)
	assert.Equal(t, "from system", value)
}

func TestWinePathToLinux(t *testing.T) {
	prefix := "/prefixes/skyrim/pfx"

	assert.Equal(t, filepath.Join(prefix, "drive_c", "Games", "Skyrim"),
		WinePathToLinux(prefix, `C:\Games\Skyrim`))
	assert.Equal(t, "/home/alice/mods",
		WinePathToLinux(prefix, `Z:\home\alice\mods`))
	assert.Equal(t, filepath.Join(prefix, "dosdevices", "d:", "Games"),
		WinePathToLinux(prefix, `D:\Games`))
	// non-drive paths pass through
	assert.Equal(t, "whatever", WinePathToLinux(prefix, "whatever"))
}

func TestLinuxPathToWine(t *testing.T) {
	assert.Equal(t, `Z:\home\alice\Games`, LinuxPathToWine("/home/alice/Games"))
}
