package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RevengeRip/Fluorine-Manager/gamefinder"
	"github.com/RevengeRip/Fluorine-Manager/steam"
)

// ApplyWineRegistrySettings writes the baseline registry tweaks a modding
// prefix needs: no menu entries leaking onto the desktop, and the Steam app
// id when one is known. log may be nil.
func ApplyWineRegistrySettings(prefix string, proton steam.SteamProton, log func(string), appID uint32) error {
	var b strings.Builder
	b.WriteString("Windows Registry Editor Version 5.00\r\n\r\n")
	b.WriteString("[HKEY_CURRENT_USER\\Software\\Wine\\DllOverrides]\r\n")
	b.WriteString("\"winemenubuilder.exe\"=\"\"\r\n\r\n")

	if appID != 0 {
		b.WriteString("[HKEY_CURRENT_USER\\Software\\Valve\\Steam]\r\n")
		b.WriteString(fmt.Sprintf("\"SteamAppId\"=\"%v\"\r\n\r\n", appID))
	}

	return importRegFile(prefix, proton, b.String(), log)
}

// ApplyRegistryForGamePath writes the registry entry a known game's tooling
// uses to find its installation, pointing it at installPath.
func ApplyRegistryForGamePath(prefix string, proton steam.SteamProton, gameName, installPath string, log func(string)) error {
	known, ok := gamefinder.FindKnownByName(gameName)
	if !ok {
		return fmt.Errorf("unknown game: %v", gameName)
	}
	if known.RegistryPath == "" {
		return fmt.Errorf("no registry entry known for %v", gameName)
	}

	winePath := gamefinder.LinuxPathToWine(installPath)

	var b strings.Builder
	b.WriteString("Windows Registry Editor Version 5.00\r\n\r\n")
	b.WriteString(fmt.Sprintf("[HKEY_LOCAL_MACHINE\\%v]\r\n", known.RegistryPath))
	b.WriteString(fmt.Sprintf("\"%v\"=\"%v\"\r\n\r\n",
		known.RegistryValue, strings.ReplaceAll(winePath, "\\", "\\\\")))

	return importRegFile(prefix, proton, b.String(), log)
}

// importRegFile materializes the .reg content in a scratch file and feeds it
// to the prefix's regedit.
func importRegFile(prefix string, proton steam.SteamProton, content string, log func(string)) error {
	regFile, err := os.CreateTemp("", "fluorine-*.reg")
	if err != nil {
		return err
	}
	regPath := regFile.Name()
	defer os.Remove(regPath)

	if _, err := regFile.WriteString(content); err != nil {
		regFile.Close()
		return err
	}
	if err := regFile.Close(); err != nil {
		return err
	}

	if log != nil {
		log(fmt.Sprintf("Importing registry file into %v", filepath.Base(prefix)))
	}
	return runWine(prefix, proton, "regedit", "/S", regPath)
}
