package gamefinder

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/RevengeRip/Fluorine-Manager/vdftext"
)

// Wine prefix registry access. Wine keeps the registry as text files inside
// the prefix (user.reg, system.reg); a game's install location can be read
// from there when a mod manager wrote it previously.

// ReadRegistryValue finds a string value under a registry key path (e.g.
// `Software\Bethesda Softworks\Skyrim Special Edition`) by scanning the
// prefix's user.reg and system.reg in that order.
func ReadRegistryValue(prefixPath, keyPath, valueName string) (string, bool) {
	for _, regFile := range []string{"user.reg", "system.reg"} {
		if value, ok := scanRegFile(filepath.Join(prefixPath, regFile), keyPath, valueName); ok {
			return value, true
		}
	}
	return "", false
}

func scanRegFile(path, keyPath, valueName string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	inSection := false
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "[") {
			end := strings.Index(line, "]")
			if end < 0 {
				inSection = false
				continue
			}
			// section names escape backslashes, drop the trailing timestamp
			section := strings.ReplaceAll(line[1:end], `\\`, `\`)
			inSection = strings.EqualFold(section, keyPath)
			continue
		}

		if !inSection {
			continue
		}

		// value lines look like "Installed Path"="D:\\Games\\Skyrim"
		key, value, ok := vdftext.ParseLine(line)
		if ok && strings.EqualFold(key, valueName) {
			return strings.ReplaceAll(value, `\\`, `\`), true
		}
	}

	return "", false
}

// WinePathToLinux maps a Windows path from inside a prefix to the host
// filesystem. C: is the prefix's drive_c, Z: is the host root, any other
// drive goes through the dosdevices links.
func WinePathToLinux(prefixPath, winePath string) string {
	if len(winePath) < 2 || winePath[1] != ':' {
		return winePath
	}

	drive := strings.ToLower(winePath[:1])
	rest := strings.ReplaceAll(winePath[2:], `\`, "/")
	rest = strings.TrimPrefix(rest, "/")

	switch drive {
	case "c":
		return filepath.Join(prefixPath, "drive_c", rest)
	case "z":
		return "/" + rest
	default:
		return filepath.Join(prefixPath, "dosdevices", drive+":", rest)
	}
}

// LinuxPathToWine maps a host path to the Z: drive view a Windows program
// sees inside a prefix.
func LinuxPathToWine(path string) string {
	return "Z:" + strings.ReplaceAll(path, "/", `\`)
}
