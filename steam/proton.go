package steam

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andygrunwald/vdf"
	"github.com/mcuadros/go-version"
	"go.uber.org/zap"

	"github.com/RevengeRip/Fluorine-Manager/logger"
)

// SteamProton describes one installed Proton build.
type SteamProton struct {
	// Display name, e.g. "Proton Experimental" or "GE-Proton9-5"
	Name string
	// Short name used in Steam's config.vdf, e.g. "proton_experimental"
	ConfigName string
	Path       string
	// Valve-shipped build (under steamapps/common) vs a community build
	// (under compatibilitytools.d)
	IsSteamProton  bool
	IsExperimental bool
}

// FindSteamProtons enumerates Proton builds: community builds under
// compatibilitytools.d and vendor builds under each library's
// steamapps/common. Valve builds sort first, newest versions first.
func FindSteamProtons() []SteamProton {
	steamPath, ok := FindSteamPath()
	if !ok {
		return nil
	}

	var protons []SteamProton
	protons = append(protons, findVendorProtons(filepath.Join(steamPath, "steamapps", "common"))...)
	protons = append(protons, findCompatToolProtons(filepath.Join(steamPath, "compatibilitytools.d"))...)

	sortProtons(protons)

	logger.Infof("Found %v Proton installation(s)", len(protons))
	return protons
}

// findVendorProtons picks up Valve-shipped builds: directories named
// "Proton ..." that contain the proton entry script.
func findVendorProtons(commonDir string) []SteamProton {
	entries, err := os.ReadDir(commonDir)
	if err != nil {
		return nil
	}

	var protons []SteamProton
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || !strings.HasPrefix(name, "Proton") {
			continue
		}
		path := filepath.Join(commonDir, name)
		if _, err := os.Stat(filepath.Join(path, "proton")); err != nil {
			continue
		}

		protons = append(protons, SteamProton{
			Name:           name,
			ConfigName:     protonConfigName(name),
			Path:           path,
			IsSteamProton:  true,
			IsExperimental: isExperimentalName(name),
		})
	}
	return protons
}

// findCompatToolProtons picks up community builds (GE-Proton and friends)
// from compatibilitytools.d, reading each tool's manifest for its names.
func findCompatToolProtons(compatDir string) []SteamProton {
	entries, err := os.ReadDir(compatDir)
	if err != nil {
		return nil
	}

	var protons []SteamProton
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(compatDir, entry.Name())
		if _, err := os.Stat(filepath.Join(path, "proton")); err != nil {
			continue
		}

		displayName, configName := readCompatToolManifest(path)
		if displayName == "" {
			displayName = entry.Name()
		}
		if configName == "" {
			configName = entry.Name()
		}

		protons = append(protons, SteamProton{
			Name:           displayName,
			ConfigName:     configName,
			Path:           path,
			IsExperimental: isExperimentalName(displayName),
		})
	}
	return protons
}

// readCompatToolManifest extracts (display_name, internal name) from a
// compatibilitytool.vdf, empty strings when anything is off.
func readCompatToolManifest(toolDir string) (string, string) {
	f, err := os.Open(filepath.Join(toolDir, "compatibilitytool.vdf"))
	if err != nil {
		return "", ""
	}
	defer f.Close()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		zap.S().Warnf("malformed compatibilitytool.vdf in %v - %v", toolDir, err)
		return "", ""
	}

	tools, ok := m["compatibilitytools"].(map[string]interface{})
	if !ok {
		return "", ""
	}
	compatTools, ok := tools["compat_tools"].(map[string]interface{})
	if !ok {
		return "", ""
	}

	for internalName, v := range compatTools {
		tool, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		displayName, _ := tool["display_name"].(string)
		return displayName, internalName
	}
	return "", ""
}

// protonConfigName derives Steam's internal config name from a vendor
// build's directory name ("Proton 9.0" -> "proton_9", "Proton
// Experimental" -> "proton_experimental").
func protonConfigName(name string) string {
	suffix := strings.TrimPrefix(name, "Proton ")
	if major, _, found := strings.Cut(suffix, "."); found {
		suffix = major
	}
	suffix = strings.ToLower(strings.ReplaceAll(suffix, " ", "_"))
	return "proton_" + suffix
}

func isExperimentalName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "experimental") || strings.Contains(lower, "next")
}

// sortProtons orders Valve builds before community builds, then by version
// descending within each group. GE-Proton style names compare numerically
// ("GE-Proton9-10" after "GE-Proton9-5" would sort wrong as plain strings).
func sortProtons(protons []SteamProton) {
	sort.SliceStable(protons, func(i, j int) bool {
		if protons[i].IsSteamProton != protons[j].IsSteamProton {
			return protons[i].IsSteamProton
		}
		return version.CompareSimple(protonVersionToken(protons[i].Name), protonVersionToken(protons[j].Name)) > 0
	})
}

// protonVersionToken strips everything before the first digit, leaving the
// comparable version part of a build name.
func protonVersionToken(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] >= '0' && name[i] <= '9' {
			return name[i:]
		}
	}
	return "0"
}
