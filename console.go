package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/table"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/RevengeRip/Fluorine-Manager/gamefinder"
	"github.com/RevengeRip/Fluorine-Manager/installer"
	"github.com/RevengeRip/Fluorine-Manager/settings"
	"github.com/RevengeRip/Fluorine-Manager/steam"
)

var (
	mode        = flag.String("m", "games", "mode (available options: (games) list detected games / (accounts) list Steam accounts / (protons) list Proton builds / (mounts) show mounts and launch options / (install) install dependencies into a prefix )")
	prefixArg   = flag.String("p", "", "wine prefix path (install mode)")
	protonArg   = flag.String("proton", "", "proton install path (install mode), defaults to the newest installed build")
	appIDArg    = flag.Uint("appid", 0, "steam app id to stamp into the prefix (install mode)")
	electronArg = flag.Bool("electron", false, "generate launch options for an Electron based tool (mounts mode)")
	progressBar *progressbar.ProgressBar
)

type Console struct {
	appSettings *settings.AppSettings
	sugarLogger *zap.SugaredLogger
}

func CreateConsole(appSettings *settings.AppSettings, sugarLogger *zap.SugaredLogger) *Console {
	return &Console{appSettings: appSettings, sugarLogger: sugarLogger}
}

func (c *Console) Start() {
	switch *mode {
	case "games":
		c.showGames()
	case "accounts":
		c.showAccounts()
	case "protons":
		c.showProtons()
	case "mounts":
		c.showMounts()
	case "install":
		c.install()
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func (c *Console) showGames() {
	fmt.Printf("Scanning for installed games\n\n")
	result := gamefinder.DetectAllGames()

	if len(result.Games) == 0 {
		fmt.Print("No games found\n")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleColoredBright)
	t.AppendHeader(table.Row{"#", "Name", "App id", "Launcher", "Install path", "Prefix"})
	for i, game := range result.Games {
		prefix := ""
		if game.HasPrefix() {
			prefix = game.PrefixPath
		}
		t.AppendRow([]interface{}{i, game.Name, game.AppID, game.Launcher.DisplayName(), game.InstallPath, prefix})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", len(result.Games)})
	t.Render()

	fmt.Printf("\nSteam: %v, Heroic: %v, Bottles: %v\n", result.SteamCount, result.HeroicCount, result.BottlesCount)
}

func (c *Console) showAccounts() {
	accounts := steam.GetSteamAccounts()
	if len(accounts) == 0 {
		fmt.Print("No Steam accounts found\n")
		return
	}

	activePath, _ := steam.FindUserdataPath()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleColoredBright)
	t.AppendHeader(table.Row{"#", "Persona", "Account id", "Most recent", "Active"})
	for i, account := range accounts {
		active := ""
		if path, ok := steam.FindUserdataPathForAccount(account.AccountID); ok && path == activePath {
			active = "*"
		}
		t.AppendRow([]interface{}{i, account.PersonaName, account.AccountID, account.MostRecent, active})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", len(accounts)})
	t.Render()
}

func (c *Console) showProtons() {
	protons := steam.FindSteamProtons()
	if len(protons) == 0 {
		fmt.Print("No Proton builds found\n")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleColoredBright)
	t.AppendHeader(table.Row{"#", "Name", "Config name", "Source", "Experimental", "Path"})
	for i, proton := range protons {
		source := "community"
		if proton.IsSteamProton {
			source = "valve"
		}
		t.AppendRow([]interface{}{i, proton.Name, proton.ConfigName, source, proton.IsExperimental, proton.Path})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", len(protons)})
	t.Render()
}

func (c *Console) showMounts() {
	mounts := steam.DetectExtraMounts()
	if len(mounts) == 0 {
		fmt.Print("No extra mounts needed\n")
	} else {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleColoredBright)
		t.AppendHeader(table.Row{"#", "Mount"})
		for i, mount := range mounts {
			t.AppendRow([]interface{}{i, mount})
		}
		t.Render()
	}

	dxvkConf := ""
	if _, err := os.Stat(settings.DxvkConfPath()); err == nil {
		dxvkConf = settings.DxvkConfPath()
	}
	fmt.Printf("\nLaunch options:\n%v\n", steam.GenerateLaunchOptions(dxvkConf, *electronArg))
}

func (c *Console) install() {
	if *prefixArg == "" {
		fmt.Print("No prefix was defined, please pass one with '-p'\n")
		os.Exit(1)
	}

	proton, ok := c.resolveProton()
	if !ok {
		fmt.Print("No Proton build found, please install one or pass its path with '-proton'\n")
		os.Exit(1)
	}

	fmt.Printf("Installing dependencies into [%v] using [%v]\n", *prefixArg, proton.Name)
	progressBar = progressbar.New(100)

	ctx := installer.NewTaskContext(
		func(message string) { c.sugarLogger.Infof("%v", message) },
		func(message string) { c.sugarLogger.Debugf("%v", message) },
		func(progress float32) { progressBar.Set(int(progress * 100)) },
	)

	err := installer.InstallAllDependencies(*prefixArg, proton, ctx, 0.0, 1.0, uint32(*appIDArg))
	progressBar.Finish()
	if err != nil {
		fmt.Printf("\nInstallation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Print("\nCompleted\n")
}

// resolveProton picks the build to install with: an explicit path argument,
// then the build selected in settings, then the newest one installed.
func (c *Console) resolveProton() (steam.SteamProton, bool) {
	protons := steam.FindSteamProtons()

	if *protonArg != "" {
		for _, proton := range protons {
			if proton.Path == *protonArg {
				return proton, true
			}
		}
		return steam.SteamProton{}, false
	}

	if c.appSettings.SelectedProton != "" {
		for _, proton := range protons {
			if proton.ConfigName == c.appSettings.SelectedProton {
				return proton, true
			}
		}
	}

	if len(protons) > 0 {
		return protons[0], true
	}
	return steam.SteamProton{}, false
}
