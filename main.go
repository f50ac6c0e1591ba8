package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/RevengeRip/Fluorine-Manager/logger"
	"github.com/RevengeRip/Fluorine-Manager/settings"
)

var debug = flag.Bool("debug", false, "verbose logging")

func main() {
	flag.Parse()

	_, workingFolder, err := settings.GetWorkingFolder()
	if err != nil {
		fmt.Printf("failed to get executable directory, please ensure app has sufficient permissions [%v]\n", err)
		os.Exit(1)
	}

	sugar := logger.GetSugar(workingFolder, *debug)
	defer logger.Defer()

	sugar.Infof("[Fluorine-Manager version:%v]", settings.FLUORINE_VERSION)

	appSettings := settings.ReadSettings()
	if !appSettings.FirstRunCompleted {
		appSettings.FirstRunCompleted = true
		if err := appSettings.Save(); err != nil {
			sugar.Warnf("failed to save settings - %v", err)
		}
	}

	CreateConsole(appSettings, sugar).Start()
}
