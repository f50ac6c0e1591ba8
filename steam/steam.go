package steam

import (
	"os/exec"
	"syscall"
	"time"

	"github.com/RevengeRip/Fluorine-Manager/logger"
)

// KillSteam asks the running client to shut down, waits for it to comply and
// then force-kills anything left over.
func KillSteam() {
	logger.Info("Shutting down Steam")

	if err := exec.Command("steam", "-shutdown").Run(); err != nil {
		logger.Infof("steam -shutdown failed, falling back to pkill [%v]", err)
	}
	time.Sleep(2 * time.Second)

	_ = exec.Command("pkill", "-9", "steam").Run()
	time.Sleep(2 * time.Second)
}

// StartSteam launches the client detached, in its own session, so it survives
// the calling process exiting.
func StartSteam() error {
	logger.Info("Starting Steam")

	cmd := exec.Command("setsid", "steam", "-silent")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		logger.Errorf("Failed to start Steam [%v]", err)
		return err
	}
	return cmd.Process.Release()
}

// RestartSteam performs a full stop and start cycle.
func RestartSteam() error {
	KillSteam()
	return StartSteam()
}
