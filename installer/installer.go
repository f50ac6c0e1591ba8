package installer

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/avast/retry-go"

	"github.com/RevengeRip/Fluorine-Manager/logger"
	"github.com/RevengeRip/Fluorine-Manager/steam"
)

// ErrCancelled is returned when the cancellation flag is raised before the
// pipeline finished.
var ErrCancelled = errors.New("installation cancelled")

type installStep struct {
	name string
	run  func(prefix string, proton steam.SteamProton, ctx *TaskContext, appID uint32) error
}

var installSteps = []installStep{
	{"Preparing prefix directories", stepPrefixSkeleton},
	{"Creating Temp directory", stepTempDirectory},
	{"Applying Wine registry settings", stepRegistrySettings},
	{"Linking game save folders", stepGameSymlinks},
	{"Recording installation", stepRecordInstall},
}

// InstallAllDependencies runs the full dependency pipeline against a Wine
// prefix. Progress is reported in the progressStart..progressEnd window so a
// caller can embed this run inside a larger operation. The proton install is
// verified before any work starts.
func InstallAllDependencies(prefix string, proton steam.SteamProton, ctx *TaskContext, progressStart, progressEnd float32, appID uint32) error {
	if _, err := os.Stat(filepath.Join(proton.Path, "proton")); err != nil {
		return fmt.Errorf("Proton not found at path: %v", proton.Path)
	}

	logger.Installf("Installing dependencies into %v using %v", prefix, proton.Name)
	ctx.Progress(progressStart)

	span := progressEnd - progressStart
	for i, step := range installSteps {
		if ctx.IsCancelled() {
			logger.Warning("Installation cancelled")
			return ErrCancelled
		}

		ctx.Status(step.name)
		logger.Action(step.name)

		if err := step.run(prefix, proton, ctx, appID); err != nil {
			logger.Errorf("%v failed [%v]", step.name, err)
			return fmt.Errorf("%v: %v", step.name, err)
		}

		ctx.Progress(progressStart + span*float32(i+1)/float32(len(installSteps)))
	}

	if ctx.IsCancelled() {
		return ErrCancelled
	}

	ctx.Status("Done")
	ctx.Progress(progressEnd)
	logger.Installf("All dependencies installed into %v", prefix)
	return nil
}

func stepPrefixSkeleton(prefix string, _ steam.SteamProton, _ *TaskContext, _ uint32) error {
	userDir := filepath.Join(prefix, "drive_c", "users", "steamuser")
	for _, dir := range []string{
		filepath.Join(userDir, "Documents"),
		filepath.Join(userDir, "AppData", "Local"),
		filepath.Join(userDir, "AppData", "Roaming"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func stepTempDirectory(prefix string, _ steam.SteamProton, _ *TaskContext, _ uint32) error {
	return EnsureTempDirectory(prefix)
}

func stepRegistrySettings(prefix string, proton steam.SteamProton, ctx *TaskContext, appID uint32) error {
	return ApplyWineRegistrySettings(prefix, proton, ctx.Log, appID)
}

func stepGameSymlinks(prefix string, _ steam.SteamProton, _ *TaskContext, _ uint32) error {
	CreateGameSymlinksAuto(prefix)
	return nil
}

func stepRecordInstall(prefix string, proton steam.SteamProton, _ *TaskContext, _ uint32) error {
	journal, err := OpenJournal()
	if err != nil {
		// the journal is bookkeeping, a failure must not fail the install
		logger.Warningf("Could not open install journal [%v]", err)
		return nil
	}
	defer journal.Close()

	return journal.RecordInstall(InstallRecord{
		PrefixPath:  prefix,
		ProtonName:  proton.Name,
		ProtonPath:  proton.Path,
		CompletedAt: time.Now().Unix(),
	})
}

// runWine executes a command inside the prefix with the proton build's wine
// binary, retrying transient failures.
func runWine(prefix string, proton steam.SteamProton, args ...string) error {
	wine := filepath.Join(proton.Path, "files", "bin", "wine")
	if _, err := os.Stat(wine); err != nil {
		// older proton layouts ship dist/ instead of files/
		wine = filepath.Join(proton.Path, "dist", "bin", "wine")
	}

	return retry.Do(
		func() error {
			cmd := exec.Command(wine, args...)
			cmd.Env = append(os.Environ(),
				"WINEPREFIX="+prefix,
				"WINEDEBUG=-all",
			)
			output, err := cmd.CombinedOutput()
			if err != nil {
				return fmt.Errorf("%v %v failed [%v] %v", filepath.Base(wine), args, err, string(output))
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
	)
}
