package update

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/adamancini/ferry/internal/logging"
)

// CheckInterval is how often the background loop queries the release
// endpoint.
const CheckInterval = 10 * time.Minute

// PostUpdateFlag is passed to a freshly downloaded binary along with
// the old executable's path so it knows to run the handoff protocol.
const PostUpdateFlag = "--post-update"

// Updater runs the periodic self-update cycle: check, compare,
// download, spawn the replacement, exit.
type Updater struct {
	checker    Checker
	downloader Downloader
	interval   time.Duration
	platform   Platform
	logger     zerolog.Logger

	// exit terminates the whole process once a replacement has been
	// spawned. os.Exit outside of tests.
	exit func(code int)
}

// NewUpdater creates an updater for the given running version against
// the ferry release repository.
func NewUpdater(currentVersion string) *Updater {
	return &Updater{
		checker:    NewGitHubChecker(currentVersion, "adamancini", "ferry"),
		downloader: NewHTTPDownloader(),
		interval:   CheckInterval,
		platform:   Detect(),
		logger:     logging.GetLogger("update"),
		exit:       os.Exit,
	}
}

// Start launches the check loop in a background goroutine. The loop
// never returns to the caller: when an update is applied the process
// exits, abandoning any in-flight work — poll state is cheap to
// rebuild, so the replacement just starts fresh.
func (u *Updater) Start() {
	go func() {
		for {
			time.Sleep(u.interval)

			applied, err := u.checkAndApply()
			switch {
			case err != nil:
				u.logger.Error().Err(err).
					Dur("retry_in", u.interval).
					Msg("update check failed")
			case applied:
				u.logger.Info().Msg("update applied, handing over to new process")
				u.exit(0)
			default:
				u.logger.Debug().
					Dur("next_check", u.interval).
					Msg("already up to date")
			}
		}
	}()
}

// checkAndApply performs one update cycle. It reports true once a
// replacement process has been spawned.
func (u *Updater) checkAndApply() (bool, error) {
	if !u.platform.IsSupported() {
		return false, fmt.Errorf("no releases are published for %s/%s", u.platform.OS, u.platform.Arch)
	}

	info, err := u.checker.CheckForUpdate()
	if err != nil {
		return false, err
	}

	if !info.Available {
		return false, nil
	}

	if info.AssetURL == "" {
		return false, fmt.Errorf("release %s has no asset for %s", info.LatestVersion, u.platform.BinaryName())
	}

	currentExe, err := os.Executable()
	if err != nil {
		return false, fmt.Errorf("cannot determine current executable: %w", err)
	}

	// Stage the new binary next to the current one so the later
	// rename stays on one filesystem.
	newExe := filepath.Join(filepath.Dir(currentExe), u.platform.UpdateBinaryName())

	u.logger.Info().
		Str("version", info.LatestVersion).
		Str("url", info.AssetURL).
		Str("to", newExe).
		Msg("downloading update")

	if err := u.downloader.Download(info.AssetURL, newExe); err != nil {
		return false, err
	}

	cmd := exec.Command(newExe, PostUpdateFlag, currentExe)
	if err := cmd.Start(); err != nil {
		return false, fmt.Errorf("failed to spawn %s: %w", newExe, err)
	}

	return true, nil
}
