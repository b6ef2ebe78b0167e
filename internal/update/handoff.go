package update

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

// ErrNoExecutable reports that the relaunched process could not
// resolve its own path, leaving it nothing to rename over the
// predecessor. Unlike a failed rename this is not recoverable.
var ErrNoExecutable = errors.New("cannot determine own executable")

// GracePeriod is how long a relaunched binary waits before touching
// its predecessor's executable, so the parent can fully exit and
// release any lock on it.
const GracePeriod = 500 * time.Millisecond

// NewHandoff selects the handoff implementation for the running
// platform.
func NewHandoff() Handoff {
	if runtime.GOOS == "windows" {
		return &scriptHandoff{grace: GracePeriod}
	}
	return &renameHandoff{grace: GracePeriod, selfPath: os.Executable}
}

// renameHandoff replaces the old executable in place. Unix lets a
// running binary be renamed freely, so the staged update renames
// itself over its predecessor's path.
type renameHandoff struct {
	grace    time.Duration
	selfPath func() (string, error)
}

func (h *renameHandoff) Replace(oldExe string) error {
	time.Sleep(h.grace)

	self, err := h.selfPath()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoExecutable, err)
	}

	// Best effort; rename below overwrites the path either way.
	_ = os.Remove(oldExe)

	if err := os.Rename(self, oldExe); err != nil {
		return fmt.Errorf("failed to take over %s: %w", oldExe, err)
	}

	return nil
}

// scriptHandoff handles Windows, where a running binary cannot delete
// or rename itself. It drops a batch script that removes the old
// executable after a short delay and then deletes itself, launched
// detached so this process can get on with startup.
type scriptHandoff struct {
	grace time.Duration
}

func (h *scriptHandoff) Replace(oldExe string) error {
	time.Sleep(h.grace)

	script := filepath.Join(filepath.Dir(oldExe), "ferry_cleanup.bat")
	if err := os.WriteFile(script, []byte(cleanupScript(oldExe)), 0644); err != nil {
		return fmt.Errorf("failed to write cleanup script: %w", err)
	}

	if err := exec.Command("cmd", "/C", script).Start(); err != nil {
		return fmt.Errorf("failed to launch cleanup script: %w", err)
	}

	return nil
}

func cleanupScript(oldExe string) string {
	return "@echo off\r\n" +
		"timeout /t 1 /nobreak > nul\r\n" +
		fmt.Sprintf("del \"%s\"\r\n", oldExe) +
		"del \"%~f0\"\r\n"
}
