package autostart

import (
	"fmt"
	"os/exec"
)

const (
	runKey  = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`
	appName = "Ferry"
)

// registryRun starts ferry at login through the per-user Run key.
type registryRun struct{}

func (r *registryRun) Install(exe string) error {
	cmd := exec.Command("reg", "add", runKey,
		"/v", appName,
		"/t", "REG_SZ",
		"/d", exe,
		"/f") // overwrite an existing value
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("reg add failed: %w", err)
	}
	return nil
}

func (r *registryRun) Uninstall() error {
	cmd := exec.Command("reg", "delete", runKey, "/v", appName, "/f")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("reg delete failed: %w", err)
	}
	return nil
}
