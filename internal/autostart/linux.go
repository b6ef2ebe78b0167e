package autostart

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/adamancini/ferry/internal/logging"
)

const serviceName = "ferry.service"

// systemdUnit starts ferry at login through a systemd user unit.
type systemdUnit struct{}

func (s *systemdUnit) unitPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "systemd", "user", serviceName), nil
}

func (s *systemdUnit) Install(exe string) error {
	unit, err := s.unitPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(unit), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(unit, []byte(serviceUnit(exe)), 0644); err != nil {
		return err
	}

	if err := exec.Command("systemctl", "--user", "daemon-reload").Run(); err != nil {
		return fmt.Errorf("systemctl daemon-reload failed: %w", err)
	}

	if err := exec.Command("systemctl", "--user", "enable", "--now", serviceName).Run(); err != nil {
		return fmt.Errorf("systemctl enable failed: %w", err)
	}

	// User units stop at logout unless lingering is on. Enabling it
	// needs privileges, so only hint when it fails.
	if err := exec.Command("loginctl", "enable-linger", os.Getenv("USER")).Run(); err != nil {
		logger := logging.GetLogger("autostart")
		logger.Warn().
			Msg("run 'loginctl enable-linger $USER' as root to keep ferry running after logout")
	}

	return nil
}

func (s *systemdUnit) Uninstall() error {
	unit, err := s.unitPath()
	if err != nil {
		return err
	}

	_ = exec.Command("systemctl", "--user", "disable", "--now", serviceName).Run()

	if err := os.Remove(unit); err != nil {
		return err
	}

	return exec.Command("systemctl", "--user", "daemon-reload").Run()
}

func serviceUnit(exe string) string {
	return fmt.Sprintf(`[Unit]
Description=Ferry file watcher
After=network.target

[Service]
ExecStart=%s
Restart=on-failure
RestartSec=5s

[Install]
WantedBy=default.target
`, exe)
}
