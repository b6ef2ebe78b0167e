// Package autostart registers ferry to start at login, using the
// platform's own mechanism: a registry Run key on Windows, a
// LaunchAgent on macOS, a systemd user unit on Linux.
package autostart

import (
	"fmt"
	"os"
	"runtime"

	"github.com/adamancini/ferry/internal/logging"
)

// provider is one platform's registration mechanism.
type provider interface {
	Install(exe string) error
	Uninstall() error
}

// forPlatform selects the provider for the running system.
func forPlatform() (provider, error) {
	switch runtime.GOOS {
	case "windows":
		return &registryRun{}, nil
	case "darwin":
		return &launchAgent{}, nil
	case "linux":
		return &systemdUnit{}, nil
	default:
		return nil, fmt.Errorf("autostart is not supported on %s", runtime.GOOS)
	}
}

// Install registers the current executable to start at login.
func Install() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("cannot determine current executable: %w", err)
	}

	p, err := forPlatform()
	if err != nil {
		return err
	}

	if err := p.Install(exe); err != nil {
		return err
	}

	logger := logging.GetLogger("autostart")
	logger.Info().Str("exe", exe).Msg("autostart installed")
	return nil
}

// Uninstall removes the login registration.
func Uninstall() error {
	p, err := forPlatform()
	if err != nil {
		return err
	}
	return p.Uninstall()
}
