package autostart

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const agentLabel = "com.adamancini.ferry"

// launchAgent starts ferry at login through a per-user LaunchAgent.
type launchAgent struct{}

func (l *launchAgent) plistPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents", agentLabel+".plist"), nil
}

func (l *launchAgent) Install(exe string) error {
	plist, err := l.plistPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(plist), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(plist, []byte(agentPlist(exe)), 0644); err != nil {
		return err
	}

	// Load immediately so no reboot is needed.
	if err := exec.Command("launchctl", "load", plist).Run(); err != nil {
		return fmt.Errorf("launchctl load failed: %w", err)
	}

	return nil
}

func (l *launchAgent) Uninstall() error {
	plist, err := l.plistPath()
	if err != nil {
		return err
	}

	_ = exec.Command("launchctl", "unload", plist).Run()

	return os.Remove(plist)
}

func agentPlist(exe string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN"
  "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>

    <key>ProgramArguments</key>
    <array>
        <string>%s</string>
    </array>

    <key>RunAtLoad</key>
    <true/>

    <key>KeepAlive</key>
    <true/>
</dict>
</plist>
`, agentLabel, exe)
}
