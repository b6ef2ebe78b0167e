package update

import (
	"fmt"
	"runtime"
)

// Detect returns the current platform.
func Detect() Platform {
	return Platform{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
}

// BinaryName returns the release asset name published for this
// platform, e.g. "ferry-darwin-arm64" or "ferry-windows-amd64.exe".
func (p Platform) BinaryName() string {
	name := fmt.Sprintf("ferry-%s-%s", p.OS, p.Arch)
	if p.OS == "windows" {
		name += ".exe"
	}
	return name
}

// UpdateBinaryName returns the sibling filename a downloaded update is
// staged under, next to the current executable.
func (p Platform) UpdateBinaryName() string {
	if p.OS == "windows" {
		return "ferry_update.exe"
	}
	return "ferry_update"
}

// IsSupported reports whether releases are published for this
// platform.
func (p Platform) IsSupported() bool {
	archs, ok := map[string][]string{
		"darwin":  {"amd64", "arm64"},
		"linux":   {"amd64", "arm64"},
		"windows": {"amd64", "arm64"},
	}[p.OS]
	if !ok {
		return false
	}

	for _, arch := range archs {
		if p.Arch == arch {
			return true
		}
	}
	return false
}
