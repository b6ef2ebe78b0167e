// Package update keeps the running binary current. A background loop
// checks the release endpoint, downloads new builds, and hands the
// process over to them; the relaunched binary runs the handoff
// protocol to replace its predecessor on disk.
package update

// Info describes the outcome of one release check.
type Info struct {
	Available      bool   // Whether a different release is published
	CurrentVersion string // Version of the running binary
	LatestVersion  string // Latest published version
	ReleaseURL     string // URL to the release page
	AssetURL       string // Download URL for this platform's binary
}

// Checker queries the release endpoint. It hides the metadata format
// from callers so the decoding strategy can change without touching
// them.
type Checker interface {
	CheckForUpdate() (*Info, error)
}

// Downloader fetches release assets.
type Downloader interface {
	Download(url, dst string) error
}

// Handoff replaces the previous executable after an update relaunch.
// There is one implementation per platform family: where a running
// binary may be renamed, the replacement happens in place; elsewhere a
// deferred-cleanup script does it after this process is established.
type Handoff interface {
	Replace(oldExe string) error
}

// Platform describes the running system, used to pick the release
// asset built for it.
type Platform struct {
	OS   string // Operating system (darwin, linux, windows)
	Arch string // Architecture (amd64, arm64)
}
