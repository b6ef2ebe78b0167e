package update

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamancini/ferry/internal/logging"
)

type fakeChecker struct {
	info *Info
	err  error
}

func (f *fakeChecker) CheckForUpdate() (*Info, error) { return f.info, f.err }

type fakeDownloader struct {
	content []byte
	err     error
	gotURL  string
	gotDst  string
}

func (f *fakeDownloader) Download(url, dst string) error {
	f.gotURL = url
	f.gotDst = dst
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dst, f.content, 0755)
}

func testUpdater(c Checker, d Downloader) *Updater {
	return &Updater{
		checker:    c,
		downloader: d,
		platform:   Detect(),
		logger:     logging.GetLogger("update"),
		exit:       func(int) {},
	}
}

func TestCheckAndApplyUnsupportedPlatform(t *testing.T) {
	d := &fakeDownloader{}
	u := testUpdater(&fakeChecker{info: &Info{Available: true, AssetURL: "https://dl.test/bin"}}, d)
	u.platform = Platform{OS: "plan9", Arch: "mips"}

	_, err := u.checkAndApply()
	assert.Error(t, err)
	assert.Empty(t, d.gotURL, "nothing may be downloaded for an unsupported platform")
}

func TestCheckAndApplyUpToDate(t *testing.T) {
	u := testUpdater(&fakeChecker{info: &Info{Available: false}}, &fakeDownloader{})

	applied, err := u.checkAndApply()
	require.NoError(t, err)
	assert.False(t, applied, "equal versions must cause no download and no restart")
}

func TestCheckAndApplyCheckerError(t *testing.T) {
	u := testUpdater(&fakeChecker{err: errors.New("network down")}, &fakeDownloader{})

	_, err := u.checkAndApply()
	assert.Error(t, err)
}

func TestCheckAndApplyMissingAsset(t *testing.T) {
	u := testUpdater(&fakeChecker{info: &Info{Available: true, LatestVersion: "9.9.9"}}, &fakeDownloader{})

	_, err := u.checkAndApply()
	assert.Error(t, err, "an update without a platform asset is a check failure")
}

func TestCheckAndApplyDownloadError(t *testing.T) {
	u := testUpdater(
		&fakeChecker{info: &Info{Available: true, AssetURL: "https://dl.test/bin"}},
		&fakeDownloader{err: errors.New("connection reset")},
	)

	_, err := u.checkAndApply()
	assert.Error(t, err)
}

func TestCheckAndApplySpawnsReplacement(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on shebang scripts")
	}

	d := &fakeDownloader{content: []byte("#!/bin/sh\nexit 0\n")}
	u := testUpdater(&fakeChecker{info: &Info{Available: true, AssetURL: "https://dl.test/bin", LatestVersion: "9.9.9"}}, d)

	applied, err := u.checkAndApply()
	require.NoError(t, err)
	assert.True(t, applied)

	assert.Equal(t, "https://dl.test/bin", d.gotURL)

	// Staged next to the current executable, under the update name.
	exe, err := os.Executable()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(exe), Detect().UpdateBinaryName()), d.gotDst)
	t.Cleanup(func() { _ = os.Remove(d.gotDst) })
}
