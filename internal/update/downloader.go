package update

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// HTTPDownloader downloads release assets over HTTP(S).
type HTTPDownloader struct {
	client *http.Client
}

// NewHTTPDownloader creates a downloader with a generous timeout for
// large binaries on slow links.
func NewHTTPDownloader() *HTTPDownloader {
	return &HTTPDownloader{
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// Download fetches url into dst and marks it executable. dst is
// truncated if it already exists, so a failed earlier attempt is
// simply overwritten.
func (d *HTTPDownloader) Download(url, dst string) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "ferry-updater")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	out, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		_ = out.Close()
		_ = os.Remove(dst) // don't leave a truncated binary behind
		return fmt.Errorf("failed to write %s after %d bytes: %w", dst, written, err)
	}

	return out.Close()
}
