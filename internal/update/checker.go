package update

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// githubRelease is the shape of the releases-latest endpoint. Only the
// fields the checker reads are declared.
type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// GitHubChecker checks for new releases via the GitHub API.
type GitHubChecker struct {
	currentVersion string
	owner          string
	repo           string
	client         *http.Client
	baseURL        string // overridable for tests
}

// NewGitHubChecker creates a checker for owner/repo against the given
// running version.
func NewGitHubChecker(currentVersion, owner, repo string) *GitHubChecker {
	return &GitHubChecker{
		currentVersion: currentVersion,
		owner:          owner,
		repo:           repo,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.github.com",
	}
}

// CheckForUpdate fetches the latest release and compares it to the
// running version. An update is available whenever the published
// version names a different release than the one running.
func (c *GitHubChecker) CheckForUpdate() (*Info, error) {
	release, err := c.latestRelease()
	if err != nil {
		return nil, fmt.Errorf("failed to get latest release: %w", err)
	}

	return &Info{
		Available:      Differs(release.TagName, c.currentVersion),
		CurrentVersion: NormalizeVersion(c.currentVersion),
		LatestVersion:  NormalizeVersion(release.TagName),
		ReleaseURL:     release.HTMLURL,
		AssetURL:       c.assetURL(release, Detect()),
	}, nil
}

func (c *GitHubChecker) latestRelease() (*githubRelease, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "ferry-updater")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release endpoint returned status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &release, nil
}

// assetURL returns the download URL of the asset built for the given
// platform, or "" when none is published.
func (c *GitHubChecker) assetURL(release *githubRelease, platform Platform) string {
	want := platform.BinaryName()
	for _, asset := range release.Assets {
		if asset.Name == want {
			return asset.BrowserDownloadURL
		}
	}
	return ""
}
