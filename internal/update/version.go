package update

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var versionRegex = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:-([a-zA-Z0-9.-]+))?$`)

// Version is a parsed semantic version.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
}

// ParseVersion parses strings like "0.8.2", "v0.8.2" or "0.9.0-rc.1".
func ParseVersion(s string) (*Version, error) {
	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return nil, fmt.Errorf("invalid version format: %s", s)
	}

	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])
	patch, _ := strconv.Atoi(matches[3])

	return &Version{
		Major:      major,
		Minor:      minor,
		Patch:      patch,
		Prerelease: matches[4],
	}, nil
}

// String returns the version without a leading "v".
func (v *Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

// Compare returns 1 if v > other, -1 if v < other, 0 when equal. A
// stable version outranks any prerelease of the same triple;
// prereleases compare lexicographically.
func (v *Version) Compare(other *Version) int {
	for _, d := range []int{v.Major - other.Major, v.Minor - other.Minor, v.Patch - other.Patch} {
		if d > 0 {
			return 1
		}
		if d < 0 {
			return -1
		}
	}

	switch {
	case v.Prerelease == other.Prerelease:
		return 0
	case v.Prerelease == "":
		return 1
	case other.Prerelease == "":
		return -1
	case v.Prerelease > other.Prerelease:
		return 1
	default:
		return -1
	}
}

// IsEqual reports whether both versions are the same release.
func (v *Version) IsEqual(other *Version) bool {
	return v.Compare(other) == 0
}

// IsGreaterThan reports whether v is a newer release than other.
func (v *Version) IsGreaterThan(other *Version) bool {
	return v.Compare(other) > 0
}

// IsAhead reports whether the running version is newer than the
// published one, as happens on builds cut past the last tag.
// Unparseable versions are never ahead.
func IsAhead(current, latest string) bool {
	cv, cerr := ParseVersion(current)
	lv, lerr := ParseVersion(latest)
	if cerr != nil || lerr != nil {
		return false
	}
	return cv.IsGreaterThan(lv)
}

// NormalizeVersion strips the "v" tag prefix if present.
func NormalizeVersion(s string) string {
	return strings.TrimPrefix(s, "v")
}

// Differs reports whether two version strings name different releases.
// Both are parsed as semver when possible; tags that do not parse fall
// back to a comparison of the normalized strings.
func Differs(a, b string) bool {
	av, aerr := ParseVersion(a)
	bv, berr := ParseVersion(b)
	if aerr != nil || berr != nil {
		return NormalizeVersion(a) != NormalizeVersion(b)
	}
	return !av.IsEqual(bv)
}
