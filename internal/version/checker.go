// Package version reports the build version and checks for newer releases.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Version is the build version, overridden with -ldflags "-X".
var Version = "0.1.0"

const (
	releasesURL  = "https://api.github.com/repos/studiowebux/restadmin/releases/latest"
	checkTimeout = 5 * time.Second
)

// Release describes the latest published release
type Release struct {
	Version   string
	URL       string
	Available bool // newer than the running build
}

// Checker queries the releases endpoint
type Checker struct {
	URL    string
	Client *http.Client
}

// NewChecker returns a checker for the public release feed
func NewChecker() *Checker {
	return &Checker{
		URL:    releasesURL,
		Client: &http.Client{Timeout: checkTimeout},
	}
}

// Check fetches the latest release and compares it with current
func (c *Checker) Check(ctx context.Context, current string) (Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return Release{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "restadmin/"+current)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return Release{}, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload struct {
		TagName string `json:"tag_name"`
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Release{}, fmt.Errorf("failed to decode response: %w", err)
	}

	latest := strings.TrimPrefix(payload.TagName, "v")
	return Release{
		Version:   latest,
		URL:       payload.HTMLURL,
		Available: latest != "" && IsNewer(latest, strings.TrimPrefix(current, "v")),
	}, nil
}

// IsNewer reports whether latest > current, comparing numeric parts only.
// Pre-release and build suffixes ("-dev", "+build1") are ignored.
func IsNewer(latest, current string) bool {
	l, c := parseVersion(latest), parseVersion(current)
	for i := 0; i < max(len(l), len(c)); i++ {
		lp, cp := part(l, i), part(c, i)
		if lp != cp {
			return lp > cp
		}
	}
	return false
}

func part(parts []int, i int) int {
	if i < len(parts) {
		return parts[i]
	}
	return 0
}

func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	var result []int
	for _, p := range strings.Split(version, ".") {
		if num, err := strconv.Atoi(p); err == nil {
			result = append(result, num)
		}
	}
	return result
}
