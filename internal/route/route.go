// Package route resolves the current model name and API base URL from a panel URL.
package route

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var adminPattern = regexp.MustCompile(`/admin/([^/]+)`)

// ModelName returns the path segment immediately following "/admin/",
// or "" when the path does not contain that pattern.
func ModelName(path string) string {
	match := adminPattern.FindStringSubmatch(path)
	if match == nil {
		return ""
	}
	return match[1]
}

// Target is a parsed panel location
type Target struct {
	BaseURL string // scheme://host[:port] the API lives on
	Model   string // may be empty when the URL names no model
}

// Parse splits a panel URL such as http://localhost:8000/admin/user into the
// API base URL and model name. A bare path ("/admin/user" or "user") uses
// fallbackBase as the base URL.
func Parse(raw string, fallbackBase string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{BaseURL: strings.TrimRight(fallbackBase, "/")}, nil
	}

	if !strings.Contains(raw, "://") {
		path := raw
		if !strings.HasPrefix(path, "/") {
			path = "/admin/" + path
		}
		if fallbackBase == "" {
			return Target{}, fmt.Errorf("no base URL configured for path %q", raw)
		}
		return Target{BaseURL: strings.TrimRight(fallbackBase, "/"), Model: ModelName(path)}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("invalid panel URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Target{}, fmt.Errorf("panel URL must include scheme and host: %s", raw)
	}

	return Target{
		BaseURL: u.Scheme + "://" + u.Host,
		Model:   ModelName(u.Path),
	}, nil
}
