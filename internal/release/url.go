package release

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

const (
	// DefaultBaseURL is the release location artifacts are downloaded from.
	DefaultBaseURL = "https://github.com/manusa/kubernetes-mcp-server/releases"

	// DefaultRepository is the GitHub repository publishing the releases.
	DefaultRepository = "manusa/kubernetes-mcp-server"

	// LatestVersion selects the newest published release.
	LatestVersion = "latest"
)

var (
	// ErrInvalidVersion is returned for versions that cannot name a release.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrInvalidBaseURL is returned when the release location is not an absolute URL.
	ErrInvalidBaseURL = errors.New("invalid release base url")
)

// ValidateVersion rejects versions that would escape the release path segment
// or the cache directory they are stored in.
func ValidateVersion(version string) error {
	switch {
	case strings.TrimSpace(version) == "":
		return fmt.Errorf("%w: empty", ErrInvalidVersion)
	case strings.ContainsAny(version, `/\`), strings.Contains(version, ".."):
		return fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	case version == ".", strings.TrimSpace(version) != version,
		filepath.Clean(version) != version, filepath.Base(version) != version:
		// "." would name the cache root itself; volume names would leave it.
		return fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	default:
		return nil
	}
}

// ValidateBaseURL checks that baseURL is an absolute http(s) URL.
func ValidateBaseURL(baseURL string) error {
	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrInvalidBaseURL, u.Scheme)
	}

	return nil
}

// DownloadURL returns the location of artifact for version.
// "latest" maps to <base>/latest/download/<artifact>,
// anything else to <base>/download/v<version>/<artifact>.
func DownloadURL(baseURL, version, artifact string) (string, error) {
	if err := ValidateVersion(version); err != nil {
		return "", err
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	// Use path.Join to normalize duplicate slashes when composing the URL path.
	if version == LatestVersion {
		u.Path = path.Join(u.Path, LatestVersion, "download", artifact)
	} else {
		u.Path = path.Join(u.Path, "download", "v"+version, artifact)
	}

	return u.String(), nil
}
