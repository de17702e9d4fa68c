package release

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDownloadURL_Version checks the tagged release path.
func TestDownloadURL_Version(t *testing.T) {
	t.Parallel()

	got, err := DownloadURL(DefaultBaseURL, "1.2.3", "kubernetes-mcp-server-linux-amd64")
	require.NoError(t, err)
	require.Equal(t,
		"https://github.com/manusa/kubernetes-mcp-server/releases/download/v1.2.3/kubernetes-mcp-server-linux-amd64",
		got)
}

// TestDownloadURL_Latest checks that "latest" never gets a v-prefixed path.
func TestDownloadURL_Latest(t *testing.T) {
	t.Parallel()

	got, err := DownloadURL(DefaultBaseURL, LatestVersion, "kubernetes-mcp-server-windows-arm64.exe")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(got, "/latest/download/kubernetes-mcp-server-windows-arm64.exe"), got)
	require.NotContains(t, got, "/vlatest")
}

// TestDownloadURL_TrailingSlash ensures a trailing slash in the base does not double up.
func TestDownloadURL_TrailingSlash(t *testing.T) {
	t.Parallel()

	got, err := DownloadURL("http://127.0.0.1:8080/releases/", "0.0.40", "a")
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8080/releases/download/v0.0.40/a", got)
}

// TestValidateVersion rejects path-like versions.
func TestValidateVersion(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"1.2.3", "latest", "0.0.1-rc.1", "dev"} {
		require.NoError(t, ValidateVersion(v), v)
	}

	for _, v := range []string{"", "  ", "../1.0.0", "1.0/evil", `1.0\evil`, "..", ".", " . "} {
		require.ErrorIs(t, ValidateVersion(v), ErrInvalidVersion, v)
	}

	_, err := DownloadURL(DefaultBaseURL, "../../x", "a")
	require.ErrorIs(t, err, ErrInvalidVersion)

	_, err = DownloadURL(DefaultBaseURL, ".", "a")
	require.ErrorIs(t, err, ErrInvalidVersion)
}

// TestValidateBaseURL accepts only absolute http(s) locations.
func TestValidateBaseURL(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateBaseURL(DefaultBaseURL))
	require.NoError(t, ValidateBaseURL("http://localhost:1234/r"))
	require.ErrorIs(t, ValidateBaseURL("releases"), ErrInvalidBaseURL)
	require.ErrorIs(t, ValidateBaseURL("ftp://example.com/r"), ErrInvalidBaseURL)
}
