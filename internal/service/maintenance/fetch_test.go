package maintenance

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetch_HostPlatformDefaultVersion(t *testing.T) {
	t.Parallel()

	rs := newReleaseServer(t, "")
	cfg := testConfig(t, rs.URL, "0.0.52")

	paths, err := Fetch(context.Background(), &FetchOptions{Config: cfg, OS: "Darwin", Arch: "arm64"})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(cfg.CacheDir, "0.0.52", "kubernetes-mcp-server-darwin-arm64")}, paths)
	require.Equal(t, []string{"/download/v0.0.52/kubernetes-mcp-server-darwin-arm64"}, rs.requests())
}

// TestFetch_AllPlatforms seeds the cache with every supported artifact.
func TestFetch_AllPlatforms(t *testing.T) {
	t.Parallel()

	rs := newReleaseServer(t, "")
	cfg := testConfig(t, rs.URL, "0.0.52")

	paths, err := Fetch(context.Background(), &FetchOptions{
		Config:       cfg,
		Versions:     []string{"0.0.50", "0.0.51"},
		AllPlatforms: true,
		Concurrency:  2,
		OS:           "linux",
		Arch:         "amd64",
	})
	require.NoError(t, err)
	require.Len(t, paths, 12)
	require.Len(t, rs.requests(), 12)

	for _, path := range paths {
		require.FileExists(t, path)
	}

	require.FileExists(t, filepath.Join(cfg.CacheDir, "0.0.51", "kubernetes-mcp-server-windows-arm64.exe"))

	// Everything is cached now.
	_, err = Fetch(context.Background(), &FetchOptions{
		Config:       cfg,
		Versions:     []string{"0.0.50", "0.0.51"},
		AllPlatforms: true,
		OS:           "linux",
		Arch:         "amd64",
	})
	require.NoError(t, err)
	require.Len(t, rs.requests(), 12)
}

func TestFetch_FailureIsReported(t *testing.T) {
	t.Parallel()

	rs := newReleaseServer(t, "/download/v0.0.52/kubernetes-mcp-server-windows-amd64.exe")
	cfg := testConfig(t, rs.URL, "0.0.52")

	_, err := Fetch(context.Background(), &FetchOptions{Config: cfg, AllPlatforms: true, OS: "linux", Arch: "amd64"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "windows/amd64")
	require.NoFileExists(t, filepath.Join(cfg.CacheDir, "0.0.52", "kubernetes-mcp-server-windows-amd64.exe"))
}

func TestFetch_UnsupportedHost(t *testing.T) {
	t.Parallel()

	rs := newReleaseServer(t, "")
	cfg := testConfig(t, rs.URL, "0.0.52")

	_, err := Fetch(context.Background(), &FetchOptions{Config: cfg, OS: "linux", Arch: "riscv64"})
	require.Error(t, err)
	require.Empty(t, rs.requests())
}
