package integration

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/config"
)

// releaseHost imitates the GitHub release download endpoints.
type releaseHost struct {
	*httptest.Server

	downloads atomic.Int64
}

// newReleaseHost serves script for every versioned artifact.
func newReleaseHost(t *testing.T, script string) *releaseHost {
	t.Helper()

	host := &releaseHost{}

	mux := http.NewServeMux()
	mux.HandleFunc("/download/", func(w http.ResponseWriter, _ *http.Request) {
		host.downloads.Add(1)

		_, _ = io.WriteString(w, script)
	})

	host.Server = httptest.NewServer(mux)
	t.Cleanup(host.Close)

	return host
}

// skipWithoutShell skips tests that run shell script stand-ins for kubernetes-mcp-server.
func skipWithoutShell(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script stubs need a POSIX shell")
	}
}

// saveConfig writes a settings file for a release host and returns its path.
func saveConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, config.Save(path, cfg))

	return path
}
