package maintenance

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/config"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/release"
)

const artifactBody = "#!/bin/sh\nexit 0\n"

// releaseServer answers every request with artifactBody, or 404 for the missing path.
type releaseServer struct {
	*httptest.Server

	mu      sync.Mutex
	paths   []string
	missing string
}

func newReleaseServer(t *testing.T, missing string) *releaseServer {
	t.Helper()

	rs := &releaseServer{missing: missing}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		rs.paths = append(rs.paths, r.URL.Path)
		rs.mu.Unlock()

		if r.URL.Path == rs.missing {
			http.NotFound(w, r)
			return
		}

		_, _ = io.WriteString(w, artifactBody)
	}))
	t.Cleanup(rs.Close)

	return rs
}

func (rs *releaseServer) requests() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return append([]string(nil), rs.paths...)
}

func testConfig(t *testing.T, baseURL, version string) *config.Config {
	t.Helper()

	if baseURL == "" {
		baseURL = "http://127.0.0.1:1/releases"
	}

	return &config.Config{
		Version:    version,
		CacheDir:   t.TempDir(),
		BaseURL:    baseURL,
		Repository: release.DefaultRepository,
		LogLevel:   config.DefaultLogLevel,
	}
}

// seed writes cached artifacts as <root>/<version>/<artifact>.
func seed(t *testing.T, root string, entries map[string][]string) {
	t.Helper()

	for version, artifacts := range entries {
		dir := filepath.Join(root, version)
		require.NoError(t, os.MkdirAll(dir, 0o755))

		for _, artifact := range artifacts {
			require.NoError(t, os.WriteFile(filepath.Join(dir, artifact), []byte(artifactBody), 0o755))
		}
	}
}
