package maintenance

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShowConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "https://mirror.example.com/releases", "0.0.52")
	cfg.ResolveLatest = true

	var out bytes.Buffer
	require.NoError(t, ShowConfig(&out, cfg))

	shown := out.String()
	require.Contains(t, shown, "version: 0.0.52\n")
	require.Contains(t, shown, "base_url: https://mirror.example.com/releases\n")
	require.Contains(t, shown, "resolve_latest: true\n")
}

func TestSaveConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "", "0.0.52")
	path := filepath.Join(t.TempDir(), "nested", "launcher.yaml")

	saved, err := SaveConfig(path, cfg)
	require.NoError(t, err)
	require.Equal(t, path, saved)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "version: 0.0.52")
}
