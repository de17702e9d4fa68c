package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/config"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/domain/platform"
)

// echoServer prints its arguments one per line and exits with 4.
const echoServer = "#!/bin/sh\nprintf '%s\\n' \"$@\"\nexit 4\n"

// TestRootCmd_ForwardsArgumentsVerbatim passes arguments cobra would otherwise claim.
//
// The cases share rootCmd and the process environment, so they run sequentially.
func TestRootCmd_ForwardsArgumentsVerbatim(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stubs need a POSIX shell")
	}

	if _, _, err := platform.Current(); err != nil {
		t.Skip("no release artifact for this host")
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, echoServer)
	}))
	t.Cleanup(ts.Close)

	cfgPath := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, config.Save(cfgPath, &config.Config{
		Version:  "0.0.52",
		CacheDir: t.TempDir(),
		BaseURL:  ts.URL,
		LogLevel: "error",
	}))
	t.Setenv(config.EnvConfig, cfgPath)

	tests := map[string][]string{
		"help flag":          {"--help"},
		"help command":       {"help"},
		"completion request": {"__complete", "--port", ""},
		"completion nodesc":  {"__completeNoDesc", "toolsets"},
		"completion command": {"completion", "bash"},
		"server flags":       {"--port", "8080", "--read-only", "-v", "9"},
		"no arguments":       {},
	}

	for name, args := range tests {
		var stdout bytes.Buffer

		rootCmd.SetIn(strings.NewReader(""))
		rootCmd.SetOut(&stdout)
		rootCmd.SetErr(io.Discard)

		exitCode = 0
		rootCmd.Run(rootCmd, args)

		// printf repeats its format at least once, so no arguments print an empty line.
		want := strings.Join(args, "\n") + "\n"

		require.Equal(t, 4, exitCode, name)
		require.Equal(t, want, stdout.String(), name)
	}
}

// TestRun_InvalidSettingsFails reports launcher failures with exit code 1.
func TestRun_InvalidSettingsFails(t *testing.T) {
	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "missing.yaml"))

	exitCode = 0
	rootCmd.Run(rootCmd, []string{"--help"})

	require.Equal(t, 1, exitCode)
}
