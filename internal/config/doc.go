// Package config defines the launcher settings and loads them from an optional
// YAML file, then from KUBERNETES_MCP_SERVER_LAUNCHER_* environment variables.
//
// Every setting has a default, so running without any configuration fetches
// the release matching the launcher's own version into ~/.kubernetes-mcp-server/bin.
package config
