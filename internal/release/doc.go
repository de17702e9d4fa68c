// Package release knows where kubernetes-mcp-server artifacts are published:
// it builds download URLs from a release base location and can ask GitHub
// which release is currently the latest one.
package release
