// Package version holds the launcher's build stamp. Release builds set it
// with ldflags; the stamped version is also the kubernetes-mcp-server release
// launched when no version is configured, so both move together.
package version
