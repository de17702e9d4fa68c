// Package launcher runs kubernetes-mcp-server: it resolves the platform
// artifact, makes sure it is cached, starts it with the forwarded arguments
// and standard streams, and reports its exit code.
//
// Launcher-side failures never escape as errors; they are logged and turned
// into exit code 1.
package launcher
