// Package platform maps an operating system and CPU architecture to the
// name of the kubernetes-mcp-server release artifact built for them.
package platform
