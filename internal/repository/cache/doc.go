// Package cache stores downloaded kubernetes-mcp-server artifacts on disk as
// <root>/<version>/<artifact>. The presence of the file is taken as proof that
// it is valid: entries are never re-verified, updated in place, or evicted
// automatically.
package cache
