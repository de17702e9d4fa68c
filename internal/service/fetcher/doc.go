// Package fetcher downloads a release artifact into the cache.
//
// The body is staged next to its destination and applied with go-update, which
// can verify an expected SHA-256 checksum. The staged file is renamed onto the
// destination only after the whole body arrived, so a failed download never
// leaves a file at the destination path.
package fetcher
