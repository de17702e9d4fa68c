// Package maintenance implements the cache management commands: prefetching
// artifacts, listing and locating cached versions, printing their checksums
// and pruning old versions. None of it runs on the launch path.
package maintenance
