package maintenance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/mitchellh/go-ps"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/config"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/domain/platform"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/logger"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/launcher"
)

const (
	// CacheBinaryName is the executable name of the maintenance command.
	CacheBinaryName = platform.BinaryName + "-cache"

	// processNameLimit is the length Linux truncates process names to.
	processNameLimit = 15
)

// ErrServerRunning is returned by Prune while kubernetes-mcp-server processes are alive.
var ErrServerRunning = errors.New("kubernetes-mcp-server is running")

// PruneOptions are inputs of Prune.
type PruneOptions struct {
	// Config holds validated settings.
	Config *config.Config
	// Keep is how many of the newest semantic versions survive.
	Keep int
	// Versions are removed explicitly instead of applying Keep.
	Versions []string
	// Force skips the running process check.
	Force bool
	// DryRun reports what would be removed without removing it.
	DryRun bool
	// Processes lists running processes; nil means the operating system list.
	Processes func() ([]ps.Process, error)
}

// Prune removes cached versions and returns them. Without explicit versions
// it keeps the newest Keep semantic versions; names such as "latest" are
// only removed when listed explicitly. The configured version is never pruned
// implicitly.
func Prune(ctx context.Context, opts *PruneOptions) ([]string, error) {
	ctx = logger.WithName(ctx, "prune")
	store := launcher.NewStore(opts.Config, nil)

	if !opts.Force {
		if err := ensureServerStopped(opts.Processes); err != nil {
			return nil, err
		}
	}

	candidates := opts.Versions
	if len(candidates) == 0 {
		versions, err := store.Versions()
		if err != nil {
			return nil, err
		}

		candidates = pruneCandidates(versions, opts.Keep, opts.Config.Version)
	}

	removed := make([]string, 0, len(candidates))

	for _, v := range candidates {
		if opts.DryRun {
			logger.InfoKV(ctx, "Would remove version", "version", v)
		} else {
			if err := store.Remove(v); err != nil {
				return removed, err
			}

			logger.InfoKV(ctx, "Removed version", "version", v)
		}

		removed = append(removed, v)
	}

	return removed, nil
}

// pruneCandidates returns the semantic versions beyond the newest keep, except pinned.
// versions must be ordered the way the cache lists them.
func pruneCandidates(versions []string, keep int, pinned string) []string {
	semantic := make([]string, 0, len(versions))

	for _, v := range versions {
		if _, err := semver.NewVersion(v); err == nil {
			semantic = append(semantic, v)
		}
	}

	if keep < 0 {
		keep = 0
	}

	if len(semantic) <= keep {
		return nil
	}

	candidates := make([]string, 0, len(semantic)-keep)

	for _, v := range semantic[:len(semantic)-keep] {
		if v != pinned {
			candidates = append(candidates, v)
		}
	}

	return candidates
}

// ensureServerStopped fails when another kubernetes-mcp-server process may be using the cache.
func ensureServerStopped(processes func() ([]ps.Process, error)) error {
	if processes == nil {
		processes = ps.Processes
	}

	processList, err := processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if isServerProcess(process.Executable()) {
			return fmt.Errorf("%w: pid %d", ErrServerRunning, process.Pid())
		}
	}

	return nil
}

// isServerProcess matches launcher and server executables, including names
// truncated by the kernel, but not the maintenance command itself.
func isServerProcess(name string) bool {
	name = strings.TrimSuffix(strings.ToLower(name), ".exe")

	switch {
	case name == CacheBinaryName:
		return false
	case strings.HasPrefix(name, platform.BinaryName):
		return true
	default:
		return len(name) >= processNameLimit && strings.HasPrefix(platform.BinaryName, name)
	}
}
