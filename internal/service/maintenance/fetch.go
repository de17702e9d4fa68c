package maintenance

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/config"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/domain/platform"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/logger"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/fetcher"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/launcher"
)

// DefaultConcurrency bounds parallel downloads of an all-platform prefetch.
const DefaultConcurrency = 3

// FetchOptions are inputs of Fetch.
type FetchOptions struct {
	// Config holds validated settings.
	Config *config.Config
	// Versions to prefetch; empty means the configured version.
	Versions []string
	// AllPlatforms downloads every supported artifact instead of the host one.
	AllPlatforms bool
	// Concurrency bounds parallel downloads; zero means DefaultConcurrency.
	Concurrency int
	// OS and Arch override the host reported platform.
	OS   string
	Arch string
}

// target is one artifact to make available.
type target struct {
	version  string
	platform platform.Platform
	artifact string
}

// Fetch makes the requested artifacts available in the cache and returns their paths.
func Fetch(ctx context.Context, opts *FetchOptions) ([]string, error) {
	ctx = logger.WithName(ctx, "fetch")
	cfg := opts.Config

	host, err := hostPlatform(opts.OS, opts.Arch)
	if err != nil {
		return nil, err
	}

	versions := opts.Versions
	if len(versions) == 0 {
		versions = []string{launcher.ResolveVersion(ctx, cfg, host, nil)}
	}

	platforms := []platform.Platform{host}
	if opts.AllPlatforms {
		platforms = platform.Supported()
	}

	targets := make([]target, 0, len(versions)*len(platforms))
	for _, v := range versions {
		for _, p := range platforms {
			artifact, artifactErr := p.Artifact()
			if artifactErr != nil {
				return nil, artifactErr
			}

			targets = append(targets, target{version: v, platform: p, artifact: artifact})
		}
	}

	f, err := newFetcher(ctx, cfg, len(targets))
	if err != nil {
		return nil, err
	}

	store := launcher.NewStore(cfg, f)
	paths := make([]string, len(targets))

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for i, t := range targets {
		group.Go(func() error {
			path, ensureErr := store.Ensure(groupCtx, t.version, t.artifact)
			if ensureErr != nil {
				return fmt.Errorf("fetch %s %s: %w", t.platform, t.version, ensureErr)
			}

			paths[i] = path

			return nil
		})
	}

	if err = group.Wait(); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Artifacts cached", "count", len(paths), "root", store.Root())

	return paths, nil
}

// newFetcher applies the configured digest only when a single artifact is fetched,
// since it pins one file.
func newFetcher(ctx context.Context, cfg *config.Config, targets int) (*fetcher.Fetcher, error) {
	if cfg.SHA256 == "" {
		return fetcher.New(), nil
	}

	if targets > 1 {
		logger.WarnKV(ctx, "Ignoring sha256 while fetching several artifacts", "artifacts", targets)
		return fetcher.New(), nil
	}

	checksum, err := fetcher.ParseChecksum(cfg.SHA256)
	if err != nil {
		return nil, err
	}

	return fetcher.New(fetcher.WithChecksum(checksum)), nil
}

func hostPlatform(osName, arch string) (platform.Platform, error) {
	if osName == "" {
		osName = runtime.GOOS
	}

	if arch == "" {
		arch = runtime.GOARCH
	}

	return platform.Normalize(osName, arch)
}
