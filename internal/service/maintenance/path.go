package maintenance

import (
	"context"
	"fmt"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/config"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/launcher"
)

// PathOptions are inputs of Path.
type PathOptions struct {
	// Config holds validated settings.
	Config *config.Config
	// Version overrides the configured version.
	Version string
	// Ensure downloads the artifact when it is not cached yet.
	Ensure bool
	// OS and Arch override the host reported platform.
	OS   string
	Arch string
}

// Path returns where the host artifact of a version lives in the cache.
func Path(ctx context.Context, opts *PathOptions) (string, error) {
	cfg := *opts.Config
	if opts.Version != "" {
		cfg.Version = opts.Version
	}

	if opts.Ensure {
		return launcher.Prepare(ctx, &launcher.Options{Config: &cfg, OS: opts.OS, Arch: opts.Arch})
	}

	host, err := hostPlatform(opts.OS, opts.Arch)
	if err != nil {
		return "", err
	}

	artifact, err := host.Artifact()
	if err != nil {
		return "", err
	}

	path, found, err := launcher.NewStore(&cfg, nil).Lookup(cfg.Version, artifact)
	if err != nil {
		return "", err
	}

	if !found {
		return "", fmt.Errorf("%s: %w", path, ErrNotCached)
	}

	return path, nil
}
