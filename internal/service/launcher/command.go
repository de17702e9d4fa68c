package launcher

import (
	"context"
	"fmt"
	"runtime"

	"github.com/creativeprojects/go-selfupdate"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/config"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/domain/platform"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/logger"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/release"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/repository/cache"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/fetcher"
)

// Options are inputs accepted by the launcher entry point.
type Options struct {
	// Args are forwarded to kubernetes-mcp-server unchanged.
	Args []string
	// Config holds validated settings; when nil they are loaded from ConfigPath.
	Config *config.Config
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// Streams are inherited by the child; zero values mean the process streams.
	Streams Streams
	// OS and Arch override the host reported platform.
	OS   string
	Arch string
	// ReleaseSource overrides the GitHub API when resolving the latest release.
	ReleaseSource selfupdate.Source
}

// Run launches kubernetes-mcp-server and returns the exit code to terminate with.
func Run(ctx context.Context, opts *Options) int {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "launcher")

	binaryPath, err := Prepare(ctx, opts)
	if err != nil {
		logger.ErrorKV(ctx, "Error executing kubernetes-mcp-server", "error", err)
		return FailureExitCode
	}

	logger.DebugKV(ctx, "Starting kubernetes-mcp-server", "path", binaryPath, "args", len(opts.Args))

	code, err := Exec(ctx, binaryPath, opts.Args, opts.streams())
	if err != nil {
		logger.ErrorKV(ctx, "Error executing kubernetes-mcp-server", "error", err)
		return FailureExitCode
	}

	return code
}

// Prepare resolves the platform artifact and returns its cached path, downloading it on a miss.
func Prepare(ctx context.Context, opts *Options) (string, error) {
	cfg, err := opts.config()
	if err != nil {
		return "", err
	}

	p, err := platform.Normalize(opts.hostOS(), opts.hostArch())
	if err != nil {
		return "", err
	}

	artifact, err := p.Artifact()
	if err != nil {
		return "", err
	}

	checksum, err := fetcher.ParseChecksum(cfg.SHA256)
	if err != nil {
		return "", err
	}

	ctx = logger.WithKV(ctx, "platform", p.String())
	store := NewStore(cfg, fetcher.New(fetcher.WithChecksum(checksum)))
	targetVersion := ResolveVersion(ctx, cfg, p, opts.ReleaseSource)

	path, err := store.Ensure(ctx, targetVersion, artifact)
	if err != nil {
		return "", fmt.Errorf("resolve %s %s: %w", artifact, targetVersion, err)
	}

	return path, nil
}

// NewStore builds the artifact cache described by cfg.
func NewStore(cfg *config.Config, f cache.Fetcher) *cache.Store {
	return cache.New(cfg.CacheDir, f, cache.WithBaseURL(cfg.BaseURL))
}

// ResolveVersion returns the version to fetch. With ResolveLatest enabled, "latest"
// becomes the newest published release; lookup failures keep "latest".
func ResolveVersion(ctx context.Context, cfg *config.Config, p platform.Platform, source selfupdate.Source) string {
	if !cfg.ResolveLatest || cfg.Version != release.LatestVersion {
		return cfg.Version
	}

	resolver, err := release.NewLatestResolver(cfg.Repository, p, source)
	if err == nil {
		var resolved string

		resolved, err = resolver.Resolve(ctx)
		if err == nil {
			logger.InfoKV(ctx, "Resolved latest release", "version", resolved)
			return resolved
		}
	}

	logger.WarnKV(ctx, "Unable to resolve the latest release, using the latest download link", "error", err)

	return cfg.Version
}

func (o *Options) config() (*config.Config, error) {
	if o.Config != nil {
		return o.Config, nil
	}

	return config.Load(o.ConfigPath)
}

func (o *Options) hostOS() string {
	if o.OS != "" {
		return o.OS
	}

	return runtime.GOOS
}

func (o *Options) hostArch() string {
	if o.Arch != "" {
		return o.Arch
	}

	return runtime.GOARCH
}

func (o *Options) streams() Streams {
	streams := StandardStreams()

	if o.Streams.Stdin != nil {
		streams.Stdin = o.Streams.Stdin
	}

	if o.Streams.Stdout != nil {
		streams.Stdout = o.Streams.Stdout
	}

	if o.Streams.Stderr != nil {
		streams.Stderr = o.Streams.Stderr
	}

	return streams
}
