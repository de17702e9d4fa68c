package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/logger"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/release"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/repository/cache"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/fetcher"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/version"
)

// Config holds the settings shared by the launcher binaries.
type Config struct {
	// Version is the kubernetes-mcp-server release to run ("latest" or a semantic version).
	Version string `yaml:"version"`
	// CacheDir is the root the artifacts are cached under. A leading ~ is expanded.
	CacheDir string `yaml:"cache_dir"`
	// BaseURL is the release location artifacts are downloaded from.
	BaseURL string `yaml:"base_url"`
	// SHA256 is the optional expected hex digest of the downloaded artifact.
	SHA256 string `yaml:"sha256"`
	// ResolveLatest turns "latest" into the concrete newest release before caching.
	ResolveLatest bool `yaml:"resolve_latest"`
	// Repository is the GitHub owner/name slug used to resolve the latest release.
	Repository string `yaml:"repository"`
	// LogLevel is the minimum level written to standard error.
	LogLevel string `yaml:"log_level"`
}

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "KUBERNETES_MCP_SERVER_LAUNCHER_"

	// EnvConfig names the environment variable pointing to the YAML file.
	EnvConfig = EnvPrefix + "CONFIG"

	// DefaultConfigFilename is the file looked up in ~/.kubernetes-mcp-server.
	DefaultConfigFilename = "launcher.yaml"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	defaultConfigDir = ".kubernetes-mcp-server"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownLogLevel is returned for levels ParseLogLevel does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// DefaultPath returns ~/.kubernetes-mcp-server/launcher.yaml.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, defaultConfigDir, DefaultConfigFilename), nil
}

// Load reads the configuration from path, applies environment overrides and validates it.
// An empty path means $KUBERNETES_MCP_SERVER_LAUNCHER_CONFIG or the default file; only
// the default file may be missing.
func Load(path string) (*Config, error) {
	optional := false

	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}

		path, optional = defaultPath, true
	}

	cfg, err := read(path, optional)
	if err != nil {
		return nil, err
	}

	if err = ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func read(path string, optional bool) (*Config, error) {
	var cfg Config

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand settings path: %w", err)
	}

	contents, err := os.ReadFile(filepath.Clean(expanded))
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	return &cfg, nil
}

// Save writes cfg to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(path), cache.DirMode); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	// Restrict permissions.
	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// ApplyEnv overrides cfg with the KUBERNETES_MCP_SERVER_LAUNCHER_* variables found by lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	fields := map[string]*string{
		"VERSION":    &cfg.Version,
		"CACHE_DIR":  &cfg.CacheDir,
		"BASE_URL":   &cfg.BaseURL,
		"SHA256":     &cfg.SHA256,
		"REPOSITORY": &cfg.Repository,
		"LOG_LEVEL":  &cfg.LogLevel,
	}

	for name, field := range fields {
		if value, ok := lookup(EnvPrefix + name); ok {
			*field = value
		}
	}

	if value, ok := lookup(EnvPrefix + "RESOLVE_LATEST"); ok {
		resolveLatest, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%sRESOLVE_LATEST: %w", EnvPrefix, err)
		}

		cfg.ResolveLatest = resolveLatest
	}

	return nil
}

// Validate fills defaults and checks the provided settings.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	cfg.Version = strings.TrimSpace(cfg.Version)
	if cfg.Version == "" {
		cfg.Version = version.Short()
	}

	if err := release.ValidateVersion(cfg.Version); err != nil {
		return err
	}

	if cfg.CacheDir == "" {
		root, err := cache.DefaultRoot()
		if err != nil {
			return err
		}

		cfg.CacheDir = root
	}

	expanded, err := homedir.Expand(cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("expand cache directory: %w", err)
	}

	cfg.CacheDir = expanded

	if cfg.BaseURL == "" {
		cfg.BaseURL = release.DefaultBaseURL
	}

	if err = release.ValidateBaseURL(cfg.BaseURL); err != nil {
		return err
	}

	if _, err = fetcher.ParseChecksum(cfg.SHA256); err != nil {
		return err
	}

	if cfg.Repository == "" {
		cfg.Repository = release.DefaultRepository
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %s", errUnknownLogLevel, cfg.LogLevel)
	}

	return nil
}
