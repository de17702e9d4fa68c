package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/gofrs/flock"
	"github.com/mitchellh/go-homedir"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/logger"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/release"
)

const (
	// DirMode is used for the root and version directories.
	DirMode os.FileMode = 0o755

	// lockSuffix names the create-or-wait lock next to an artifact being fetched.
	lockSuffix = ".lock"

	// lockRetryDelay is how often a waiting launcher retries the lock.
	lockRetryDelay = 100 * time.Millisecond

	defaultDirName = ".kubernetes-mcp-server"
	binDirName     = "bin"
)

var errLockNotAcquired = errors.New("cache lock not acquired")

// Fetcher materializes the artifact found at url into dest.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// Store maps (version, artifact) to files under a root directory.
type Store struct {
	root    string
	baseURL string
	fetcher Fetcher
}

// Option customizes a Store.
type Option func(*Store)

// WithBaseURL overrides the release location artifacts are downloaded from.
func WithBaseURL(baseURL string) Option {
	return func(s *Store) {
		s.baseURL = baseURL
	}
}

// DefaultRoot returns ~/.kubernetes-mcp-server/bin.
func DefaultRoot() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, defaultDirName, binDirName), nil
}

// New creates a Store rooted at root. The fetcher may be nil for read-only use.
func New(root string, fetcher Fetcher, opts ...Option) *Store {
	s := &Store{
		root:    filepath.Clean(root),
		baseURL: release.DefaultBaseURL,
		fetcher: fetcher,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns where artifact of version is stored.
func (s *Store) Path(version, artifact string) string {
	return filepath.Join(s.root, version, artifact)
}

// Lookup reports whether artifact of version is cached. It never touches the network.
func (s *Store) Lookup(version, artifact string) (string, bool, error) {
	if err := release.ValidateVersion(version); err != nil {
		return "", false, err
	}

	dest := s.Path(version, artifact)

	found, err := exists(dest)
	if err != nil {
		return "", false, err
	}

	return dest, found, nil
}

// Ensure returns the path of artifact of version, downloading it on a cache miss.
// Concurrent callers for the same entry wait for each other instead of racing.
func (s *Store) Ensure(ctx context.Context, version, artifact string) (string, error) {
	dest, found, err := s.Lookup(version, artifact)
	if err != nil {
		return "", err
	}

	if found {
		logger.DebugKV(ctx, "Cache hit", "path", dest)
		return dest, nil
	}

	if s.fetcher == nil {
		return "", fmt.Errorf("%s is not cached and downloads are disabled", dest)
	}

	if err = os.MkdirAll(filepath.Dir(dest), DirMode); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}

	err = s.withLock(ctx, dest+lockSuffix, func() error {
		// Another launcher may have finished the download while this one waited.
		done, checkErr := exists(dest)
		if checkErr != nil || done {
			return checkErr
		}

		downloadURL, urlErr := release.DownloadURL(s.baseURL, version, artifact)
		if urlErr != nil {
			return urlErr
		}

		logger.InfoKV(ctx, "Downloading artifact", "artifact", artifact, "url", downloadURL)

		return s.fetcher.Fetch(ctx, downloadURL, dest)
	})
	if err != nil {
		return "", err
	}

	return dest, nil
}

// withLock runs fn while holding an exclusive advisory lock on lockPath.
func (s *Store) withLock(ctx context.Context, lockPath string, fn func() error) error {
	lock := flock.New(lockPath)

	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock %s: %w", lockPath, err)
	}

	if !locked {
		return fmt.Errorf("%s: %w", lockPath, errLockNotAcquired)
	}

	defer func() {
		_ = lock.Unlock()
	}()

	if err = fn(); err != nil {
		return err
	}

	// The artifact is committed, so late waiters find it without needing the lock file.
	_ = os.Remove(lockPath)

	return nil
}

// Versions lists cached versions, oldest first. Semantic versions are
// ordered by precedence; other names (latest, dev) follow alphabetically.
func (s *Store) Versions() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read cache root: %w", err)
	}

	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}

	SortVersions(versions)

	return versions, nil
}

// SortVersions orders versions the way Versions returns them.
func SortVersions(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		vi, errI := semver.NewVersion(versions[i])
		vj, errJ := semver.NewVersion(versions[j])

		switch {
		case errI == nil && errJ == nil:
			return vi.LessThan(vj)
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return versions[i] < versions[j]
		}
	})
}

// Artifacts lists the committed artifacts of version, skipping locks and staging files.
func (s *Store) Artifacts(version string) ([]string, error) {
	if err := release.ValidateVersion(version); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, version))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read version directory: %w", err)
	}

	artifacts := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasSuffix(name, lockSuffix) {
			continue
		}

		artifacts = append(artifacts, name)
	}

	sort.Strings(artifacts)

	return artifacts, nil
}

// Remove deletes every cached artifact of version.
func (s *Store) Remove(version string) error {
	if err := release.ValidateVersion(version); err != nil {
		return err
	}

	if err := os.RemoveAll(filepath.Join(s.root, version)); err != nil {
		return fmt.Errorf("remove version %s: %w", version, err)
	}

	return nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("check cached artifact %s: %w", path, err)
}
