package maintenance

import (
	"context"
	"crypto"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/config"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/launcher"

	// Ensure SHA256 available for checksum calculation.
	_ "crypto/sha256"
)

// ChecksumFunction matches the digest accepted by the sha256 setting.
const ChecksumFunction crypto.Hash = crypto.SHA256

var (
	// ErrNotCached is returned when a requested artifact or version is not in the cache.
	ErrNotCached = errors.New("not cached")

	errHashUnavailable = errors.New("hash function unavailable")
)

// Checksum writes "<hex digest>  <path>" lines for the cached artifacts of
// version, or of every cached version when version is empty.
func Checksum(_ context.Context, w io.Writer, cfg *config.Config, version string) error {
	store := launcher.NewStore(cfg, nil)

	versions := []string{version}
	if version == "" {
		var err error

		versions, err = store.Versions()
		if err != nil {
			return err
		}
	}

	written := 0

	for _, v := range versions {
		artifacts, err := store.Artifacts(v)
		if err != nil {
			return err
		}

		for _, artifact := range artifacts {
			path := store.Path(v, artifact)

			sum, err := FileChecksum(path)
			if err != nil {
				return err
			}

			if _, err = fmt.Fprintf(w, "%x  %s\n", sum, path); err != nil {
				return err
			}

			written++
		}
	}

	if written == 0 {
		return fmt.Errorf("%s %s: %w", store.Root(), version, ErrNotCached)
	}

	return nil
}

// FileChecksum returns the ChecksumFunction digest of a file.
func FileChecksum(path string) ([]byte, error) {
	if !ChecksumFunction.Available() {
		return nil, fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = file.Close()
	}()

	hasher := ChecksumFunction.New()
	if _, err = io.Copy(hasher, file); err != nil {
		return nil, fmt.Errorf("calculate checksum: %w", err)
	}

	return hasher.Sum(nil), nil
}
