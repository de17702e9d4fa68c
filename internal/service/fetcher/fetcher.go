package fetcher

import (
	"context"
	"crypto"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/logger"

	// Ensure SHA256 is available for checksum verification.
	_ "crypto/sha256"
)

const (
	// ExecutableMode is the mode staged artifacts are written with.
	ExecutableMode os.FileMode = 0o755

	// executeBits is added to the committed artifact for owner, group and other.
	executeBits os.FileMode = 0o111

	// DefaultMaxSize caps a downloaded artifact. go-update reads the whole body
	// into memory before writing it, so the cap also bounds memory use.
	DefaultMaxSize int64 = 512 << 20

	stagingPattern = ".%s.tmp-*"
)

var (
	// ErrDownloadFailed wraps every network, HTTP status and filesystem failure.
	ErrDownloadFailed = errors.New("download failed")

	errBadHTTPStatus   = errors.New("unexpected http status")
	errInvalidChecksum = errors.New("invalid sha256 checksum")
	errTooLarge        = errors.New("artifact exceeds size limit")
)

// Fetcher downloads artifacts over HTTP.
type Fetcher struct {
	client   *http.Client
	checksum []byte
	maxSize  int64
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithChecksum makes Fetch reject bodies whose SHA-256 differs from checksum.
func WithChecksum(checksum []byte) Option {
	return func(f *Fetcher) {
		f.checksum = checksum
	}
}

// WithMaxSize overrides DefaultMaxSize.
func WithMaxSize(maxSize int64) Option {
	return func(f *Fetcher) {
		f.maxSize = maxSize
	}
}

// ParseChecksum decodes a hex SHA-256 digest. An empty string means no verification.
func ParseChecksum(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	checksum, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidChecksum, err)
	}

	if len(checksum) != crypto.SHA256.Size() {
		return nil, fmt.Errorf("%w: %d bytes", errInvalidChecksum, len(checksum))
	}

	return checksum, nil
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  http.DefaultClient,
		maxSize: DefaultMaxSize,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch downloads url into dest and marks it executable.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) error {
	if err := f.fetch(ctx, url, dest); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDownloadFailed, url, err)
	}

	return nil
}

func (f *Fetcher) fetch(ctx context.Context, url, dest string) error {
	dir, name := filepath.Split(dest)

	staging, err := os.CreateTemp(dir, fmt.Sprintf(stagingPattern, name))
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}

	stagingName := staging.Name()
	committed := false

	defer func() {
		if !committed {
			removeStaging(stagingName)
		}
	}()

	if err = staging.Close(); err != nil {
		return fmt.Errorf("close staging file: %w", err)
	}

	response, err := f.get(ctx, url)
	if response != nil {
		defer func() {
			_ = response.Body.Close()
		}()
	}

	if err != nil {
		return err
	}

	if response.ContentLength > f.maxSize {
		return fmt.Errorf("%w: %d > %d bytes", errTooLarge, response.ContentLength, f.maxSize)
	}

	logger.DebugKV(ctx, "Applying download", "staging", stagingName, "bytes", response.ContentLength)

	options := goupdate.Options{
		TargetPath: stagingName,
		TargetMode: ExecutableMode,
		Checksum:   f.checksum,
		Hash:       crypto.SHA256,
	}

	body := &limitedReader{r: response.Body, remaining: f.maxSize}

	if err = goupdate.Apply(body, options); err != nil {
		if rerr := goupdate.RollbackError(err); rerr != nil {
			return fmt.Errorf("write staging file: %w (rollback: %w)", err, rerr)
		}

		return fmt.Errorf("write staging file: %w", err)
	}

	// Rename is the commit point: before it nothing exists at dest.
	if err = os.Rename(stagingName, dest); err != nil {
		return fmt.Errorf("move into cache: %w", err)
	}

	committed = true

	if err = markExecutable(dest); err != nil {
		_ = os.Remove(dest)
		return err
	}

	return nil
}

// get performs the GET request and rejects non-2xx responses.
func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}

	response, err := f.client.Do(req)
	if err != nil {
		return response, err
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return response, fmt.Errorf("%s: %w", response.Status, errBadHTTPStatus)
	}

	return response, nil
}

// markExecutable adds the execute bits to the current mode of path.
func markExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat artifact: %w", err)
	}

	if err = os.Chmod(path, info.Mode()|executeBits); err != nil {
		return fmt.Errorf("mark artifact executable: %w", err)
	}

	return nil
}

// removeStaging deletes the staging file and the siblings go-update creates next to it.
func removeStaging(stagingName string) {
	dir, name := filepath.Split(stagingName)

	for _, path := range []string{
		stagingName,
		filepath.Join(dir, "."+name+".new"),
		filepath.Join(dir, "."+name+".old"),
	} {
		_ = os.Remove(path)
	}
}

// limitedReader fails once more than remaining bytes were read, unlike
// io.LimitReader, which would silently truncate the artifact.
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, errTooLarge
	}

	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}

	n, err := l.r.Read(p)
	l.remaining -= int64(n)

	if l.remaining < 0 {
		return n, errTooLarge
	}

	return n, err
}
