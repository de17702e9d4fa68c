package release

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/creativeprojects/go-selfupdate"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/domain/platform"
)

var errReleaseNotFound = errors.New("no release carries the artifact")

// LatestResolver finds the newest published release that ships an artifact
// for one platform.
type LatestResolver struct {
	updater    *selfupdate.Updater
	repository selfupdate.RepositorySlug
	artifact   string
}

// NewLatestResolver creates a resolver for the GitHub repository slug (owner/name).
// A nil source queries the GitHub API.
func NewLatestResolver(repository string, p platform.Platform, source selfupdate.Source) (*LatestResolver, error) {
	artifact, err := p.Artifact()
	if err != nil {
		return nil, err
	}

	slug := selfupdate.ParseSlug(repository)
	if _, _, err = slug.GetSlug(); err != nil {
		return nil, fmt.Errorf("repository %q: %w", repository, err)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:  source,
		OS:      p.OS,
		Arch:    p.Arch,
		Filters: []string{"^" + regexp.QuoteMeta(artifact) + "$"},
	})
	if err != nil {
		return nil, fmt.Errorf("create release detector: %w", err)
	}

	return &LatestResolver{
		updater:    updater,
		repository: slug,
		artifact:   artifact,
	}, nil
}

// Resolve returns the version of the newest release, without the "v" prefix.
func (r *LatestResolver) Resolve(ctx context.Context) (string, error) {
	rel, found, err := r.updater.DetectLatest(ctx, r.repository)
	if err != nil {
		return "", fmt.Errorf("detect latest release: %w", err)
	}

	if !found {
		return "", fmt.Errorf("%s: %w", r.artifact, errReleaseNotFound)
	}

	return rel.Version(), nil
}
