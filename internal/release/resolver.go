package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-semver/semver"
)

// FallbackVersion is used when the latest release cannot be looked up.
// GitHub rate-limits anonymous API calls per IP and hosted runners share
// addresses, so this happens in practice.
const FallbackVersion = "0.6.0"

// LatestSentinel asks the resolver to look up the newest release
const LatestSentinel = "latest"

// LatestFetcher is satisfied by *Client
type LatestFetcher interface {
	LatestRelease(ctx context.Context, owner, repo string) (*Release, error)
}

// Resolution is the outcome of resolving a version input. Warning is set
// when the remote lookup failed and Version holds the fallback.
type Resolution struct {
	Version string
	Warning error
}

// Resolver turns a raw version input into a normalized version string
type Resolver struct {
	fetcher  LatestFetcher
	fallback string
}

// NewResolver creates a resolver backed by fetcher
func NewResolver(fetcher LatestFetcher) *Resolver {
	return &Resolver{fetcher: fetcher, fallback: FallbackVersion}
}

// IsLatest reports whether raw asks for the newest release
func IsLatest(raw string) bool {
	return raw == "" || strings.EqualFold(raw, LatestSentinel)
}

// Resolve returns the normalized version for raw. A failed remote lookup is
// never an error: the fallback version is returned with Warning set.
func (r *Resolver) Resolve(ctx context.Context, raw string) Resolution {
	version := strings.TrimSpace(raw)
	var warning error

	if IsLatest(version) {
		name, err := r.latest(ctx)
		if err != nil {
			warning = fmt.Errorf("%s\n\nFailed to retrieve latest version; falling back to: %s", err.Error(), r.fallback)
			name = r.fallback
		}
		version = name
	}

	return Resolution{Version: Normalize(version), Warning: warning}
}

func (r *Resolver) latest(ctx context.Context) (string, error) {
	rel, err := r.fetcher.LatestRelease(ctx, Owner, Repo)
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(rel.Name)
	if name == "" {
		name = strings.TrimSpace(rel.TagName)
	}
	if name == "" {
		return "", fmt.Errorf("latest release of %s/%s has no name", Owner, Repo)
	}
	return name, nil
}

// Normalize strips a single leading "v"
func Normalize(version string) string {
	return strings.TrimPrefix(version, "v")
}

// Validate checks that a normalized version is a semantic version
func Validate(version string) error {
	if _, err := semver.NewVersion(version); err != nil {
		return fmt.Errorf("invalid version %q: %w", version, err)
	}
	return nil
}
