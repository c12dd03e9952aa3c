package release

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	release *Release
	err     error
	calls   int
}

func (f *fakeFetcher) LatestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.release, nil
}

func TestResolve_LatestSentinels(t *testing.T) {
	for _, input := range []string{"latest", "LATEST", "Latest", ""} {
		t.Run("input="+input, func(t *testing.T) {
			fetcher := &fakeFetcher{release: &Release{Name: "v1.0.41"}}
			res := NewResolver(fetcher).Resolve(context.Background(), input)

			assert.Equal(t, 1, fetcher.calls, "remote lookup should be attempted")
			assert.Equal(t, "1.0.41", res.Version)
			assert.NoError(t, res.Warning)
		})
	}
}

func TestResolve_ExplicitVersions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"v1.2.3", "1.2.3"},
		{"1.2.3", "1.2.3"},
		{"vv1.2.3", "v1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			fetcher := &fakeFetcher{}
			res := NewResolver(fetcher).Resolve(context.Background(), tt.input)

			assert.Equal(t, 0, fetcher.calls)
			assert.Equal(t, tt.expected, res.Version)
			assert.NoError(t, res.Warning)
		})
	}
}

func TestResolve_FallbackOnFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("API rate limit exceeded")}
	res := NewResolver(fetcher).Resolve(context.Background(), "latest")

	assert.Equal(t, FallbackVersion, res.Version)
	require.Error(t, res.Warning)
	assert.Contains(t, res.Warning.Error(), "API rate limit exceeded")
	assert.Contains(t, res.Warning.Error(), "falling back to: "+FallbackVersion)
}

func TestResolve_TagNameWhenUnnamed(t *testing.T) {
	fetcher := &fakeFetcher{release: &Release{TagName: "v1.1.0"}}
	res := NewResolver(fetcher).Resolve(context.Background(), "latest")

	assert.Equal(t, "1.1.0", res.Version)
	assert.NoError(t, res.Warning)
}

func TestResolve_EmptyReleaseFallsBack(t *testing.T) {
	fetcher := &fakeFetcher{release: &Release{}}
	res := NewResolver(fetcher).Resolve(context.Background(), "")

	assert.Equal(t, FallbackVersion, res.Version)
	assert.Error(t, res.Warning)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("1.0.0"))
	assert.NoError(t, Validate("1.0.41-beta.1"))
	assert.Error(t, Validate("latest"))
	assert.Error(t, Validate("1.0"))
}

func TestLatestRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/civo/cli/releases/latest", r.URL.Path)
		assert.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": 42, "name": "v1.0.41", "tag_name": "v1.0.41", "draft": false}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "gh-token")
	rel, err := client.LatestRelease(context.Background(), Owner, Repo)
	require.NoError(t, err)

	assert.Equal(t, "v1.0.41", rel.Name)
	assert.Equal(t, "v1.0.41", rel.TagName)
}

func TestLatestRelease_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "API rate limit exceeded for 1.2.3.4."}`))
	}))
	defer server.Close()

	res := NewResolver(NewClient(server.URL, "")).Resolve(context.Background(), "latest")

	assert.Equal(t, FallbackVersion, res.Version)
	require.Error(t, res.Warning)
	assert.Contains(t, res.Warning.Error(), "status 403")
	assert.Contains(t, res.Warning.Error(), "API rate limit exceeded")
}

func TestLatestRelease_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "").LatestRelease(context.Background(), Owner, Repo)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
