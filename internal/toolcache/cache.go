// Package toolcache stores extracted tool releases in the directory layout
// used by the GitHub Actions runner tool cache:
//
//	<root>/<tool>/<version>/<arch>/
//	<root>/<tool>/<version>/<arch>.complete
//
// An entry counts as present only once its .complete marker exists.
package toolcache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/coreos/go-semver/semver"
	cp "github.com/otiai10/copy"
	"gopkg.in/yaml.v3"
)

// manifestFile is written into every cache entry
const manifestFile = ".setup-civo.yaml"

// Manifest describes how a cache entry was produced
type Manifest struct {
	Tool        string    `yaml:"tool"`
	Version     string    `yaml:"version"`
	Arch        string    `yaml:"arch"`
	Platform    string    `yaml:"platform,omitempty"`
	Source      string    `yaml:"source,omitempty"`
	InstalledAt time.Time `yaml:"installed_at"`
}

// Cache is a tool cache rooted at a directory
type Cache struct {
	root string
	arch string
}

// New creates a cache rooted at root for entries of the given architecture
func New(root, arch string) *Cache {
	return &Cache{root: root, arch: arch}
}

// Root returns the cache root directory
func (c *Cache) Root() string {
	return c.root
}

func (c *Cache) entryDir(tool, version string) string {
	return filepath.Join(c.root, tool, version, c.arch)
}

func (c *Cache) markerPath(tool, version string) string {
	return filepath.Join(c.root, tool, version, c.arch+".complete")
}

// Find returns the directory of a complete cache entry for (tool, version),
// or "" when there is none
func (c *Cache) Find(tool, version string) string {
	if tool == "" || version == "" {
		return ""
	}

	dir := c.entryDir(tool, version)
	if _, err := os.Stat(c.markerPath(tool, version)); err != nil {
		return ""
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return ""
	}
	return dir
}

// CacheDir copies the contents of srcDir into the cache under
// (tool, version) and returns the cache-managed directory
func (c *Cache) CacheDir(srcDir, tool, version string, manifest Manifest) (string, error) {
	info, err := os.Stat(srcDir)
	if err != nil {
		return "", fmt.Errorf("cannot access %s: %w", srcDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", srcDir)
	}

	dest := c.entryDir(tool, version)
	marker := c.markerPath(tool, version)

	// a leftover entry without its marker is a previous failed attempt
	if err := os.RemoveAll(dest); err != nil {
		return "", fmt.Errorf("failed to clear %s: %w", dest, err)
	}
	if err := os.Remove(marker); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to clear %s: %w", marker, err)
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dest, err)
	}

	if err := cp.Copy(srcDir, dest); err != nil {
		return "", fmt.Errorf("failed to copy %s into tool cache: %w", srcDir, err)
	}

	manifest.Tool = tool
	manifest.Version = version
	manifest.Arch = c.arch
	if manifest.InstalledAt.IsZero() {
		manifest.InstalledAt = time.Now().UTC()
	}
	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dest, manifestFile), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	if err := os.WriteFile(marker, nil, 0644); err != nil {
		return "", fmt.Errorf("failed to mark cache entry complete: %w", err)
	}

	return dest, nil
}

// Manifest reads the manifest of a complete cache entry
func (c *Cache) Manifest(tool, version string) (*Manifest, error) {
	dir := c.Find(tool, version)
	if dir == "" {
		return nil, fmt.Errorf("%s %s is not in the tool cache", tool, version)
	}

	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest in %s: %w", dir, err)
	}
	return &m, nil
}

// Versions lists the complete cached versions of tool in ascending semver
// order. Directories that are not semantic versions are skipped.
func (c *Cache) Versions(tool string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(c.root, tool))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var versions []*semver.Version
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := semver.NewVersion(e.Name())
		if err != nil {
			continue
		}
		if c.Find(tool, e.Name()) == "" {
			continue
		}
		versions = append(versions, v)
	}
	sort.Sort(semver.Versions(versions))

	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.String()
	}
	return out, nil
}

// RunnerArch maps a GOARCH value to the architecture names the Actions
// runner uses for tool cache directories
func RunnerArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "386":
		return "x32"
	default:
		return goarch
	}
}
