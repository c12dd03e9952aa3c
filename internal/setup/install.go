package setup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/civo/action-civo/internal/actions"
	"github.com/civo/action-civo/internal/archive"
	"github.com/civo/action-civo/internal/platform"
	"github.com/civo/action-civo/internal/toolcache"
)

// Downloader is satisfied by *toolcache.Downloader
type Downloader interface {
	Download(ctx context.Context, url string) (string, error)
}

// Installer puts a given civo release into the tool cache and onto PATH
type Installer struct {
	core        *actions.Core
	cache       *toolcache.Cache
	downloader  Downloader
	platform    platform.Platform
	downloadURL string
	tool        string
}

// NewInstaller creates an installer for tool releases published under downloadURL
func NewInstaller(core *actions.Core, cache *toolcache.Cache, downloader Downloader, p platform.Platform, downloadURL, tool string) *Installer {
	return &Installer{
		core:        core,
		cache:       cache,
		downloader:  downloader,
		platform:    p,
		downloadURL: downloadURL,
		tool:        tool,
	}
}

// Install returns the directory holding the tool binary for version,
// downloading it on a cache miss, and adds that directory to PATH
func (i *Installer) Install(ctx context.Context, version string) (string, error) {
	path := i.cache.Find(i.tool, version)
	if path != "" {
		i.core.Debug("Found %s %s in tool cache: %s", i.tool, version, path)
	} else {
		var err error
		path, err = i.download(ctx, version)
		if err != nil {
			return "", err
		}
	}

	if err := i.core.AddPath(path); err != nil {
		return "", err
	}
	return path, nil
}

func (i *Installer) download(ctx context.Context, version string) (string, error) {
	url := i.platform.DownloadURL(i.downloadURL, i.tool, version)
	i.core.Info("Downloading %s", url)

	archivePath, err := i.downloader.Download(ctx, url)
	if err != nil {
		return "", err
	}
	workDir := filepath.Dir(archivePath)

	extractDir := filepath.Join(workDir, "extract")
	if err := archive.Extract(i.platform.Format(), archivePath, extractDir); err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", filepath.Base(archivePath), err)
	}

	binary := i.platform.BinaryName(i.tool)
	if info, err := os.Stat(filepath.Join(extractDir, binary)); err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s does not contain %s", filepath.Base(archivePath), binary)
	}

	path, err := i.cache.CacheDir(extractDir, i.tool, version, toolcache.Manifest{
		Platform: i.platform.String(),
		Source:   url,
	})
	if err != nil {
		return "", err
	}

	if err := os.RemoveAll(workDir); err != nil {
		i.core.Debug("Failed to remove %s: %v", workDir, err)
	}
	return path, nil
}
