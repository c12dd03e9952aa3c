package toolcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"
)

// Downloader fetches release archives over HTTP
type Downloader struct {
	tempDir   string
	userAgent string
	client    *http.Client
}

// NewDownloader creates a downloader that stores files under tempDir. An
// empty tempDir means the OS temp directory.
func NewDownloader(tempDir, userAgent string) *Downloader {
	return &Downloader{
		tempDir:   tempDir,
		userAgent: userAgent,
		client: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

// Download saves url into a fresh temporary directory and returns the file
// path. The caller owns the directory containing the file.
func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	if d.tempDir != "" {
		if err := os.MkdirAll(d.tempDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create temp directory: %w", err)
		}
	}

	tmpDir, err := os.MkdirTemp(d.tempDir, "setup-civo-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		os.RemoveAll(tmpDir)
		return "", fmt.Errorf("failed to create download request: %w", err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		os.RemoveAll(tmpDir)
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		os.RemoveAll(tmpDir)
		return "", fmt.Errorf("unexpected HTTP response: %d downloading %s", resp.StatusCode, url)
	}

	name := path.Base(req.URL.Path)
	if name == "" || name == "/" || name == "." {
		name = "download"
	}
	dest := filepath.Join(tmpDir, name)

	f, err := os.Create(dest)
	if err != nil {
		os.RemoveAll(tmpDir)
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}

	_, err = io.Copy(f, resp.Body)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.RemoveAll(tmpDir)
		return "", fmt.Errorf("failed to save %s: %w", url, err)
	}

	return dest, nil
}
