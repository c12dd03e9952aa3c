package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/civo/action-civo/internal/platform"
)

// Extract unpacks the archive at src into destDir using the strategy for format
func Extract(format platform.ArchiveFormat, src, destDir string) error {
	switch format {
	case platform.Zip:
		return ExtractZip(src, destDir)
	case platform.TarGz:
		return ExtractTarGz(src, destDir)
	default:
		return fmt.Errorf("unsupported archive format: %s", format)
	}
}

// ExtractZip extracts a zip file to the specified directory
func ExtractZip(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	for _, file := range reader.File {
		path, err := safeJoin(destDir, file.Name)
		if err != nil {
			return err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
			continue
		}

		fileReader, err := file.Open()
		if err != nil {
			return err
		}
		err = writeFile(path, fileReader, file.Mode())
		fileReader.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

// ExtractTarGz extracts a gzip-compressed tarball to the specified directory
func ExtractTarGz(tarPath, destDir string) error {
	f, err := os.Open(tarPath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar entry: %w", err)
		}

		path, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(path, tr, os.FileMode(hdr.Mode).Perm()); err != nil {
				return err
			}
		default:
			// links and devices are not part of civo release archives
			continue
		}
	}
}

func writeFile(path string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	destFile, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	_, err = io.Copy(destFile, r)
	closeErr := destFile.Close()
	if err != nil {
		return err
	}
	return closeErr
}

// safeJoin joins name onto destDir and rejects entries escaping it
func safeJoin(destDir, name string) (string, error) {
	path := filepath.Join(destDir, name)
	cleanDest := filepath.Clean(destDir)
	if path != cleanDest && !strings.HasPrefix(path, cleanDest+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes destination directory", name)
	}
	return path, nil
}
