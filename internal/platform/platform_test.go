package platform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromGOOS(t *testing.T) {
	tests := []struct {
		goos     string
		expected Platform
	}{
		{"windows", Windows},
		{"darwin", Darwin},
		{"linux", Linux},
		{"freebsd", Linux},
		{"", Linux},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromGOOS(tt.goos))
		})
	}
}

func TestDownloadURL(t *testing.T) {
	base := "https://github.com/civo/cli/releases/download"

	tests := []struct {
		name     string
		platform Platform
		suffix   string
	}{
		{"darwin", Darwin, "/v1.2.3/civo-1.2.3-darwin-amd64.tar.gz"},
		{"windows", Windows, "/v1.2.3/civo-1.2.3-windows-amd64.zip"},
		{"linux", Linux, "/v1.2.3/civo-1.2.3-linux-amd64.tar.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := tt.platform.DownloadURL(base, "civo", "1.2.3")
			assert.True(t, strings.HasPrefix(url, base), "unexpected prefix: %s", url)
			assert.True(t, strings.HasSuffix(url, tt.suffix), "unexpected suffix: %s", url)
		})
	}
}

func TestDownloadURL_TrailingSlash(t *testing.T) {
	url := Linux.DownloadURL("https://example.com/dl/", "civo", "1.0.0")
	assert.Equal(t, "https://example.com/dl/v1.0.0/civo-1.0.0-linux-amd64.tar.gz", url)
}

func TestFormatAndBinaryName(t *testing.T) {
	assert.Equal(t, Zip, Windows.Format())
	assert.Equal(t, TarGz, Darwin.Format())
	assert.Equal(t, TarGz, Linux.Format())

	assert.Equal(t, "civo.exe", Windows.BinaryName("civo"))
	assert.Equal(t, "civo", Linux.BinaryName("civo"))
}
