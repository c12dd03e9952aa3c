package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// ArchiveFormat identifies how a release artifact is packed
type ArchiveFormat string

const (
	Zip   ArchiveFormat = "zip"
	TarGz ArchiveFormat = "tar.gz"
)

// Platform is the host operating system family a civo release is built for
type Platform string

const (
	Windows Platform = "windows"
	Darwin  Platform = "darwin"
	Linux   Platform = "linux"
)

// Arch is the only architecture civo publishes release archives for
const Arch = "amd64"

// Detect returns the platform for the running process
func Detect() Platform {
	return FromGOOS(runtime.GOOS)
}

// FromGOOS maps a GOOS value onto a Platform. Anything that is not windows
// or darwin is served the linux build.
func FromGOOS(goos string) Platform {
	switch goos {
	case "windows":
		return Windows
	case "darwin":
		return Darwin
	default:
		return Linux
	}
}

// Format returns the archive format releases for this platform are packed in
func (p Platform) Format() ArchiveFormat {
	if p == Windows {
		return Zip
	}
	return TarGz
}

// Suffix returns the os-arch part of the asset name, e.g. "linux-amd64"
func (p Platform) Suffix() string {
	return fmt.Sprintf("%s-%s", p, Arch)
}

// AssetName returns the release asset file name for the given normalized version
func (p Platform) AssetName(tool, version string) string {
	return fmt.Sprintf("%s-%s-%s.%s", tool, version, p.Suffix(), p.Format())
}

// DownloadURL builds <base>/v<version>/<tool>-<version>-<os>-amd64.<ext>
func (p Platform) DownloadURL(baseURL, tool, version string) string {
	return fmt.Sprintf("%s/v%s/%s", strings.TrimRight(baseURL, "/"), version, p.AssetName(tool, version))
}

// BinaryName returns the executable file name of a tool on this platform
func (p Platform) BinaryName(tool string) string {
	if p == Windows {
		return tool + ".exe"
	}
	return tool
}

func (p Platform) String() string {
	return string(p)
}
