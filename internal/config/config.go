package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/civo/action-civo/internal/release"
)

const (
	DefaultDownloadURL = "https://github.com/civo/cli/releases/download"

	KeyVersion     = "version"
	KeyToken       = "token"
	KeyToolCache   = "tool-cache"
	KeyTempDir     = "temp-dir"
	KeyAPIURL      = "api-url"
	KeyDownloadURL = "download-url"
	KeyGitHubToken = "github-token"
)

// envBindings maps config keys onto the variables the Actions runner sets.
// Step inputs arrive as INPUT_<NAME>.
var envBindings = map[string]string{
	KeyVersion:     "INPUT_VERSION",
	KeyToken:       "INPUT_TOKEN",
	KeyToolCache:   "RUNNER_TOOL_CACHE",
	KeyTempDir:     "RUNNER_TEMP",
	KeyAPIURL:      "GITHUB_API_URL",
	KeyDownloadURL: "SETUP_CIVO_DOWNLOAD_URL",
	KeyGitHubToken: "GITHUB_TOKEN",
}

// Inputs is the resolved configuration of a setup run
type Inputs struct {
	Version     string
	Token       string
	ToolCache   string
	TempDir     string
	APIURL      string
	DownloadURL string
	GitHubToken string
}

// RegisterFlags adds the setup flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyVersion, release.LatestSentinel, "civo CLI version to install, or 'latest'")
	fs.String(KeyToken, "", "Civo API token to register with the CLI (required)")
	fs.String(KeyToolCache, "", "Tool cache directory (defaults to $RUNNER_TOOL_CACHE or ~/.cache/setup-civo/tool-cache)")
	fs.String(KeyTempDir, "", "Directory for downloads (defaults to $RUNNER_TEMP or the OS temp dir)")
	fs.String(KeyAPIURL, release.DefaultAPIURL, "GitHub API URL used to look up the latest release")
	fs.String(KeyDownloadURL, DefaultDownloadURL, "Base URL civo release archives are downloaded from")
}

// Bind wires the flags in fs and the runner environment into v
func Bind(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if _, known := envBindings[f.Name]; !known || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(f.Name, f)
	})
	return bindErr
}

// Load reads the inputs out of v. Missing required inputs fail immediately.
func Load(v *viper.Viper) (*Inputs, error) {
	in := &Inputs{
		Version:     strings.TrimSpace(v.GetString(KeyVersion)),
		Token:       strings.TrimSpace(v.GetString(KeyToken)),
		TempDir:     strings.TrimSpace(v.GetString(KeyTempDir)),
		APIURL:      strings.TrimSpace(v.GetString(KeyAPIURL)),
		DownloadURL: strings.TrimSpace(v.GetString(KeyDownloadURL)),
		GitHubToken: strings.TrimSpace(v.GetString(KeyGitHubToken)),
	}

	if in.Token == "" {
		return nil, fmt.Errorf("input required and not supplied: %s", KeyToken)
	}

	if in.APIURL == "" {
		in.APIURL = release.DefaultAPIURL
	}
	if in.DownloadURL == "" {
		in.DownloadURL = DefaultDownloadURL
	}

	dir, err := ToolCacheDir(v)
	if err != nil {
		return nil, err
	}
	in.ToolCache = dir

	return in, nil
}

// ToolCacheDir returns the configured tool cache root, falling back to
// DefaultToolCache
func ToolCacheDir(v *viper.Viper) (string, error) {
	if dir := strings.TrimSpace(v.GetString(KeyToolCache)); dir != "" {
		return dir, nil
	}
	return DefaultToolCache()
}

// DefaultToolCache is the cache location used outside of a runner
func DefaultToolCache() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".cache", "setup-civo", "tool-cache"), nil
}
