package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civo/action-civo/internal/platform"
	"github.com/civo/action-civo/internal/toolcache"
)

// executeCommand executes a cobra command and captures its output
func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (output string, err error) {
	t.Helper()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	defer func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	}()

	cmd.SetArgs(args)
	err = cmd.Execute()

	return buf.String(), err
}

func seedCache(t *testing.T, root string, versions ...string) {
	t.Helper()
	cache := toolcache.New(root, toolcache.RunnerArch(platform.Arch))
	for _, v := range versions {
		src := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(src, "civo"), []byte(v), 0755))
		_, err := cache.CacheDir(src, "civo", v, toolcache.Manifest{
			Platform: "linux",
			Source:   "https://example.com/v" + v + "/civo.tar.gz",
		})
		require.NoError(t, err)
	}
}

func TestRootCommand(t *testing.T) {
	cacheRoot := t.TempDir()
	seedCache(t, cacheRoot, "1.0.41", "0.6.0")

	tests := []struct {
		name                 string
		args                 []string
		expectError          bool
		expectOutputContains string
		expectErrorContains  string
	}{
		{
			name:                 "Version command",
			args:                 []string{"version"},
			expectOutputContains: "setup-civo v",
		},
		{
			name:                 "Missing token fails the step",
			args:                 []string{"--token", "", "--tool-cache", cacheRoot},
			expectError:          true,
			expectOutputContains: "::error::input required and not supplied: token",
			expectErrorContains:  "input required and not supplied: token",
		},
		{
			name:                 "Cache list",
			args:                 []string{"cache", "list", "--tool-cache", cacheRoot},
			expectOutputContains: "0.6.0\n1.0.41\n",
		},
		{
			name:                 "Cache path strips v prefix",
			args:                 []string{"cache", "path", "v1.0.41", "--tool-cache", cacheRoot},
			expectOutputContains: filepath.Join(cacheRoot, "civo", "1.0.41", "x64"),
		},
		{
			name:                "Cache path rejects non-versions",
			args:                []string{"cache", "path", "../../etc", "--tool-cache", cacheRoot},
			expectError:         true,
			expectErrorContains: `invalid version "../../etc"`,
		},
		{
			name:                 "Cache show prints the manifest",
			args:                 []string{"cache", "show", "v0.6.0", "--tool-cache", cacheRoot},
			expectOutputContains: "version: 0.6.0\narch: x64\nplatform: linux\n",
		},
		{
			name:                "Cache show miss",
			args:                []string{"cache", "show", "9.9.9", "--tool-cache", cacheRoot},
			expectError:         true,
			expectErrorContains: "civo 9.9.9 is not in the tool cache",
		},
		{
			name:                "Cache path miss",
			args:                []string{"cache", "path", "9.9.9", "--tool-cache", cacheRoot},
			expectError:         true,
			expectErrorContains: "civo 9.9.9 is not in the tool cache",
		},
		{
			name:                "Unexpected argument",
			args:                []string{"extra", "--token", "t"},
			expectError:         true,
			expectErrorContains: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_ACTIONS", "true")
			t.Setenv("INPUT_TOKEN", "")
			t.Setenv("INPUT_VERSION", "")
			t.Setenv("RUNNER_TOOL_CACHE", "")

			output, err := executeCommand(t, rootCmd, tt.args...)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectErrorContains)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectOutputContains != "" {
				assert.Contains(t, output, tt.expectOutputContains)
			}
		})
	}
}

func TestCacheList_Empty(t *testing.T) {
	root := t.TempDir()

	output, err := executeCommand(t, rootCmd, "cache", "list", "--tool-cache", root)

	require.NoError(t, err)
	assert.Contains(t, output, "No cached civo versions in "+root)
}
