package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/civo/action-civo/internal/civo"
	"github.com/civo/action-civo/internal/config"
	"github.com/civo/action-civo/internal/platform"
	"github.com/civo/action-civo/internal/release"
	"github.com/civo/action-civo/internal/toolcache"
)

// cacheCmd groups tool cache inspection commands
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the civo tool cache",
	Long: `Inspect civo releases previously installed into the tool cache.

Examples:
  setup-civo cache list
  setup-civo cache path v1.0.41 --tool-cache /opt/hostedtoolcache
  setup-civo cache show 1.0.41`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached civo versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := openCache()
		if err != nil {
			return err
		}

		versions, err := cache.Versions(civo.Tool)
		if err != nil {
			return fmt.Errorf("failed to read tool cache: %w", err)
		}

		if len(versions) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No cached %s versions in %s\n", civo.Tool, cache.Root())
			return nil
		}
		for _, v := range versions {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		return nil
	},
}

var cachePathCmd = &cobra.Command{
	Use:   "path <version>",
	Short: "Print the cached directory of a civo version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, v, err := lookupArgs(args)
		if err != nil {
			return err
		}

		dir := cache.Find(civo.Tool, v)
		if dir == "" {
			return fmt.Errorf("%s %s is not in the tool cache at %s", civo.Tool, v, cache.Root())
		}

		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

var cacheShowCmd = &cobra.Command{
	Use:   "show <version>",
	Short: "Print how a cached civo version was installed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, v, err := lookupArgs(args)
		if err != nil {
			return err
		}

		manifest, err := cache.Manifest(civo.Tool, v)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(manifest)
		if err != nil {
			return fmt.Errorf("failed to encode manifest: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

// lookupArgs opens the cache and normalizes the version argument. Anything
// that is not a semantic version is rejected before it reaches the
// filesystem.
func lookupArgs(args []string) (*toolcache.Cache, string, error) {
	v := release.Normalize(args[0])
	if err := release.Validate(v); err != nil {
		return nil, "", err
	}

	cache, err := openCache()
	if err != nil {
		return nil, "", err
	}
	return cache, v, nil
}

func openCache() (*toolcache.Cache, error) {
	root, err := config.ToolCacheDir(settings)
	if err != nil {
		return nil, err
	}
	return toolcache.New(root, toolcache.RunnerArch(platform.Arch)), nil
}

func init() {
	cacheCmd.AddCommand(cacheListCmd, cachePathCmd, cacheShowCmd)
	rootCmd.AddCommand(cacheCmd)
}
