package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/civo/action-civo/internal/actions"
	"github.com/civo/action-civo/internal/config"
	"github.com/civo/action-civo/internal/setup"
)

var (
	// Inputs resolved from flags and the runner environment
	settings = viper.New()

	version = "dev" // This will be set during build
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "setup-civo",
	Short: "Install the civo CLI and log it in, for use in CI pipelines",
	Long: `setup-civo installs the civo command-line tool into the tool cache, adds it to
PATH and registers an API token with it so later steps can call civo directly.

Inputs are read from flags or, inside GitHub Actions, from the step inputs
(INPUT_VERSION, INPUT_TOKEN).

Examples:
  setup-civo --token $CIVO_TOKEN
  setup-civo --version v1.0.41 --token $CIVO_TOKEN`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE:          runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	core := actions.New(cmd.OutOrStdout())

	in, err := config.Load(settings)
	if err != nil {
		core.SetFailed(err)
		return reportedError{err}
	}

	if _, err := setup.FromInputs(core, in, userAgent()).Run(cmd.Context(), in); err != nil {
		core.SetFailed(err)
		return reportedError{err}
	}
	return nil
}

// reportedError marks an error already surfaced as the step failure
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

func userAgent() string {
	return fmt.Sprintf("setup-civo/%s", version)
}

func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	if err := config.Bind(settings, rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}

	// Add version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of setup-civo",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "setup-civo v%s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)
}
