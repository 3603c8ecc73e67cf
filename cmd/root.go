package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/kitchen-puppet/internal/errors"
	"github.com/firefly-engineering/kitchen-puppet/internal/logging"
)

var (
	verbose     bool
	jsonOutput  bool
	configPath  string
	kitchenRoot string
)

var rootCmd = &cobra.Command{
	Use:   "kitchen-puppet",
	Short: "Puppet apply provisioner for kitchen test instances",
	Long: `kitchen-puppet stages a Puppet project into a sandbox and prints the shell
commands that provision an instance with puppet apply.

The lifecycle of an instance is:
  init      clear previous state under root_path
  install   install puppet when it is missing
  sandbox   stage modules, manifests and Hiera files for transfer
  prepare   put Hiera config and data in place
  run       run puppet apply

Configuration is read from --config, or from .kitchen.yml, .kitchen.yaml or
.kitchen.toml in the kitchen root. A provisioner section is used when present.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, logging.Stderr)
	},
}

// Execute runs the command line and logs a failure with its exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.Error("command failed", "error", err, "exit_code", errors.GetExitCode(err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs and results in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&kitchenRoot, "kitchen-root", "", "Project root (default: the config file directory or the working directory)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
