package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/kitchen-puppet/internal/app"
	"github.com/firefly-engineering/kitchen-puppet/internal/errors"
	"github.com/firefly-engineering/kitchen-puppet/internal/sandbox"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup <path>",
	Short: "Remove a sandbox kept by the sandbox command",
	Args:  cobra.ExactArgs(1),
	RunE:  runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	path := filepath.Clean(args[0])

	// Only directories created by sandbox.Allocate are removed.
	if !strings.Contains(filepath.Base(path), "-sandbox-") {
		return errors.ValidationError(fmt.Sprintf("%s is not a sandbox directory", path))
	}
	fsys := app.Default.FS
	if !fsys.IsDir(path) {
		logInfo("Sandbox %s does not exist", path)
		return nil
	}

	if err := sandbox.NewStager(fsys).Remove(path); err != nil {
		return errors.SandboxFailed("cleanup", err)
	}
	logSuccess("Removed sandbox %s", path)
	return nil
}
