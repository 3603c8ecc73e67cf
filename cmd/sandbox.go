package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"
)

var sandboxKeep bool

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Stage the project into a local sandbox",
	Long: `Stages modules, manifests and Hiera files into a fresh sandbox directory
and prints its path. When a Puppetfile exists in the kitchen root, modules are
resolved with librarian-puppet first.

With --keep=false the staged files are listed and the sandbox is removed.`,
	Args: cobra.NoArgs,
	RunE: runSandbox,
}

func init() {
	sandboxCmd.Flags().BoolVar(&sandboxKeep, "keep", true, "Keep the sandbox after staging")
	rootCmd.AddCommand(sandboxCmd)
}

type sandboxResult struct {
	Path  string   `json:"path"`
	Files []string `json:"files,omitempty"`
	Kept  bool     `json:"kept"`
}

func runSandbox(cmd *cobra.Command, args []string) error {
	prov, err := loadProvisioner()
	if err != nil {
		return err
	}

	if err := prov.CreateSandbox(context.Background()); err != nil {
		if cleanupErr := prov.CleanupSandbox(); cleanupErr != nil {
			logWarning("Failed to remove partial sandbox: %v", cleanupErr)
		}
		return err
	}

	result := sandboxResult{Path: prov.SandboxPath(), Kept: sandboxKeep}
	if !sandboxKeep {
		files, err := stagedFiles(result.Path)
		if err != nil {
			return err
		}
		result.Files = files
		if err := prov.CleanupSandbox(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, result)
	}

	for _, f := range result.Files {
		fmt.Fprintln(out, f)
	}
	if sandboxKeep {
		fmt.Fprintln(out, result.Path)
		logSuccess("Sandbox staged at %s", result.Path)
	} else {
		logInfo("Sandbox %s removed", result.Path)
	}
	return nil
}

// stagedFiles lists the files of a sandbox relative to its root.
func stagedFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sandbox: %w", err)
	}
	return files, nil
}
