package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/kitchen-puppet/internal/app"
	"github.com/firefly-engineering/kitchen-puppet/internal/provisioner"
)

// loadProvisioner resolves the configuration and creates a session.
func loadProvisioner() (*provisioner.Provisioner, error) {
	cfg, err := app.Default.LoadConfig(configPath, kitchenRoot)
	if err != nil {
		return nil, err
	}
	return app.Default.Provisioner(cfg)
}

// printPhase writes a single phase command, as JSON when requested.
func printPhase(w io.Writer, name, command string) error {
	if jsonOutput {
		return writeJSON(w, provisioner.Phase{Name: name, Command: command})
	}
	_, err := fmt.Fprintln(w, command)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// phaseCommand builds a command printing one lifecycle phase.
func phaseCommand(name, short, long string, render func(*provisioner.Provisioner) string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prov, err := loadProvisioner()
			if err != nil {
				return err
			}
			return printPhase(cmd.OutOrStdout(), name, render(prov))
		},
	}
}
