package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Print the command of every phase in lifecycle order",
	Args:  cobra.NoArgs,
	RunE:  runCommands,
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}

func runCommands(cmd *cobra.Command, args []string) error {
	prov, err := loadProvisioner()
	if err != nil {
		return err
	}

	phases := prov.Commands()
	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, phases)
	}

	for i, phase := range phases {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "# %s\n%s\n", phase.Name, phase.Command)
	}
	return nil
}
