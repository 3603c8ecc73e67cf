package cmd

import (
	"github.com/firefly-engineering/kitchen-puppet/internal/provisioner"
)

var runCmd = phaseCommand("run",
	"Print the puppet apply command",
	`Prints the puppet apply invocation for the staged manifest, exporting
custom_facts as FACTER_ variables first.`,
	(*provisioner.Provisioner).RunCommand)

func init() {
	rootCmd.AddCommand(runCmd)
}
