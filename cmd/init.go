package cmd

import (
	"github.com/firefly-engineering/kitchen-puppet/internal/provisioner"
)

var initCmd = phaseCommand("init",
	"Print the command clearing previous state on the instance",
	`Prints the command removing modules, manifests and Hiera files left under
root_path and in the system Hiera locations, then recreating root_path.
Running it on a fresh instance is harmless.`,
	(*provisioner.Provisioner).InitCommand)

func init() {
	rootCmd.AddCommand(initCmd)
}
