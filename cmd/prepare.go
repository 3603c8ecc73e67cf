package cmd

import (
	"github.com/firefly-engineering/kitchen-puppet/internal/provisioner"
)

var prepareCmd = phaseCommand("prepare",
	"Print the command putting Hiera files in place",
	`Prints the command copying the staged hiera.yaml to /etc and /etc/puppet and
the staged Hiera data to /var/lib. Prints an empty line when the project has
no Hiera files.`,
	(*provisioner.Provisioner).PrepareCommand)

func init() {
	rootCmd.AddCommand(prepareCmd)
}
