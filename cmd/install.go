package cmd

import (
	"github.com/firefly-engineering/kitchen-puppet/internal/provisioner"
)

var installCmd = phaseCommand("install",
	"Print the script installing puppet",
	`Prints the script that installs puppet from the Puppet Labs APT or YUM
repository when puppet is not on PATH. The package manager follows
puppet_platform; puppet_version pins the package.`,
	(*provisioner.Provisioner).InstallCommand)

func init() {
	rootCmd.AddCommand(installCmd)
}
