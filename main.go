package main

import (
	"os"

	"github.com/firefly-engineering/kitchen-puppet/cmd"
	"github.com/firefly-engineering/kitchen-puppet/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
