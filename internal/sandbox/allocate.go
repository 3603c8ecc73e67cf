package sandbox

import (
	"fmt"
	"os"

	"github.com/firefly-engineering/kitchen-puppet/internal/logging"
)

// DirMode is the mode of the sandbox root and every directory staged into it.
const DirMode os.FileMode = 0755

// Allocator creates an empty sandbox directory for an instance.
type Allocator func(instanceName string) (string, error)

// Allocate creates a fresh sandbox directory named after the instance.
func Allocate(instanceName string) (string, error) {
	if instanceName == "" {
		instanceName = "kitchen"
	}

	dir, err := os.MkdirTemp("", instanceName+"-sandbox-")
	if err != nil {
		return "", fmt.Errorf("failed to create sandbox directory: %w", err)
	}
	if err := os.Chmod(dir, DirMode); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("failed to set sandbox permissions: %w", err)
	}

	logging.Debug("allocated sandbox", "instance", instanceName, "path", dir)
	return dir, nil
}
