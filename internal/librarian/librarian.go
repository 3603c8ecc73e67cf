package librarian

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	shellquote "github.com/kballard/go-shellquote"
	"golang.org/x/sync/semaphore"

	"github.com/firefly-engineering/kitchen-puppet/internal/errors"
	"github.com/firefly-engineering/kitchen-puppet/internal/logging"
	"github.com/firefly-engineering/kitchen-puppet/internal/system"
)

// DefaultBinary is the librarian-puppet executable looked up on PATH.
const DefaultBinary = "librarian-puppet"

// Resolver installs the modules a Puppetfile declares into modulesDir.
type Resolver interface {
	Resolve(ctx context.Context, puppetfile, modulesDir string) error
}

// Checker is implemented by resolvers with prerequisites that can be
// verified before any work is done.
type Checker interface {
	Check() error
}

// resolveLock serializes Puppetfile resolution across all sessions in the process.
var resolveLock = semaphore.NewWeighted(1)

// Lock acquires the process-wide resolution lock. The returned release
// function is safe to call more than once.
func Lock(ctx context.Context) (release func(), err error) {
	if err := resolveLock.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for librarian lock: %w", err)
	}
	var once sync.Once
	return func() { once.Do(func() { resolveLock.Release(1) }) }, nil
}

// CLIResolver runs librarian-puppet through a CommandExecutor.
type CLIResolver struct {
	Executor system.CommandExecutor
	Binary   string
}

// NewCLIResolver returns a resolver using exec, or the default executor when nil.
func NewCLIResolver(exec system.CommandExecutor) *CLIResolver {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &CLIResolver{Executor: exec, Binary: DefaultBinary}
}

func (r *CLIResolver) binary() string {
	if r.Binary == "" {
		return DefaultBinary
	}
	return r.Binary
}

// Check verifies that librarian-puppet can be found.
func (r *CLIResolver) Check() error {
	path, err := r.Executor.LookPath(r.binary())
	if err != nil {
		return errors.ResolveFailed(fmt.Errorf("could not find %s, install it to use a Puppetfile: %w", r.binary(), err))
	}
	logging.Debug("found librarian", "path", path)
	return nil
}

// Command returns the shell text that installs the modules of puppetfile into modulesDir.
// librarian-puppet reads the Puppetfile from its working directory.
func (r *CLIResolver) Command(puppetfile, modulesDir string) string {
	cd := shellquote.Join("cd", filepath.Dir(puppetfile))
	install := shellquote.Join(r.binary(), "install", "--path", modulesDir)
	return cd + " && " + install
}

// Resolve runs librarian-puppet. Its output is included in the error on failure.
func (r *CLIResolver) Resolve(ctx context.Context, puppetfile, modulesDir string) error {
	script := r.Command(puppetfile, modulesDir)
	logging.Info("resolving with librarian-puppet", "puppetfile", puppetfile, "path", modulesDir)
	logging.Debug("running librarian", "command", script)

	output, err := r.Executor.Execute(ctx, "sh", "-c", script)
	if err != nil {
		return errors.ResolveFailed(fmt.Errorf("%s install: %s: %w", r.binary(), strings.TrimSpace(string(output)), err))
	}
	return nil
}

var (
	_ Resolver = (*CLIResolver)(nil)
	_ Checker  = (*CLIResolver)(nil)
)
