package app

import (
	"path/filepath"

	"github.com/firefly-engineering/kitchen-puppet/internal/config"
	"github.com/firefly-engineering/kitchen-puppet/internal/librarian"
	"github.com/firefly-engineering/kitchen-puppet/internal/logging"
	"github.com/firefly-engineering/kitchen-puppet/internal/provisioner"
	"github.com/firefly-engineering/kitchen-puppet/internal/sandbox"
	"github.com/firefly-engineering/kitchen-puppet/internal/system"
)

// ConfigFiles are the project files searched, in order, when no config file is given.
var ConfigFiles = []string{".kitchen.yml", ".kitchen.yaml", ".kitchen.toml"}

// App holds the application dependencies
type App struct {
	// FS is the local filesystem used for staging
	FS system.FileSystem

	// Executor runs external tools
	Executor system.CommandExecutor

	// Resolver resolves Puppetfile dependencies
	Resolver librarian.Resolver

	// Allocator creates sandbox directories
	Allocator sandbox.Allocator
}

// Option is a function that configures the App
type Option func(*App)

// WithFileSystem sets a custom filesystem
func WithFileSystem(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// WithResolver sets a custom Puppetfile resolver
func WithResolver(r librarian.Resolver) Option {
	return func(a *App) {
		a.Resolver = r
	}
}

// WithAllocator sets a custom sandbox allocator
func WithAllocator(alloc sandbox.Allocator) Option {
	return func(a *App) {
		a.Allocator = alloc
	}
}

// New creates a new App with the given options.
// If no resolver is provided, librarian-puppet is run through the executor.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.Executor == nil {
		app.Executor = system.DefaultExecutor()
	}
	if app.Resolver == nil {
		app.Resolver = librarian.NewCLIResolver(app.Executor)
	}
	if app.Allocator == nil {
		app.Allocator = sandbox.Allocate
	}

	return app
}

// LoadConfig reads the configuration and runs the resolution pass.
// An explicit path wins; otherwise the first of ConfigFiles found in the
// kitchen root is read, and defaults are used when there is none.
// A non-empty kitchenRoot overrides the one from the file.
func (a *App) LoadConfig(path, kitchenRoot string) (*config.Config, error) {
	if path == "" {
		path = a.findConfigFile(kitchenRoot)
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadFile(a.FS, path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if kitchenRoot != "" {
		cfg.KitchenRoot = kitchenRoot
	}

	return config.Resolve(cfg, a.FS)
}

func (a *App) findConfigFile(kitchenRoot string) string {
	dir := kitchenRoot
	if dir == "" {
		dir = "."
	}
	for _, name := range ConfigFiles {
		candidate := filepath.Join(dir, name)
		if a.FS.IsFile(candidate) {
			logging.Debug("using config file", "path", candidate)
			return candidate
		}
	}
	logging.Debug("no config file found, using defaults", "dir", dir)
	return ""
}

// Provisioner creates a provisioning session using the app's dependencies.
// Extra options are applied after the app's own.
func (a *App) Provisioner(cfg *config.Config, opts ...provisioner.Option) (*provisioner.Provisioner, error) {
	base := []provisioner.Option{
		provisioner.WithFileSystem(a.FS),
		provisioner.WithResolver(a.Resolver),
		provisioner.WithAllocator(a.Allocator),
	}
	return provisioner.New(cfg, append(base, opts...)...)
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
