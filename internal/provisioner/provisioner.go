package provisioner

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/firefly-engineering/kitchen-puppet/internal/config"
	"github.com/firefly-engineering/kitchen-puppet/internal/errors"
	"github.com/firefly-engineering/kitchen-puppet/internal/librarian"
	"github.com/firefly-engineering/kitchen-puppet/internal/logging"
	"github.com/firefly-engineering/kitchen-puppet/internal/sandbox"
	"github.com/firefly-engineering/kitchen-puppet/internal/system"
)

// PreStageHook runs after the sandbox is allocated and before any file is staged.
type PreStageHook func(ctx context.Context, sandboxPath string) error

// Provisioner is one provisioning session for an instance.
type Provisioner struct {
	cfg       *config.Config
	fs        system.FileSystem
	stager    *sandbox.Stager
	resolver  librarian.Resolver
	allocate  sandbox.Allocator
	preStage  PreStageHook
	log       *slog.Logger
	sessionID string

	sandboxPath string
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithFileSystem stages files through fs.
func WithFileSystem(fs system.FileSystem) Option {
	return func(p *Provisioner) {
		p.fs = fs
	}
}

// WithResolver sets the Puppetfile resolver.
func WithResolver(r librarian.Resolver) Option {
	return func(p *Provisioner) {
		p.resolver = r
	}
}

// WithAllocator sets how sandbox directories are created.
func WithAllocator(a sandbox.Allocator) Option {
	return func(p *Provisioner) {
		p.allocate = a
	}
}

// WithPreStageHook sets a hook run before staging.
func WithPreStageHook(h PreStageHook) Option {
	return func(p *Provisioner) {
		p.preStage = h
	}
}

// WithLogger sets the base logger. The session attributes are added to it.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provisioner) {
		p.log = l
	}
}

// New creates a session for a configuration returned by config.Resolve.
func New(cfg *config.Config, opts ...Option) (*Provisioner, error) {
	if cfg == nil {
		return nil, errors.ConfigError("provisioner configuration is required", nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Provisioner{
		cfg:       cfg,
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.fs == nil {
		p.fs = system.DefaultFS()
	}
	if p.resolver == nil {
		p.resolver = librarian.NewCLIResolver(nil)
	}
	if p.allocate == nil {
		p.allocate = sandbox.Allocate
	}
	p.log = logging.Session(p.log, p.sessionID, cfg.InstanceName)
	p.stager = sandbox.NewStager(p.fs)

	if err := p.loadDependencies(); err != nil {
		return nil, err
	}
	return p, nil
}

// loadDependencies verifies the resolver can run when a Puppetfile is present.
func (p *Provisioner) loadDependencies() error {
	puppetfile := p.cfg.Puppetfile()
	if !p.fs.IsFile(puppetfile) {
		return nil
	}
	p.log.Debug("Puppetfile found, checking librarian-puppet", "puppetfile", puppetfile)

	checker, ok := p.resolver.(librarian.Checker)
	if !ok {
		return nil
	}
	return checker.Check()
}

// Config returns the resolved configuration.
func (p *Provisioner) Config() *config.Config {
	return p.cfg
}

// SessionID identifies this session in log output.
func (p *Provisioner) SessionID() string {
	return p.sessionID
}

// SandboxPath returns the current sandbox directory, or "" when none exists.
func (p *Provisioner) SandboxPath() string {
	return p.sandboxPath
}
