package provisioner

import (
	"context"
	"fmt"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/kitchen-puppet/internal/errors"
	"github.com/firefly-engineering/kitchen-puppet/internal/librarian"
)

// Sandbox layout, mirroring root_path on the instance.
const (
	modulesDir      = "modules"
	manifestsDir    = "manifests"
	hieraDataDir    = "hiera"
	hieraConfigFile = "hiera.yaml"
)

// CreateSandbox allocates a sandbox and stages modules, manifests and Hiera
// files into it. A sandbox left by a previous call is removed first.
// On failure the partly staged sandbox is kept for CleanupSandbox.
func (p *Provisioner) CreateSandbox(ctx context.Context) error {
	if p.sandboxPath != "" {
		if err := p.CleanupSandbox(); err != nil {
			return err
		}
	}

	dir, err := p.allocate(p.cfg.InstanceName)
	if err != nil {
		return errors.SandboxFailed("allocation", err)
	}
	p.sandboxPath = dir
	p.log.Debug("Creating local sandbox", "path", dir)

	if p.preStage != nil {
		if err := p.preStage(ctx, dir); err != nil {
			return fmt.Errorf("pre-stage hook failed: %w", err)
		}
	}

	if err := p.prepareModules(ctx); err != nil {
		return err
	}
	if err := p.prepareManifests(); err != nil {
		return err
	}
	if err := p.prepareHieraConfig(); err != nil {
		return err
	}
	if err := p.prepareHieraData(); err != nil {
		return err
	}

	p.log.Info("Finished Preparing files for transfer", "path", dir)
	return nil
}

// CleanupSandbox removes the sandbox. It does nothing when no sandbox exists.
func (p *Provisioner) CleanupSandbox() error {
	if p.sandboxPath == "" {
		return nil
	}
	p.log.Debug("Cleaning up local sandbox", "path", p.sandboxPath)

	if err := p.stager.Remove(p.sandboxPath); err != nil {
		return errors.SandboxFailed("cleanup", err)
	}
	p.sandboxPath = ""
	return nil
}

func (p *Provisioner) sandboxEntry(name string) (string, error) {
	dst, err := securejoin.SecureJoinVFS(p.sandboxPath, name, p.fs)
	if err != nil {
		return "", errors.SandboxFailed("path resolution", err)
	}
	return dst, nil
}

func (p *Provisioner) prepareModules(ctx context.Context) error {
	p.log.Info("Preparing modules")

	dst, err := p.sandboxEntry(modulesDir)
	if err != nil {
		return err
	}

	if p.fs.IsFile(p.cfg.Puppetfile()) {
		if err := p.resolveWithLibrarian(ctx, dst); err != nil {
			return err
		}
	}

	p.log.Debug("Using modules", "path", p.cfg.ModulesPath)
	if err := p.stager.CopyContents(p.cfg.ModulesPath, dst); err != nil {
		return errors.SandboxFailed("modules staging", err)
	}
	return nil
}

func (p *Provisioner) resolveWithLibrarian(ctx context.Context, dst string) error {
	release, err := librarian.Lock(ctx)
	if err != nil {
		return errors.ResolveFailed(err)
	}
	defer release()

	if err := p.resolver.Resolve(ctx, p.cfg.Puppetfile(), dst); err != nil {
		var provErr *errors.ProvisionError
		if errors.As(err, &provErr) {
			return err
		}
		return errors.ResolveFailed(err)
	}
	return nil
}

func (p *Provisioner) prepareManifests() error {
	p.log.Info("Preparing manifests")
	p.log.Debug("Using manifests", "path", p.cfg.ManifestsPath)

	dst, err := p.sandboxEntry(manifestsDir)
	if err != nil {
		return err
	}
	if err := p.stager.CopyContents(p.cfg.ManifestsPath, dst); err != nil {
		return errors.SandboxFailed("manifests staging", err)
	}
	return nil
}

func (p *Provisioner) prepareHieraConfig() error {
	if !p.cfg.HieraConfigured() {
		return nil
	}
	p.log.Info("Preparing hiera")
	p.log.Debug("Using hiera", "path", p.cfg.HieraConfigPath)

	dst, err := p.sandboxEntry(hieraConfigFile)
	if err != nil {
		return err
	}
	if err := p.stager.CopyFile(p.cfg.HieraConfigPath, dst); err != nil {
		return errors.SandboxFailed("hiera config staging", err)
	}
	return nil
}

func (p *Provisioner) prepareHieraData() error {
	if !p.cfg.HieraDataConfigured() {
		return nil
	}
	p.log.Info("Preparing hiera data")
	p.log.Debug("Using hiera data", "path", p.cfg.HieraDataPath)

	dst, err := p.sandboxEntry(hieraDataDir)
	if err != nil {
		return err
	}
	if err := p.stager.CopyContents(p.cfg.HieraDataPath, dst); err != nil {
		return errors.SandboxFailed("hiera data staging", err)
	}
	return nil
}
