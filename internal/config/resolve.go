package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/kitchen-puppet/internal/errors"
	"github.com/firefly-engineering/kitchen-puppet/internal/logging"
	"github.com/firefly-engineering/kitchen-puppet/internal/system"
)

// PathKind selects what CalculatePath accepts.
type PathKind int

const (
	KindDirectory PathKind = iota
	KindFile
)

func (k PathKind) String() string {
	if k == KindFile {
		return "file"
	}
	return "directory"
}

// Resolve runs the configuration resolution pass once and returns a fully
// resolved copy of in: absolute local paths, a validated platform family and
// conventional defaults for unset project paths. Project paths are looked up
// on fsys, or on the default filesystem when fsys is nil.
func Resolve(in *Config, fsys system.FileSystem) (*Config, error) {
	if fsys == nil {
		fsys = system.DefaultFS()
	}
	cfg := in.Clone()

	if cfg.KitchenRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.ConfigError("failed to determine kitchen_root", err)
		}
		cfg.KitchenRoot = wd
	}
	root, err := filepath.Abs(cfg.KitchenRoot)
	if err != nil {
		return nil, errors.ConfigError("invalid kitchen_root", err)
	}
	cfg.KitchenRoot = root

	family, err := PlatformFamily(cfg.PuppetPlatform)
	if err != nil {
		return nil, err
	}
	cfg.Family = family

	if cfg.TestBasePath == "" {
		cfg.TestBasePath = filepath.Join(root, "test", "integration")
	} else {
		cfg.TestBasePath = cfg.absLocal(cfg.TestBasePath)
	}

	if cfg.ManifestsPath, err = cfg.resolveRequired(fsys, cfg.ManifestsPath, "manifests", "manifests_path"); err != nil {
		return nil, err
	}
	if cfg.ModulesPath, err = cfg.resolveRequired(fsys, cfg.ModulesPath, "modules", "modules_path"); err != nil {
		return nil, err
	}
	cfg.HieraDataPath = cfg.resolveOptional(fsys, cfg.HieraDataPath, "hiera", KindDirectory)
	cfg.HieraConfigPath = cfg.resolveOptional(fsys, cfg.HieraConfigPath, "hiera.yaml", KindFile)

	if cfg.RootPath == "" {
		cfg.RootPath = DefaultRootPath
	}
	if !path.IsAbs(cfg.RootPath) {
		return nil, errors.ConfigError(fmt.Sprintf("root_path must be an absolute path (got %q)", cfg.RootPath), nil)
	}
	cfg.RootPath = path.Clean(cfg.RootPath)

	if err := cfg.checkManifest(fsys); err != nil {
		return nil, err
	}

	if cfg.PuppetVersion != "" {
		if _, err := semver.NewVersion(cfg.PuppetVersion); err != nil {
			logging.Warn("puppet_version is not a semantic version, pinning it verbatim",
				"puppet_version", cfg.PuppetVersion, "error", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Debug("resolved config",
		"kitchen_root", cfg.KitchenRoot,
		"family", cfg.Family,
		"manifests_path", cfg.ManifestsPath,
		"modules_path", cfg.ModulesPath,
		"hiera_data_path", cfg.HieraDataPath,
		"hiera_config_path", cfg.HieraConfigPath,
		"facts", cfg.CustomFacts.Names())
	return cfg, nil
}

// CalculatePath looks for name in the conventional project locations:
// <test_base_path>/<suite_name>/<name>, <test_base_path>/<name> and
// <kitchen_root>/<name>. The first entry of the requested kind wins;
// symlinked entries count as their target.
func CalculatePath(fsys system.FileSystem, cfg *Config, name string, kind PathKind) (string, bool) {
	bases := []string{
		filepath.Join(cfg.TestBasePath, cfg.SuiteName),
		cfg.TestBasePath,
		cfg.KitchenRoot,
	}
	for _, base := range bases {
		if base == "" {
			continue
		}
		candidate := filepath.Join(base, name)
		if kind == KindDirectory && fsys.IsDir(candidate) {
			return candidate, true
		}
		if kind == KindFile && fsys.IsFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (c *Config) absLocal(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.KitchenRoot, p)
}

func (c *Config) resolveRequired(fsys system.FileSystem, configured, name, key string) (string, error) {
	if configured != "" {
		return c.absLocal(configured), nil
	}
	if found, ok := CalculatePath(fsys, c, name, KindDirectory); ok {
		logging.Debug("detected project path", "key", key, "path", found)
		return found, nil
	}
	return "", errors.ConfigError(fmt.Sprintf("No %s detected. Please specify one in .kitchen.yml", key), nil)
}

func (c *Config) resolveOptional(fsys system.FileSystem, configured, name string, kind PathKind) string {
	if configured != "" {
		return c.absLocal(configured)
	}
	if found, ok := CalculatePath(fsys, c, name, kind); ok {
		logging.Debug("detected optional project path", "name", name, "kind", kind, "path", found)
		return found
	}
	return ""
}

// checkManifest keeps the manifest inside manifests_path. A manifest that
// does not exist yet is only reported: the sandbox is staged later. Staged
// symlinks keep their target, so a manifest linking outside manifests_path
// is reported too.
func (c *Config) checkManifest(fsys system.FileSystem) error {
	if c.Manifest == "" {
		return errors.ConfigError("manifest is required", nil)
	}
	if filepath.IsAbs(c.Manifest) || !filepath.IsLocal(c.Manifest) {
		return errors.ConfigError(fmt.Sprintf("manifest %q must be relative to manifests_path", c.Manifest), nil)
	}

	local := filepath.Join(c.ManifestsPath, c.Manifest)
	if !fsys.IsFile(local) {
		logging.Warn("manifest not found in manifests_path", "manifest", c.Manifest, "manifests_path", c.ManifestsPath)
		return nil
	}

	scoped, err := securejoin.SecureJoinVFS(c.ManifestsPath, c.Manifest, fsys)
	if err != nil {
		return errors.ConfigError(fmt.Sprintf("invalid manifest %q", c.Manifest), err)
	}
	if !fsys.IsFile(scoped) {
		logging.Warn("manifest links outside manifests_path and will not resolve on the instance",
			"manifest", c.Manifest, "manifests_path", c.ManifestsPath)
	}
	return nil
}
