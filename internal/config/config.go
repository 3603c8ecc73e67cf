package config

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/firefly-engineering/kitchen-puppet/internal/command"
	"github.com/firefly-engineering/kitchen-puppet/internal/errors"
)

const (
	DefaultManifest     = "site.pp"
	DefaultPlatform     = "ubuntu"
	DefaultAptRepo      = "http://apt.puppetlabs.com/puppetlabs-release-precise.deb"
	DefaultYumRepo      = "https://yum.puppetlabs.com/puppetlabs-release-el-6.noarch.rpm"
	DefaultRootPath     = "/tmp/kitchen"
	DefaultSudoCommand  = "sudo -E"
	DefaultSuiteName    = "default"
	DefaultInstanceName = "default"
	PuppetfileName      = "Puppetfile"
	ProvisionerSection  = "provisioner"
)

// Family is the package-management family a puppet_platform belongs to.
type Family string

const (
	FamilyDebian Family = "debian"
	FamilyRedHat Family = "redhat"
)

var platformFamilies = map[string]Family{
	"debian": FamilyDebian,
	"ubuntu": FamilyDebian,
	"redhat": FamilyRedHat,
	"centos": FamilyRedHat,
	"fedora": FamilyRedHat,
}

// PlatformFamily maps a puppet_platform value to its Family.
// Matching is case-insensitive; unknown platforms are rejected.
func PlatformFamily(platform string) (Family, error) {
	family, ok := platformFamilies[strings.ToLower(strings.TrimSpace(platform))]
	if !ok {
		return "", errors.UnsupportedPlatform(platform)
	}
	return family, nil
}

// Config is the provisioner configuration. A Config returned by Resolve is
// fully resolved and must be treated as read-only.
type Config struct {
	Manifest        string `yaml:"manifest" toml:"manifest"`
	ManifestsPath   string `yaml:"manifests_path" toml:"manifests_path"`
	ModulesPath     string `yaml:"modules_path" toml:"modules_path"`
	HieraDataPath   string `yaml:"hiera_data_path" toml:"hiera_data_path"`
	HieraConfigPath string `yaml:"hiera_config_path" toml:"hiera_config_path"`

	PuppetPlatform string `yaml:"puppet_platform" toml:"puppet_platform"`
	PuppetVersion  string `yaml:"puppet_version" toml:"puppet_version"`
	PuppetAptRepo  string `yaml:"puppet_apt_repo" toml:"puppet_apt_repo"`
	PuppetYumRepo  string `yaml:"puppet_yum_repo" toml:"puppet_yum_repo"`
	PuppetNoop     bool   `yaml:"puppet_noop" toml:"puppet_noop"`
	PuppetDebug    bool   `yaml:"puppet_debug" toml:"puppet_debug"`
	PuppetVerbose  bool   `yaml:"puppet_verbose" toml:"puppet_verbose"`
	UpdatePackages bool   `yaml:"update_packages" toml:"update_packages"`
	CustomFacts    Facts  `yaml:"custom_facts" toml:"custom_facts"`

	RootPath     string `yaml:"root_path" toml:"root_path"`
	KitchenRoot  string `yaml:"kitchen_root" toml:"kitchen_root"`
	TestBasePath string `yaml:"test_base_path" toml:"test_base_path"`
	SuiteName    string `yaml:"suite_name" toml:"suite_name"`
	InstanceName string `yaml:"instance_name" toml:"instance_name"`
	Sudo         bool   `yaml:"sudo" toml:"sudo"`
	SudoCommand  string `yaml:"sudo_command" toml:"sudo_command"`

	// Family is set by Resolve from PuppetPlatform.
	Family Family `yaml:"-" toml:"-"`
}

// Default returns a Config holding only the default values.
func Default() *Config {
	return &Config{
		Manifest:       DefaultManifest,
		PuppetPlatform: DefaultPlatform,
		PuppetAptRepo:  DefaultAptRepo,
		PuppetYumRepo:  DefaultYumRepo,
		UpdatePackages: true,
		RootPath:       DefaultRootPath,
		SuiteName:      DefaultSuiteName,
		InstanceName:   DefaultInstanceName,
		Sudo:           true,
		SudoCommand:    DefaultSudoCommand,
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	if c.CustomFacts != nil {
		out.CustomFacts = append(Facts(nil), c.CustomFacts...)
	}
	return &out
}

// Validate checks that a resolved Config is usable.
func (c *Config) Validate() error {
	if c.ManifestsPath == "" {
		return errors.ConfigError("No manifests_path detected. Please specify one in .kitchen.yml", nil)
	}
	if c.ModulesPath == "" {
		return errors.ConfigError("No modules_path detected. Please specify one in .kitchen.yml", nil)
	}
	if c.Manifest == "" {
		return errors.ConfigError("manifest is required", nil)
	}
	if c.Family != FamilyDebian && c.Family != FamilyRedHat {
		return errors.UnsupportedPlatform(c.PuppetPlatform)
	}
	if !path.IsAbs(c.RootPath) {
		return errors.ConfigError(fmt.Sprintf("root_path must be an absolute path (got %q)", c.RootPath), nil)
	}
	if err := c.CustomFacts.Validate(); err != nil {
		return errors.ConfigError("invalid custom_facts", err)
	}
	switch c.Family {
	case FamilyDebian:
		if c.PuppetAptRepo == "" {
			return errors.ConfigError("puppet_apt_repo is required for Debian-family platforms", nil)
		}
	case FamilyRedHat:
		if c.PuppetYumRepo == "" {
			return errors.ConfigError("puppet_yum_repo is required for RedHat-family platforms", nil)
		}
	}
	return nil
}

// AptRepoFile returns the file name dpkg installs after downloading the APT repo package.
func (c *Config) AptRepoFile() string {
	return c.PuppetAptRepo[strings.LastIndex(c.PuppetAptRepo, "/")+1:]
}

// VersionSuffix returns the package version pin for the platform family:
// "=VERSION" for Debian, "-VERSION" for RedHat, empty when unpinned.
func (c *Config) VersionSuffix() string {
	if c.PuppetVersion == "" {
		return ""
	}
	switch c.Family {
	case FamilyDebian:
		return "=" + c.PuppetVersion
	case FamilyRedHat:
		return "-" + c.PuppetVersion
	default:
		return ""
	}
}

// HieraConfigured reports whether a hiera.yaml is staged.
func (c *Config) HieraConfigured() bool {
	return c.HieraConfigPath != ""
}

// HieraDataConfigured reports whether a Hiera data directory is staged.
func (c *Config) HieraDataConfigured() bool {
	return c.HieraDataPath != ""
}

// Puppetfile returns the location of the Puppetfile in the project root.
func (c *Config) Puppetfile() string {
	return filepath.Join(c.KitchenRoot, PuppetfileName)
}

// SudoHelper returns the privilege escalation helper for this config.
func (c *Config) SudoHelper() command.Sudo {
	return command.Sudo{Enabled: c.Sudo, Command: c.SudoCommand}
}

// RemotePath joins elem onto the remote root path using POSIX separators.
func (c *Config) RemotePath(elem ...string) string {
	return path.Join(append([]string{c.RootPath}, elem...)...)
}
