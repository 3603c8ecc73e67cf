package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/firefly-engineering/kitchen-puppet/internal/errors"
	"github.com/firefly-engineering/kitchen-puppet/internal/logging"
	"github.com/firefly-engineering/kitchen-puppet/internal/system"
)

// LoadFile merges a YAML or TOML document over the defaults.
// When the document has a provisioner section only that section is read.
// kitchen_root defaults to the directory holding the file. The file is read
// from fsys, or from the default filesystem when fsys is nil.
func LoadFile(fsys system.FileSystem, path string) (*Config, error) {
	if fsys == nil {
		fsys = system.DefaultFS()
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to read config %s", path), err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		err = cfg.decodeYAML(data)
	case ".toml":
		err = cfg.decodeTOML(data)
	default:
		return nil, errors.ConfigError(fmt.Sprintf("unsupported config format %q (use .yml, .yaml or .toml)", ext), nil)
	}
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse config %s", path), err)
	}

	if cfg.KitchenRoot == "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.ConfigError("invalid config path", err)
		}
		cfg.KitchenRoot = filepath.Dir(absPath)
	}

	logging.Debug("loaded config", "path", path, "platform", cfg.PuppetPlatform, "facts", cfg.CustomFacts.Names())
	return cfg, nil
}

func (c *Config) decodeYAML(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping at the document root", root.Line)
	}

	node := root
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == ProvisionerSection && root.Content[i+1].Kind == yaml.MappingNode {
			node = root.Content[i+1]
			break
		}
	}
	return node.Decode(c)
}

func (c *Config) decodeTOML(data []byte) error {
	var probe map[string]any
	if _, err := toml.Decode(string(data), &probe); err != nil {
		return err
	}

	var (
		md     toml.MetaData
		err    error
		prefix []string
	)
	if _, ok := probe[ProvisionerSection].(map[string]any); ok {
		prefix = []string{ProvisionerSection}
		wrapper := struct {
			Provisioner Config `toml:"provisioner"`
		}{Provisioner: *c}
		md, err = toml.Decode(string(data), &wrapper)
		*c = wrapper.Provisioner
	} else {
		md, err = toml.Decode(string(data), c)
	}
	if err != nil {
		return err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logging.Debug("ignoring unknown config keys", "keys", fmt.Sprint(undecoded))
	}
	c.CustomFacts = orderTOMLFacts(c.CustomFacts, md, prefix)
	return nil
}

// FromMap merges a host-supplied option mapping over the defaults.
// Keys are the same snake_case names used in configuration files.
func FromMap(values map[string]any) (*Config, error) {
	cfg := Default()

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		Metadata:         &md,
		Result:           cfg,
		DecodeHook:       mapstructure.DecodeHookFuncType(factsDecodeHook),
	})
	if err != nil {
		return nil, errors.ConfigError("failed to build config decoder", err)
	}

	if err := decoder.Decode(values); err != nil {
		return nil, errors.ConfigError("failed to decode provisioner options", err)
	}

	if len(md.Unused) > 0 {
		logging.Debug("ignoring unknown provisioner options", "keys", strings.Join(md.Unused, ","))
	}
	return cfg, nil
}
