// Package config provides the provisioner configuration for kitchen-puppet.
//
// # Sources
//
// A Config starts from Default and is merged with one of:
//
//   - LoadFile: a .kitchen.yml (YAML) or .toml document; a top-level
//     provisioner section is used when present
//   - FromMap: an option mapping supplied by the host harness
//
// # Resolution
//
// Resolve is a single pass run before a provisioner is built. It returns a
// copy with absolute local paths, a validated platform Family and the
// conventional defaults filled in:
//
//	manifests_path     <suite>/manifests, test/integration/manifests, manifests
//	modules_path       same search for modules
//	hiera_data_path    same search for hiera (optional)
//	hiera_config_path  same search for the hiera.yaml file (optional)
//
// Missing manifests or modules directories and unknown puppet_platform values
// fail here with typed errors instead of surfacing later.
//
// # Custom Facts
//
// custom_facts keep the order they were written in. YAML and TOML documents
// preserve it; a plain mapping from FromMap is ordered by fact name, a list
// of {name, value} pairs keeps its order.
package config
