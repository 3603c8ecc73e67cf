// Package testutil provides test fixtures and utilities.
//
// # Projects
//
// NewProject lays out a kitchen root in a temporary directory:
//
//	manifests/site.pp
//	modules/foo/manifests/init.pp
//
// WithHiera adds hiera.yaml and hiera/common.yaml; WithPuppetfile adds a
// Puppetfile, which makes the provisioner resolve dependencies first.
//
// # Fixtures
//
// Configuration documents are embedded using go:embed:
//
//	fixtures/kitchen.yml   provisioner section, centos, ordered facts
//	fixtures/flat.yml      flat document without a provisioner section
//	fixtures/kitchen.toml  TOML variant with a custom_facts table
//	fixtures/hiera.yaml
//	fixtures/Puppetfile
//
//	data, err := testutil.LoadFixture("kitchen.yml")
//	path := project.AddFixture("kitchen.toml", ".kitchen.toml")
package testutil
