// Package testutil provides test utilities for provisioner tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SiteManifest is the content of the default manifest in a test project.
const SiteManifest = "node default {\n  include foo\n}\n"

// FooModule is the content of the foo module class in a test project.
const FooModule = "class foo {\n  notify { 'foo': }\n}\n"

// Project is a kitchen root on disk laid out the way a Puppet project is.
type Project struct {
	T    *testing.T
	Root string
}

// NewProject creates a project with manifests/site.pp and modules/foo.
func NewProject(t *testing.T) *Project {
	t.Helper()

	p := &Project{T: t, Root: t.TempDir()}
	p.AddFile("manifests/site.pp", SiteManifest)
	p.AddFile("modules/foo/manifests/init.pp", FooModule)
	return p
}

// NewEmptyProject creates a project directory without any content.
func NewEmptyProject(t *testing.T) *Project {
	t.Helper()
	return &Project{T: t, Root: t.TempDir()}
}

// Path returns the absolute path of rel inside the project.
func (p *Project) Path(rel ...string) string {
	return filepath.Join(append([]string{p.Root}, rel...)...)
}

// AddFile writes a file relative to the project root, creating parents.
func (p *Project) AddFile(rel, content string) string {
	p.T.Helper()

	path := p.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		p.T.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		p.T.Fatalf("Failed to write %s: %v", rel, err)
	}
	return path
}

// AddDir creates a directory relative to the project root.
func (p *Project) AddDir(rel string) string {
	p.T.Helper()

	path := p.Path(rel)
	if err := os.MkdirAll(path, 0755); err != nil {
		p.T.Fatalf("Failed to create directory %s: %v", rel, err)
	}
	return path
}

// AddFixture copies an embedded fixture into the project.
func (p *Project) AddFixture(fixture, rel string) string {
	p.T.Helper()
	return p.AddFile(rel, string(Fixture(p.T, fixture)))
}

// WithHiera adds hiera.yaml and a hiera data directory.
func (p *Project) WithHiera() *Project {
	p.T.Helper()
	p.AddFixture("hiera.yaml", "hiera.yaml")
	p.AddFile("hiera/common.yaml", "---\nfoo::message: hello\n")
	return p
}

// WithPuppetfile adds a Puppetfile at the project root.
func (p *Project) WithPuppetfile() *Project {
	p.T.Helper()
	p.AddFixture("Puppetfile", "Puppetfile")
	return p
}

// ReadFile returns the content of a file, failing the test if unreadable.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// AssertNotExists fails the test if path exists.
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("%s should not exist (stat error: %v)", path, err)
	}
}
