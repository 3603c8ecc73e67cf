package testutil

import (
	"embed"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// Fixture loads a fixture file, failing the test if it is missing.
func Fixture(t testingT, name string) []byte {
	t.Helper()
	data, err := LoadFixture(name)
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	return data
}

// testingT is the subset of testing.TB used by the helpers.
type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}
