// Package app provides the application context for kitchen-puppet.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    FS        system.FileSystem      // Local filesystem used for staging
//	    Executor  system.CommandExecutor // Runs librarian-puppet
//	    Resolver  librarian.Resolver     // Puppetfile resolution
//	    Allocator sandbox.Allocator      // Sandbox directory creation
//	}
//
// # Creating an App
//
//	// Production usage
//	a := app.New()
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithFileSystem(system.NewMockFS()),
//	    app.WithExecutor(system.NewMockExecutor()),
//	)
//
// # Loading a Session
//
// LoadConfig finds and resolves the provisioner configuration, and
// Provisioner builds a session wired to the App's dependencies:
//
//	cfg, err := a.LoadConfig("", "/path/to/project")
//	prov, err := a.Provisioner(cfg)
package app
