// Package provisioner implements the puppet_apply provisioning session.
//
// A Provisioner turns a resolved configuration into a local sandbox and the
// shell text run on an instance. The host drives it in a fixed order:
//
//	init -> install -> create sandbox -> prepare -> run -> cleanup sandbox
//
// Command methods are pure functions of the configuration. CreateSandbox and
// CleanupSandbox touch the local filesystem and are the only stateful
// operations; a Provisioner owns at most one sandbox at a time.
//
// When a Puppetfile exists in the kitchen root, modules are first resolved
// into the sandbox by librarian-puppet while holding librarian.Lock, and the
// local modules_path is copied on top.
package provisioner
