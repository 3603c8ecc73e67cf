// Package sandbox stages Puppet project files for transfer to an instance.
//
// A sandbox is a fresh local directory laid out the way puppet apply expects
// to find it under root_path on the instance:
//
//	<sandbox>/modules      contents of modules_path (after Puppetfile resolution)
//	<sandbox>/manifests    contents of manifests_path
//	<sandbox>/hiera.yaml   the Hiera config, when one is configured
//	<sandbox>/hiera        contents of hiera_data_path, when configured
//
// Allocate creates the directory; a Stager mirrors project trees into it.
//
//	dir, err := sandbox.Allocate("default-ubuntu-1404")
//	if err != nil {
//	    return err
//	}
//	stager := sandbox.NewStager(system.DefaultFS())
//	if err := stager.CopyContents(cfg.ManifestsPath, filepath.Join(dir, "manifests")); err != nil {
//	    return err
//	}
//
// CopyContents behaves like copying the expansion of "src/*": entries whose
// name starts with a dot are skipped at the top level only. Copies overwrite
// existing files, so staging the same tree twice yields the same result.
package sandbox
