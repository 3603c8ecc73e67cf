// Package librarian resolves Puppetfile module dependencies.
//
// Resolution is delegated to librarian-puppet; this package only invokes it.
// Callers that share a process serialize resolutions with Lock:
//
//	release, err := librarian.Lock(ctx)
//	if err != nil {
//	    return err
//	}
//	defer release()
//	err = resolver.Resolve(ctx, cfg.Puppetfile(), modulesDir)
package librarian
