package sandbox

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/firefly-engineering/kitchen-puppet/internal/logging"
	"github.com/firefly-engineering/kitchen-puppet/internal/system"
)

// Stager copies project files into a sandbox.
type Stager struct {
	FS system.FileSystem
}

// NewStager creates a Stager on fs, or on the default filesystem when fs is nil.
func NewStager(fs system.FileSystem) *Stager {
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Stager{FS: fs}
}

// CopyContents mirrors the entries of src into dst, creating dst.
// Top-level entries whose name starts with a dot are skipped. src itself may
// be a symlink to a directory.
func (s *Stager) CopyContents(src, dst string) error {
	if !s.FS.IsDir(src) {
		return fmt.Errorf("%s is not a directory", src)
	}
	if err := s.FS.MkdirAll(dst, DirMode); err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	entries, err := s.FS.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", src, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			logging.Debug("skipping hidden entry", "path", filepath.Join(src, name))
			continue
		}
		if err := s.copyEntry(filepath.Join(src, name), dst, name); err != nil {
			return err
		}
	}
	return nil
}

// CopyFile copies a single file to dst, replacing it if present.
func (s *Stager) CopyFile(src, dst string) error {
	if !s.FS.IsFile(src) {
		return fmt.Errorf("%s is not a regular file", src)
	}
	if err := s.FS.MkdirAll(filepath.Dir(dst), DirMode); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}
	if err := s.FS.CopyFile(src, dst); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}

// Remove deletes a staged tree.
func (s *Stager) Remove(path string) error {
	if err := s.FS.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// copyEntry copies src to <dstDir>/<name>, recursing into directories.
// Symlinks below the source root are recreated with the same target rather
// than followed, so links back to an ancestor stage as links.
func (s *Stager) copyEntry(src, dstDir, name string) error {
	dst := filepath.Join(dstDir, name)

	info, err := s.FS.Lstat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	// A link left by an earlier copy must not be written through.
	if err := s.unlink(dst); err != nil {
		return err
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		target, err := s.FS.Readlink(src)
		if err != nil {
			return fmt.Errorf("failed to read link %s: %w", src, err)
		}
		if err := s.FS.Symlink(target, dst); err != nil {
			return fmt.Errorf("failed to link %s: %w", dst, err)
		}
		return nil
	case !info.IsDir():
		if err := s.FS.CopyFile(src, dst); err != nil {
			return fmt.Errorf("failed to copy %s: %w", src, err)
		}
		return nil
	}

	if err := s.FS.MkdirAll(dst, DirMode); err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	entries, err := s.FS.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", src, err)
	}
	for _, entry := range entries {
		if err := s.copyEntry(filepath.Join(src, entry.Name()), dst, entry.Name()); err != nil {
			return err
		}
	}
	return nil
}

// unlink removes dst when it is a symlink.
func (s *Stager) unlink(dst string) error {
	info, err := s.FS.Lstat(dst)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return nil
	}
	if err := s.FS.RemoveAll(dst); err != nil {
		return fmt.Errorf("failed to replace %s: %w", dst, err)
	}
	return nil
}
