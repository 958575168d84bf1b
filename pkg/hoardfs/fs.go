// Package hoardfs declares the filesystem abstraction every other hoard
// package depends on instead of talking to os directly. Production code is
// backed by the real OS filesystem; tests are backed by an in-memory one, so
// the walker/hasher/checker/copier can be exercised without touching disk.
package hoardfs

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for hoard's core operations. It
// is small enough to be backed by afero.Fs (production and tests) or a
// hand-written fake.
type FS interface {
	// Stat follows symlinks; Lstat does not.
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)

	// ReadDir returns directory entries; callers sort as needed (the
	// walker requires lexicographic-by-raw-bytes order, which ReadDir
	// does not guarantee across all backends).
	ReadDir(name string) ([]fs.DirEntry, error)

	// Open/Create stream content without loading whole files into
	// memory, which matters for the hasher and the copy engine on large
	// trees.
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)

	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	Chmod(name string, mode fs.FileMode) error

	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
}
